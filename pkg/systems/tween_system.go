package systems

import (
	"log"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenSystem 驱动实体显示属性的补间动画
//
// 插值由 gween 完成，本系统负责：
//   - 延迟启动、yoyo 往返、重复次数
//   - 把插值结果写回 PositionComponent / DisplayComponent
//   - 动画结束后的回调
type TweenSystem struct {
	entityManager *ecs.EntityManager
}

// NewTweenSystem 创建补间动画系统
func NewTweenSystem(em *ecs.EntityManager) *TweenSystem {
	return &TweenSystem{entityManager: em}
}

// Add 为实体添加一个补间动画，返回该动画以便调用方查询状态
// 同一属性上已有的动画会被替换（与鼠标悬停放大这类反复触发的动画配合）
func (s *TweenSystem) Add(id ecs.EntityID, tw *components.Tween) *components.Tween {
	if tw.Ease == nil {
		tw.Ease = ease.Linear
	}
	s.Kill(id, tw.Property)

	comp, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
	if !ok {
		comp = &components.TweenComponent{}
		ecs.AddComponent(s.entityManager, id, comp)
	}
	comp.Tweens = append(comp.Tweens, tw)
	return tw
}

// Kill 停止实体在指定属性上的动画（不触发回调）
func (s *TweenSystem) Kill(id ecs.EntityID, prop components.TweenProperty) {
	comp, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
	if !ok {
		return
	}
	kept := comp.Tweens[:0]
	for _, tw := range comp.Tweens {
		if tw.Property != prop {
			kept = append(kept, tw)
		}
	}
	comp.Tweens = kept
}

// KillAll 停止实体上的全部动画
func (s *TweenSystem) KillAll(id ecs.EntityID) {
	ecs.RemoveComponent[*components.TweenComponent](s.entityManager, id)
}

// IsTweening 实体是否还有未完成的动画
func (s *TweenSystem) IsTweening(id ecs.EntityID) bool {
	comp, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
	return ok && len(comp.Tweens) > 0
}

// Update 推进所有动画
func (s *TweenSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TweenComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		comp, _ := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)

		// 回调中可能再次 Add，先拷贝一份当前列表
		current := append([]*components.Tween(nil), comp.Tweens...)
		for _, tw := range current {
			if tw.Done {
				continue
			}
			if s.step(id, tw, dt) && tw.OnComplete != nil {
				tw.OnComplete()
			}
		}

		// 移除已完成的动画
		comp, ok := ecs.GetComponent[*components.TweenComponent](s.entityManager, id)
		if !ok {
			continue
		}
		kept := comp.Tweens[:0]
		for _, tw := range comp.Tweens {
			if !tw.Done {
				kept = append(kept, tw)
			}
		}
		comp.Tweens = kept
	}
}

// step 推进单个动画，返回本帧是否刚刚完成
func (s *TweenSystem) step(id ecs.EntityID, tw *components.Tween, dt float64) bool {
	if tw.Delay > 0 {
		tw.Delay -= dt
		if tw.Delay > 0 {
			return false
		}
		dt = -tw.Delay
		tw.Delay = 0
	}

	if !tw.Started {
		from, ok := s.get(id, tw.Property)
		if !ok {
			log.Printf("[TweenSystem] Entity %d has no %s to tween, dropping", id, tw.Property)
			tw.Done = true
			return false
		}
		tw.From = from
		tw.Started = true
		tw.Engine = gween.New(float32(tw.From), float32(tw.To), float32(tw.Duration), tw.Ease)
	}

	value, finished := tw.Engine.Update(float32(dt))
	s.set(id, tw.Property, float64(value))
	if !finished {
		return false
	}

	// 到达终点：yoyo 先反向一次
	if tw.Yoyo && !tw.Reversed {
		tw.Reversed = true
		tw.Engine = gween.New(float32(tw.To), float32(tw.From), float32(tw.Duration), tw.Ease)
		return false
	}

	tw.Completed++
	if tw.Repeat < 0 || tw.Completed <= tw.Repeat {
		tw.Reversed = false
		tw.Engine = gween.New(float32(tw.From), float32(tw.To), float32(tw.Duration), tw.Ease)
		if !tw.Yoyo {
			s.set(id, tw.Property, tw.From)
		}
		return false
	}

	tw.Done = true
	return true
}

func (s *TweenSystem) get(id ecs.EntityID, prop components.TweenProperty) (float64, bool) {
	switch prop {
	case components.TweenX, components.TweenY:
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			return 0, false
		}
		if prop == components.TweenX {
			return pos.X, true
		}
		return pos.Y, true
	}

	d, ok := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id)
	if !ok {
		return 0, false
	}
	switch prop {
	case components.TweenScale, components.TweenScaleX:
		return d.ScaleX, true
	case components.TweenScaleY:
		return d.ScaleY, true
	case components.TweenAlpha:
		return d.Alpha, true
	case components.TweenRotation:
		return d.Rotation, true
	}
	return 0, false
}

func (s *TweenSystem) set(id ecs.EntityID, prop components.TweenProperty, v float64) {
	switch prop {
	case components.TweenX, components.TweenY:
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
			if prop == components.TweenX {
				pos.X = v
			} else {
				pos.Y = v
			}
		}
		return
	}

	d, ok := ecs.GetComponent[*components.DisplayComponent](s.entityManager, id)
	if !ok {
		return
	}
	switch prop {
	case components.TweenScale:
		d.SetScale(v)
	case components.TweenScaleX:
		d.ScaleX = v
	case components.TweenScaleY:
		d.ScaleY = v
	case components.TweenAlpha:
		d.Alpha = v
	case components.TweenRotation:
		d.Rotation = v
	}
}

// easings 按名称查找缓动函数，名称沿用 "Cubic.easeOut" 这类常见写法
var easings = map[string]ease.TweenFunc{
	"Linear":          ease.Linear,
	"Quad.easeIn":     ease.InQuad,
	"Quad.easeOut":    ease.OutQuad,
	"Quad.easeInOut":  ease.InOutQuad,
	"Cubic.easeIn":    ease.InCubic,
	"Cubic.easeOut":   ease.OutCubic,
	"Cubic.easeInOut": ease.InOutCubic,
	"Sine.easeIn":     ease.InSine,
	"Sine.easeOut":    ease.OutSine,
	"Sine.easeInOut":  ease.InOutSine,
	"Back.easeIn":     ease.InBack,
	"Back.easeOut":    ease.OutBack,
	"Back.easeInOut":  ease.InOutBack,
	"Bounce.easeOut":  ease.OutBounce,
	"Elastic.easeOut": ease.OutElastic,
}

// EaseByName 返回命名缓动函数，未知名称回退为线性
func EaseByName(name string) ease.TweenFunc {
	if fn, ok := easings[name]; ok {
		return fn
	}
	log.Printf("[TweenSystem] Unknown easing %q, using Linear", name)
	return ease.Linear
}
