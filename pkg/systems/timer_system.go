package systems

import (
	"time"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
)

// TimerSystem 推进 TimerComponent 并在帧循环内执行回调
//
// 计时器是普通实体，场景停止时随 EntityManager 一起丢弃，
// 因此不会出现场景切换后回调仍然触发的情况。
type TimerSystem struct {
	entityManager *ecs.EntityManager
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem(em *ecs.EntityManager) *TimerSystem {
	return &TimerSystem{entityManager: em}
}

// DelayedCall 在 d 之后调用 fn 一次，返回计时器实体ID
func (s *TimerSystem) DelayedCall(name string, d time.Duration, fn func()) ecs.EntityID {
	return s.add(name, d, false, fn)
}

// Every 每隔 d 调用一次 fn，直到 Cancel
func (s *TimerSystem) Every(name string, d time.Duration, fn func()) ecs.EntityID {
	return s.add(name, d, true, fn)
}

func (s *TimerSystem) add(name string, d time.Duration, repeat bool, fn func()) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TimerComponent{
		Name:       name,
		TargetTime: d.Seconds(),
		Repeat:     repeat,
		Callback:   fn,
	})
	return id
}

// Cancel 取消计时器，回调不会再被调用
func (s *TimerSystem) Cancel(id ecs.EntityID) {
	if timer, ok := ecs.GetComponent[*components.TimerComponent](s.entityManager, id); ok {
		timer.Callback = nil
		timer.IsReady = true
	}
	s.entityManager.DestroyEntity(id)
}

// Update 推进所有计时器
func (s *TimerSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TimerComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		timer, _ := ecs.GetComponent[*components.TimerComponent](s.entityManager, id)
		if timer.Paused || timer.IsReady {
			continue
		}

		timer.CurrentTime += dt
		if timer.CurrentTime < timer.TargetTime {
			continue
		}

		if timer.Repeat && timer.TargetTime > 0 {
			timer.CurrentTime -= timer.TargetTime
		} else {
			timer.IsReady = true
			s.entityManager.DestroyEntity(id)
		}

		if timer.Callback != nil {
			timer.Callback()
		}
	}
}
