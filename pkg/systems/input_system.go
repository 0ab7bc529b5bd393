package systems

import (
	"sort"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
)

// InputSystem 把指针事件分发给 ClickableComponent
//
// 命中检测使用实体的屏幕包围盒；层级高的实体先收到事件，
// Swallow 的实体命中后停止向下传递。
// 悬停只作用于最上层的命中实体。
type InputSystem struct {
	entityManager *ecs.EntityManager
	input         InputSource
	scroll        ScrollProvider

	hovered ecs.EntityID

	// consumed 本帧的点击是否已被某个实体处理
	consumed bool
}

// NewInputSystem 创建指针输入系统，scroll 可为 nil
func NewInputSystem(em *ecs.EntityManager, input InputSource, scroll ScrollProvider) *InputSystem {
	return &InputSystem{
		entityManager: em,
		input:         input,
		scroll:        scroll,
	}
}

// Input 返回底层输入源
func (s *InputSystem) Input() InputSource {
	return s.input
}

// Consumed 本帧的指针按下是否被某个可点击实体处理
func (s *InputSystem) Consumed() bool {
	return s.consumed
}

// Update 处理悬停与点击
func (s *InputSystem) Update(deltaTime float64) {
	s.consumed = false

	px, py := s.input.PointerPosition()
	hits := s.hitTest(float64(px), float64(py))
	s.updateHover(hits)

	cx, cy, pressed := s.input.PointerJustPressed()
	if !pressed {
		return
	}
	if cx != px || cy != py {
		hits = s.hitTest(float64(cx), float64(cy))
	}
	for _, id := range hits {
		// 前一个回调可能销毁或禁用了后续实体
		if !s.entityManager.IsAlive(id) {
			continue
		}
		click, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if !ok || !click.IsEnabled {
			continue
		}
		s.consumed = true
		if click.OnClick != nil {
			click.OnClick()
		}
		if click.Swallow {
			break
		}
	}
}

func (s *InputSystem) updateHover(hits []ecs.EntityID) {
	var top ecs.EntityID
	if len(hits) > 0 {
		top = hits[0]
	}
	if top == s.hovered {
		return
	}

	if prev, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, s.hovered); ok {
		prev.IsHovered = false
		if prev.OnOut != nil {
			prev.OnOut()
		}
	}
	s.hovered = top
	if cur, ok := ecs.GetComponent[*components.ClickableComponent](s.entityManager, top); ok {
		cur.IsHovered = true
		if cur.OnOver != nil {
			cur.OnOver()
		}
	}
}

type hitCandidate struct {
	id    ecs.EntityID
	depth int
}

// hitTest 返回包含 (x, y) 的可点击实体，按层级从高到低排序
func (s *InputSystem) hitTest(x, y float64) []ecs.EntityID {
	var candidates []hitCandidate
	for _, id := range ecs.GetEntitiesWith1[*components.ClickableComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		click, _ := ecs.GetComponent[*components.ClickableComponent](s.entityManager, id)
		if !click.IsEnabled {
			continue
		}
		wt, ok := resolveTransform(s.entityManager, id)
		if !ok || !wt.Visible {
			continue
		}
		r, ok := ScreenBounds(s.entityManager, id, s.scroll)
		if !ok {
			continue
		}
		if x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom() {
			candidates = append(candidates, hitCandidate{id: id, depth: wt.Depth})
		}
	}

	// 同层级时后创建的在上面
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].depth != candidates[j].depth {
			return candidates[i].depth > candidates[j].depth
		}
		return candidates[i].id > candidates[j].id
	})

	ids := make([]ecs.EntityID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids
}
