package systems

import (
	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
)

// Rect 轴对齐矩形（世界坐标）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right 右边界
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Intersects 两个矩形是否重叠（边缘相接不算）
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// overlapRule 一个主体与一类目标之间的重叠检测
type overlapRule struct {
	subject ecs.EntityID
	match   func(id ecs.EntityID) bool
	handler func(other ecs.EntityID)
}

// PhysicsSystem 简单的街机物理
//
// 职责：
//   - 把 VelocityComponent 积分到 PositionComponent
//   - 把 CollideWorldBounds 的实体限制在世界边界内
//   - 对注册的主体做 AABB 重叠检测并回调
type PhysicsSystem struct {
	em *ecs.EntityManager

	bounds    Rect
	hasBounds bool

	overlaps []overlapRule
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(em *ecs.EntityManager) *PhysicsSystem {
	return &PhysicsSystem{em: em}
}

// SetWorldBounds 设置世界边界
func (ps *PhysicsSystem) SetWorldBounds(x, y, width, height float64) {
	ps.bounds = Rect{X: x, Y: y, Width: width, Height: height}
	ps.hasBounds = true
}

// AddOverlap 注册重叠检测：每帧 subject 与所有满足 match 的带碰撞盒实体比较，
// 重叠时调用 handler。handler 内销毁目标是安全的，同一帧不会重复回调已销毁的实体。
func (ps *PhysicsSystem) AddOverlap(subject ecs.EntityID, match func(id ecs.EntityID) bool, handler func(other ecs.EntityID)) {
	ps.overlaps = append(ps.overlaps, overlapRule{subject: subject, match: match, handler: handler})
}

// Update 积分速度、处理边界并检测重叠
func (ps *PhysicsSystem) Update(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		pos.X += vel.VX * dt
		pos.Y += vel.VY * dt

		if body, ok := ecs.GetComponent[*components.BodyComponent](ps.em, id); ok {
			ps.collideWorldBounds(pos, vel, body)
		}
	}

	for _, rule := range ps.overlaps {
		if !ps.em.IsAlive(rule.subject) {
			continue
		}
		a, ok := ps.BodyRect(rule.subject)
		if !ok {
			continue
		}
		for _, other := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.BodyComponent](ps.em) {
			if other == rule.subject || !ps.em.IsAlive(other) {
				continue
			}
			if rule.match != nil && !rule.match(other) {
				continue
			}
			b, _ := ps.BodyRect(other)
			if a.Intersects(b) {
				rule.handler(other)
			}
		}
	}
}

// collideWorldBounds 把碰撞盒限制在世界边界内，并清零撞墙方向的速度
func (ps *PhysicsSystem) collideWorldBounds(pos *components.PositionComponent, vel *components.VelocityComponent, body *components.BodyComponent) {
	body.BlockedX, body.BlockedY = false, false
	if !ps.hasBounds || !body.CollideWorldBounds {
		return
	}

	halfW, halfH := body.Width/2, body.Height/2
	cx := pos.X + body.OffsetX
	cy := pos.Y + body.OffsetY

	switch {
	case cx-halfW < ps.bounds.X:
		pos.X = ps.bounds.X + halfW - body.OffsetX
		body.BlockedX = true
	case cx+halfW > ps.bounds.Right():
		pos.X = ps.bounds.Right() - halfW - body.OffsetX
		body.BlockedX = true
	}
	switch {
	case cy-halfH < ps.bounds.Y:
		pos.Y = ps.bounds.Y + halfH - body.OffsetY
		body.BlockedY = true
	case cy+halfH > ps.bounds.Bottom():
		pos.Y = ps.bounds.Bottom() - halfH - body.OffsetY
		body.BlockedY = true
	}

	if body.BlockedX {
		vel.VX = 0
	}
	if body.BlockedY {
		vel.VY = 0
	}
}

// BodyRect 返回实体碰撞盒的世界矩形（碰撞盒中心对齐实体位置 + 偏移）
func (ps *PhysicsSystem) BodyRect(id ecs.EntityID) (Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](ps.em, id)
	if !ok {
		return Rect{}, false
	}
	body, ok := ecs.GetComponent[*components.BodyComponent](ps.em, id)
	if !ok {
		return Rect{}, false
	}
	return Rect{
		X:      pos.X + body.OffsetX - body.Width/2,
		Y:      pos.Y + body.OffsetY - body.Height/2,
		Width:  body.Width,
		Height: body.Height,
	}, true
}
