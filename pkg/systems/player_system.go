package systems

import (
	"math"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
)

// PlayerMovementSystem 把方向输入转换为玩家速度
// 斜向移动时速度归一化，保证任意方向都是同一速率
type PlayerMovementSystem struct {
	em    *ecs.EntityManager
	input InputSource
}

// NewPlayerMovementSystem 创建玩家移动系统
func NewPlayerMovementSystem(em *ecs.EntityManager, input InputSource) *PlayerMovementSystem {
	return &PlayerMovementSystem{em: em, input: input}
}

// Update 根据当前按键设置所有玩家实体的速度
func (s *PlayerMovementSystem) Update(dt float64) {
	dx, dy := MovementAxis(s.input)
	if dx != 0 && dy != 0 {
		dx /= math.Sqrt2
		dy /= math.Sqrt2
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.VelocityComponent](s.em) {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		vel.VX = dx * player.Speed
		vel.VY = dy * player.Speed
		player.Moving = dx != 0 || dy != 0
		if dx < 0 {
			player.FacingLeft = true
		} else if dx > 0 {
			player.FacingLeft = false
		}
	}
}
