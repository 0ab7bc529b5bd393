package systems

import (
	"math"
	"testing"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestMovementAxis(t *testing.T) {
	tests := []struct {
		name   string
		keys   []ebiten.Key
		wantDX float64
		wantDY float64
	}{
		{"无输入", nil, 0, 0},
		{"WASD 左", []ebiten.Key{ebiten.KeyA}, -1, 0},
		{"方向键右", []ebiten.Key{ebiten.KeyArrowRight}, 1, 0},
		{"左右同时按下左优先", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyD}, -1, 0},
		{"上下同时按下上优先", []ebiten.Key{ebiten.KeyS, ebiten.KeyW}, 0, -1},
		{"斜向", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowRight}, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newFakeInput()
			for _, k := range tt.keys {
				in.pressed[k] = true
			}
			dx, dy := MovementAxis(in)
			if dx != tt.wantDX || dy != tt.wantDY {
				t.Errorf("MovementAxis = (%v, %v), want (%v, %v)", dx, dy, tt.wantDX, tt.wantDY)
			}
		})
	}
}

// TestPlayerMovementSystem_DiagonalNormalized 测试斜向速度归一化
func TestPlayerMovementSystem_DiagonalNormalized(t *testing.T) {
	em := ecs.NewEntityManager()
	in := newFakeInput()
	sys := NewPlayerMovementSystem(em, in)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PlayerComponent{Speed: 160})
	ecs.AddComponent(em, id, &components.VelocityComponent{})

	in.pressed[ebiten.KeyW] = true
	in.pressed[ebiten.KeyA] = true
	sys.Update(1.0 / 60)

	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	speed := math.Hypot(vel.VX, vel.VY)
	if math.Abs(speed-160) > 1e-9 {
		t.Errorf("Expected diagonal speed 160, got %f", speed)
	}
	if vel.VX >= 0 || vel.VY >= 0 {
		t.Errorf("Expected up-left velocity, got (%f, %f)", vel.VX, vel.VY)
	}

	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	if !player.Moving || !player.FacingLeft {
		t.Errorf("Expected moving and facing left, got %+v", player)
	}

	// 松开按键后停止
	clear(in.pressed)
	sys.Update(1.0 / 60)
	if vel.VX != 0 || vel.VY != 0 {
		t.Errorf("Expected zero velocity without input, got (%f, %f)", vel.VX, vel.VY)
	}
	if !player.FacingLeft {
		t.Error("Facing should persist when idle")
	}
}
