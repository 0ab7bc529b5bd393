package components

import (
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// EmitterComponent 粒子发射器
// 发射器本身只有 Position，不绘制；粒子是独立实体
type EmitterComponent struct {
	Name   string
	Config config.EmitterConfig
	Image  *ebiten.Image
	Depth  int

	Active        bool
	SinceLastEmit float64 // 距上次发射的时间（秒）
	Alive         int     // 当前存活粒子数
	TotalLaunched int

	// ScrollFactor 传递给粒子的 DisplayComponent
	ScrollFactor float64
}

// ParticleComponent 单个粒子的运行时状态
type ParticleComponent struct {
	VX float64
	VY float64

	Gravity float64
	Spin    float64 // 度/秒

	ScaleStart float64
	ScaleEnd   float64
	AlphaStart float64
	AlphaEnd   float64

	Age      float64
	Lifetime float64

	Emitter ecs.EntityID // 所属发射器实体ID，0 表示一次性爆发无归属
}
