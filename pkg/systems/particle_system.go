package systems

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// ParticleSystem 粒子发射与更新
//
// 发射器是带 EmitterComponent 的实体，每个粒子也是独立实体，
// 由 LifetimeSystem 在寿命结束时销毁。
type ParticleSystem struct {
	em  *ecs.EntityManager
	rng *rand.Rand
}

// NewParticleSystem 创建粒子系统，rng 为 nil 时使用随机种子
func NewParticleSystem(em *ecs.EntityManager, rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ParticleSystem{em: em, rng: rng}
}

// CreateEmitter 在 (x, y) 创建持续发射的发射器
// Frequency 为 0 的配置只会在创建时发射一次
func (ps *ParticleSystem) CreateEmitter(name string, cfg config.EmitterConfig, img *ebiten.Image, x, y float64, depth int) ecs.EntityID {
	id := ps.em.CreateEntity()
	ecs.AddComponent(ps.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(ps.em, id, &components.EmitterComponent{
		Name:   name,
		Config: cfg,
		Image:  img,
		Depth:  depth,
		Active: true,
		// 创建后的第一帧立即发射
		SinceLastEmit: cfg.Frequency.Seconds(),
		ScrollFactor:  1,
	})
	log.Printf("[ParticleSystem] Emitter %q created at (%.0f, %.0f)", name, x, y)
	return id
}

// Stop 停止发射，已发射的粒子继续完成生命周期
func (ps *ParticleSystem) Stop(emitterID ecs.EntityID) {
	if e, ok := ecs.GetComponent[*components.EmitterComponent](ps.em, emitterID); ok {
		e.Active = false
	}
}

// Burst 在 (x, y) 一次性发射 count 个粒子，count <= 0 时使用配置中的数量
func (ps *ParticleSystem) Burst(cfg config.EmitterConfig, img *ebiten.Image, x, y float64, depth int, count int) {
	if count <= 0 {
		count = cfg.Quantity
	}
	e := &components.EmitterComponent{Config: cfg, Image: img, Depth: depth, ScrollFactor: 1}
	for i := 0; i < count; i++ {
		ps.spawnParticle(0, e, x, y)
	}
}

// Update 推进发射器和粒子
func (ps *ParticleSystem) Update(dt float64) {
	ps.updateEmitters(dt)
	ps.updateParticles(dt)
}

func (ps *ParticleSystem) updateEmitters(dt float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.EmitterComponent, *components.PositionComponent](ps.em) {
		e, _ := ecs.GetComponent[*components.EmitterComponent](ps.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		if !e.Active {
			continue
		}

		freq := e.Config.Frequency.Seconds()
		if freq <= 0 {
			// 一次性发射器
			for i := 0; i < e.Config.Quantity; i++ {
				ps.spawnParticle(id, e, pos.X, pos.Y)
			}
			e.Active = false
			continue
		}

		e.SinceLastEmit += dt
		for e.SinceLastEmit >= freq {
			e.SinceLastEmit -= freq
			for i := 0; i < e.Config.Quantity; i++ {
				if e.Config.MaxAlive > 0 && e.Alive >= e.Config.MaxAlive {
					break
				}
				ps.spawnParticle(id, e, pos.X, pos.Y)
			}
		}
	}
}

// spawnParticle 创建单个粒子实体
// 角度约定：0 度向右，顺时针为正（屏幕 Y 向下），270 度向上
func (ps *ParticleSystem) spawnParticle(emitterID ecs.EntityID, e *components.EmitterComponent, x, y float64) {
	cfg := e.Config
	speed := ps.between(cfg.Speed)
	angle := ps.between(cfg.Angle) * math.Pi / 180

	id := ps.em.CreateEntity()
	ecs.AddComponent(ps.em, id, &components.PositionComponent{X: x, Y: y})

	d := components.NewDisplay(e.Depth)
	d.SetScale(cfg.Scale.Start)
	d.Alpha = cfg.Alpha.Start
	d.ScrollFactor = e.ScrollFactor
	ecs.AddComponent(ps.em, id, d)
	ecs.AddComponent(ps.em, id, &components.SpriteComponent{Image: e.Image, Additive: cfg.Additive})

	ecs.AddComponent(ps.em, id, &components.ParticleComponent{
		VX:         math.Cos(angle) * speed,
		VY:         math.Sin(angle) * speed,
		Gravity:    cfg.Gravity,
		Spin:       ps.between(cfg.Spin),
		ScaleStart: cfg.Scale.Start,
		ScaleEnd:   cfg.Scale.End,
		AlphaStart: cfg.Alpha.Start,
		AlphaEnd:   cfg.Alpha.End,
		Lifetime:   cfg.Lifespan.Seconds(),
		Emitter:    emitterID,
	})

	lifetime := &components.LifetimeComponent{MaxLifetime: cfg.Lifespan.Seconds()}
	if emitterID != 0 {
		lifetime.OnExpire = func() {
			if owner, ok := ecs.GetComponent[*components.EmitterComponent](ps.em, emitterID); ok && owner.Alive > 0 {
				owner.Alive--
			}
		}
	}
	ecs.AddComponent(ps.em, id, lifetime)

	e.Alive++
	e.TotalLaunched++
}

func (ps *ParticleSystem) updateParticles(dt float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.ParticleComponent, *components.PositionComponent, *components.DisplayComponent](ps.em) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](ps.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		d, _ := ecs.GetComponent[*components.DisplayComponent](ps.em, id)

		p.Age += dt
		p.VY += p.Gravity * dt
		pos.X += p.VX * dt
		pos.Y += p.VY * dt
		d.Rotation += p.Spin * dt

		t := 1.0
		if p.Lifetime > 0 {
			t = math.Min(p.Age/p.Lifetime, 1)
		}
		d.SetScale(p.ScaleStart + (p.ScaleEnd-p.ScaleStart)*t)
		d.Alpha = p.AlphaStart + (p.AlphaEnd-p.AlphaStart)*t
	}
}

// between 在闭区间内均匀取值
func (ps *ParticleSystem) between(r config.Range) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + ps.rng.Float64()*(r.Max-r.Min)
}
