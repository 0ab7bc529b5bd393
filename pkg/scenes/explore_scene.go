package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
	"github.com/decker502/birthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	imageMap       = "IMAGE_MAP"
	imageCharacter = "IMAGE_CHARACTER"
	imageNPC       = "IMAGE_NPC"
	imageHeart     = "IMAGE_HEART"
)

// ExploreScene 俯视角探索场景
//
// 玩家在地图上移动收集爱心；靠近 NPC 时按空格/回车（或点击 NPC）打开对话覆盖层。
// 收集完全部爱心后稍作停留进入庆祝场景。
type ExploreScene struct {
	*baseScene

	physics  *systems.PhysicsSystem
	movement *systems.PlayerMovementSystem

	player   ecs.EntityID
	npc      ecs.EntityID
	counter  ecs.EntityID
	talkHint ecs.EntityID

	burst      config.EmitterConfig
	burstImage *ebiten.Image
	hasBurst   bool

	worldW, worldH float64

	collected int
	total     int
	talking   bool
	finishing bool
}

// NewExploreScene 创建探索场景
func NewExploreScene(ctx *Context) *ExploreScene {
	base := newBaseScene(ctx, "ExploreScene")
	return &ExploreScene{
		baseScene: base,
		physics:   systems.NewPhysicsSystem(base.em),
		movement:  systems.NewPlayerMovementSystem(base.em, ctx.Input),
	}
}

// OnEnter 实现 game.Enterable
func (s *ExploreScene) OnEnter(any) {
	cfg := s.card().Explore

	s.buildWorld()

	s.player = entities.NewPlayer(s.em, s.image(imageCharacter), s.width/2, s.height/2, cfg.PlayerScale, cfg.PlayerSpeed)
	s.camera.CenterOn(s.width/2, s.height/2)
	s.camera.StartFollow(s.player, cfg.CameraLerp, cfg.CameraLerp)

	heartImg := s.image(imageHeart)
	for i, p := range cfg.Hearts {
		x, y := p.X*s.worldW, p.Y*s.worldH
		heart := entities.NewHeart(s.em, heartImg, i, x, y, cfg.HeartScale)
		s.tweens.Add(heart, &components.Tween{
			Property: components.TweenY,
			To:       y - 8,
			Duration: 0.9,
			Ease:     ease.InOutSine,
			Yoyo:     true,
			Repeat:   -1,
		})
	}
	s.total = s.card().HeartCount()

	s.npc = entities.NewNPC(s.em, s.image(imageNPC), cfg.NPC,
		cfg.NPC.Position.X*s.worldW, cfg.NPC.Position.Y*s.worldH, cfg.NPC.Scale)
	if click, ok := ecs.GetComponent[*components.ClickableComponent](s.em, s.npc); ok {
		click.OnClick = func() {
			if s.npcInRange() {
				s.talk()
			}
		}
	}

	s.physics.AddOverlap(s.player, func(id ecs.EntityID) bool {
		return ecs.HasComponent[*components.CollectibleComponent](s.em, id)
	}, s.collect)
	s.physics.AddOverlap(s.player, func(id ecs.EntityID) bool {
		return id == s.npc
	}, func(ecs.EntityID) {
		if npc, ok := ecs.GetComponent[*components.NPCComponent](s.em, s.npc); ok {
			npc.InRange = true
		}
	})

	if ps := s.particleConfigs(); ps != nil {
		s.burst, s.hasBurst = ps.Get(cfg.CollectBurst)
	}
	if s.hasBurst {
		s.burstImage = s.image(s.burst.Image)
	}
	if !s.hasBurst {
		log.Printf("[ExploreScene] Warning: emitter %q not configured, no collect effect", cfg.CollectBurst)
	}

	s.buildHUD()

	if pm := s.progress(); pm != nil {
		pm.StartRun()
		pm.SetLastScene(KeyExplore)
	}
	log.Printf("[ExploreScene] World %.0fx%.0f, %d hearts", s.worldW, s.worldH, s.total)
}

// buildWorld 地图铺满屏幕（保持比例），世界边界 = 地图显示尺寸
func (s *ExploreScene) buildWorld() {
	s.worldW, s.worldH = s.width, s.height

	mapImg := s.image(imageMap)
	if mapImg != nil {
		b := mapImg.Bounds()
		scale := config.CoverScale(s.width, s.height, float64(b.Dx()), float64(b.Dy()))
		ground := entities.NewSprite(s.em, mapImg, 0, 0, config.DepthBackground)
		d := entities.Display(s.em, ground)
		d.OriginX, d.OriginY = 0, 0
		d.SetScale(scale)
		s.worldW, s.worldH = float64(b.Dx())*scale, float64(b.Dy())*scale
	} else {
		s.background(color.RGBA{R: 0x7c, G: 0xb3, B: 0x42, A: 0xff})
	}

	s.physics.SetWorldBounds(0, 0, s.worldW, s.worldH)
	s.camera.SetBounds(0, 0, s.worldW, s.worldH)
}

// buildHUD 固定在屏幕上的操作说明、爱心计数和对话提示
func (s *ExploreScene) buildHUD() {
	cfg := s.card().Explore
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	hudStyle := entities.TextStyle{
		Face:       s.face(fontBody, 18),
		Color:      white,
		Background: &black,
		PaddingX:   15,
		PaddingY:   10,
	}
	instructions := entities.NewText(s.em, cfg.Instructions, hudStyle, 20, 20, config.DepthHUD)
	s.pinToScreen(instructions)

	s.counter = entities.NewText(s.em, s.counterText(), hudStyle, 20, 70, config.DepthHUD)
	s.pinToScreen(s.counter)

	hintStyle := hudStyle
	hintStyle.Align = components.TextAlignCenter
	s.talkHint = entities.NewText(s.em, cfg.TalkHint, hintStyle, s.width/2, s.height-60, config.DepthHUD)
	d := entities.Display(s.em, s.talkHint)
	d.ScrollFactor = 0
	d.Visible = false
}

// pinToScreen 左上角锚点、不随摄像机滚动
func (s *ExploreScene) pinToScreen(id ecs.EntityID) {
	d := entities.Display(s.em, id)
	d.OriginX, d.OriginY = 0, 0
	d.ScrollFactor = 0
}

func (s *ExploreScene) counterText() string {
	return fmt.Sprintf(s.card().Explore.CounterFormat, s.collected, s.total)
}

// Update 实现 game.Scene
func (s *ExploreScene) Update(dt float64) {
	s.updatePointer(dt)

	s.movement.Update(dt)
	if npc, ok := ecs.GetComponent[*components.NPCComponent](s.em, s.npc); ok {
		npc.InRange = false
	}
	s.physics.Update(dt)

	inRange := s.npcInRange()
	if d := entities.Display(s.em, s.talkHint); d != nil {
		d.Visible = inRange && !s.talking
	}
	if inRange && systems.AnyJustPressed(s.ctx.Input, ebiten.KeySpace, ebiten.KeyEnter) {
		s.talk()
	}

	if player, ok := ecs.GetComponent[*components.PlayerComponent](s.em, s.player); ok {
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.em, s.player); ok {
			sprite.FlipX = player.FacingLeft
		}
	}

	s.updateSystems(dt)
}

func (s *ExploreScene) npcInRange() bool {
	npc, ok := ecs.GetComponent[*components.NPCComponent](s.em, s.npc)
	return ok && npc.InRange
}

// talk 暂停探索并打开对话覆盖层，台词按对话次数前进
func (s *ExploreScene) talk() {
	if s.talking {
		return
	}
	npc, ok := ecs.GetComponent[*components.NPCComponent](s.em, s.npc)
	if !ok {
		return
	}
	s.talking = true
	line := entities.NextLine(npc)
	log.Printf("[ExploreScene] %s: %q", npc.Name, line)
	s.ctx.Scenes.Launch(KeyDialog, DialogData{Speaker: npc.Name, Message: line})
}

// collect 玩家碰到爱心
func (s *ExploreScene) collect(id ecs.EntityID) {
	c, ok := ecs.GetComponent[*components.CollectibleComponent](s.em, id)
	if !ok || c.Collected {
		return
	}
	c.Collected = true
	pos := entities.Position(s.em, id)
	s.em.DestroyEntity(id)

	cfg := s.card().Explore
	s.play(cfg.CollectSound)
	if s.hasBurst {
		s.particles.Burst(s.burst, s.burstImage, pos.X, pos.Y, config.DepthEffects, 0)
	}

	s.collected++
	if pm := s.progress(); pm != nil {
		pm.CollectHeart()
	}
	if txt, ok := ecs.GetComponent[*components.TextComponent](s.em, s.counter); ok {
		txt.Text = s.counterText()
	}
	log.Printf("[ExploreScene] Heart %d collected (%d/%d)", c.Index, s.collected, s.total)

	if s.collected >= s.total && !s.finishing {
		s.finishing = true
		s.timers.DelayedCall("explore_finish", cfg.FinishDelay, func() {
			s.ctx.Scenes.Start(KeyCelebration, nil)
		})
	}
}

// OnPause 实现 game.Pausable
func (s *ExploreScene) OnPause() {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.em, s.player); ok {
		vel.VX, vel.VY = 0, 0
	}
}

// OnResume 实现 game.Pausable
func (s *ExploreScene) OnResume() {
	s.talking = false
}

// SaveOnExit 实现 game.Saveable
// 爱心已经集齐但还没切换时关闭窗口，下次 resume 直接进入庆祝场景
func (s *ExploreScene) SaveOnExit() bool {
	pm := s.progress()
	if pm == nil {
		return true
	}
	if s.finishing {
		pm.SetLastScene(KeyCelebration)
	}
	if err := pm.Save(); err != nil {
		log.Printf("[ExploreScene] Warning: failed to save progress: %v", err)
		return false
	}
	return true
}

// Collected 本轮已收集的爱心数量
func (s *ExploreScene) Collected() int {
	return s.collected
}

// Total 需要收集的爱心数量
func (s *ExploreScene) Total() int {
	return s.total
}

// PlayerPosition 玩家的世界坐标
func (s *ExploreScene) PlayerPosition() (float64, float64) {
	pos := entities.Position(s.em, s.player)
	return pos.X, pos.Y
}

// WorldSize 世界（地图显示）尺寸
func (s *ExploreScene) WorldSize() (float64, float64) {
	return s.worldW, s.worldH
}
