package scenes

import (
	"log"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
	"github.com/decker502/birthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const imageHug = "IMAGE_HUG"

// CelebrationScene 结尾庆祝场景
//
// 淡入 -> 拥抱图弹出 -> 祝福语淡入 -> 允许点击；点击后记录完成并淡出回到信封场景。
type CelebrationScene struct {
	*baseScene

	hug     ecs.EntityID
	message ecs.EntityID
	prompt  ecs.EntityID
	emitter ecs.EntityID
	hearts  []ecs.EntityID

	canProceed bool
	leaving    bool
}

// NewCelebrationScene 创建庆祝场景
func NewCelebrationScene(ctx *Context) *CelebrationScene {
	return &CelebrationScene{baseScene: newBaseScene(ctx, "CelebrationScene")}
}

// OnEnter 实现 game.Enterable
func (s *CelebrationScene) OnEnter(any) {
	card := s.card()
	cfg := card.Celebration

	s.background(card.Palette.Blush.RGBA())
	s.camera.FadeIn(cfg.FadeIn, card.Palette.Blush.RGBA(), nil)

	img := s.image(imageHug)
	s.hug = entities.NewSprite(s.em, img, s.width/2, s.height/2-50, config.DepthWorld)
	entities.Display(s.em, s.hug).SetScale(0)
	target := 1.0
	if img != nil {
		b := img.Bounds()
		target = min(s.width*0.6/float64(b.Dx()), s.height*0.5/float64(b.Dy()))
	}
	s.tweens.Add(s.hug, &components.Tween{
		Property:   components.TweenScale,
		To:         target,
		Duration:   cfg.Pop.Seconds(),
		Ease:       systems.EaseByName(cfg.PopEase),
		OnComplete: s.showMessage,
	})

	if ps := s.particleConfigs(); ps != nil {
		if ec, ok := ps.Get(cfg.Emitter); ok {
			s.emitter = s.particles.CreateEmitter(cfg.Emitter, ec, s.image(ec.Image), s.width/2, s.height/2, config.DepthEffects)
		} else {
			log.Printf("[CelebrationScene] Warning: emitter %q not configured", cfg.Emitter)
		}
	}

	if am := s.audio(); am != nil && cfg.Music.ID != "" {
		am.PlayMusic(cfg.Music.ID, cfg.Music.Volume)
	}

	s.timers.DelayedCall("celebration_hearts", cfg.FloatingDelay, func() {
		s.spawnFloatingHearts(s.image(imageHeart))
	})

	if pm := s.progress(); pm != nil {
		pm.SetLastScene(KeyCelebration)
	}
}

// spawnFloatingHearts 拥抱图上方上下漂浮并旋转的半透明爱心
func (s *CelebrationScene) spawnFloatingHearts(img *ebiten.Image) {
	n := s.card().Celebration.FloatingHearts
	for i := 0; i < n; i++ {
		x := 50 + s.rng.Float64()*max(s.width-100, 0)
		y := 100 + s.rng.Float64()*200
		heart := entities.NewSprite(s.em, img, x, y, config.DepthWorld+1)
		d := entities.Display(s.em, heart)
		d.SetScale(0.5)
		d.Alpha = 0.3

		period := float64(2000+i*300) / 1000
		s.tweens.Add(heart, &components.Tween{
			Property: components.TweenY, To: y - 30, Duration: period,
			Ease: ease.InOutSine, Yoyo: true, Repeat: -1,
		})
		s.tweens.Add(heart, &components.Tween{
			Property: components.TweenAlpha, To: 0.6, Duration: period,
			Ease: ease.InOutSine, Yoyo: true, Repeat: -1,
		})
		s.tweens.Add(heart, &components.Tween{
			Property: components.TweenRotation, To: 360, Duration: 4,
			Ease: ease.Linear, Repeat: -1,
		})
		s.hearts = append(s.hearts, heart)
	}
}

// showMessage 拥抱图弹出后显示祝福语，淡入完成后允许继续
func (s *CelebrationScene) showMessage() {
	card := s.card()
	cfg := card.Celebration
	white := config.MustHexColor("#FFFFFF").RGBA()

	s.message = entities.NewText(s.em, s.greeting(), entities.TextStyle{
		Face:       s.face(fontTitle, 20),
		Color:      card.Palette.Message.RGBA(),
		Align:      components.TextAlignCenter,
		WrapWidth:  s.width - 100,
		Background: &white,
		PaddingX:   20,
		PaddingY:   15,
	}, s.width/2, s.height-150, config.DepthHUD)
	entities.Display(s.em, s.message).Alpha = 0
	s.tweens.Add(s.message, &components.Tween{
		Property: components.TweenAlpha,
		To:       1,
		Duration: cfg.MessageFade.Seconds(),
		Ease:     ease.InSine,
		OnComplete: func() {
			s.canProceed = true
			s.prompt = entities.NewText(s.em, cfg.Prompt, s.promptStyle(18, false, card.Palette.Muted),
				s.width/2, s.height-60, config.DepthHUD)
			s.blink(s.prompt, cfg.Blink)
		},
	})
}

// greeting 替换 {name} 后的祝福语
func (s *CelebrationScene) greeting() string {
	return s.card().CelebrationMessage()
}

// Update 实现 game.Scene
func (s *CelebrationScene) Update(dt float64) {
	if s.updatePointer(dt) && s.canProceed && !s.leaving {
		s.restart()
	}
	s.updateSystems(dt)
}

// restart 记录一次完整游玩，淡出后回到信封场景
func (s *CelebrationScene) restart() {
	s.leaving = true
	if pm := s.progress(); pm != nil {
		completions := pm.RecordCompletion()
		log.Printf("[CelebrationScene] Card completed %d time(s)", completions)
	}
	if s.emitter != 0 {
		s.particles.Stop(s.emitter)
	}
	s.camera.FadeOut(s.card().Celebration.FadeOut, s.card().Palette.Blush.RGBA(), func() {
		s.ctx.Scenes.Start(KeyEnvelope, nil)
	})
}

// OnExit 实现 game.Exitable
func (s *CelebrationScene) OnExit() {
	if am := s.audio(); am != nil {
		am.StopMusic()
	}
}

// CanProceed 祝福语是否已经完全显示
func (s *CelebrationScene) CanProceed() bool {
	return s.canProceed
}

// Leaving 是否已经开始淡出
func (s *CelebrationScene) Leaving() bool {
	return s.leaving
}

// FloatingHearts 漂浮爱心数量
func (s *CelebrationScene) FloatingHearts() int {
	return len(s.hearts)
}
