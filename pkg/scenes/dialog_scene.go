package scenes

import (
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

// DialogScene NPC 对话覆盖层
//
// 由 ExploreScene 通过 Launch 启动（父场景暂停），关闭后 SceneManager 恢复父场景。
// 点击遮罩、点击按钮、按 ESC/回车都会关闭，关闭只执行一次。
type DialogScene struct {
	*baseScene

	overlay   ecs.EntityID
	container ecs.EntityID
	button    ecs.EntityID

	speaker string
	message string
	closing bool
}

// NewDialogScene 创建对话场景
func NewDialogScene(ctx *Context) *DialogScene {
	return &DialogScene{baseScene: newBaseScene(ctx, "DialogScene")}
}

// OnEnter 实现 game.Enterable，data 为 DialogData
func (s *DialogScene) OnEnter(data any) {
	if d, ok := data.(DialogData); ok {
		s.speaker, s.message = d.Speaker, d.Message
	} else {
		log.Printf("[DialogScene] Warning: unexpected data %T, showing empty dialog", data)
	}

	cfg := s.card().Dialog
	palette := s.card().Palette

	s.overlay = s.background(color.RGBA{A: alphaByte(cfg.OverlayAlpha)})
	entities.Display(s.em, s.overlay).Depth = config.DepthOverlay
	ecs.AddComponent(s.em, s.overlay, &components.ClickableComponent{
		IsEnabled: true,
		OnClick:   s.close,
	})

	boxW := min(cfg.MaxWidth, s.width-40)
	boxH := min(cfg.MaxHeight, s.height-100)

	s.container = s.em.CreateEntity()
	ecs.AddComponent(s.em, s.container, &components.PositionComponent{X: s.width / 2, Y: s.height / 2})
	display := components.NewDisplay(config.DepthOverlay + 1)
	display.Alpha = 0
	display.SetScale(0.8)
	ecs.AddComponent(s.em, s.container, display)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	bg := entities.NewRect(s.em, 0, 0, boxW, boxH, white, 0)
	entities.SetStroke(s.em, bg, 4, palette.Accent.RGBA())
	entities.AttachChild(s.em, s.container, bg, 0, 0)

	inner := entities.NewRect(s.em, 0, 0, boxW-10, boxH-10, color.RGBA{}, 0)
	entities.SetStroke(s.em, inner, 2, palette.AccentSoft.RGBA())
	entities.AttachChild(s.em, s.container, inner, 0, 0)

	if s.speaker != "" {
		name := entities.NewText(s.em, s.speaker, s.promptStyle(18, true, palette.Accent), 0, 0, 0)
		entities.AttachChild(s.em, s.container, name, 0, -boxH/2+30)
	}

	msg := entities.NewText(s.em, s.message, entities.TextStyle{
		Face:      s.face(fontBody, 20),
		Color:     color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
		Align:     components.TextAlignCenter,
		WrapWidth: boxW - 60,
	}, 0, 0, 0)
	entities.AttachChild(s.em, s.container, msg, 0, -30)

	s.button = entities.NewTextButton(s.em, cfg.CloseLabel, entities.ButtonStyle{
		Width:       180,
		Height:      50,
		Fill:        palette.Accent.RGBA(),
		StrokeWidth: 3,
		StrokeColor: white,
		Face:        s.face(fontTitle, 20),
		TextColor:   white,
	}, 0, 0, 0, s.close)
	entities.AttachChild(s.em, s.container, s.button, 0, boxH/2-50)
	if click, ok := ecs.GetComponent[*components.ClickableComponent](s.em, s.button); ok {
		click.OnOver = func() { s.hover(1.1) }
		click.OnOut = func() { s.hover(1) }
	}

	s.play(cfg.Sound)
	open, openEase := cfg.Open.Seconds(), systems.EaseByName(cfg.OpenEase)
	s.tweens.Add(s.container, &components.Tween{Property: components.TweenAlpha, To: 1, Duration: open, Ease: openEase})
	s.tweens.Add(s.container, &components.Tween{Property: components.TweenScale, To: 1, Duration: open, Ease: openEase})
}

func (s *DialogScene) hover(scale float64) {
	if s.closing {
		return
	}
	s.tweens.Add(s.button, &components.Tween{
		Property: components.TweenScale,
		To:       scale,
		Duration: s.card().Dialog.Hover.Seconds(),
		Ease:     ease.Linear,
	})
}

// Update 实现 game.Scene
func (s *DialogScene) Update(dt float64) {
	s.updatePointer(dt)
	if s.ctx.Input.IsKeyJustPressed(ebiten.KeyEscape) || s.ctx.Input.IsKeyJustPressed(ebiten.KeyEnter) {
		s.close()
	}
	s.updateSystems(dt)
}

// close 收起对话框，动画结束后停止本场景（父场景随之恢复）
func (s *DialogScene) close() {
	if s.closing {
		return
	}
	s.closing = true
	d := s.card().Dialog.Close.Seconds()
	s.tweens.KillAll(s.button)
	s.tweens.Add(s.container, &components.Tween{Property: components.TweenScale, To: 0.8, Duration: d, Ease: ease.Linear})
	s.tweens.Add(s.container, &components.Tween{
		Property: components.TweenAlpha,
		To:       0,
		Duration: d,
		Ease:     ease.Linear,
		OnComplete: func() {
			s.ctx.Scenes.Stop(KeyDialog)
		},
	})
}

// Closing 是否已经开始关闭
func (s *DialogScene) Closing() bool {
	return s.closing
}

// Message 当前显示的台词
func (s *DialogScene) Message() string {
	return s.message
}

func alphaByte(a float64) uint8 {
	return uint8(min(max(a, 0), 1)*255 + 0.5)
}
