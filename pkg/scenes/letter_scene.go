package scenes

import (
	"strings"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
	"github.com/decker502/birthday/pkg/systems"
)

const imageLetter = "IMAGE_LETTER"

// LetterScene 信纸从屏幕上方滑入，到位后提示点击进入探索场景
type LetterScene struct {
	*baseScene

	letter     ecs.EntityID
	title      ecs.EntityID
	prompt     ecs.EntityID
	canProceed bool
	proceeded  bool
}

// NewLetterScene 创建信纸场景
func NewLetterScene(ctx *Context) *LetterScene {
	return &LetterScene{baseScene: newBaseScene(ctx, "LetterScene")}
}

// OnEnter 实现 game.Enterable
func (s *LetterScene) OnEnter(any) {
	card := s.card()
	cfg := card.Letter
	s.background(card.Palette.Paper.RGBA())

	img := s.image(imageLetter)
	s.letter = entities.NewSprite(s.em, img, s.width/2, cfg.StartY, 1)
	if img != nil {
		b := img.Bounds()
		imgW, imgH := float64(b.Dx()), float64(b.Dy())
		entities.Display(s.em, s.letter).SetScale(
			config.FitScale(s.width*cfg.FitRatio, s.height*cfg.FitRatio, imgW, imgH))
		s.writeLetter(imgW, imgH)
	}

	s.play(cfg.Sound)
	s.tweens.Add(s.letter, &components.Tween{
		Property:   components.TweenY,
		To:         s.height / 2,
		Duration:   cfg.Slide.Seconds(),
		Ease:       systems.EaseByName(cfg.SlideEase),
		OnComplete: s.showPrompt,
	})

	if pm := s.progress(); pm != nil {
		pm.SetLastScene(KeyLetter)
	}
}

// writeLetter 在信纸上写标题和正文，文字作为信纸的子实体随信纸移动和缩放
func (s *LetterScene) writeLetter(imgW, imgH float64) {
	cfg := s.card().Letter
	ink := s.card().Palette.Ink.RGBA()

	if cfg.Title != "" {
		s.title = entities.NewText(s.em, s.personalize(cfg.Title), entities.TextStyle{
			Face:  s.face(fontTitle, 40),
			Color: ink,
			Align: components.TextAlignCenter,
		}, 0, 0, 1)
		entities.AttachChild(s.em, s.letter, s.title, 0, -imgH/2+110)
	}
	if len(cfg.Body) > 0 {
		body := entities.NewText(s.em, s.personalize(strings.Join(cfg.Body, "\n\n")), entities.TextStyle{
			Face:      s.face(fontLetter, 28),
			Color:     ink,
			Align:     components.TextAlignCenter,
			WrapWidth: imgW - 140,
		}, 0, 0, 1)
		entities.AttachChild(s.em, s.letter, body, 0, 20)
	}
}

// showPrompt 信纸到位后显示提示并允许继续
func (s *LetterScene) showPrompt() {
	cfg := s.card().Letter
	white := config.MustHexColor("#FFFFFF").RGBA()

	style := s.promptStyle(20, true, s.card().Palette.Ink)
	style.Background = &white
	style.PaddingX, style.PaddingY = 20, 10
	s.prompt = entities.NewText(s.em, cfg.Prompt, style, s.width/2, s.height-cfg.PromptOffsetY, 2)
	s.blink(s.prompt, cfg.Blink)
	s.canProceed = true
}

// Update 实现 game.Scene
func (s *LetterScene) Update(dt float64) {
	if s.updatePointer(dt) && s.canProceed && !s.proceeded {
		s.proceeded = true
		s.ctx.Scenes.Start(KeyExplore, nil)
	}
	s.updateSystems(dt)
}

// CanProceed 信纸是否已经到位
func (s *LetterScene) CanProceed() bool {
	return s.canProceed
}

// LetterY 信纸当前的 Y 坐标
func (s *LetterScene) LetterY() float64 {
	return entities.Position(s.em, s.letter).Y
}
