package scenes

import (
	"log"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
)

const imageEnvelope = "IMAGE_ENVELOPE"

// EnvelopeScene 信封开启场景
//
// 流程：点击 -> 隐藏提示、播放开信音效 -> 逐帧播放信封精灵表 -> 停留 -> LetterScene
type EnvelopeScene struct {
	*baseScene

	envelope ecs.EntityID
	prompt   ecs.EntityID

	cols, cellW, cellH int
	frame              int
	animating          bool
}

// NewEnvelopeScene 创建信封场景
func NewEnvelopeScene(ctx *Context) *EnvelopeScene {
	return &EnvelopeScene{baseScene: newBaseScene(ctx, "EnvelopeScene")}
}

// OnEnter 实现 game.Enterable
func (s *EnvelopeScene) OnEnter(any) {
	cfg := s.card().Envelope
	s.background(s.card().Palette.Paper.RGBA())

	sheet := s.image(imageEnvelope)
	s.cols, s.cellW, s.cellH = cfg.Columns, cfg.CellSize, cfg.CellSize
	if rm := s.resources(); rm != nil && sheet != nil {
		// 单元格尺寸以实际贴图为准（外部精灵表可能不是配置中的尺寸）
		cols, rows := rm.SheetGrid(imageEnvelope)
		s.cols = cols
		s.cellW = sheet.Bounds().Dx() / cols
		s.cellH = sheet.Bounds().Dy() / rows
	}

	s.envelope = entities.NewSprite(s.em, sheet, s.width/2, s.height/2, 1)
	entities.SetFrame(s.em, s.envelope, 0, s.cols, s.cellW, s.cellH)
	if s.cellW > 0 && s.cellH > 0 {
		d := entities.Display(s.em, s.envelope)
		d.ScaleX = cfg.DisplaySize / float64(s.cellW)
		d.ScaleY = cfg.DisplaySize / float64(s.cellH)
	}

	s.prompt = entities.NewText(s.em, cfg.Prompt,
		s.promptStyle(24, true, s.card().Palette.Ink),
		s.width/2, s.height-cfg.PromptOffsetY, 2)
	s.blink(s.prompt, cfg.Blink)

	if pm := s.progress(); pm != nil {
		pm.SetLastScene(KeyEnvelope)
	}
}

// Update 实现 game.Scene
func (s *EnvelopeScene) Update(dt float64) {
	if s.updatePointer(dt) && !s.animating {
		s.open()
	}
	s.updateSystems(dt)
}

// open 开始开信动画
func (s *EnvelopeScene) open() {
	cfg := s.card().Envelope
	s.animating = true
	entities.Display(s.em, s.prompt).Visible = false
	s.tweens.KillAll(s.prompt)
	s.play(cfg.Sound)
	log.Printf("[EnvelopeScene] Opening envelope (%d frames)", cfg.FrameCount)

	s.showFrame(0)
}

// showFrame 显示第 i 帧，每帧停留 FrameDuration；最后一帧之后停留 HoldAfter 再进入信纸场景
func (s *EnvelopeScene) showFrame(i int) {
	cfg := s.card().Envelope
	if i >= cfg.FrameCount {
		s.timers.DelayedCall("envelope_hold", cfg.HoldAfter, func() {
			s.ctx.Scenes.Start(KeyLetter, nil)
		})
		return
	}

	s.frame = i
	entities.SetFrame(s.em, s.envelope, i, s.cols, s.cellW, s.cellH)
	s.timers.DelayedCall("envelope_frame", cfg.FrameDuration, func() {
		s.showFrame(i + 1)
	})
}

// Frame 当前显示的帧
func (s *EnvelopeScene) Frame() int {
	return s.frame
}

// Animating 是否已经开始开信动画
func (s *EnvelopeScene) Animating() bool {
	return s.animating
}

// promptVisible 提示文字是否可见（测试用）
func (s *EnvelopeScene) promptVisible() bool {
	d, ok := ecs.GetComponent[*components.DisplayComponent](s.em, s.prompt)
	return ok && d.Visible
}
