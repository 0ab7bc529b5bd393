package scenes

import (
	"log"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	loadingBarWidth  = 360
	loadingBarHeight = 18
)

// LoadingScene represents the loading screen shown when the card starts.
// It loads one resource group per frame so the progress bar can advance,
// then starts the requested scene.
type LoadingScene struct {
	*baseScene

	groups   []string
	loaded   int
	progress float64 // 0.0 - 1.0
	next     string
	done     bool

	label ecs.EntityID
}

// NewLoadingScene creates a new loading scene.
func NewLoadingScene(ctx *Context) *LoadingScene {
	return &LoadingScene{baseScene: newBaseScene(ctx, "LoadingScene")}
}

// OnEnter 实现 game.Enterable，data 为 LoadingData
func (s *LoadingScene) OnEnter(data any) {
	s.next = KeyEnvelope
	if d, ok := data.(LoadingData); ok && d.Next != "" {
		s.next = d.Next
	}
	if rm := s.resources(); rm != nil {
		s.groups = rm.GroupNames()
	}

	palette := s.card().Palette
	s.background(palette.Paper.RGBA())
	s.label = entities.NewText(s.em, "Loading...", s.promptStyle(22, true, palette.Ink),
		s.width/2, s.height/2-40, 1)

	log.Printf("[LoadingScene] Loading %d resource groups, next scene %q", len(s.groups), s.next)
}

// Update 每帧加载一个资源组，全部完成后切换场景
func (s *LoadingScene) Update(dt float64) {
	if s.loaded < len(s.groups) {
		name := s.groups[s.loaded]
		if err := s.resources().LoadResourceGroup(name); err != nil {
			// 单个资源失败不阻止贺卡运行，场景中对应对象不显示
			log.Printf("[LoadingScene] Warning: %v", err)
		}
		s.loaded++
		s.progress = float64(s.loaded) / float64(len(s.groups))
	} else if !s.done {
		s.done = true
		s.progress = 1
		if txt, ok := ecs.GetComponent[*components.TextComponent](s.em, s.label); ok {
			txt.Text = "Ready"
		}
		s.ctx.Scenes.Start(s.next, nil)
	}
	s.updateSystems(dt)
}

// Draw 绘制背景、文字和进度条
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	s.baseScene.Draw(screen)

	palette := s.card().Palette
	x := float32(s.width/2 - loadingBarWidth/2)
	y := float32(s.height / 2)
	vector.DrawFilledRect(screen, x, y, float32(loadingBarWidth*s.progress), loadingBarHeight, palette.Accent.RGBA(), false)
	vector.StrokeRect(screen, x, y, loadingBarWidth, loadingBarHeight, 2, palette.Ink.RGBA(), false)
}

// Progress 加载进度
func (s *LoadingScene) Progress() float64 {
	return s.progress
}
