package scenes

import (
	"image/color"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/decker502/birthday/pkg/entities"
	"github.com/decker502/birthday/pkg/game"
	"github.com/decker502/birthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

// Context 所有场景共享的依赖
type Context struct {
	State  *game.GameState
	Scenes *game.SceneManager
	Input  systems.InputSource

	// Rand 为 nil 时各场景使用随机种子（测试中传入固定种子）
	Rand *rand.Rand
}

// Register 把所有贺卡场景注册到 SceneManager
func Register(ctx *Context) {
	ctx.Scenes.Register(KeyLoading, func() game.Scene { return NewLoadingScene(ctx) })
	ctx.Scenes.Register(KeyEnvelope, func() game.Scene { return NewEnvelopeScene(ctx) })
	ctx.Scenes.Register(KeyLetter, func() game.Scene { return NewLetterScene(ctx) })
	ctx.Scenes.Register(KeyExplore, func() game.Scene { return NewExploreScene(ctx) })
	ctx.Scenes.Register(KeyDialog, func() game.Scene { return NewDialogScene(ctx) })
	ctx.Scenes.Register(KeyCelebration, func() game.Scene { return NewCelebrationScene(ctx) })
}

// baseScene 场景公共部分：实体管理器、通用系统和资源辅助函数
//
// 每个场景实例持有独立的 EntityManager，场景停止后整体丢弃，
// 所以计时器、补间和粒子不会泄漏到下一个场景。
type baseScene struct {
	ctx *Context
	key string

	em        *ecs.EntityManager
	tweens    *systems.TweenSystem
	timers    *systems.TimerSystem
	camera    *systems.CameraSystem
	pointer   *systems.InputSystem
	particles *systems.ParticleSystem
	lifetime  *systems.LifetimeSystem
	render    *systems.RenderSystem

	rng           *rand.Rand
	width, height float64

	// bg 铺满屏幕的背景实体，窗口尺寸变化时跟随调整
	bg ecs.EntityID
}

// 资源清单中的字体ID
const (
	fontBody   = "FONT_BODY"
	fontTitle  = "FONT_TITLE"
	fontLetter = "FONT_LETTER"
)

// builtinFaces 清单未声明字体时使用的内置字体
var builtinFaces = map[string]string{
	fontBody:   "regular",
	fontTitle:  "bold",
	fontLetter: "italic",
}

func newBaseScene(ctx *Context, key string) *baseScene {
	w, h := ctx.Scenes.ScreenSize()
	if w <= 0 || h <= 0 {
		w, h = config.DefaultWindowWidth, config.DefaultWindowHeight
	}

	em := ecs.NewEntityManager()
	camera := systems.NewCameraSystem(em, float64(w), float64(h))

	rng := ctx.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &baseScene{
		ctx:       ctx,
		key:       key,
		em:        em,
		tweens:    systems.NewTweenSystem(em),
		timers:    systems.NewTimerSystem(em),
		camera:    camera,
		pointer:   systems.NewInputSystem(em, ctx.Input, camera),
		particles: systems.NewParticleSystem(em, rng),
		lifetime:  systems.NewLifetimeSystem(em),
		render:    systems.NewRenderSystem(em, camera),
		rng:       rng,
		width:     float64(w),
		height:    float64(h),
	}
}

// OnResize 实现 game.Resizable
// 布局在 OnEnter 时按当时的尺寸确定，之后只更新摄像机视口和背景
func (b *baseScene) OnResize(width, height int) {
	b.width, b.height = float64(width), float64(height)
	b.camera.SetViewSize(b.width, b.height)
	if rect, ok := ecs.GetComponent[*components.RectComponent](b.em, b.bg); ok {
		rect.Width, rect.Height = b.width, b.height
	}
}

// updatePointer 分发本帧的指针事件，返回本帧是否有未被实体处理的按下
func (b *baseScene) updatePointer(dt float64) bool {
	b.pointer.Update(dt)
	_, _, pressed := b.ctx.Input.PointerJustPressed()
	return pressed && !b.pointer.Consumed()
}

// updateSystems 推进通用系统并清理销毁的实体，在场景逻辑之后调用
func (b *baseScene) updateSystems(dt float64) {
	b.timers.Update(dt)
	b.tweens.Update(dt)
	b.particles.Update(dt)
	b.lifetime.Update(dt)
	b.camera.Update(dt)
	b.em.RemoveMarkedEntities()
}

// Draw 绘制场景实体和摄像机淡入淡出遮罩
func (b *baseScene) Draw(screen *ebiten.Image) {
	b.render.Draw(screen)
	b.camera.DrawFade(screen)
}

func (b *baseScene) resources() *game.ResourceManager {
	if b.ctx.State == nil {
		return nil
	}
	return b.ctx.State.GetResourceManager()
}

func (b *baseScene) card() *config.CardConfig {
	if b.ctx.State == nil || b.ctx.State.Card() == nil {
		return config.DefaultCardConfig()
	}
	return b.ctx.State.Card()
}

// image 按资源ID取贴图，失败时记录警告并返回 nil（对应实体不绘制）
func (b *baseScene) image(id string) *ebiten.Image {
	rm := b.resources()
	if rm == nil {
		log.Printf("[%s] Warning: no resource manager, %s unavailable", b.key, id)
		return nil
	}
	img, err := rm.LoadImageByID(id)
	if err != nil {
		log.Printf("[%s] Warning: %v", b.key, err)
		return nil
	}
	return img
}

// face 按字体ID取指定字号的字体，清单未声明时用内置字体，失败时返回 nil（文字不绘制）
func (b *baseScene) face(fontID string, size float64) *text.GoTextFace {
	rm := b.resources()
	if rm == nil {
		return nil
	}
	f, err := rm.FontFace(fontID, size)
	if err != nil {
		f, err = rm.Face(builtinFaces[fontID], size)
	}
	if err != nil {
		log.Printf("[%s] Warning: %v", b.key, err)
		return nil
	}
	return f
}

func (b *baseScene) audio() *game.AudioManager {
	if b.ctx.State == nil {
		return nil
	}
	return b.ctx.State.GetAudioManager()
}

// play 播放音效
func (b *baseScene) play(cue config.SoundCue) {
	if am := b.audio(); am != nil && cue.ID != "" {
		am.PlaySound(cue.ID, cue.Volume)
	}
}

// background 铺满屏幕的纯色背景，不随摄像机滚动
func (b *baseScene) background(c color.RGBA) ecs.EntityID {
	id := entities.NewRect(b.em, 0, 0, b.width, b.height, c, config.DepthBackground)
	d := entities.Display(b.em, id)
	d.OriginX, d.OriginY = 0, 0
	d.ScrollFactor = 0
	b.bg = id
	return id
}

// blink 提示文字的无限呼吸闪烁
func (b *baseScene) blink(id ecs.EntityID, cfg config.BlinkConfig) {
	b.tweens.Add(id, &components.Tween{
		Property: components.TweenAlpha,
		To:       cfg.MinAlpha,
		Duration: cfg.Period.Seconds(),
		Ease:     ease.Linear,
		Yoyo:     true,
		Repeat:   -1,
	})
}

// promptStyle 提示文字样式，醒目的提示使用标题字体
func (b *baseScene) promptStyle(size float64, bold bool, c config.HexColor) entities.TextStyle {
	fontID := fontBody
	if bold {
		fontID = fontTitle
	}
	return entities.TextStyle{
		Face:  b.face(fontID, size),
		Color: c.RGBA(),
		Align: components.TextAlignCenter,
	}
}

func (b *baseScene) particleConfigs() config.ParticleConfigs {
	if b.ctx.State == nil {
		return nil
	}
	return b.ctx.State.Particles()
}

// personalize 把文案中的 {name} 替换为收件人
func (b *baseScene) personalize(s string) string {
	return strings.ReplaceAll(s, "{name}", b.card().Recipient)
}

// progress 返回进度管理器（可能为 nil）
func (b *baseScene) progress() *game.ProgressManager {
	if b.ctx.State == nil {
		return nil
	}
	return b.ctx.State.GetProgressManager()
}
