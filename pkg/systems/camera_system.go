package systems

import (
	"image/color"
	"log"
	"time"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollProvider 提供摄像机滚动量，渲染和指针命中检测共用
type ScrollProvider interface {
	Scroll() (x, y float64)
}

// CameraSystem 管理场景摄像机
//
// 功能:
//   - 跟随目标（按 lerp 系数平滑靠近）
//   - 限制在世界边界内；边界小于视口时居中
//   - 全屏颜色淡入淡出，结束后回调
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID

	fade       *gween.Tween
	onFadeDone func()
}

// NewCameraSystem 创建摄像机系统，同时创建摄像机实体
func NewCameraSystem(em *ecs.EntityManager, viewWidth, viewHeight float64) *CameraSystem {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.CameraComponent{
		ViewWidth:  viewWidth,
		ViewHeight: viewHeight,
		LerpX:      1,
		LerpY:      1,
	})
	return &CameraSystem{entityManager: em, cameraEntity: id}
}

// Camera 返回摄像机组件
func (cs *CameraSystem) Camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// Scroll 实现 ScrollProvider
func (cs *CameraSystem) Scroll() (float64, float64) {
	cam := cs.Camera()
	if cam == nil {
		return 0, 0
	}
	return cam.ScrollX, cam.ScrollY
}

// SetViewSize 窗口尺寸变化时更新视口
func (cs *CameraSystem) SetViewSize(w, h float64) {
	if cam := cs.Camera(); cam != nil {
		cam.ViewWidth, cam.ViewHeight = w, h
		cs.clamp(cam)
	}
}

// StartFollow 开始跟随目标实体，lerp 为每帧靠近的比例（1 为立即对齐）
func (cs *CameraSystem) StartFollow(target ecs.EntityID, lerpX, lerpY float64) {
	cam := cs.Camera()
	cam.FollowTarget = target
	cam.LerpX, cam.LerpY = lerpX, lerpY
}

// SetBounds 设置摄像机边界
func (cs *CameraSystem) SetBounds(x, y, w, h float64) {
	cam := cs.Camera()
	cam.BoundsEnabled = true
	cam.BoundsX, cam.BoundsY = x, y
	cam.BoundsWidth, cam.BoundsHeight = w, h
	cs.clamp(cam)
}

// CenterOn 立即把视口中心移到 (x, y)
func (cs *CameraSystem) CenterOn(x, y float64) {
	cam := cs.Camera()
	cam.ScrollX = x - cam.ViewWidth/2
	cam.ScrollY = y - cam.ViewHeight/2
	cs.clamp(cam)
}

// FadeIn 从纯色淡入到场景
func (cs *CameraSystem) FadeIn(d time.Duration, c color.RGBA, onComplete func()) {
	cs.startFade(1, 0, d, c, onComplete)
}

// FadeOut 从场景淡出到纯色
func (cs *CameraSystem) FadeOut(d time.Duration, c color.RGBA, onComplete func()) {
	cs.startFade(0, 1, d, c, onComplete)
}

func (cs *CameraSystem) startFade(from, to float64, d time.Duration, c color.RGBA, onComplete func()) {
	cam := cs.Camera()
	cam.FadeColor = c
	cam.FadeAlpha = from
	cam.Fading = true
	cs.fade = gween.New(float32(from), float32(to), float32(d.Seconds()), ease.Linear)
	cs.onFadeDone = onComplete
	log.Printf("[CameraSystem] Fade %.0f -> %.0f over %v", from, to, d)
}

// Update 推进跟随和淡入淡出
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.Camera()
	if cam == nil {
		return
	}

	if cam.FollowTarget != 0 {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cam.FollowTarget); ok {
			targetX := pos.X - cam.ViewWidth/2
			targetY := pos.Y - cam.ViewHeight/2
			cam.ScrollX += (targetX - cam.ScrollX) * cam.LerpX
			cam.ScrollY += (targetY - cam.ScrollY) * cam.LerpY
		}
	}
	cs.clamp(cam)

	if cs.fade != nil {
		v, done := cs.fade.Update(float32(dt))
		cam.FadeAlpha = float64(v)
		if done {
			cs.fade = nil
			cam.Fading = false
			cb := cs.onFadeDone
			cs.onFadeDone = nil
			if cb != nil {
				cb()
			}
		}
	}
}

// clamp 把滚动量限制在边界内，边界小于视口的方向居中
func (cs *CameraSystem) clamp(cam *components.CameraComponent) {
	if !cam.BoundsEnabled {
		return
	}
	cam.ScrollX = clampAxis(cam.ScrollX, cam.BoundsX, cam.BoundsWidth, cam.ViewWidth)
	cam.ScrollY = clampAxis(cam.ScrollY, cam.BoundsY, cam.BoundsHeight, cam.ViewHeight)
}

func clampAxis(scroll, start, size, view float64) float64 {
	if size <= view {
		return start + (size-view)/2
	}
	if scroll < start {
		return start
	}
	if limit := start + size - view; scroll > limit {
		return limit
	}
	return scroll
}

// DrawFade 绘制淡入淡出遮罩
func (cs *CameraSystem) DrawFade(screen *ebiten.Image) {
	cam := cs.Camera()
	if cam == nil || cam.FadeAlpha <= 0 {
		return
	}
	c := cam.FadeColor
	a := cam.FadeAlpha
	if a > 1 {
		a = 1
	}
	// 预乘 alpha
	overlay := color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), overlay, false)
}
