package components

import (
	"image/color"

	"github.com/decker502/birthday/pkg/ecs"
)

// CameraComponent 场景摄像机
//
// ScrollX/ScrollY 是视口左上角的世界坐标。
// 跟随目标时每帧按 Lerp 系数向目标靠近，并被限制在 Bounds 内。
type CameraComponent struct {
	ScrollX float64
	ScrollY float64

	ViewWidth  float64
	ViewHeight float64

	FollowTarget ecs.EntityID // 0 表示不跟随
	LerpX        float64
	LerpY        float64

	BoundsEnabled bool
	BoundsX       float64
	BoundsY       float64
	BoundsWidth   float64
	BoundsHeight  float64

	// 全屏淡入淡出遮罩，FadeAlpha 为 0 时不绘制
	FadeColor color.RGBA
	FadeAlpha float64
	Fading    bool
}
