package components

import "github.com/decker502/birthday/pkg/ecs"

// DisplayComponent 所有可见对象共享的显示属性
//
// 与 SpriteComponent / TextComponent / RectComponent 搭配使用，
// Tween 动画作用的也是这里的字段。
type DisplayComponent struct {
	ScaleX   float64
	ScaleY   float64
	Alpha    float64 // 0 ~ 1
	Rotation float64 // 角度（度），顺时针

	// OriginX/OriginY 锚点在对象尺寸中的比例，0.5 表示中心
	OriginX float64
	OriginY float64

	Depth   int  // 渲染层级，越大越靠前
	Visible bool // 是否绘制

	// ScrollFactor 摄像机滚动对本对象的影响，0 表示固定在屏幕上（HUD）
	ScrollFactor float64
}

// NewDisplay 返回默认显示属性：不缩放、不透明、中心锚点、随摄像机滚动
func NewDisplay(depth int) *DisplayComponent {
	return &DisplayComponent{
		ScaleX:       1,
		ScaleY:       1,
		Alpha:        1,
		OriginX:      0.5,
		OriginY:      0.5,
		Depth:        depth,
		Visible:      true,
		ScrollFactor: 1,
	}
}

// SetScale 同时设置两个方向的缩放
func (d *DisplayComponent) SetScale(s float64) {
	d.ScaleX = s
	d.ScaleY = s
}

// ChildOfComponent 把实体挂到容器实体下
// 子实体的 Position 为相对父实体的偏移，父实体的缩放和透明度会传递给子实体
type ChildOfComponent struct {
	Parent ecs.EntityID
}
