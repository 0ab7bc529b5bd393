package components

// ClickableComponent 标记实体可以被指针点击/悬停
//
// 点击区域是实体显示尺寸的包围盒（考虑缩放和锚点），
// 事件回调由 InputSystem 在帧循环内调用。
type ClickableComponent struct {
	IsEnabled bool
	IsHovered bool

	// Swallow 为 true 时命中后不再向更低层级的实体传递
	Swallow bool

	OnClick func()
	OnOver  func()
	OnOut   func()
}
