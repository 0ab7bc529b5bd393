package entities

import (
	"image/color"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ButtonStyle 纯色按钮样式
type ButtonStyle struct {
	Width, Height float64
	Fill          color.RGBA
	StrokeWidth   float64
	StrokeColor   color.RGBA

	Face      *text.GoTextFace
	TextColor color.RGBA
}

// NewTextButton 创建带文字的矩形按钮
//
// 参数：
//   - em: 实体管理器
//   - label: 按钮文字
//   - style: 按钮样式
//   - x, y: 按钮中心位置
//   - depth: 渲染层级
//   - onClick: 点击回调函数
//
// 返回：
//   - 按钮实体ID（文字作为子实体挂在按钮下，随按钮一起缩放）
func NewTextButton(
	em *ecs.EntityManager,
	label string,
	style ButtonStyle,
	x, y float64,
	depth int,
	onClick func(),
) ecs.EntityID {
	button := NewRect(em, x, y, style.Width, style.Height, style.Fill, depth)
	if style.StrokeWidth > 0 {
		SetStroke(em, button, style.StrokeWidth, style.StrokeColor)
	}
	ecs.AddComponent(em, button, &components.ClickableComponent{
		IsEnabled: true,
		Swallow:   true,
		OnClick:   onClick,
	})

	caption := NewText(em, label, TextStyle{
		Face:  style.Face,
		Color: style.TextColor,
		Align: components.TextAlignCenter,
	}, 0, 0, depth)
	AttachChild(em, button, caption, 0, 0)
	return button
}
