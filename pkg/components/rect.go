package components

import "image/color"

// RectComponent 纯色矩形（背景、遮罩、对话框、按钮）
type RectComponent struct {
	Width  float64
	Height float64

	Fill color.RGBA // Fill.A 为 0 表示不填充

	StrokeWidth float64
	StrokeColor color.RGBA
}
