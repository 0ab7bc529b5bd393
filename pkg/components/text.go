package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// TextAlign 多行文本的对齐方式
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
)

// TextComponent 文本显示对象
type TextComponent struct {
	Text  string
	Face  *text.GoTextFace
	Color color.RGBA
	Align TextAlign

	// WrapWidth 大于 0 时按宽度自动换行
	WrapWidth float64

	// Background 非 nil 时在文字后绘制带内边距的底色块
	Background *color.RGBA
	PaddingX   float64
	PaddingY   float64

	LineSpacing float64 // 行距倍数，0 表示 1.2
}
