package components

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 图片显示对象
type SpriteComponent struct {
	Image *ebiten.Image

	// Crop 非空时只绘制图片中的该区域（用于精灵表单帧）
	Crop *image.Rectangle

	// Additive 使用加色混合（粒子光效）
	Additive bool

	// FlipX 水平翻转
	FlipX bool
}

// Size 返回当前绘制区域的原始尺寸
func (s *SpriteComponent) Size() (float64, float64) {
	if s.Image == nil {
		return 0, 0
	}
	if s.Crop != nil {
		return float64(s.Crop.Dx()), float64(s.Crop.Dy())
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}
