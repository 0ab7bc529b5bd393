package components

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenProperty Tween 可作用的显示属性
type TweenProperty int

const (
	TweenX TweenProperty = iota
	TweenY
	TweenScale // 同时作用于 ScaleX/ScaleY
	TweenScaleX
	TweenScaleY
	TweenAlpha
	TweenRotation
)

// String 返回属性名（日志用）
func (p TweenProperty) String() string {
	switch p {
	case TweenX:
		return "x"
	case TweenY:
		return "y"
	case TweenScale:
		return "scale"
	case TweenScaleX:
		return "scaleX"
	case TweenScaleY:
		return "scaleY"
	case TweenAlpha:
		return "alpha"
	case TweenRotation:
		return "rotation"
	default:
		return "unknown"
	}
}

// Tween 单个属性的补间动画
//
// 由 TweenSystem 驱动：Delay 结束后从当前值插值到 To；
// Yoyo 为 true 时到达后反向回到起点；Repeat 为 -1 表示无限循环。
type Tween struct {
	Property TweenProperty
	To       float64
	Duration float64 // 秒
	Delay    float64 // 秒
	Ease     ease.TweenFunc
	Yoyo     bool
	Repeat   int

	OnComplete func()

	// 运行时状态（由 TweenSystem 维护）
	From      float64
	Started   bool
	Reversed  bool
	Completed int // 已完成的循环次数
	Done      bool
	Engine    *gween.Tween
}

// TweenComponent 实体上正在运行的所有 Tween
type TweenComponent struct {
	Tweens []*Tween
}
