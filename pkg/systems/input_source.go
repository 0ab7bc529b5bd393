package systems

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSource 抽象键盘与指针输入
// 运行时使用 EbitenInput，测试中替换为脚本化的假输入
type InputSource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	// PointerJustPressed 本帧是否有鼠标左键按下或新的触摸
	PointerJustPressed() (x, y int, ok bool)
	// PointerPosition 当前指针位置（鼠标或第一个触点）
	PointerPosition() (x, y int)
}

// EbitenInput 基于 Ebitengine 的输入源
type EbitenInput struct {
	touchIDs []ebiten.TouchID
}

// NewEbitenInput 创建输入源
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// IsKeyPressed 实现 InputSource
func (in *EbitenInput) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// IsKeyJustPressed 实现 InputSource
func (in *EbitenInput) IsKeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// PointerJustPressed 实现 InputSource，鼠标优先，其次是新触点
func (in *EbitenInput) PointerJustPressed() (int, int, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(in.touchIDs[0])
		return x, y, true
	}
	return 0, 0, false
}

// PointerPosition 实现 InputSource
func (in *EbitenInput) PointerPosition() (int, int) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		return ebiten.TouchPosition(in.touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// 方向键映射：WASD 与方向键等价
var (
	keysLeft  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	keysRight = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	keysUp    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	keysDown  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

func anyPressed(in InputSource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if in.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// AnyJustPressed 任意一个键本帧刚按下
func AnyJustPressed(in InputSource, keys ...ebiten.Key) bool {
	for _, k := range keys {
		if in.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// MovementAxis 读取方向输入，返回 -1/0/1
// 同时按下相反方向时：左优先于右，上优先于下
func MovementAxis(in InputSource) (dx, dy float64) {
	if anyPressed(in, keysLeft) {
		dx = -1
	} else if anyPressed(in, keysRight) {
		dx = 1
	}
	if anyPressed(in, keysUp) {
		dy = -1
	} else if anyPressed(in, keysDown) {
		dy = 1
	}
	return dx, dy
}
