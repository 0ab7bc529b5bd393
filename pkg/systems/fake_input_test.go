package systems

import "github.com/hajimehoshi/ebiten/v2"

// fakeInput 脚本化输入源
type fakeInput struct {
	pressed     map[ebiten.Key]bool
	justPressed map[ebiten.Key]bool

	pointerX, pointerY int
	pointerDown        bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		pressed:     make(map[ebiten.Key]bool),
		justPressed: make(map[ebiten.Key]bool),
	}
}

func (f *fakeInput) IsKeyPressed(key ebiten.Key) bool     { return f.pressed[key] }
func (f *fakeInput) IsKeyJustPressed(key ebiten.Key) bool { return f.justPressed[key] }

func (f *fakeInput) PointerJustPressed() (int, int, bool) {
	return f.pointerX, f.pointerY, f.pointerDown
}

func (f *fakeInput) PointerPosition() (int, int) {
	return f.pointerX, f.pointerY
}

// click 模拟一帧内的指针按下
func (f *fakeInput) click(x, y int) {
	f.pointerX, f.pointerY = x, y
	f.pointerDown = true
}

// endFrame 清除本帧的“刚按下”状态
func (f *fakeInput) endFrame() {
	f.pointerDown = false
	clear(f.justPressed)
}
