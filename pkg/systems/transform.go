package systems

import (
	"strings"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// maxParentDepth 防止错误的父子关系形成环
const maxParentDepth = 8

// worldTransform 实体沿父链合成后的显示属性
type worldTransform struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Alpha          float64
	Rotation       float64
	Depth          int
	ScrollFactor   float64
	Visible        bool
}

// resolveTransform 计算实体的世界显示属性
// 子实体的位置是相对父实体的偏移，父实体的缩放、透明度、可见性会传递下来；
// 层级和滚动系数取自最外层的父实体
func resolveTransform(em *ecs.EntityManager, id ecs.EntityID) (worldTransform, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return worldTransform{}, false
	}
	d, ok := ecs.GetComponent[*components.DisplayComponent](em, id)
	if !ok {
		return worldTransform{}, false
	}

	wt := worldTransform{
		X: pos.X, Y: pos.Y,
		ScaleX: d.ScaleX, ScaleY: d.ScaleY,
		Alpha:        d.Alpha,
		Rotation:     d.Rotation,
		Depth:        d.Depth,
		ScrollFactor: d.ScrollFactor,
		Visible:      d.Visible,
	}

	current := id
	for i := 0; i < maxParentDepth; i++ {
		child, ok := ecs.GetComponent[*components.ChildOfComponent](em, current)
		if !ok {
			break
		}
		ppos, ok1 := ecs.GetComponent[*components.PositionComponent](em, child.Parent)
		pd, ok2 := ecs.GetComponent[*components.DisplayComponent](em, child.Parent)
		if !ok1 || !ok2 {
			break
		}
		wt.X = ppos.X + wt.X*pd.ScaleX
		wt.Y = ppos.Y + wt.Y*pd.ScaleY
		wt.ScaleX *= pd.ScaleX
		wt.ScaleY *= pd.ScaleY
		wt.Alpha *= pd.Alpha
		wt.Visible = wt.Visible && pd.Visible
		wt.Depth = pd.Depth
		wt.ScrollFactor = pd.ScrollFactor
		current = child.Parent
	}
	return wt, true
}

// localSize 返回实体未缩放的显示尺寸
func localSize(em *ecs.EntityManager, id ecs.EntityID) (float64, float64) {
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
		return sprite.Size()
	}
	if rect, ok := ecs.GetComponent[*components.RectComponent](em, id); ok {
		return rect.Width, rect.Height
	}
	if txt, ok := ecs.GetComponent[*components.TextComponent](em, id); ok {
		w, h := MeasureText(txt)
		return w + txt.PaddingX*2, h + txt.PaddingY*2
	}
	return 0, 0
}

// ScreenBounds 返回实体在屏幕上的包围盒（不考虑旋转）
func ScreenBounds(em *ecs.EntityManager, id ecs.EntityID, scroll ScrollProvider) (Rect, bool) {
	wt, ok := resolveTransform(em, id)
	if !ok {
		return Rect{}, false
	}
	w, h := localSize(em, id)
	d, _ := ecs.GetComponent[*components.DisplayComponent](em, id)

	sw, sh := w*wt.ScaleX, h*wt.ScaleY
	x := wt.X - d.OriginX*sw
	y := wt.Y - d.OriginY*sh
	if scroll != nil {
		sx, sy := scroll.Scroll()
		x -= sx * wt.ScrollFactor
		y -= sy * wt.ScrollFactor
	}
	return Rect{X: x, Y: y, Width: sw, Height: sh}, true
}

// lineSpacing 文本行距（像素）
func lineSpacing(txt *components.TextComponent) float64 {
	if txt.Face == nil {
		return 0
	}
	mult := txt.LineSpacing
	if mult == 0 {
		mult = 1.2
	}
	return txt.Face.Size * mult
}

// WrapText 按像素宽度把文本折行，保留原有换行符
// 单个超长单词不拆分
func WrapText(s string, face *text.GoTextFace, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(s, "\n") {
		if width <= 0 || face == nil {
			lines = append(lines, paragraph)
			continue
		}
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if text.Advance(candidate, face) > width {
				lines = append(lines, line)
				line = w
			} else {
				line = candidate
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// wrappedText 返回折行后的文本
func wrappedText(txt *components.TextComponent) string {
	if txt.WrapWidth <= 0 {
		return txt.Text
	}
	return strings.Join(WrapText(txt.Text, txt.Face, txt.WrapWidth), "\n")
}

// MeasureText 返回折行后文本块的尺寸（不含内边距）
func MeasureText(txt *components.TextComponent) (float64, float64) {
	if txt.Face == nil || txt.Text == "" {
		return 0, 0
	}
	return text.Measure(wrappedText(txt), txt.Face, lineSpacing(txt))
}
