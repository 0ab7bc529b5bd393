package entities

import (
	"image"
	"image/color"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NewSprite 创建图片实体，锚点在中心
//
// 参数：
//   - em: 实体管理器
//   - img: 贴图（可以是整张精灵表，配合 SetFrame 使用）
//   - x, y: 世界坐标
//   - depth: 渲染层级
func NewSprite(em *ecs.EntityManager, img *ebiten.Image, x, y float64, depth int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewDisplay(depth))
	ecs.AddComponent(em, id, &components.SpriteComponent{Image: img})
	return id
}

// SetFrame 把精灵裁剪为精灵表中的第 frame 帧
// 精灵表按行优先排列，cellW/cellH 为单元格尺寸
func SetFrame(em *ecs.EntityManager, id ecs.EntityID, frame, cols, cellW, cellH int) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
	if !ok || cols < 1 {
		return
	}
	col, row := frame%cols, frame/cols
	r := image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
	sprite.Crop = &r
}

// TextStyle 文本样式
type TextStyle struct {
	Face      *text.GoTextFace
	Color     color.RGBA
	Align     components.TextAlign
	WrapWidth float64

	Background *color.RGBA
	PaddingX   float64
	PaddingY   float64
}

// NewText 创建文本实体，锚点在中心
func NewText(em *ecs.EntityManager, s string, style TextStyle, x, y float64, depth int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewDisplay(depth))
	ecs.AddComponent(em, id, &components.TextComponent{
		Text:       s,
		Face:       style.Face,
		Color:      style.Color,
		Align:      style.Align,
		WrapWidth:  style.WrapWidth,
		Background: style.Background,
		PaddingX:   style.PaddingX,
		PaddingY:   style.PaddingY,
	})
	return id
}

// NewRect 创建纯色矩形实体，锚点在中心
func NewRect(em *ecs.EntityManager, x, y, w, h float64, fill color.RGBA, depth int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, components.NewDisplay(depth))
	ecs.AddComponent(em, id, &components.RectComponent{Width: w, Height: h, Fill: fill})
	return id
}

// SetStroke 为矩形添加描边
func SetStroke(em *ecs.EntityManager, id ecs.EntityID, width float64, c color.RGBA) {
	if rect, ok := ecs.GetComponent[*components.RectComponent](em, id); ok {
		rect.StrokeWidth = width
		rect.StrokeColor = c
	}
}

// AttachChild 把 child 挂到 parent 下，child 的位置改为相对 parent 的偏移
func AttachChild(em *ecs.EntityManager, parent, child ecs.EntityID, offsetX, offsetY float64) {
	ecs.AddComponent(em, child, &components.ChildOfComponent{Parent: parent})
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, child); ok {
		pos.X, pos.Y = offsetX, offsetY
	}
}

// Display 返回实体的显示属性
func Display(em *ecs.EntityManager, id ecs.EntityID) *components.DisplayComponent {
	d, _ := ecs.GetComponent[*components.DisplayComponent](em, id)
	return d
}

// Position 返回实体的位置
func Position(em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	p, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	return p
}

// DestroyWithChildren 销毁实体及所有直接挂在它下面的子实体
func DestroyWithChildren(em *ecs.EntityManager, parent ecs.EntityID) {
	for _, id := range ecs.GetEntitiesWith1[*components.ChildOfComponent](em) {
		child, _ := ecs.GetComponent[*components.ChildOfComponent](em, id)
		if child.Parent == parent {
			em.DestroyEntity(id)
		}
	}
	em.DestroyEntity(parent)
}
