package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// RenderSystem 按层级绘制场景中的显示对象
//
// 支持的显示对象：
//   - SpriteComponent: 图片（可裁剪为精灵表单帧，可加色混合）
//   - RectComponent: 纯色矩形和描边
//   - TextComponent: 文本（自动换行、居中、底色块）
//
// 绘制顺序按 (层级, 实体ID) 升序；子实体使用最外层父实体的层级，
// 因此容器内的元素总是按创建顺序叠放在一起。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	scroll        ScrollProvider

	// pixel 1x1 白色像素，矩形和文字底色都用它缩放绘制
	pixel *ebiten.Image
}

// NewRenderSystem 创建渲染系统，scroll 可为 nil（不滚动的场景）
func NewRenderSystem(em *ecs.EntityManager, scroll ScrollProvider) *RenderSystem {
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &RenderSystem{
		entityManager: em,
		scroll:        scroll,
		pixel:         base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

type drawItem struct {
	id ecs.EntityID
	wt worldTransform
}

// DrawOrder 返回本帧需要绘制的实体，按绘制顺序排列
func (s *RenderSystem) DrawOrder() []ecs.EntityID {
	items := s.collect()
	ids := make([]ecs.EntityID, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return ids
}

func (s *RenderSystem) collect() []drawItem {
	var items []drawItem
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.DisplayComponent](s.entityManager) {
		if !s.entityManager.IsAlive(id) || !s.drawable(id) {
			continue
		}
		wt, ok := resolveTransform(s.entityManager, id)
		if !ok || !wt.Visible || wt.Alpha <= 0 {
			continue
		}
		items = append(items, drawItem{id: id, wt: wt})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].wt.Depth != items[j].wt.Depth {
			return items[i].wt.Depth < items[j].wt.Depth
		}
		return items[i].id < items[j].id
	})
	return items
}

func (s *RenderSystem) drawable(id ecs.EntityID) bool {
	return ecs.HasComponent[*components.SpriteComponent](s.entityManager, id) ||
		ecs.HasComponent[*components.RectComponent](s.entityManager, id) ||
		ecs.HasComponent[*components.TextComponent](s.entityManager, id)
}

// Draw 绘制全部显示对象
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	var scrollX, scrollY float64
	if s.scroll != nil {
		scrollX, scrollY = s.scroll.Scroll()
	}

	for _, it := range s.collect() {
		d, _ := ecs.GetComponent[*components.DisplayComponent](s.entityManager, it.id)
		w, h := localSize(s.entityManager, it.id)
		if w <= 0 || h <= 0 {
			continue
		}

		// 局部坐标系：锚点为原点，再依次缩放、旋转、平移到屏幕
		var geo ebiten.GeoM
		geo.Scale(it.wt.ScaleX, it.wt.ScaleY)
		geo.Rotate(it.wt.Rotation * math.Pi / 180)
		geo.Translate(it.wt.X-scrollX*it.wt.ScrollFactor, it.wt.Y-scrollY*it.wt.ScrollFactor)
		left, top := -d.OriginX*w, -d.OriginY*h

		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, it.id); ok {
			s.drawSprite(screen, sprite, geo, left, top, w, it.wt.Alpha)
			continue
		}
		if rect, ok := ecs.GetComponent[*components.RectComponent](s.entityManager, it.id); ok {
			s.drawRect(screen, rect, geo, left, top, it.wt.Alpha)
			continue
		}
		if txt, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, it.id); ok {
			s.drawText(screen, txt, geo, left, top, w, h, it.wt.Alpha)
		}
	}
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, sprite *components.SpriteComponent, geo ebiten.GeoM, left, top, w, alpha float64) {
	img := sprite.Image
	if sprite.Crop != nil {
		img = img.SubImage(*sprite.Crop).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	if sprite.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	op.GeoM.Translate(left, top)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	if sprite.Additive {
		op.Blend = ebiten.BlendLighter
	}
	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawRect(screen *ebiten.Image, rect *components.RectComponent, geo ebiten.GeoM, left, top, alpha float64) {
	if rect.Fill.A > 0 {
		s.fillQuad(screen, geo, left, top, rect.Width, rect.Height, rect.Fill, alpha)
	}
	if sw := rect.StrokeWidth; sw > 0 && rect.StrokeColor.A > 0 {
		// 描边画在矩形内侧
		c := rect.StrokeColor
		s.fillQuad(screen, geo, left, top, rect.Width, sw, c, alpha)
		s.fillQuad(screen, geo, left, top+rect.Height-sw, rect.Width, sw, c, alpha)
		s.fillQuad(screen, geo, left, top+sw, sw, rect.Height-2*sw, c, alpha)
		s.fillQuad(screen, geo, left+rect.Width-sw, top+sw, sw, rect.Height-2*sw, c, alpha)
	}
}

func (s *RenderSystem) drawText(screen *ebiten.Image, txt *components.TextComponent, geo ebiten.GeoM, left, top, w, h, alpha float64) {
	if txt.Face == nil {
		return
	}
	if txt.Background != nil {
		s.fillQuad(screen, geo, left, top, w, h, *txt.Background, alpha)
	}

	op := &text.DrawOptions{}
	op.LineSpacing = lineSpacing(txt)
	x := left + txt.PaddingX
	if txt.Align == components.TextAlignCenter {
		op.PrimaryAlign = text.AlignCenter
		x = left + w/2
	}
	op.GeoM.Translate(x, top+txt.PaddingY)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleWithColor(txt.Color)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, wrappedText(txt), txt.Face, op)
}

// fillQuad 在局部坐标 (x, y) 处填充 w x h 的纯色矩形
func (s *RenderSystem) fillQuad(screen *ebiten.Image, geo ebiten.GeoM, x, y, w, h float64, c color.RGBA, alpha float64) {
	if w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geo)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(s.pixel, op)
}
