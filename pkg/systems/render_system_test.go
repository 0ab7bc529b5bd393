package systems

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func testFace(t *testing.T, size float64) *text.GoTextFace {
	t.Helper()
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("Failed to load font: %v", err)
	}
	return &text.GoTextFace{Source: src, Size: size}
}

func addSprite(em *ecs.EntityManager, img *ebiten.Image, depth int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 100, Y: 100})
	ecs.AddComponent(em, id, components.NewDisplay(depth))
	ecs.AddComponent(em, id, &components.SpriteComponent{Image: img})
	return id
}

// TestRenderSystem_DrawOrder 测试按层级和创建顺序排序
func TestRenderSystem_DrawOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, nil)
	img := ebiten.NewImage(10, 10)

	hud := addSprite(em, img, 100)
	player := addSprite(em, img, 10)
	mapID := addSprite(em, img, 0)
	heart := addSprite(em, img, 1)

	got := rs.DrawOrder()
	want := []ecs.EntityID{mapID, heart, player, hud}
	if len(got) != len(want) {
		t.Fatalf("Expected %d drawables, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("DrawOrder[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

// TestRenderSystem_SkipsHidden 测试隐藏、透明和已销毁的实体不参与绘制
func TestRenderSystem_SkipsHidden(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, nil)
	img := ebiten.NewImage(10, 10)

	visible := addSprite(em, img, 0)
	hidden := addSprite(em, img, 0)
	d, _ := ecs.GetComponent[*components.DisplayComponent](em, hidden)
	d.Visible = false
	transparent := addSprite(em, img, 0)
	d, _ = ecs.GetComponent[*components.DisplayComponent](em, transparent)
	d.Alpha = 0
	destroyed := addSprite(em, img, 0)
	em.DestroyEntity(destroyed)

	got := rs.DrawOrder()
	if len(got) != 1 || got[0] != visible {
		t.Errorf("Expected only %d to be drawn, got %v", visible, got)
	}
}

// TestRenderSystem_ChildUsesParentDepth 测试容器子实体使用父实体层级
func TestRenderSystem_ChildUsesParentDepth(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, nil)
	img := ebiten.NewImage(10, 10)

	box := em.CreateEntity()
	ecs.AddComponent(em, box, &components.PositionComponent{X: 400, Y: 300})
	ecs.AddComponent(em, box, components.NewDisplay(200))

	label := addSprite(em, img, 0)
	ecs.AddComponent(em, label, &components.ChildOfComponent{Parent: box})
	world := addSprite(em, img, 10)

	got := rs.DrawOrder()
	if len(got) != 2 || got[0] != world || got[1] != label {
		t.Errorf("Expected [world, label], got %v", got)
	}

	// 父实体隐藏时子实体也隐藏
	pd, _ := ecs.GetComponent[*components.DisplayComponent](em, box)
	pd.Visible = false
	if got := rs.DrawOrder(); len(got) != 1 {
		t.Errorf("Expected child hidden with parent, got %v", got)
	}
}

// TestRenderSystem_DrawDoesNotPanic 测试各类显示对象的绘制
func TestRenderSystem_DrawDoesNotPanic(t *testing.T) {
	em := ecs.NewEntityManager()
	rs := NewRenderSystem(em, fixedScroll{x: 50, y: 20})

	sheet := ebiten.NewImage(30, 30)
	id := addSprite(em, sheet, 0)
	sprite, _ := ecs.GetComponent[*components.SpriteComponent](em, id)
	crop := image.Rect(10, 0, 20, 10)
	sprite.Crop = &crop
	sprite.Additive = true
	sprite.FlipX = true

	rect := em.CreateEntity()
	ecs.AddComponent(em, rect, &components.PositionComponent{X: 400, Y: 300})
	ecs.AddComponent(em, rect, components.NewDisplay(1))
	ecs.AddComponent(em, rect, &components.RectComponent{
		Width: 200, Height: 100,
		Fill:        color.RGBA{255, 255, 255, 255},
		StrokeWidth: 4,
		StrokeColor: color.RGBA{0xFF, 0x6B, 0x9D, 0xFF},
	})

	bg := color.RGBA{255, 255, 255, 255}
	label := em.CreateEntity()
	ecs.AddComponent(em, label, &components.PositionComponent{X: 400, Y: 500})
	ecs.AddComponent(em, label, components.NewDisplay(2))
	ecs.AddComponent(em, label, &components.TextComponent{
		Text:       "Tap untuk melanjutkan ke permainan",
		Face:       testFace(t, 20),
		Color:      color.RGBA{0, 0, 0, 255},
		Align:      components.TextAlignCenter,
		WrapWidth:  150,
		Background: &bg,
		PaddingX:   10,
		PaddingY:   5,
	})

	screen := ebiten.NewImage(800, 600)
	rs.Draw(screen)
}

// TestWrapText 测试按宽度折行
func TestWrapText(t *testing.T) {
	face := testFace(t, 20)

	lines := WrapText("satu dua tiga empat lima enam", face, 80)
	if len(lines) < 2 {
		t.Errorf("Expected text to wrap into several lines, got %v", lines)
	}
	for _, l := range lines {
		if text.Advance(l, face) > 80 && len(bytes.Fields([]byte(l))) > 1 {
			t.Errorf("Line %q exceeds wrap width", l)
		}
	}

	// 不限宽度时只按换行符拆分
	lines = WrapText("a b\nc", face, 0)
	if len(lines) != 2 || lines[0] != "a b" || lines[1] != "c" {
		t.Errorf("Unexpected lines without width: %v", lines)
	}
}

// TestMeasureText 测试文本块尺寸随折行增加高度
func TestMeasureText(t *testing.T) {
	face := testFace(t, 20)
	txt := &components.TextComponent{Text: "satu dua tiga empat lima enam", Face: face}

	w1, h1 := MeasureText(txt)
	txt.WrapWidth = 80
	w2, h2 := MeasureText(txt)

	if w2 >= w1 {
		t.Errorf("Wrapped width %f should be smaller than %f", w2, w1)
	}
	if h2 <= h1 {
		t.Errorf("Wrapped height %f should be larger than %f", h2, h1)
	}
}
