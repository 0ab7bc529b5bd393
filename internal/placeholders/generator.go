// Package placeholders 生成贺卡使用的占位贴图
//
// 贺卡不附带美术资源，所有图片都在启动时按 data/resources.yaml
// 中的描述程序化绘制；提供同名 PNG 时由资源管理器优先加载文件。
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"math/rand/v2"
	"os"
)

// Kind 占位图类型
type Kind string

const (
	KindSolid     Kind = "solid"
	KindEnvelope  Kind = "envelope_sheet"
	KindLetter    Kind = "letter"
	KindMap       Kind = "map"
	KindCharacter Kind = "character"
	KindNPC       Kind = "npc"
	KindHeart     Kind = "heart"
	KindHug       Kind = "hug"
)

// Spec 描述一张占位图
//
// 对于 envelope_sheet，Width/Height 是单帧尺寸，
// 整张精灵表为 Columns x ceil(Frames/Columns) 个单元格。
type Spec struct {
	Kind    Kind
	Width   int
	Height  int
	Columns int
	Frames  int
	Color   color.RGBA // 主色
	Accent  color.RGBA // 点缀色
	Seed    uint64     // 随机装饰的种子（地图花朵等）
}

// Palette 默认配色（贺卡的粉色系）
var Palette = struct {
	Envelope color.RGBA
	Paper    color.RGBA
	Pink     color.RGBA
	Rose     color.RGBA
	Grass    color.RGBA
	Path     color.RGBA
	Water    color.RGBA
	Skin     color.RGBA
	Hair     color.RGBA
	Outline  color.RGBA
}{
	Envelope: color.RGBA{232, 180, 160, 255},
	Paper:    color.RGBA{255, 250, 240, 255},
	Pink:     color.RGBA{255, 107, 157, 255},
	Rose:     color.RGBA{255, 23, 68, 255},
	Grass:    color.RGBA{126, 200, 80, 255},
	Path:     color.RGBA{222, 196, 150, 255},
	Water:    color.RGBA{110, 170, 230, 255},
	Skin:     color.RGBA{250, 215, 185, 255},
	Hair:     color.RGBA{90, 60, 40, 255},
	Outline:  color.RGBA{60, 40, 40, 255},
}

// Size 返回生成结果的像素尺寸
func (s Spec) Size() (int, int) {
	if s.Kind == KindEnvelope {
		cols, rows := s.grid()
		return s.Width * cols, s.Height * rows
	}
	return s.Width, s.Height
}

func (s Spec) grid() (int, int) {
	frames := max(s.Frames, 1)
	cols := s.Columns
	if cols < 1 || cols > frames {
		cols = frames
	}
	return cols, (frames + cols - 1) / cols
}

// Generate 按描述生成图片
func Generate(s Spec) (*image.RGBA, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("placeholder %q: size must be positive, got %dx%d", s.Kind, s.Width, s.Height)
	}
	w, h := s.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	switch s.Kind {
	case KindSolid:
		fillRect(img, img.Bounds(), pick(s.Color, Palette.Paper))
	case KindEnvelope:
		drawEnvelopeSheet(img, s)
	case KindLetter:
		drawLetter(img, s)
	case KindMap:
		drawMap(img, s)
	case KindCharacter:
		drawFigure(img, img.Bounds(), pick(s.Color, Palette.Pink), Palette.Hair, false)
	case KindNPC:
		drawFigure(img, img.Bounds(), pick(s.Color, color.RGBA{120, 140, 230, 255}), pick(s.Accent, Palette.Outline), true)
	case KindHeart:
		FillHeart(img, img.Bounds(), pick(s.Color, Palette.Rose))
	case KindHug:
		drawHug(img, s)
	default:
		return nil, fmt.Errorf("unknown placeholder kind %q", s.Kind)
	}
	return img, nil
}

// pick 未指定颜色（全零）时使用默认色
func pick(c, fallback color.RGBA) color.RGBA {
	if c == (color.RGBA{}) {
		return fallback
	}
	return c
}

// drawEnvelopeSheet 信封开启动画：封舌逐帧翻开，信纸逐渐露出
func drawEnvelopeSheet(img *image.RGBA, s Spec) {
	cols, _ := s.grid()
	frames := max(s.Frames, 1)
	body := pick(s.Color, Palette.Envelope)
	seal := pick(s.Accent, Palette.Rose)

	for i := 0; i < frames; i++ {
		p := 0.0
		if frames > 1 {
			p = float64(i) / float64(frames-1)
		}
		x0 := (i % cols) * s.Width
		y0 := (i / cols) * s.Height
		drawEnvelopeFrame(img, image.Rect(x0, y0, x0+s.Width, y0+s.Height), p, body, seal)
	}
}

func drawEnvelopeFrame(img *image.RGBA, cell image.Rectangle, p float64, body, seal color.RGBA) {
	fx := func(f float64) float64 { return float64(cell.Min.X) + f*float64(cell.Dx()) }
	fy := func(f float64) float64 { return float64(cell.Min.Y) + f*float64(cell.Dy()) }
	at := func(x, y float64) image.Point { return image.Pt(int(fx(x)), int(fy(y))) }

	top, bottom := 0.35, 0.8
	apex := top + 0.25*(1-2*p) // 0: 合上（尖端朝下）, 1: 完全打开（尖端朝上）

	flap := func() {
		FillTriangle(img, fx(0.1), fy(top), fx(0.9), fy(top), fx(0.5), fy(apex), Darken(body, 0.85))
	}

	// 信封背面
	fillRect(img, image.Rectangle{Min: at(0.1, top), Max: at(0.9, bottom)}, Darken(body, 0.75))
	if p >= 0.5 {
		flap()
	}

	// 信纸从口袋中升起
	if p > 0.4 {
		rise := (p - 0.4) / 0.6 * 0.25
		fillRect(img, image.Rectangle{Min: at(0.18, top-rise+0.03), Max: at(0.82, bottom-0.05)}, Palette.Paper)
		FillHeart(img, image.Rectangle{Min: at(0.44, top-rise+0.07), Max: at(0.56, top-rise+0.17)}, seal)
	}

	// 口袋正面（左右和底部三角）
	FillTriangle(img, fx(0.1), fy(top), fx(0.1), fy(bottom), fx(0.5), fy(0.6), body)
	FillTriangle(img, fx(0.9), fy(top), fx(0.9), fy(bottom), fx(0.5), fy(0.6), body)
	FillTriangle(img, fx(0.1), fy(bottom), fx(0.9), fy(bottom), fx(0.5), fy(0.55), Lighten(body, 0.15))

	if p < 0.5 {
		flap()
		if p < 0.3 {
			// 火漆
			FillHeart(img, image.Rectangle{Min: at(0.45, apex-0.06), Max: at(0.55, apex+0.03)}, seal)
		}
	}
}

// drawLetter 信纸：边框、横线和顶部的小爱心，文字由场景叠加
func drawLetter(img *image.RGBA, s Spec) {
	paper := pick(s.Color, Palette.Paper)
	accent := pick(s.Accent, Palette.Pink)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	fillRect(img, b, paper)
	border := max(w/75, 2)
	inset := max(w/30, border*2)
	strokeRect(img, b.Inset(inset), border, accent)
	strokeRect(img, b.Inset(inset+border*2), max(border/2, 1), Lighten(accent, 0.5))

	lineColor := Lighten(accent, 0.75)
	step := max(h/20, 4)
	for y := h / 4; y < h-inset*2; y += step {
		fillRect(img, image.Rect(inset*2, y, w-inset*2, y+1), lineColor)
	}

	hs := max(w/12, 8)
	FillHeart(img, image.Rect(w/2-hs/2, inset*2, w/2+hs/2, inset*2+hs), accent)
}

// drawMap 俯视花园地图：草地棋盘格、小路、池塘和随机花朵
func drawMap(img *image.RGBA, s Spec) {
	grass := pick(s.Color, Palette.Grass)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	tile := max(min(w, h)/15, 8)

	for ty := 0; ty < h; ty += tile {
		for tx := 0; tx < w; tx += tile {
			c := grass
			if (tx/tile+ty/tile)%2 == 1 {
				c = Darken(grass, 0.93)
			}
			fillRect(img, image.Rect(tx, ty, tx+tile, ty+tile), c)
		}
	}

	// 横向蜿蜒小路 + 纵向小路
	pathHalf := float64(tile) * 0.6
	for x := 0; x < w; x++ {
		cy := float64(h)/2 + math.Sin(float64(x)/float64(w)*2*math.Pi)*float64(h)/6
		fillRect(img, image.Rect(x, int(cy-pathHalf), x+1, int(cy+pathHalf)), Palette.Path)
	}
	fillRect(img, image.Rect(w*2/3-int(pathHalf), 0, w*2/3+int(pathHalf), h), Palette.Path)

	// 池塘
	fillEllipse(img, float64(w)*0.2, float64(h)*0.8, float64(w)*0.1, float64(h)*0.08, Palette.Water)

	// 边缘的树丛
	tree := Darken(grass, 0.6)
	r := float64(tile) * 0.8
	for x := r; x < float64(w); x += r * 2 {
		FillCircle(img, x, r, r, tree)
		FillCircle(img, x, float64(h)-r, r, tree)
	}
	for y := r; y < float64(h); y += r * 2 {
		FillCircle(img, r, y, r, tree)
		FillCircle(img, float64(w)-r, y, r, tree)
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed^0x9e3779b97f4a7c15))
	flowers := []color.RGBA{Palette.Pink, {255, 230, 90, 255}, {250, 250, 250, 255}, pick(s.Accent, Palette.Rose)}
	for i := 0; i < w*h/8000; i++ {
		x := rng.Float64() * float64(w)
		y := rng.Float64() * float64(h)
		FillCircle(img, x, y, float64(tile)/10+1, flowers[rng.IntN(len(flowers))])
	}
}

// drawFigure 简笔小人：身体、头、头发、眼睛和腮红；hat 为 true 时画一顶帽子
func drawFigure(img *image.RGBA, r image.Rectangle, bodyColor, hairColor color.RGBA, hat bool) {
	w, h := float64(r.Dx()), float64(r.Dy())
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	cx := ox + w/2

	fillEllipse(img, cx, oy+h*0.72, w*0.3, h*0.25, bodyColor)
	FillCircle(img, cx, oy+h*0.36, w*0.22, Palette.Skin)
	fillEllipse(img, cx, oy+h*0.22, w*0.22, h*0.09, hairColor)

	eye := max(w*0.025, 1)
	FillCircle(img, cx-w*0.08, oy+h*0.37, eye, Palette.Outline)
	FillCircle(img, cx+w*0.08, oy+h*0.37, eye, Palette.Outline)
	blush := Lighten(Palette.Pink, 0.4)
	FillCircle(img, cx-w*0.13, oy+h*0.43, eye*1.6, blush)
	FillCircle(img, cx+w*0.13, oy+h*0.43, eye*1.6, blush)

	if hat {
		fillRect(img, image.Rect(int(cx-w*0.26), int(oy+h*0.16), int(cx+w*0.26), int(oy+h*0.19)), hairColor)
		fillRect(img, image.Rect(int(cx-w*0.15), int(oy+h*0.04), int(cx+w*0.15), int(oy+h*0.17)), hairColor)
	}
}

// drawHug 两个小人依偎在一起，头顶一颗大爱心
func drawHug(img *image.RGBA, s Spec) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fw := w * 2 / 5
	top := h / 4
	drawFigure(img, image.Rect(w/2-fw+fw/6, top, w/2+fw/6, h), pick(s.Color, Palette.Pink), Palette.Hair, false)
	drawFigure(img, image.Rect(w/2-fw/6, top, w/2+fw-fw/6, h), color.RGBA{120, 140, 230, 255}, Palette.Outline, true)

	hs := h / 4
	FillHeart(img, image.Rect(w/2-hs/2, 0, w/2+hs/2, hs), pick(s.Accent, Palette.Rose))
}

// FillHeart 在矩形内画一颗实心爱心
// 使用隐式曲线 (x²+y²-1)³ - x²y³ <= 0
func FillHeart(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	w, h := float64(r.Dx()), float64(r.Dy())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		v := -((float64(py-r.Min.Y)+0.5)/h*2-1)*1.25 + 0.12
		for px := r.Min.X; px < r.Max.X; px++ {
			u := ((float64(px-r.Min.X)+0.5)/w*2 - 1) * 1.25
			a := u*u + v*v - 1
			if a*a*a-u*u*v*v*v <= 0 {
				img.SetRGBA(px, py, c)
			}
		}
	}
}

// FillCircle 画实心圆
func FillCircle(img *image.RGBA, cx, cy, radius float64, c color.RGBA) {
	fillEllipse(img, cx, cy, radius, radius, c)
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, c color.RGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	r := image.Rect(int(cx-rx), int(cy-ry), int(cx+rx)+1, int(cy+ry)+1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dy := (float64(y) + 0.5 - cy) / ry
		for x := r.Min.X; x < r.Max.X; x++ {
			dx := (float64(x) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// FillTriangle 画实心三角形（顶点顺序任意）
func FillTriangle(img *image.RGBA, x1, y1, x2, y2, x3, y3 float64, c color.RGBA) {
	minX := int(math.Floor(min(x1, x2, x3)))
	maxX := int(math.Ceil(max(x1, x2, x3)))
	minY := int(math.Floor(min(y1, y2, y3)))
	maxY := int(math.Ceil(max(y1, y2, y3)))
	r := image.Rect(minX, minY, maxX, maxY).Intersect(img.Bounds())

	edge := func(ax, ay, bx, by, px, py float64) float64 {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}
	area := edge(x1, y1, x2, y2, x3, y3)
	if area == 0 {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := r.Min.X; x < r.Max.X; x++ {
			px := float64(x) + 0.5
			w1 := edge(x2, y2, x3, y3, px, py)
			w2 := edge(x3, y3, x1, y1, px, py)
			w3 := edge(x1, y1, x2, y2, px, py)
			if area > 0 && w1 >= 0 && w2 >= 0 && w3 >= 0 || area < 0 && w1 <= 0 && w2 <= 0 && w3 <= 0 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, &image.Uniform{c}, image.Point{}, draw.Src)
}

// strokeRect 沿矩形内侧描边
func strokeRect(img *image.RGBA, r image.Rectangle, width int, c color.RGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
