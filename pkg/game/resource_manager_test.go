package game

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font/gofont/goitalic"
)

// Global audio context shared by all tests
// Ebitengine only allows one audio context to be created
var testAudioContext *audio.Context

// TestMain sets up the shared audio context before running tests
func TestMain(m *testing.M) {
	testAudioContext = audio.NewContext(48000)
	os.Exit(m.Run())
}

const testResourcesYAML = `
version: "1.0"
base_path: assets
groups:
  card:
    images:
      - id: IMAGE_HEART
        generator: {kind: heart, width: 32, height: 32}
      - id: IMAGE_ENVELOPE
        cols: 3
        generator: {kind: envelope_sheet, width: 20, height: 20, frames: 9}
      - id: IMAGE_LETTER
        path: images/letter.png
        generator: {kind: letter, width: 30, height: 40}
      - id: IMAGE_MAP
        path: images/missing.png
        generator: {kind: map, width: 64, height: 48, seed: 3}
    sounds:
      - id: SOUND_COLLECT
        tone: {waveform: triangle, notes: [880, 1320], noteLength: 50ms}
      - id: SOUND_OPEN
        path: sounds/open.wav
        tone: {notes: [440], noteLength: 10ms}
      - id: SOUND_HAPPY
        loop: true
        tone: {waveform: sine, notes: [523.25, 0, 659.25], noteLength: 20ms}
    fonts:
      - id: FONT_BODY
        size: 20
      - id: FONT_TITLE
        face: bold
        path: fonts/missing.ttf
        size: 32
`

// createTestPNG encodes a solid w x h PNG
func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 0, G: 0, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// createTestWAV builds a silent 16-bit stereo WAV at 48kHz
func createTestWAV(frames int) []byte {
	dataSize := frames * 4
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(48000))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(48000*4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))
	return buf.Bytes()
}

func newTestResourceManager(t *testing.T, files fstest.MapFS) *ResourceManager {
	t.Helper()
	rm := NewResourceManager(testAudioContext, files)
	if err := rm.LoadResourceConfig([]byte(testResourcesYAML)); err != nil {
		t.Fatalf("LoadResourceConfig failed: %v", err)
	}
	return rm
}

// TestNewResourceManager tests the creation of a new ResourceManager instance.
func TestNewResourceManager(t *testing.T) {
	rm := NewResourceManager(testAudioContext, nil)
	if rm == nil {
		t.Fatal("NewResourceManager returned nil")
	}
	if rm.imageCache == nil || rm.imagesByID == nil || rm.clipsByID == nil || rm.fontCache == nil {
		t.Error("caches not initialized")
	}
	if rm.audioContext != testAudioContext {
		t.Error("audioContext not set correctly")
	}
}

// TestLoadImage_CachingMechanism tests that images are cached properly.
func TestLoadImage_CachingMechanism(t *testing.T) {
	files := fstest.MapFS{"test.png": {Data: createTestPNG(10, 10)}}
	rm := NewResourceManager(testAudioContext, files)

	img1, err := rm.LoadImage("test.png")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Errorf("Image dimensions incorrect: got %dx%d, want 10x10", b.Dx(), b.Dy())
	}
	img2, _ := rm.LoadImage("test.png")
	if img1 != img2 {
		t.Error("Images are not cached - different instances returned")
	}
}

// TestLoadImage_Errors tests missing files, invalid data and a nil file system.
func TestLoadImage_Errors(t *testing.T) {
	files := fstest.MapFS{"invalid.png": {Data: []byte("not a valid png")}}
	rm := NewResourceManager(testAudioContext, files)

	if _, err := rm.LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
	if _, err := rm.LoadImage("invalid.png"); err == nil {
		t.Error("Expected error for invalid image format, got nil")
	}

	noFS := NewResourceManager(testAudioContext, nil)
	if _, err := noFS.LoadImage("test.png"); err == nil {
		t.Error("Expected error without asset file system")
	}
}

// TestLoadImageByID 测试生成、文件优先和回退
func TestLoadImageByID(t *testing.T) {
	files := fstest.MapFS{"assets/images/letter.png": {Data: createTestPNG(6, 8)}}
	rm := newTestResourceManager(t, files)

	heart, err := rm.LoadImageByID("IMAGE_HEART")
	if err != nil {
		t.Fatalf("LoadImageByID(IMAGE_HEART) failed: %v", err)
	}
	if heart.Bounds().Dx() != 32 {
		t.Errorf("Expected generated heart width 32, got %d", heart.Bounds().Dx())
	}
	if again, _ := rm.LoadImageByID("IMAGE_HEART"); again != heart {
		t.Error("Expected LoadImageByID to return the cached image")
	}

	// 外部文件优先
	letter, err := rm.LoadImageByID("IMAGE_LETTER")
	if err != nil {
		t.Fatalf("LoadImageByID(IMAGE_LETTER) failed: %v", err)
	}
	if letter.Bounds().Dx() != 6 || letter.Bounds().Dy() != 8 {
		t.Errorf("Expected file override 6x8, got %v", letter.Bounds())
	}

	// 文件缺失时回退到生成器
	m, err := rm.LoadImageByID("IMAGE_MAP")
	if err != nil {
		t.Fatalf("LoadImageByID(IMAGE_MAP) failed: %v", err)
	}
	if m.Bounds().Dx() != 64 || m.Bounds().Dy() != 48 {
		t.Errorf("Expected generated map 64x48, got %v", m.Bounds())
	}

	// 精灵表尺寸 = 列数 x 单元格
	sheet, err := rm.LoadImageByID("IMAGE_ENVELOPE")
	if err != nil {
		t.Fatalf("LoadImageByID(IMAGE_ENVELOPE) failed: %v", err)
	}
	if sheet.Bounds().Dx() != 60 || sheet.Bounds().Dy() != 60 {
		t.Errorf("Expected envelope sheet 60x60, got %v", sheet.Bounds())
	}

	if _, err := rm.LoadImageByID("IMAGE_UNKNOWN"); err == nil {
		t.Error("Expected error for unknown ID")
	}
}

// TestSheetGrid 测试精灵表网格推算
func TestSheetGrid(t *testing.T) {
	rm := newTestResourceManager(t, nil)

	if cols, rows := rm.SheetGrid("IMAGE_ENVELOPE"); cols != 3 || rows != 3 {
		t.Errorf("Expected 3x3 grid, got %dx%d", cols, rows)
	}
	if cols, rows := rm.SheetGrid("IMAGE_HEART"); cols != 1 || rows != 1 {
		t.Errorf("Expected 1x1 grid for a plain image, got %dx%d", cols, rows)
	}
	if cols, rows := rm.SheetGrid("IMAGE_UNKNOWN"); cols != 1 || rows != 1 {
		t.Errorf("Expected 1x1 grid for unknown ID, got %dx%d", cols, rows)
	}
}

// TestLoadSound 测试合成音效、WAV 覆盖和循环标记
func TestLoadSound(t *testing.T) {
	files := fstest.MapFS{"assets/sounds/open.wav": {Data: createTestWAV(480)}}
	rm := newTestResourceManager(t, files)

	collect, err := rm.LoadSound("SOUND_COLLECT")
	if err != nil {
		t.Fatalf("LoadSound(SOUND_COLLECT) failed: %v", err)
	}
	// 2 个音符 x 50ms x 48000Hz x 4 字节
	if want := 2 * 2400 * 4; len(collect.PCM) != want {
		t.Errorf("Expected %d PCM bytes, got %d", want, len(collect.PCM))
	}
	if collect.Loop {
		t.Error("SOUND_COLLECT should not loop")
	}

	open, err := rm.LoadSound("SOUND_OPEN")
	if err != nil {
		t.Fatalf("LoadSound(SOUND_OPEN) failed: %v", err)
	}
	if len(open.PCM) != 480*4 {
		t.Errorf("Expected WAV data (%d bytes), got %d", 480*4, len(open.PCM))
	}

	again, _ := rm.LoadSound("SOUND_COLLECT")
	if again != collect {
		t.Error("Sound clips should be cached")
	}

	happy, err := rm.LoadSound("SOUND_HAPPY")
	if err != nil {
		t.Fatalf("LoadSound(SOUND_HAPPY) failed: %v", err)
	}
	if !happy.Loop {
		t.Error("SOUND_HAPPY should loop")
	}

	if _, err := rm.LoadSound("SOUND_UNKNOWN"); err == nil {
		t.Error("Expected error for unknown sound ID")
	}
}

// TestLoadSound_FallbackToTone 测试音频文件缺失时回退到合成音
func TestLoadSound_FallbackToTone(t *testing.T) {
	rm := newTestResourceManager(t, nil)

	open, err := rm.LoadSound("SOUND_OPEN")
	if err != nil {
		t.Fatalf("LoadSound failed: %v", err)
	}
	if want := 480 * 4; len(open.PCM) != want {
		t.Errorf("Expected synthesized 10ms tone (%d bytes), got %d", want, len(open.PCM))
	}
}

// TestDecodeAudioFile_UnsupportedFormat tests audio loading with unsupported format.
func TestDecodeAudioFile_UnsupportedFormat(t *testing.T) {
	files := fstest.MapFS{"test.flac": {Data: []byte("dummy data")}}
	rm := NewResourceManager(testAudioContext, files)

	if _, err := rm.decodeAudioFile("test.flac"); err == nil {
		t.Error("Expected error for unsupported audio format, got nil")
	}
}

// TestNewSoundPlayer 测试每次创建独立的播放器
func TestNewSoundPlayer(t *testing.T) {
	rm := newTestResourceManager(t, nil)

	p1, err := rm.NewSoundPlayer("SOUND_COLLECT")
	if err != nil {
		t.Fatalf("NewSoundPlayer failed: %v", err)
	}
	p2, _ := rm.NewSoundPlayer("SOUND_COLLECT")
	if p1 == p2 {
		t.Error("Expected independent players for overlapping sounds")
	}

	if _, err := rm.NewSoundPlayer("SOUND_HAPPY"); err != nil {
		t.Errorf("NewSoundPlayer for looping sound failed: %v", err)
	}
}

// TestFonts 测试内置字体、外部字体回退和按字号缓存
func TestFonts(t *testing.T) {
	rm := newTestResourceManager(t, nil)

	body, err := rm.LoadFontByID("FONT_BODY")
	if err != nil {
		t.Fatalf("LoadFontByID failed: %v", err)
	}
	if body.Size != 20 {
		t.Errorf("Expected size 20, got %v", body.Size)
	}
	if again, _ := rm.LoadFontByID("FONT_BODY"); again != body {
		t.Error("Expected LoadFontByID to return the cached face")
	}
	// 未指定 face 时就是 regular，共用同一个字体源
	if regular, _ := rm.Face("regular", 20); regular.Source != body.Source {
		t.Error("Expected FONT_BODY to share the regular font source")
	}

	title, err := rm.LoadFontByID("FONT_TITLE")
	if err != nil {
		t.Fatalf("Missing font file should fall back to built-in face: %v", err)
	}
	if title.Size != 32 {
		t.Errorf("Expected size 32, got %v", title.Size)
	}
	bold, _ := rm.Face("bold", 32)
	if title.Source != bold.Source {
		t.Error("Expected FONT_TITLE to fall back to the built-in bold face")
	}

	f1, err := rm.Face("bold", 18)
	if err != nil {
		t.Fatalf("Face failed: %v", err)
	}
	f2, _ := rm.Face("bold", 18)
	if f1 != f2 {
		t.Error("Faces with the same size should be cached")
	}
	if _, err := rm.Face("comic", 18); err == nil {
		t.Error("Expected error for unknown face")
	}
}

// TestFontFace_FileOverride 清单声明的字体文件存在时按任意字号使用该文件
func TestFontFace_FileOverride(t *testing.T) {
	files := fstest.MapFS{"assets/fonts/missing.ttf": {Data: goitalic.TTF}}
	rm := newTestResourceManager(t, files)

	big, err := rm.FontFace("FONT_TITLE", 40)
	if err != nil {
		t.Fatalf("FontFace failed: %v", err)
	}
	if big.Size != 40 {
		t.Errorf("Expected size 40, got %v", big.Size)
	}
	declared, _ := rm.LoadFontByID("FONT_TITLE")
	if big.Source != declared.Source {
		t.Error("Expected FontFace to share the source loaded from the file")
	}
	bold, _ := rm.Face("bold", 40)
	if big.Source == bold.Source {
		t.Error("Expected the font file to replace the built-in bold face")
	}

	again, _ := rm.FontFace("FONT_TITLE", 40)
	if again != big {
		t.Error("Expected faces with the same ID and size to be cached")
	}
	if small, _ := rm.FontFace("FONT_TITLE", 18); small == big || small.Source != big.Source {
		t.Error("Expected a new face at another size from the same source")
	}
	if _, err := rm.FontFace("FONT_MISSING", 18); err == nil {
		t.Error("Expected error for undeclared font ID")
	}
}

// TestLoadResourceGroup 测试按组加载
func TestLoadResourceGroup(t *testing.T) {
	rm := NewResourceManager(testAudioContext, nil)
	if err := rm.LoadResourceGroup("card"); err == nil {
		t.Error("Expected error before config is loaded")
	}

	rm = newTestResourceManager(t, nil)
	if err := rm.LoadResourceGroup("missing"); err == nil {
		t.Error("Expected error for unknown group")
	}
	for _, name := range rm.GroupNames() {
		if err := rm.LoadResourceGroup(name); err != nil {
			t.Fatalf("LoadResourceGroup(%s) failed: %v", name, err)
		}
	}
	if _, ok := rm.fontCache["FONT_TITLE"]; !ok {
		t.Error("Fonts should be loaded with the group")
	}
	if len(rm.imagesByID) != 4 {
		t.Errorf("Expected 4 images loaded, got %d", len(rm.imagesByID))
	}
}
