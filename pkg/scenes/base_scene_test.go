package scenes

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/birthday/pkg/components"
	"github.com/decker502/birthday/pkg/ecs"
	"golang.org/x/image/font/gofont/gomono"
)

// TestLetterScene_TitleFontFromFile 资源目录中的 fonts/title.ttf 替换标题的内置粗体
func TestLetterScene_TitleFontFromFile(t *testing.T) {
	h := newTestHarnessWithAssets(t, fstest.MapFS{
		"fonts/title.ttf": {Data: gomono.TTF},
	})
	h.start(KeyLetter, nil)
	letter := sceneAs[*LetterScene](t, h.sm, KeyLetter)

	title, ok := ecs.GetComponent[*components.TextComponent](letter.em, letter.title)
	if !ok || title.Face == nil {
		t.Fatal("Expected the letter title to have a face")
	}
	if title.Face.Size != 40 {
		t.Errorf("Expected title size 40, got %v", title.Face.Size)
	}

	rm := h.state.GetResourceManager()
	declared, err := rm.LoadFontByID(fontTitle)
	if err != nil {
		t.Fatalf("LoadFontByID failed: %v", err)
	}
	if title.Face.Source != declared.Source {
		t.Error("Expected the title to use the FONT_TITLE source")
	}
	bold, _ := rm.Face("bold", 40)
	if title.Face.Source == bold.Source {
		t.Error("Expected fonts/title.ttf to replace the built-in bold face")
	}
}

// TestBaseScene_FontFallback 未声明或文件缺失的字体回退到内置字体
func TestBaseScene_FontFallback(t *testing.T) {
	h := newTestHarness(t)
	h.start(KeyLetter, nil)
	letter := sceneAs[*LetterScene](t, h.sm, KeyLetter)
	rm := h.state.GetResourceManager()

	// FONT_TITLE 的文件缺失，FONT_LETTER 未在清单中声明
	tests := []struct {
		fontID  string
		builtin string
	}{
		{fontTitle, "bold"},
		{fontBody, "regular"},
		{fontLetter, "italic"},
	}
	for _, tt := range tests {
		f := letter.face(tt.fontID, 24)
		if f == nil {
			t.Errorf("%s: Expected a face, got nil", tt.fontID)
			continue
		}
		want, _ := rm.Face(tt.builtin, 24)
		if f.Source != want.Source {
			t.Errorf("%s: Expected the built-in %s face", tt.fontID, tt.builtin)
		}
		if f.Size != 24 {
			t.Errorf("%s: Expected size 24, got %v", tt.fontID, f.Size)
		}
	}
}

// TestBaseScene_ResizeBackground 窗口尺寸变化后背景仍铺满屏幕
func TestBaseScene_ResizeBackground(t *testing.T) {
	h := newTestHarness(t)
	h.start(KeyEnvelope, nil)
	env := sceneAs[*EnvelopeScene](t, h.sm, KeyEnvelope)

	h.sm.SetScreenSize(1280, 900)
	rect, ok := ecs.GetComponent[*components.RectComponent](env.em, env.bg)
	if !ok {
		t.Fatal("Expected the background rect")
	}
	if rect.Width != 1280 || rect.Height != 900 {
		t.Errorf("Expected background 1280x900, got %vx%v", rect.Width, rect.Height)
	}

	h.sm.SetScreenSize(800, 600)
	if rect.Width != 800 || rect.Height != 600 {
		t.Errorf("Expected background 800x600, got %vx%v", rect.Width, rect.Height)
	}
}

// TestDialogScene_ResizeOverlay 放大窗口后点击原尺寸之外的遮罩仍然关闭对话
func TestDialogScene_ResizeOverlay(t *testing.T) {
	h, dialog := openDialog(t)

	h.sm.SetScreenSize(1600, 1000)
	h.input.click(1500, 950)
	h.step(1)
	if !dialog.Closing() {
		t.Error("Expected a click on the resized overlay to close the dialog")
	}
}
