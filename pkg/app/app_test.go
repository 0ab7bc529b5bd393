package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/game"
	"github.com/decker502/birthday/pkg/scenes"
)

func testData() fstest.MapFS {
	return fstest.MapFS{
		CardFile: &fstest.MapFile{Data: []byte("recipient: Rani\n")},
	}
}

// TestLoadCard_Embedded 未指定外部文件时读取内置配置
func TestLoadCard_Embedded(t *testing.T) {
	card, err := loadCard(testData(), &config.LaunchConfig{})
	if err != nil {
		t.Fatalf("loadCard failed: %v", err)
	}
	if card.Recipient != "Rani" {
		t.Errorf("Expected recipient %q, got %q", "Rani", card.Recipient)
	}
}

// TestLoadCard_RecipientOverride 启动参数中的名字覆盖配置
func TestLoadCard_RecipientOverride(t *testing.T) {
	card, err := loadCard(testData(), &config.LaunchConfig{Recipient: "  Dewi "})
	if err != nil {
		t.Fatalf("loadCard failed: %v", err)
	}
	if card.Recipient != "Dewi" {
		t.Errorf("Expected recipient %q, got %q", "Dewi", card.Recipient)
	}
}

// TestLoadCard_ExternalFile 外部文件优先于内置配置
func TestLoadCard_ExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.yaml")
	if err := os.WriteFile(path, []byte("recipient: Sari\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	card, err := loadCard(testData(), &config.LaunchConfig{CardFile: path})
	if err != nil {
		t.Fatalf("loadCard failed: %v", err)
	}
	if card.Recipient != "Sari" {
		t.Errorf("Expected recipient %q, got %q", "Sari", card.Recipient)
	}
}

// TestLoadCard_Errors 缺失文件和无效配置都返回错误
func TestLoadCard_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   fstest.MapFS
		launch *config.LaunchConfig
		want   string
	}{
		{"missing embedded", fstest.MapFS{}, &config.LaunchConfig{}, "读取失败"},
		{"missing external", testData(), &config.LaunchConfig{CardFile: "/nonexistent/card.yaml"}, "读取失败"},
		{"invalid", fstest.MapFS{CardFile: &fstest.MapFile{Data: []byte("recipient: \"\"\n")}}, &config.LaunchConfig{}, "加载失败"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadCard(tt.data, tt.launch)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

// TestStartScene 测试启动场景解析和 resume
func TestStartScene(t *testing.T) {
	visited := game.NewProgressManager(nil)
	visited.SetLastScene(scenes.KeyExplore)

	dialog := game.NewProgressManager(nil)
	dialog.SetLastScene(scenes.KeyDialog)

	tests := []struct {
		name    string
		key     string
		pm      *game.ProgressManager
		want    string
		wantErr bool
	}{
		{"explicit", scenes.KeyLetter, game.NewProgressManager(nil), scenes.KeyLetter, false},
		{"resume without record", ResumeScene, game.NewProgressManager(nil), scenes.KeyEnvelope, false},
		{"resume", ResumeScene, visited, scenes.KeyExplore, false},
		{"resume ignores overlay", ResumeScene, dialog, scenes.KeyEnvelope, false},
		{"dialog is not a start scene", scenes.KeyDialog, game.NewProgressManager(nil), "", true},
		{"unknown", "menu", game.NewProgressManager(nil), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := startScene(tt.key, tt.pm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
