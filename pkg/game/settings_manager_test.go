package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录中创建 gdata Manager
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return manager
}

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Volume != 1.0 {
		t.Errorf("Volume: got %v, want 1.0", settings.Volume)
	}
	if settings.Muted {
		t.Error("Muted: got true, want false")
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings().Volume != 1.0 {
		t.Errorf("Expected default volume, got %v", sm.GetSettings().Volume)
	}

	sm.SetMuted(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save with nil gdata should not fail, got %v", err)
	}
	if !sm.GetSettings().Muted {
		t.Error("In-memory settings should keep Muted")
	}
}

// TestSetVolume_Clamp 测试音量限制在 0.0 ~ 1.0
func TestSetVolume_Clamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{"normal", 0.4, 0.4},
		{"below zero", -0.5, 0.0},
		{"above one", 1.7, 1.0},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetVolume(tt.input)
			if got := sm.GetSettings().Volume; got != tt.want {
				t.Errorf("SetVolume(%v): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSettings_SaveAndLoad 测试保存后重新加载
func TestSettings_SaveAndLoad(t *testing.T) {
	manager := newTestGdata(t, "test_settings")

	sm := NewSettingsManager(manager)
	sm.SetVolume(0.3)
	sm.SetMuted(true)
	sm.SetFullscreen(true)
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewSettingsManager(manager)
	got := reloaded.GetSettings()
	if got.Volume != 0.3 {
		t.Errorf("Volume: got %v, want 0.3", got.Volume)
	}
	if !got.Muted {
		t.Error("Muted: got false, want true")
	}
	if !got.Fullscreen {
		t.Error("Fullscreen: got false, want true")
	}
}

// TestSettings_LoadClampsVolume 测试加载时修正越界音量
func TestSettings_LoadClampsVolume(t *testing.T) {
	manager := newTestGdata(t, "test_settings_clamp")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: 5\nmuted: true\n")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm := NewSettingsManager(manager)
	if sm.GetSettings().Volume != 1.0 {
		t.Errorf("Expected clamped volume 1.0, got %v", sm.GetSettings().Volume)
	}
	if !sm.GetSettings().Muted {
		t.Error("Muted should be loaded")
	}
}

// TestSettings_LoadCorrupted 测试损坏的设置文件回退为默认值
func TestSettings_LoadCorrupted(t *testing.T) {
	manager := newTestGdata(t, "test_settings_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("volume: [not a number")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	sm := NewSettingsManager(manager)
	if sm.GetSettings().Volume != 1.0 || sm.GetSettings().Muted {
		t.Errorf("Expected defaults after corrupted load, got %+v", sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Expected Load to report the corrupted data")
	}
}
