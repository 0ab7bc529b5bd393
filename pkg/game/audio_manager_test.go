package game

import (
	"testing"
)

func newTestAudioManager(t *testing.T) (*AudioManager, *SettingsManager) {
	t.Helper()
	rm := newTestResourceManager(t, nil)
	sm := NewSettingsManager(nil)
	return NewAudioManager(rm, sm), sm
}

// TestAudioManager_PlaySound 测试播放音效
func TestAudioManager_PlaySound(t *testing.T) {
	am, _ := newTestAudioManager(t)
	defer am.StopAll()

	if !am.PlaySound("SOUND_COLLECT", 0.8) {
		t.Error("Expected PlaySound to succeed")
	}
	if am.PlaySound("SOUND_UNKNOWN", 1.0) {
		t.Error("Expected PlaySound to fail for unknown sound")
	}
}

// TestAudioManager_PlaySoundMuted 测试静音时不播放
func TestAudioManager_PlaySoundMuted(t *testing.T) {
	am, sm := newTestAudioManager(t)
	sm.SetMuted(true)

	if am.PlaySound("SOUND_COLLECT", 1.0) {
		t.Error("Expected PlaySound to be skipped while muted")
	}
	if am.ActiveSounds() != 0 {
		t.Errorf("Expected no active sounds, got %d", am.ActiveSounds())
	}
}

// TestAudioManager_Music 测试背景音乐切换和停止
func TestAudioManager_Music(t *testing.T) {
	am, _ := newTestAudioManager(t)
	defer am.StopAll()

	if !am.PlayMusic("SOUND_HAPPY", 0.5) {
		t.Fatal("Expected PlayMusic to succeed")
	}
	if am.CurrentMusic() != "SOUND_HAPPY" {
		t.Errorf("Expected current music SOUND_HAPPY, got %q", am.CurrentMusic())
	}

	if !am.PlayMusic("SOUND_OPEN", 0.5) {
		t.Fatal("Expected PlayMusic to switch tracks")
	}
	if am.CurrentMusic() != "SOUND_OPEN" {
		t.Errorf("Expected current music SOUND_OPEN, got %q", am.CurrentMusic())
	}

	am.StopMusic()
	if am.CurrentMusic() != "" {
		t.Errorf("Expected no music after StopMusic, got %q", am.CurrentMusic())
	}

	if am.PlayMusic("SOUND_UNKNOWN", 1.0) {
		t.Error("Expected PlayMusic to fail for unknown music")
	}
}

// TestAudioManager_ToggleMute 测试静音切换写回设置
func TestAudioManager_ToggleMute(t *testing.T) {
	am, sm := newTestAudioManager(t)
	defer am.StopAll()
	am.PlayMusic("SOUND_HAPPY", 1.0)

	if !am.ToggleMute() {
		t.Error("Expected ToggleMute to return true")
	}
	if !sm.GetSettings().Muted {
		t.Error("Settings should be muted")
	}
	if am.ToggleMute() {
		t.Error("Expected ToggleMute to return false")
	}
	if sm.GetSettings().Muted {
		t.Error("Settings should be unmuted")
	}
}

// TestAudioManager_SessionMute 启动静音只在本次运行生效，不写入设置
func TestAudioManager_SessionMute(t *testing.T) {
	am, sm := newTestAudioManager(t)
	defer am.StopAll()

	am.SetSessionMuted(true)
	if !am.isMuted() {
		t.Fatal("Expected session mute to silence audio")
	}
	if sm.GetSettings().Muted {
		t.Error("Expected session mute to leave saved settings unmuted")
	}
	if am.PlaySound("SOUND_COLLECT", 1.0) {
		t.Error("Expected PlaySound to be skipped while session muted")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if sm.GetSettings().Muted {
		t.Error("Expected saved settings to stay unmuted")
	}

	// 运行中按 M 取消静音同时解除启动静音
	if am.ToggleMute() {
		t.Error("Expected ToggleMute to unmute")
	}
	if am.isMuted() || sm.GetSettings().Muted {
		t.Errorf("Expected unmuted, session=%v settings=%v", am.sessionMuted, sm.GetSettings().Muted)
	}
}

// TestAudioManager_EffectiveVolume 测试音量乘以主音量
func TestAudioManager_EffectiveVolume(t *testing.T) {
	am, _ := newTestAudioManager(t)

	am.SetMasterVolume(0.5)
	if got := am.effectiveVolume(0.8); got != 0.4 {
		t.Errorf("Expected effective volume 0.4, got %v", got)
	}
	am.SetMasterVolume(2.0)
	if got := am.effectiveVolume(0.8); got != 0.8 {
		t.Errorf("Expected effective volume 0.8, got %v", got)
	}

	noSettings := NewAudioManager(newTestResourceManager(t, nil), nil)
	if got := noSettings.effectiveVolume(1.5); got != 1.0 {
		t.Errorf("Expected clamped volume 1.0, got %v", got)
	}
}
