package game

import (
	"testing"

	"github.com/decker502/birthday/pkg/config"
)

// TestNewGameState_MemoryOnly 测试不持久化时的降级模式
func TestNewGameState_MemoryOnly(t *testing.T) {
	gs := NewGameState("test_memory", false)

	if gs.gdataManager != nil {
		t.Error("Expected nil gdata manager when persist is false")
	}
	if gs.GetSettingsManager() == nil || gs.GetProgressManager() == nil {
		t.Fatal("Managers should always be created")
	}
	if gs.GetResourceManager() != nil || gs.GetAudioManager() != nil {
		t.Error("Resource and audio managers are injected later")
	}
	if err := gs.SaveAll(); err != nil {
		t.Errorf("SaveAll in memory mode should not fail, got %v", err)
	}
}

// TestNewGameState_DefaultCard 测试默认贺卡配置
func TestNewGameState_DefaultCard(t *testing.T) {
	gs := NewGameState("test_card", false)

	if gs.Card() == nil {
		t.Fatal("Card() should default to DefaultCardConfig")
	}
	if gs.Card().Recipient != config.DefaultCardConfig().Recipient {
		t.Errorf("Expected default recipient, got %q", gs.Card().Recipient)
	}
	if gs.Particles() == nil {
		t.Error("Particles() should not be nil")
	}

	card := config.DefaultCardConfig()
	card.Recipient = "Sari"
	gs.SetCard(card)
	if gs.Card().Recipient != "Sari" {
		t.Errorf("Expected recipient Sari, got %q", gs.Card().Recipient)
	}
}

// TestNewGameState_Persist 测试启用持久化时进度写入 gdata
func TestNewGameState_Persist(t *testing.T) {
	newTestGdata(t, "test_persist_gdata")

	gs := NewGameState("test_persist", true)
	if gs.gdataManager == nil {
		t.Skip("gdata unavailable in this environment")
	}
	gs.GetProgressManager().CollectHeart()
	gs.GetSettingsManager().SetVolume(0.25)
	if err := gs.SaveAll(); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	reloaded := NewGameState("test_persist", true)
	if got := reloaded.GetProgressManager().GetProgress().TotalHearts; got != 1 {
		t.Errorf("Expected 1 heart persisted, got %d", got)
	}
	if got := reloaded.GetSettingsManager().GetSettings().Volume; got != 0.25 {
		t.Errorf("Expected volume 0.25 persisted, got %v", got)
	}
}
