package game

import (
	"testing"
	"time"
)

// TestProgressManager_NilGdata 测试降级模式下计数正常
func TestProgressManager_NilGdata(t *testing.T) {
	pm := NewProgressManager(nil)

	if got := pm.CollectHeart(); got != 1 {
		t.Errorf("Expected 1 heart collected, got %d", got)
	}
	if got := pm.CollectHeart(); got != 2 {
		t.Errorf("Expected 2 hearts collected, got %d", got)
	}
	if err := pm.Save(); err != nil {
		t.Errorf("Save with nil gdata should not fail, got %v", err)
	}
}

// TestProgressManager_StartRun 测试新一轮只清零本轮计数
func TestProgressManager_StartRun(t *testing.T) {
	pm := NewProgressManager(nil)
	pm.CollectHeart()
	pm.CollectHeart()
	pm.CollectHeart()

	pm.StartRun()
	p := pm.GetProgress()
	if p.HeartsCollected != 0 {
		t.Errorf("Expected HeartsCollected 0 after StartRun, got %d", p.HeartsCollected)
	}
	if p.TotalHearts != 3 {
		t.Errorf("Expected TotalHearts 3, got %d", p.TotalHearts)
	}
}

// TestProgressManager_RecordCompletion 测试完成次数和时间
func TestProgressManager_RecordCompletion(t *testing.T) {
	pm := NewProgressManager(nil)
	fixed := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)
	pm.now = func() time.Time { return fixed }

	if got := pm.RecordCompletion(); got != 1 {
		t.Errorf("Expected 1 completion, got %d", got)
	}
	if got := pm.RecordCompletion(); got != 2 {
		t.Errorf("Expected 2 completions, got %d", got)
	}
	if !pm.GetProgress().LastCompletedAt.Equal(fixed) {
		t.Errorf("Expected LastCompletedAt %v, got %v", fixed, pm.GetProgress().LastCompletedAt)
	}
}

// TestProgressManager_GetProgressIsCopy 测试返回值不能修改内部状态
func TestProgressManager_GetProgressIsCopy(t *testing.T) {
	pm := NewProgressManager(nil)
	p := pm.GetProgress()
	p.Completions = 99

	if pm.GetProgress().Completions != 0 {
		t.Error("GetProgress should return a copy")
	}
}

// TestProgressManager_Persistence 测试每次修改立即持久化
func TestProgressManager_Persistence(t *testing.T) {
	manager := newTestGdata(t, "test_progress")

	pm := NewProgressManager(manager)
	pm.CollectHeart()
	pm.CollectHeart()
	pm.SetLastScene("ExploreScene")
	pm.RecordCompletion()

	reloaded := NewProgressManager(manager)
	p := reloaded.GetProgress()
	if p.HeartsCollected != 2 || p.TotalHearts != 2 {
		t.Errorf("Expected 2/2 hearts, got %d/%d", p.HeartsCollected, p.TotalHearts)
	}
	if p.Completions != 1 {
		t.Errorf("Expected 1 completion, got %d", p.Completions)
	}
	if p.LastScene != "ExploreScene" {
		t.Errorf("Expected LastScene ExploreScene, got %q", p.LastScene)
	}
}

// TestProgressManager_RejectsNegative 测试损坏的计数被拒绝
func TestProgressManager_RejectsNegative(t *testing.T) {
	manager := newTestGdata(t, "test_progress_negative")
	if err := manager.SaveObjectProp(progressObject, progressProperty, []byte("totalHearts: -4\n")); err != nil {
		t.Fatalf("SaveObjectProp failed: %v", err)
	}

	pm := NewProgressManager(manager)
	if pm.GetProgress().TotalHearts != 0 {
		t.Errorf("Expected fresh progress, got %+v", pm.GetProgress())
	}
	if err := pm.Load(); err == nil {
		t.Error("Expected Load to reject negative counters")
	}
}
