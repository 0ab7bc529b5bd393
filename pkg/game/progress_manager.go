package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Progress 贺卡进度
//
// 保存内容：
//   - 本轮已收集的爱心（重新打开贺卡时归零）
//   - 累计收集的爱心和完整看完贺卡的次数
//   - 最后到达的场景
type Progress struct {
	HeartsCollected int       `yaml:"heartsCollected"`
	TotalHearts     int       `yaml:"totalHearts"`
	Completions     int       `yaml:"completions"`
	LastScene       string    `yaml:"lastScene"`
	LastCompletedAt time.Time `yaml:"lastCompletedAt,omitempty"`
}

// ProgressManager 进度管理器
//
// 每次修改立即持久化（数据量很小），保存失败只记录日志，不影响演出。
type ProgressManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	progress     *Progress
	now          func() time.Time
}

const (
	progressObject   = "progress"
	progressProperty = "card"
)

// NewProgressManager 创建进度管理器并加载已有进度
func NewProgressManager(gdataManager *gdata.Manager) *ProgressManager {
	pm := &ProgressManager{
		gdataManager: gdataManager,
		progress:     &Progress{},
		now:          time.Now,
	}
	if err := pm.Load(); err != nil {
		log.Printf("[ProgressManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}
	return pm
}

// Load 从 gdata 加载进度
func (pm *ProgressManager) Load() error {
	pm.progress = &Progress{}
	if pm.gdataManager == nil || !pm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	var loaded Progress
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	if loaded.HeartsCollected < 0 || loaded.TotalHearts < 0 || loaded.Completions < 0 {
		return fmt.Errorf("corrupted progress: negative counters")
	}

	pm.progress = &loaded
	log.Printf("[ProgressManager] Progress loaded: %d completions, %d hearts total",
		loaded.Completions, loaded.TotalHearts)
	return nil
}

// Save 保存进度到 gdata
func (pm *ProgressManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(pm.progress)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := pm.gdataManager.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

func (pm *ProgressManager) persist() {
	if err := pm.Save(); err != nil {
		log.Printf("[ProgressManager] Warning: %v", err)
	}
}

// GetProgress 返回当前进度（只读使用）
func (pm *ProgressManager) GetProgress() Progress {
	return *pm.progress
}

// StartRun 开始新一轮：本轮爱心计数归零
func (pm *ProgressManager) StartRun() {
	pm.progress.HeartsCollected = 0
	pm.persist()
}

// CollectHeart 记录收集到一颗爱心，返回本轮已收集数量
func (pm *ProgressManager) CollectHeart() int {
	pm.progress.HeartsCollected++
	pm.progress.TotalHearts++
	pm.persist()
	return pm.progress.HeartsCollected
}

// RecordCompletion 记录一次完整看完贺卡
func (pm *ProgressManager) RecordCompletion() int {
	pm.progress.Completions++
	pm.progress.LastCompletedAt = pm.now()
	pm.persist()
	log.Printf("[ProgressManager] Card completed (%d times)", pm.progress.Completions)
	return pm.progress.Completions
}

// SetLastScene 记录最后到达的场景
func (pm *ProgressManager) SetLastScene(key string) {
	if pm.progress.LastScene == key {
		return
	}
	pm.progress.LastScene = key
	pm.persist()
}
