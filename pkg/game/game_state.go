package game

import (
	"log"

	"github.com/decker502/birthday/pkg/config"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储目录使用的应用名
const DefaultAppName = "birthday_card"

// GameState 存储全局状态
// 由 App 创建一次，持有跨场景共享的管理器和配置
type GameState struct {
	gdataManager    *gdata.Manager // 可为 nil（无法持久化时降级为内存模式）
	settingsManager *SettingsManager
	progressManager *ProgressManager
	resourceManager *ResourceManager
	audioManager    *AudioManager

	card      *config.CardConfig
	particles config.ParticleConfigs
}

// NewGameState 创建状态实例
// persist 为 false 或 gdata 打开失败时，设置和进度只保存在内存中
func NewGameState(appName string, persist bool) *GameState {
	gs := &GameState{
		card:      config.DefaultCardConfig(),
		particles: config.ParticleConfigs{},
	}

	if persist {
		manager, err := gdata.Open(gdata.Config{AppName: appName})
		if err != nil {
			log.Printf("[GameState] Warning: gdata unavailable (%v), progress will not be saved", err)
		} else {
			gs.gdataManager = manager
		}
	}

	gs.settingsManager = NewSettingsManager(gs.gdataManager)
	gs.progressManager = NewProgressManager(gs.gdataManager)
	return gs
}

// GetSettingsManager 返回设置管理器
func (gs *GameState) GetSettingsManager() *SettingsManager {
	return gs.settingsManager
}

// GetProgressManager 返回进度管理器
func (gs *GameState) GetProgressManager() *ProgressManager {
	return gs.progressManager
}

// SetResourceManager / GetResourceManager 资源管理器由 App 在音频上下文创建后注入
func (gs *GameState) SetResourceManager(rm *ResourceManager) {
	gs.resourceManager = rm
}

func (gs *GameState) GetResourceManager() *ResourceManager {
	return gs.resourceManager
}

// SetAudioManager / GetAudioManager 音频管理器
func (gs *GameState) SetAudioManager(am *AudioManager) {
	gs.audioManager = am
}

func (gs *GameState) GetAudioManager() *AudioManager {
	return gs.audioManager
}

// SetCard 替换贺卡配置
func (gs *GameState) SetCard(card *config.CardConfig) {
	gs.card = card
}

// Card 返回贺卡配置
func (gs *GameState) Card() *config.CardConfig {
	return gs.card
}

// SetParticles 替换粒子发射器配置
func (gs *GameState) SetParticles(p config.ParticleConfigs) {
	gs.particles = p
}

// Particles 返回粒子发射器配置
func (gs *GameState) Particles() config.ParticleConfigs {
	return gs.particles
}

// SaveAll 保存设置和进度（窗口关闭时调用）
func (gs *GameState) SaveAll() error {
	if err := gs.settingsManager.Save(); err != nil {
		return err
	}
	return gs.progressManager.Save()
}
