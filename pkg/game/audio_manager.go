package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器
// 职责：
//   - 统一管理贺卡中所有音效和背景音乐的播放
//   - 实现音量控制（从 SettingsManager 读取主音量和静音）
//   - 通过资源ID播放，无需关心音频来自文件还是合成
//
// 音效每次播放创建独立播放器（允许叠加），背景音乐同一时间只有一首。
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager // 可为 nil，使用默认音量

	sounds         []*playingSound
	currentMusic   *audio.Player
	currentMusicID string
	musicVolume    float64 // 当前音乐的相对音量

	// sessionMuted 启动参数要求的静音，只在本次运行有效，不写入设置
	sessionMuted bool
}

type playingSound struct {
	player *audio.Player
	volume float64 // 相对音量（乘以主音量前）
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
	}
}

// PlaySound 播放音效
// 实际音量 = volume * 主音量；静音时不播放
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string, volume float64) bool {
	if am.isMuted() {
		return false
	}
	am.prune()

	player, err := am.resourceManager.NewSoundPlayer(soundID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Sound not available %s: %v", soundID, err)
		return false
	}
	player.SetVolume(am.effectiveVolume(volume))
	player.Play()

	am.sounds = append(am.sounds, &playingSound{player: player, volume: volume})
	return true
}

// PlayMusic 播放背景音乐，同一首正在播放时不重新开始
func (am *AudioManager) PlayMusic(musicID string, volume float64) bool {
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	am.StopMusic()

	player, err := am.resourceManager.NewSoundPlayer(musicID)
	if err != nil {
		log.Printf("[AudioManager] Warning: Music not available %s: %v", musicID, err)
		return false
	}
	am.currentMusic = player
	am.currentMusicID = musicID
	am.musicVolume = volume

	player.SetVolume(am.effectiveVolume(volume))
	if !am.isMuted() {
		player.Play()
	}
	log.Printf("[AudioManager] Playing music: %s (volume: %.2f)", musicID, am.effectiveVolume(volume))
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		_ = am.currentMusic.Close()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// StopAll 停止所有音效和背景音乐（场景退出时调用）
func (am *AudioManager) StopAll() {
	for _, s := range am.sounds {
		s.player.Pause()
		_ = s.player.Close()
	}
	am.sounds = nil
	am.StopMusic()
}

// CurrentMusic 返回正在播放的背景音乐ID
func (am *AudioManager) CurrentMusic() string {
	return am.currentMusicID
}

// ActiveSounds 返回仍在播放的音效数量
func (am *AudioManager) ActiveSounds() int {
	am.prune()
	return len(am.sounds)
}

// SetMuted 切换静音并立即应用到正在播放的音频
// 静音状态写入设置；取消静音同时解除本次运行的启动静音
func (am *AudioManager) SetMuted(muted bool) {
	if am.settingsManager != nil {
		am.settingsManager.SetMuted(muted)
	}
	if !muted {
		am.sessionMuted = false
	}
	am.applyMute()
}

// SetSessionMuted 本次运行静音（--mute / BIRTHDAY_MUTED），不改变保存的设置
func (am *AudioManager) SetSessionMuted(muted bool) {
	am.sessionMuted = muted
	am.applyMute()
}

// applyMute 按当前静音状态暂停或恢复正在播放的音频
func (am *AudioManager) applyMute() {
	if am.isMuted() {
		for _, s := range am.sounds {
			s.player.Pause()
		}
		if am.currentMusic != nil {
			am.currentMusic.Pause()
		}
		return
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.effectiveVolume(am.musicVolume))
		am.currentMusic.Play()
	}
}

// ToggleMute 切换静音，返回切换后的状态
func (am *AudioManager) ToggleMute() bool {
	muted := !am.isMuted()
	am.SetMuted(muted)
	return muted
}

// SetMasterVolume 设置主音量并立即应用
func (am *AudioManager) SetMasterVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetVolume(volume)
	}
	for _, s := range am.sounds {
		s.player.SetVolume(am.effectiveVolume(s.volume))
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.effectiveVolume(am.musicVolume))
	}
}

// prune 丢弃已经播放完的音效
func (am *AudioManager) prune() {
	alive := am.sounds[:0]
	for _, s := range am.sounds {
		if s.player.IsPlaying() {
			alive = append(alive, s)
			continue
		}
		_ = s.player.Close()
	}
	for i := len(alive); i < len(am.sounds); i++ {
		am.sounds[i] = nil
	}
	am.sounds = alive
}

func (am *AudioManager) isMuted() bool {
	if am.sessionMuted {
		return true
	}
	return am.settingsManager != nil && am.settingsManager.GetSettings().Muted
}

func (am *AudioManager) effectiveVolume(volume float64) float64 {
	master := DefaultSettings().Volume
	if am.settingsManager != nil {
		master = am.settingsManager.GetSettings().Volume
	}
	return clampVolume(volume * master)
}
