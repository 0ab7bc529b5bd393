package scenes

import (
	"github.com/decker502/birthday/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// 场景键，SceneManager 注册和切换时使用
const (
	KeyLoading     = "loading"
	KeyEnvelope    = "envelope"
	KeyLetter      = "letter"
	KeyExplore     = "explore"
	KeyDialog      = "dialog"
	KeyCelebration = "celebration"
)

// DialogData 启动对话覆盖层的参数
type DialogData struct {
	Speaker string
	Message string
}

// LoadingData 加载场景完成后要启动的场景
type LoadingData struct {
	Next string
}

// IsCardScene 是否为可以直接启动的贺卡场景（对话覆盖层需要父场景，不算）
func IsCardScene(key string) bool {
	switch key {
	case KeyEnvelope, KeyLetter, KeyExplore, KeyCelebration:
		return true
	}
	return false
}
