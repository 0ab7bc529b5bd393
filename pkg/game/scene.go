package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one stage of the card (envelope, letter, explore, ...).
// Each scene owns its own entities and systems.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Enterable 场景被启动时调用，data 为 Start/Launch 传入的参数
type Enterable interface {
	OnEnter(data any)
}

// Exitable 场景被停止或替换时调用，用于释放资源、停止音频
type Exitable interface {
	OnExit()
}

// Pausable 场景被覆盖层暂停/恢复时调用
type Pausable interface {
	OnPause()
	OnResume()
}

// Resizable 窗口尺寸变化时调用
type Resizable interface {
	OnResize(width, height int)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}
