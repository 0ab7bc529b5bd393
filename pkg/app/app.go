// Package app 提供贺卡应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/game"
	"github.com/decker502/birthday/pkg/scenes"
	"github.com/decker502/birthday/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 内置数据文件（相对 Config.Data 的路径）
const (
	CardFile      = "data/card.yaml"
	ParticlesFile = "data/particles.yaml"
	ResourcesFile = "data/resources.yaml"
)

// ResumeScene 启动参数中表示"从上次到达的场景继续"
const ResumeScene = "resume"

// Config 定义应用启动配置
type Config struct {
	Launch *config.LaunchConfig

	// Data 内置数据文件系统（card.yaml、particles.yaml、resources.yaml）
	Data fs.FS
	// Assets 外部资源覆盖，可为 nil（全部使用生成资源）
	Assets fs.FS
	// Input 为 nil 时使用 Ebitengine 的键盘/鼠标/触摸输入
	Input systems.InputSource
	// AudioContext 为 nil 时新建（进程内只能有一个）
	AudioContext *audio.Context
}

// App 是贺卡应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gameState    *game.GameState
	input        systems.InputSource

	windowWidth, windowHeight int

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化贺卡应用
func NewApp(cfg Config) (*App, error) {
	launch := cfg.Launch
	if launch == nil {
		var err error
		if launch, err = config.LoadLaunchConfig(); err != nil {
			return nil, fmt.Errorf("启动参数无效: %w", err)
		}
	}
	if cfg.Data == nil {
		return nil, fmt.Errorf("data file system is required")
	}

	// 配置日志输出
	if !launch.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameState := game.NewGameState(launch.AppName, !launch.NoSave)

	card, err := loadCard(cfg.Data, launch)
	if err != nil {
		return nil, err
	}
	gameState.SetCard(card)

	particleData, err := fs.ReadFile(cfg.Data, ParticlesFile)
	if err != nil {
		return nil, fmt.Errorf("粒子配置读取失败: %w", err)
	}
	particles, err := config.LoadParticleConfigs(particleData)
	if err != nil {
		return nil, fmt.Errorf("粒子配置加载失败: %w", err)
	}
	gameState.SetParticles(particles)
	log.Printf("[Config] Loaded %d particle emitters", len(particles))

	audioContext := cfg.AudioContext
	if audioContext == nil {
		audioContext = audio.NewContext(config.AudioSampleRate)
	}

	// 创建资源管理器
	resourceManager := game.NewResourceManager(audioContext, cfg.Assets)
	resourceData, err := fs.ReadFile(cfg.Data, ResourcesFile)
	if err != nil {
		return nil, fmt.Errorf("资源配置读取失败: %w", err)
	}
	if err := resourceManager.LoadResourceConfig(resourceData); err != nil {
		return nil, fmt.Errorf("资源配置加载失败: %w", err)
	}
	gameState.SetResourceManager(resourceManager)

	// 初始化 AudioManager 并设置到 GameState
	audioManager := game.NewAudioManager(resourceManager, gameState.GetSettingsManager())
	if launch.Muted {
		audioManager.SetSessionMuted(true)
	}
	gameState.SetAudioManager(audioManager)
	log.Printf("[App] AudioManager initialized")

	input := cfg.Input
	if input == nil {
		input = systems.NewEbitenInput()
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetScreenSize(launch.WindowWidth, launch.WindowHeight)
	scenes.Register(&scenes.Context{
		State:  gameState,
		Scenes: sceneManager,
		Input:  input,
	})

	start, err := startScene(launch.StartScene, gameState.GetProgressManager())
	if err != nil {
		return nil, err
	}
	log.Printf("[App] Starting card for %s at scene %q", card.Recipient, start)
	sceneManager.Start(scenes.KeyLoading, scenes.LoadingData{Next: start})

	return &App{
		sceneManager: sceneManager,
		gameState:    gameState,
		input:        input,
		windowWidth:  launch.WindowWidth,
		windowHeight: launch.WindowHeight,
	}, nil
}

// loadCard 读取贺卡配置：外部文件优先，否则使用内置 card.yaml
func loadCard(data fs.FS, launch *config.LaunchConfig) (*config.CardConfig, error) {
	var (
		raw []byte
		err error
	)
	if launch.CardFile != "" {
		raw, err = os.ReadFile(launch.CardFile)
	} else {
		raw, err = fs.ReadFile(data, CardFile)
	}
	if err != nil {
		return nil, fmt.Errorf("贺卡配置读取失败: %w", err)
	}

	card, err := config.LoadCardConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("贺卡配置加载失败: %w", err)
	}
	if name := strings.TrimSpace(launch.Recipient); name != "" {
		card.Recipient = name
	}
	return card, nil
}

// startScene 解析启动场景；resume 时使用上次到达的场景，没有记录则从信封开始
func startScene(key string, pm *game.ProgressManager) (string, error) {
	if key == ResumeScene {
		key = scenes.KeyEnvelope
		if last := pm.GetProgress().LastScene; scenes.IsCardScene(last) {
			key = last
		}
	}
	if !scenes.IsCardScene(key) {
		return "", fmt.Errorf("unknown start scene %q", key)
	}
	return key, nil
}

// Update 更新贺卡逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.windowWidth, a.windowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.windowWidth, a.windowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if a.input.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// M 切换静音
	if a.input.IsKeyJustPressed(ebiten.KeyM) {
		if am := a.gameState.GetAudioManager(); am != nil {
			muted := am.ToggleMute()
			log.Printf("[App] Muted: %v", muted)
			a.saveSettings()
		}
	}

	a.sceneManager.Update(config.FrameDeltaTime)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.gameState.GetSettingsManager().SetFullscreen(fullscreen)
	a.saveSettings()
}

func (a *App) saveSettings() {
	if err := a.gameState.GetSettingsManager().Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 逻辑尺寸跟随窗口大小（不低于最小值），场景按新尺寸调整摄像机视口
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := max(outsideWidth, config.MinLogicalWidth)
	h := max(outsideHeight, config.MinLogicalHeight)
	a.sceneManager.SetScreenSize(w, h)
	return w, h
}

// Shutdown 保存设置和进度并停止所有音频（窗口关闭时调用）
func (a *App) Shutdown() error {
	for _, s := range a.sceneManager.Scenes() {
		if saver, ok := s.(game.Saveable); ok && !saver.SaveOnExit() {
			log.Printf("[App] Warning: scene %T failed to save on exit", s)
		}
	}
	if am := a.gameState.GetAudioManager(); am != nil {
		am.StopAll()
	}
	return a.gameState.SaveAll()
}

// SavedFullscreen 上次退出时是否处于全屏
func (a *App) SavedFullscreen() bool {
	return a.gameState.GetSettingsManager().GetSettings().Fullscreen
}
