package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数，每次 Start/Launch 都会创建新的场景实例
type SceneFactory func() Scene

// sceneEntry 运行中的场景
type sceneEntry struct {
	key    string
	scene  Scene
	paused bool
	parent string // 启动该覆盖层时处于最上层的场景
}

type sceneOpKind int

const (
	opStart sceneOpKind = iota
	opLaunch
	opStop
	opPause
	opResume
)

type sceneOp struct {
	kind sceneOpKind
	key  string
	data any
}

// SceneManager 管理场景栈
//
//   - Start(key) 停止所有运行中的场景并启动新场景
//   - Launch(key) 在当前场景之上启动覆盖层，并暂停当前场景
//   - Stop(key) 停止场景；停止覆盖层时自动恢复它的父场景
//   - Pause / Resume 暂停与恢复
//
// 所有切换请求在下一次 Update 开始时生效，
// 因此在场景回调中切换场景是安全的。
// 暂停的场景不更新但仍然绘制（作为覆盖层的背景）。
type SceneManager struct {
	factories map[string]SceneFactory
	stack     []*sceneEntry
	pending   []sceneOp

	width, height int
}

// NewSceneManager creates and returns a new SceneManager instance.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(key string, factory SceneFactory) {
	sm.factories[key] = factory
}

// Has 场景是否已注册
func (sm *SceneManager) Has(key string) bool {
	_, ok := sm.factories[key]
	return ok
}

// Start 请求切换到指定场景
func (sm *SceneManager) Start(key string, data any) {
	sm.pending = append(sm.pending, sceneOp{kind: opStart, key: key, data: data})
}

// Launch 请求在当前场景之上启动覆盖层
func (sm *SceneManager) Launch(key string, data any) {
	sm.pending = append(sm.pending, sceneOp{kind: opLaunch, key: key, data: data})
}

// Stop 请求停止指定场景
func (sm *SceneManager) Stop(key string) {
	sm.pending = append(sm.pending, sceneOp{kind: opStop, key: key})
}

// Pause 请求暂停指定场景
func (sm *SceneManager) Pause(key string) {
	sm.pending = append(sm.pending, sceneOp{kind: opPause, key: key})
}

// Resume 请求恢复指定场景
func (sm *SceneManager) Resume(key string) {
	sm.pending = append(sm.pending, sceneOp{kind: opResume, key: key})
}

// Flush 立即执行所有待处理的切换请求
func (sm *SceneManager) Flush() error {
	var firstErr error
	// 场景的 OnEnter 可能继续追加请求
	for len(sm.pending) > 0 {
		op := sm.pending[0]
		sm.pending = sm.pending[1:]
		if err := sm.apply(op); err != nil {
			log.Printf("[SceneManager] %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (sm *SceneManager) apply(op sceneOp) error {
	switch op.kind {
	case opStart:
		factory, ok := sm.factories[op.key]
		if !ok {
			return fmt.Errorf("start: unknown scene %q", op.key)
		}
		for i := len(sm.stack) - 1; i >= 0; i-- {
			exitScene(sm.stack[i].scene)
		}
		sm.stack = sm.stack[:0]
		sm.push(&sceneEntry{key: op.key, scene: factory()}, op.data)
		log.Printf("[SceneManager] Started scene %q", op.key)

	case opLaunch:
		factory, ok := sm.factories[op.key]
		if !ok {
			return fmt.Errorf("launch: unknown scene %q", op.key)
		}
		if sm.find(op.key) >= 0 {
			return fmt.Errorf("launch: scene %q is already running", op.key)
		}
		entry := &sceneEntry{key: op.key, scene: factory()}
		if top := sm.top(); top != nil {
			entry.parent = top.key
			sm.setPaused(top, true)
		}
		sm.push(entry, op.data)
		log.Printf("[SceneManager] Launched overlay %q over %q", op.key, entry.parent)

	case opStop:
		i := sm.find(op.key)
		if i < 0 {
			return fmt.Errorf("stop: scene %q is not running", op.key)
		}
		entry := sm.stack[i]
		sm.stack = append(sm.stack[:i], sm.stack[i+1:]...)
		exitScene(entry.scene)
		if j := sm.find(entry.parent); j >= 0 {
			sm.setPaused(sm.stack[j], false)
		}
		log.Printf("[SceneManager] Stopped scene %q", op.key)

	case opPause, opResume:
		i := sm.find(op.key)
		if i < 0 {
			return fmt.Errorf("pause/resume: scene %q is not running", op.key)
		}
		sm.setPaused(sm.stack[i], op.kind == opPause)
	}
	return nil
}

func (sm *SceneManager) push(entry *sceneEntry, data any) {
	sm.stack = append(sm.stack, entry)
	if sm.width > 0 && sm.height > 0 {
		if r, ok := entry.scene.(Resizable); ok {
			r.OnResize(sm.width, sm.height)
		}
	}
	if e, ok := entry.scene.(Enterable); ok {
		e.OnEnter(data)
	}
}

func (sm *SceneManager) setPaused(entry *sceneEntry, paused bool) {
	if entry.paused == paused {
		return
	}
	entry.paused = paused
	if p, ok := entry.scene.(Pausable); ok {
		if paused {
			p.OnPause()
		} else {
			p.OnResume()
		}
	}
}

func exitScene(s Scene) {
	if e, ok := s.(Exitable); ok {
		e.OnExit()
	}
}

func (sm *SceneManager) find(key string) int {
	if key == "" {
		return -1
	}
	for i, e := range sm.stack {
		if e.key == key {
			return i
		}
	}
	return -1
}

func (sm *SceneManager) top() *sceneEntry {
	if len(sm.stack) == 0 {
		return nil
	}
	return sm.stack[len(sm.stack)-1]
}

// IsActive 场景是否正在运行（包括暂停）
func (sm *SceneManager) IsActive(key string) bool {
	return sm.find(key) >= 0
}

// IsPaused 场景是否处于暂停状态
func (sm *SceneManager) IsPaused(key string) bool {
	i := sm.find(key)
	return i >= 0 && sm.stack[i].paused
}

// Get 返回运行中的场景实例
func (sm *SceneManager) Get(key string) (Scene, bool) {
	i := sm.find(key)
	if i < 0 {
		return nil, false
	}
	return sm.stack[i].scene, true
}

// GetCurrentScene 返回最上层的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	if top := sm.top(); top != nil {
		return top.scene
	}
	return nil
}

// CurrentKey 返回最上层场景的键
func (sm *SceneManager) CurrentKey() string {
	if top := sm.top(); top != nil {
		return top.key
	}
	return ""
}

// Scenes 返回所有运行中的场景（自底向上）
func (sm *SceneManager) Scenes() []Scene {
	scenes := make([]Scene, len(sm.stack))
	for i, e := range sm.stack {
		scenes[i] = e.scene
	}
	return scenes
}

// SetScreenSize 更新逻辑屏幕尺寸并通知所有场景
func (sm *SceneManager) SetScreenSize(width, height int) {
	if width == sm.width && height == sm.height {
		return
	}
	sm.width, sm.height = width, height
	for _, e := range sm.stack {
		if r, ok := e.scene.(Resizable); ok {
			r.OnResize(width, height)
		}
	}
}

// ScreenSize 返回逻辑屏幕尺寸
func (sm *SceneManager) ScreenSize() (int, int) {
	return sm.width, sm.height
}

// Update 先执行切换请求，再自底向上更新未暂停的场景
func (sm *SceneManager) Update(deltaTime float64) {
	_ = sm.Flush()

	// 场景更新时可能请求切换，遍历快照
	entries := append([]*sceneEntry(nil), sm.stack...)
	for _, e := range entries {
		if !e.paused {
			e.scene.Update(deltaTime)
		}
	}
}

// Draw 自底向上绘制所有运行中的场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	for _, e := range sm.stack {
		e.scene.Draw(screen)
	}
}
