package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface and its lifecycle hooks.
type MockScene struct {
	name string
	log  *[]string

	updates   int
	drawCalls int
	deltaTime float64
	enterData any
	width     int
	height    int
}

func (m *MockScene) record(event string) {
	if m.log != nil {
		*m.log = append(*m.log, m.name+":"+event)
	}
}

func (m *MockScene) Update(deltaTime float64) {
	m.updates++
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) { m.drawCalls++ }
func (m *MockScene) OnEnter(data any)          { m.enterData = data; m.record("enter") }
func (m *MockScene) OnExit()                   { m.record("exit") }
func (m *MockScene) OnPause()                  { m.record("pause") }
func (m *MockScene) OnResume()                 { m.record("resume") }
func (m *MockScene) OnResize(w, h int)         { m.width, m.height = w, h }

// newTestManager 注册 envelope/explore/dialog 三个模拟场景
func newTestManager(events *[]string) (*SceneManager, map[string]*MockScene) {
	sm := NewSceneManager()
	created := make(map[string]*MockScene)
	for _, key := range []string{"envelope", "explore", "dialog"} {
		key := key
		sm.Register(key, func() Scene {
			s := &MockScene{name: key, log: events}
			created[key] = s
			return s
		})
	}
	return sm, created
}

// TestNewSceneManager verifies that NewSceneManager creates an empty manager.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no current scene initially")
	}
	if sm.CurrentKey() != "" {
		t.Errorf("Expected empty key, got %q", sm.CurrentKey())
	}
}

// TestSceneManagerStart verifies Start is deferred to the next Update and replaces scenes.
func TestSceneManagerStart(t *testing.T) {
	var events []string
	sm, created := newTestManager(&events)

	sm.Start("envelope", 42)
	if sm.GetCurrentScene() != nil {
		t.Fatal("Start should not take effect before Update")
	}

	sm.Update(0.016)
	env := created["envelope"]
	if sm.CurrentKey() != "envelope" || env.updates != 1 {
		t.Fatalf("Expected envelope running and updated once, key=%q updates=%d", sm.CurrentKey(), env.updates)
	}
	if env.enterData != 42 {
		t.Errorf("Expected enter data 42, got %v", env.enterData)
	}

	sm.Start("explore", nil)
	sm.Update(0.016)
	if sm.IsActive("envelope") || !sm.IsActive("explore") {
		t.Error("Start should replace the running scene")
	}
	want := []string{"envelope:enter", "envelope:exit", "explore:enter"}
	assertEvents(t, events, want)
}

// TestSceneManagerLaunchOverlay verifies overlays pause their parent and resume it on Stop.
func TestSceneManagerLaunchOverlay(t *testing.T) {
	var events []string
	sm, created := newTestManager(&events)

	sm.Start("explore", nil)
	sm.Update(0)
	sm.Launch("dialog", "Halo!")
	sm.Update(0.016)

	explore, dialog := created["explore"], created["dialog"]
	if !sm.IsPaused("explore") {
		t.Error("Parent scene should be paused while overlay is running")
	}
	if explore.updates != 1 {
		t.Errorf("Paused scene must not update, got %d updates", explore.updates)
	}
	if dialog.updates != 1 || dialog.enterData != "Halo!" {
		t.Errorf("Overlay not running correctly: updates=%d data=%v", dialog.updates, dialog.enterData)
	}
	if sm.CurrentKey() != "dialog" {
		t.Errorf("Expected dialog on top, got %q", sm.CurrentKey())
	}

	// 暂停的父场景仍然绘制
	sm.Draw(nil)
	if explore.drawCalls != 1 || dialog.drawCalls != 1 {
		t.Errorf("Expected both scenes drawn, explore=%d dialog=%d", explore.drawCalls, dialog.drawCalls)
	}

	sm.Stop("dialog")
	sm.Update(0.016)
	if sm.IsActive("dialog") || sm.IsPaused("explore") {
		t.Error("Stopping overlay should resume parent")
	}
	if explore.updates != 2 {
		t.Errorf("Resumed scene should update again, got %d", explore.updates)
	}

	want := []string{"explore:enter", "explore:pause", "dialog:enter", "dialog:exit", "explore:resume"}
	assertEvents(t, events, want)
}

// TestSceneManagerErrors verifies invalid requests are reported and ignored.
func TestSceneManagerErrors(t *testing.T) {
	sm, _ := newTestManager(nil)

	sm.Start("missing", nil)
	if err := sm.Flush(); err == nil {
		t.Error("Expected error for unknown scene")
	}

	sm.Stop("explore")
	if err := sm.Flush(); err == nil {
		t.Error("Expected error stopping a scene that is not running")
	}

	sm.Start("explore", nil)
	sm.Launch("dialog", nil)
	sm.Launch("dialog", nil)
	if err := sm.Flush(); err == nil {
		t.Error("Expected error launching a running overlay twice")
	}
	if len(sm.Scenes()) != 2 {
		t.Errorf("Expected 2 running scenes, got %d", len(sm.Scenes()))
	}
}

// TestSceneManagerScreenSize verifies resize propagation to running and new scenes.
func TestSceneManagerScreenSize(t *testing.T) {
	sm, created := newTestManager(nil)
	sm.SetScreenSize(1024, 768)

	sm.Start("envelope", nil)
	sm.Update(0)
	if env := created["envelope"]; env.width != 1024 || env.height != 768 {
		t.Errorf("New scene should receive screen size, got %dx%d", env.width, env.height)
	}

	sm.SetScreenSize(800, 600)
	if env := created["envelope"]; env.width != 800 || env.height != 600 {
		t.Errorf("Running scene should receive resize, got %dx%d", env.width, env.height)
	}
	if w, h := sm.ScreenSize(); w != 800 || h != 600 {
		t.Errorf("ScreenSize = %dx%d, want 800x600", w, h)
	}
}

func assertEvents(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Event[%d] = %q, want %q (all: %v)", i, got[i], want[i], got)
		}
	}
}
