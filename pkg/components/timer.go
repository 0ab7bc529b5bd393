package components

// TimerComponent 延迟回调计时器
// 由 TimerSystem 推进，到时后调用 Callback；Repeat 为 true 时重新计时
type TimerComponent struct {
	Name        string  // 计时器名称，便于日志排查，如 "envelope_frame"
	TargetTime  float64 // 目标时间（秒）
	CurrentTime float64 // 当前已过时间（秒）
	IsReady     bool    // 计时器是否已完成
	Repeat      bool
	Paused      bool
	Callback    func()
}
