package components

// LifetimeComponent 限定实体的存活时间
// 粒子、收集特效等临时实体到期后由 LifetimeSystem 销毁
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大存活时间（秒）
	CurrentLifetime float64 // 已存活时间（秒）
	IsExpired       bool

	// OnExpire 实体被销毁前调用一次
	OnExpire func()
}
