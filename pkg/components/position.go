package components

// PositionComponent 实体的世界坐标（显示对象的锚点位置）
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒），由 PhysicsSystem 积分到位置
type VelocityComponent struct {
	VX float64
	VY float64
}
