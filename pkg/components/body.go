package components

// BodyComponent 轴对齐碰撞盒（中心对齐实体位置）
type BodyComponent struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64

	// CollideWorldBounds 为 true 时位置被限制在 PhysicsSystem 的世界边界内
	CollideWorldBounds bool

	// BlockedX / BlockedY 本帧是否被世界边界挡住
	BlockedX bool
	BlockedY bool
}

// PlayerComponent 标记玩家控制的角色
type PlayerComponent struct {
	Speed  float64 // 像素/秒
	Moving bool
	// FacingLeft 最近一次水平移动方向，用于翻转贴图
	FacingLeft bool
}

// CollectibleComponent 可收集道具（爱心）
type CollectibleComponent struct {
	Index     int  // 在配置中的序号，用于进度持久化
	Collected bool // 已被收集（等待销毁）
}

// NPCComponent 可对话角色
type NPCComponent struct {
	Name       string
	Lines      []string
	NextLine   int     // 下一次对话使用的台词序号，最后一句重复
	TalkRadius float64 // 玩家距离小于该值时可以对话
	InRange    bool
}
