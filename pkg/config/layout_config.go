package config

// 布局配置常量
// 场景内坐标均以逻辑屏幕尺寸为准，窗口缩放由 Ebitengine 处理

const (
	// DefaultWindowWidth 默认窗口宽度
	DefaultWindowWidth = 1024
	// DefaultWindowHeight 默认窗口高度
	DefaultWindowHeight = 768

	// MinLogicalWidth / MinLogicalHeight 逻辑屏幕尺寸下限，窗口过小时防止布局塌陷
	MinLogicalWidth  = 320
	MinLogicalHeight = 240

	// AudioSampleRate 音频上下文采样率
	AudioSampleRate = 48000

	// FrameDeltaTime 固定帧间隔（Ebitengine 默认 60 TPS）
	FrameDeltaTime = 1.0 / 60.0
)

// 生成占位贴图的尺寸（像素）
const (
	LetterImageWidth  = 600
	LetterImageHeight = 800

	MapImageWidth  = 1600
	MapImageHeight = 1200

	CharacterImageSize = 256
	NPCImageSize       = 192
	HeartImageSize     = 64
	HugImageWidth      = 480
	HugImageHeight     = 360
)

// 渲染层级
const (
	DepthBackground = 0
	DepthWorld      = 1
	DepthEffects    = 5
	DepthPlayer     = 10
	DepthHUD        = 100
	DepthOverlay    = 200
)

// FitScale 返回让 (srcW, srcH) 完整放入 (maxW, maxH) 的缩放比例
func FitScale(maxW, maxH, srcW, srcH float64) float64 {
	if srcW <= 0 || srcH <= 0 {
		return 1
	}
	return min(maxW/srcW, maxH/srcH)
}

// CoverScale 返回让 (srcW, srcH) 完整覆盖 (w, h) 的缩放比例
func CoverScale(w, h, srcW, srcH float64) float64 {
	if srcW <= 0 || srcH <= 0 {
		return 1
	}
	return max(w/srcW, h/srcH)
}
