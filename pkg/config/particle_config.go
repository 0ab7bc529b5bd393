package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Range 闭区间随机取值 [Min, Max]
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// StartEnd 粒子生命周期内从 Start 线性过渡到 End
type StartEnd struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// EmitterConfig 粒子发射器配置（data/particles.yaml 中的一项）
//
// 示例:
//
//	hearts:
//	  image: IMAGE_HEART
//	  speed: {min: 50, max: 100}
//	  angle: {min: 250, max: 290}
//	  scale: {start: 0.3, end: 0}
//	  alpha: {start: 1, end: 0}
//	  lifespan: 2s
//	  frequency: 300ms
//	  additive: true
type EmitterConfig struct {
	Image     string        `yaml:"image"`     // 贴图资源ID
	Speed     Range         `yaml:"speed"`     // 初速度（像素/秒）
	Angle     Range         `yaml:"angle"`     // 发射角（度，0 为向右，顺时针，270 为向上）
	Scale     StartEnd      `yaml:"scale"`     // 缩放变化
	Alpha     StartEnd      `yaml:"alpha"`     // 透明度变化
	Spin      Range         `yaml:"spin"`      // 自转速度（度/秒）
	Lifespan  time.Duration `yaml:"lifespan"`  // 单个粒子寿命
	Frequency time.Duration `yaml:"frequency"` // 发射间隔；0 表示只做一次性爆发
	Quantity  int           `yaml:"quantity"`  // 每次发射的数量
	Gravity   float64       `yaml:"gravity"`   // Y 方向加速度（像素/秒²）
	MaxAlive  int           `yaml:"maxAlive"`  // 同时存活上限，0 不限
	Additive  bool          `yaml:"additive"`  // 加色混合
}

// ParticleConfigs 发射器名 -> 配置
type ParticleConfigs map[string]EmitterConfig

// LoadParticleConfigs 解析粒子配置 YAML 并校验每个发射器
func LoadParticleConfigs(data []byte) (ParticleConfigs, error) {
	var raw map[string]EmitterConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse particle config YAML: %w", err)
	}

	configs := make(ParticleConfigs, len(raw))
	for name, ec := range raw {
		if ec.Quantity == 0 {
			ec.Quantity = 1
		}
		if err := ec.Validate(); err != nil {
			return nil, fmt.Errorf("emitter %q: %w", name, err)
		}
		configs[name] = ec
	}
	return configs, nil
}

// Validate 校验发射器参数
func (ec EmitterConfig) Validate() error {
	if ec.Image == "" {
		return fmt.Errorf("image is required")
	}
	if ec.Lifespan <= 0 {
		return fmt.Errorf("lifespan must be positive")
	}
	if ec.Frequency < 0 {
		return fmt.Errorf("frequency cannot be negative")
	}
	if ec.Quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", ec.Quantity)
	}
	if ec.Speed.Min > ec.Speed.Max {
		return fmt.Errorf("speed.min (%v) > speed.max (%v)", ec.Speed.Min, ec.Speed.Max)
	}
	if ec.Angle.Min > ec.Angle.Max {
		return fmt.Errorf("angle.min (%v) > angle.max (%v)", ec.Angle.Min, ec.Angle.Max)
	}
	if ec.Spin.Min > ec.Spin.Max {
		return fmt.Errorf("spin.min (%v) > spin.max (%v)", ec.Spin.Min, ec.Spin.Max)
	}
	return nil
}

// Get 按名称取发射器配置
func (pc ParticleConfigs) Get(name string) (EmitterConfig, bool) {
	ec, ok := pc[name]
	return ec, ok
}
