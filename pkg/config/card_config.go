package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CardConfig 贺卡内容与演出参数
// 对应 data/card.yaml，所有场景从这里读取文案、时长和配色
type CardConfig struct {
	Recipient   string            `yaml:"recipient"`
	Palette     Palette           `yaml:"palette"`
	Envelope    EnvelopeConfig    `yaml:"envelope"`
	Letter      LetterConfig      `yaml:"letter"`
	Explore     ExploreConfig     `yaml:"explore"`
	Dialog      DialogConfig      `yaml:"dialog"`
	Celebration CelebrationConfig `yaml:"celebration"`
}

// Palette 全局配色
type Palette struct {
	Paper      HexColor `yaml:"paper"`      // 信封/信纸场景背景
	Ink        HexColor `yaml:"ink"`        // 提示文字
	Blush      HexColor `yaml:"blush"`      // 庆祝场景背景
	Accent     HexColor `yaml:"accent"`     // 对话框边框、按钮
	AccentSoft HexColor `yaml:"accentSoft"` // 对话框内边框
	Message    HexColor `yaml:"message"`    // 祝福语文字
	Muted      HexColor `yaml:"muted"`      // 次要提示
}

// BlinkConfig 提示文字的呼吸闪烁（alpha 往返，无限循环）
type BlinkConfig struct {
	Period   time.Duration `yaml:"period"`
	MinAlpha float64       `yaml:"minAlpha"`
}

// EnvelopeConfig 信封开启场景
type EnvelopeConfig struct {
	Prompt        string        `yaml:"prompt"`
	FrameCount    int           `yaml:"frameCount"`
	Columns       int           `yaml:"columns"`
	CellSize      int           `yaml:"cellSize"`
	DisplaySize   float64       `yaml:"displaySize"`
	FrameDuration time.Duration `yaml:"frameDuration"`
	HoldAfter     time.Duration `yaml:"holdAfter"`
	PromptOffsetY float64       `yaml:"promptOffsetY"` // 距离底部
	Blink         BlinkConfig   `yaml:"blink"`
	Sound         SoundCue      `yaml:"sound"`
}

// LetterConfig 信纸滑入场景
type LetterConfig struct {
	Prompt        string        `yaml:"prompt"`
	Title         string        `yaml:"title"`
	Body          []string      `yaml:"body"`
	StartY        float64       `yaml:"startY"`
	FitRatio      float64       `yaml:"fitRatio"`
	Slide         time.Duration `yaml:"slide"`
	SlideEase     string        `yaml:"slideEase"` // 缓动名，如 "Cubic.easeOut"
	PromptOffsetY float64       `yaml:"promptOffsetY"`
	Blink         BlinkConfig   `yaml:"blink"`
	Sound         SoundCue      `yaml:"sound"`
}

// Point01 以地图尺寸为单位的相对坐标（0~1）
type Point01 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// NPCConfig 探索场景中的对话角色
type NPCConfig struct {
	Name       string   `yaml:"name"`
	Position   Point01  `yaml:"position"`
	Scale      float64  `yaml:"scale"`
	TalkRadius float64  `yaml:"talkRadius"`
	Lines      []string `yaml:"lines"`
}

// ExploreConfig 俯视角探索场景
type ExploreConfig struct {
	Instructions  string        `yaml:"instructions"`
	TalkHint      string        `yaml:"talkHint"`
	CounterFormat string        `yaml:"counterFormat"`
	PlayerSpeed   float64       `yaml:"playerSpeed"`
	PlayerScale   float64       `yaml:"playerScale"`
	CameraLerp    float64       `yaml:"cameraLerp"`
	HeartScale    float64       `yaml:"heartScale"`
	FinishDelay   time.Duration `yaml:"finishDelay"`
	Hearts        []Point01     `yaml:"hearts"`
	NPC           NPCConfig     `yaml:"npc"`
	CollectSound  SoundCue      `yaml:"collectSound"`
	CollectBurst  string        `yaml:"collectBurst"` // particles.yaml 中的发射器名
}

// DialogConfig 对话弹窗
type DialogConfig struct {
	CloseLabel   string        `yaml:"closeLabel"`
	MaxWidth     float64       `yaml:"maxWidth"`
	MaxHeight    float64       `yaml:"maxHeight"`
	OverlayAlpha float64       `yaml:"overlayAlpha"`
	Open         time.Duration `yaml:"open"`
	OpenEase     string        `yaml:"openEase"`
	Close        time.Duration `yaml:"close"`
	Hover        time.Duration `yaml:"hover"`
	Sound        SoundCue      `yaml:"sound"`
}

// CelebrationConfig 结尾庆祝场景
type CelebrationConfig struct {
	Message        string        `yaml:"message"` // {name} 会被替换为 Recipient
	Prompt         string        `yaml:"prompt"`
	FadeIn         time.Duration `yaml:"fadeIn"`
	FadeOut        time.Duration `yaml:"fadeOut"`
	Pop            time.Duration `yaml:"pop"`
	PopEase        string        `yaml:"popEase"`
	MessageFade    time.Duration `yaml:"messageFade"`
	FloatingHearts int           `yaml:"floatingHearts"`
	FloatingDelay  time.Duration `yaml:"floatingDelay"`
	Emitter        string        `yaml:"emitter"`
	Blink          BlinkConfig   `yaml:"blink"`
	Music          SoundCue      `yaml:"music"`
}

// SoundCue 一次音效播放：资源ID + 相对音量
type SoundCue struct {
	ID     string  `yaml:"id"`
	Volume float64 `yaml:"volume"`
}

// DefaultCardConfig 返回内置的默认贺卡配置
func DefaultCardConfig() *CardConfig {
	return &CardConfig{
		Recipient: "Kayla",
		Palette: Palette{
			Paper:      MustHexColor("#f5e6d3"),
			Ink:        MustHexColor("#8B4513"),
			Blush:      MustHexColor("#FFE4E1"),
			Accent:     MustHexColor("#FF6B9D"),
			AccentSoft: MustHexColor("#FFB6C1"),
			Message:    MustHexColor("#FF1744"),
			Muted:      MustHexColor("#888888"),
		},
		Envelope: EnvelopeConfig{
			Prompt:        "Tap untuk membuka surat",
			FrameCount:    9,
			Columns:       3,
			CellSize:      683,
			DisplaySize:   400,
			FrameDuration: 111 * time.Millisecond,
			HoldAfter:     time.Second,
			PromptOffsetY: 100,
			Blink:         BlinkConfig{Period: 800 * time.Millisecond, MinAlpha: 0.3},
			Sound:         SoundCue{ID: "SOUND_OPEN", Volume: 0.5},
		},
		Letter: LetterConfig{
			Prompt:        "Tap untuk melanjutkan ke permainan",
			Title:         "Untuk {name}",
			Body:          []string{"Selamat ulang tahun!", "Ada hati yang tersembunyi di taman.", "Temukan semuanya, ya."},
			StartY:        -300,
			FitRatio:      0.85,
			Slide:         1500 * time.Millisecond,
			SlideEase:     "Cubic.easeOut",
			PromptOffsetY: 80,
			Blink:         BlinkConfig{Period: 700 * time.Millisecond, MinAlpha: 0.5},
			Sound:         SoundCue{ID: "SOUND_SLIDE", Volume: 0.4},
		},
		Explore: ExploreConfig{
			Instructions:  "Gunakan WASD atau Arrow Keys untuk bergerak",
			TalkHint:      "Tekan Spasi untuk bicara",
			CounterFormat: "Hati: %d / %d",
			PlayerSpeed:   160,
			PlayerScale:   0.3,
			CameraLerp:    0.1,
			HeartScale:    0.6,
			FinishDelay:   800 * time.Millisecond,
			Hearts: []Point01{
				{X: 0.15, Y: 0.2}, {X: 0.8, Y: 0.15}, {X: 0.3, Y: 0.75},
				{X: 0.85, Y: 0.8}, {X: 0.55, Y: 0.55},
			},
			NPC: NPCConfig{
				Name:       "Miko",
				Position:   Point01{X: 0.45, Y: 0.3},
				Scale:      0.4,
				TalkRadius: 90,
				Lines: []string{
					"Halo! Ada lima hati yang tersebar di taman ini.",
					"Kumpulkan semuanya untuk kejutan terakhir!",
					"Semangat, kamu pasti bisa!",
				},
			},
			CollectSound: SoundCue{ID: "SOUND_COLLECT", Volume: 0.6},
			CollectBurst: "heart_burst",
		},
		Dialog: DialogConfig{
			CloseLabel:   "Tutup",
			MaxWidth:     600,
			MaxHeight:    250,
			OverlayAlpha: 0.6,
			Open:         300 * time.Millisecond,
			OpenEase:     "Back.easeOut",
			Close:        200 * time.Millisecond,
			Hover:        150 * time.Millisecond,
			Sound:        SoundCue{ID: "SOUND_POP", Volume: 0.5},
		},
		Celebration: CelebrationConfig{
			Message:        "♥ Selamat Ulang Tahun {name}! ♥\n\nTerima kasih sudah menemukan semua hati.\nSemoga hari-harimu selalu dipenuhi cinta dan kebahagiaan!",
			Prompt:         "Tap untuk restart",
			FadeIn:         800 * time.Millisecond,
			FadeOut:        500 * time.Millisecond,
			Pop:            time.Second,
			PopEase:        "Back.easeOut",
			MessageFade:    time.Second,
			FloatingHearts: 5,
			FloatingDelay:  1500 * time.Millisecond,
			Emitter:        "hearts",
			Blink:          BlinkConfig{Period: 800 * time.Millisecond, MinAlpha: 0.3},
			Music:          SoundCue{ID: "SOUND_HAPPY", Volume: 0.5},
		},
	}
}

// LoadCardConfig 解析贺卡 YAML
// 未出现在 YAML 中的字段保留默认值；解析后做合法性校验
func LoadCardConfig(data []byte) (*CardConfig, error) {
	cfg := DefaultCardConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse card config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid card config: %w", err)
	}
	return cfg, nil
}

// Validate 校验配置
func (c *CardConfig) Validate() error {
	if strings.TrimSpace(c.Recipient) == "" {
		return fmt.Errorf("recipient is required")
	}

	env := c.Envelope
	if env.FrameCount < 1 {
		return fmt.Errorf("envelope.frameCount must be at least 1, got %d", env.FrameCount)
	}
	if env.Columns < 1 || env.Columns > env.FrameCount {
		return fmt.Errorf("envelope.columns must be between 1 and frameCount, got %d", env.Columns)
	}
	if env.CellSize < 1 {
		return fmt.Errorf("envelope.cellSize must be positive, got %d", env.CellSize)
	}
	if env.FrameDuration <= 0 {
		return fmt.Errorf("envelope.frameDuration must be positive")
	}

	if c.Letter.FitRatio <= 0 || c.Letter.FitRatio > 1 {
		return fmt.Errorf("letter.fitRatio must be in (0, 1], got %v", c.Letter.FitRatio)
	}
	if c.Letter.Slide <= 0 {
		return fmt.Errorf("letter.slide must be positive")
	}

	exp := c.Explore
	if exp.PlayerSpeed <= 0 {
		return fmt.Errorf("explore.playerSpeed must be positive, got %v", exp.PlayerSpeed)
	}
	if exp.CameraLerp <= 0 || exp.CameraLerp > 1 {
		return fmt.Errorf("explore.cameraLerp must be in (0, 1], got %v", exp.CameraLerp)
	}
	if len(exp.Hearts) == 0 {
		return fmt.Errorf("explore.hearts: at least one heart is required")
	}
	for i, h := range exp.Hearts {
		if !h.inUnitSquare() {
			return fmt.Errorf("explore.hearts[%d]: position (%v, %v) must be within [0, 1]", i, h.X, h.Y)
		}
	}
	if !exp.NPC.Position.inUnitSquare() {
		return fmt.Errorf("explore.npc.position must be within [0, 1]")
	}
	if len(exp.NPC.Lines) == 0 {
		return fmt.Errorf("explore.npc.lines: at least one line is required")
	}
	if exp.NPC.TalkRadius <= 0 {
		return fmt.Errorf("explore.npc.talkRadius must be positive")
	}
	if !strings.Contains(exp.CounterFormat, "%d") {
		return fmt.Errorf("explore.counterFormat must contain %%d verbs, got %q", exp.CounterFormat)
	}

	if c.Dialog.OverlayAlpha < 0 || c.Dialog.OverlayAlpha > 1 {
		return fmt.Errorf("dialog.overlayAlpha must be in [0, 1], got %v", c.Dialog.OverlayAlpha)
	}
	if c.Celebration.FloatingHearts < 0 {
		return fmt.Errorf("celebration.floatingHearts cannot be negative")
	}

	for name, b := range map[string]BlinkConfig{
		"envelope.blink":    env.Blink,
		"letter.blink":      c.Letter.Blink,
		"celebration.blink": c.Celebration.Blink,
	} {
		if b.Period <= 0 {
			return fmt.Errorf("%s.period must be positive", name)
		}
		if b.MinAlpha < 0 || b.MinAlpha > 1 {
			return fmt.Errorf("%s.minAlpha must be in [0, 1], got %v", name, b.MinAlpha)
		}
	}
	return nil
}

// CelebrationMessage 返回替换收件人后的祝福语
func (c *CardConfig) CelebrationMessage() string {
	return strings.ReplaceAll(c.Celebration.Message, "{name}", c.Recipient)
}

// HeartCount 需要收集的爱心数量
func (c *CardConfig) HeartCount() int {
	return len(c.Explore.Hearts)
}

func (p Point01) inUnitSquare() bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}
