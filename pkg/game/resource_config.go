package game

import (
	"fmt"
	"time"

	"github.com/decker502/birthday/internal/audio"
	"github.com/decker502/birthday/internal/placeholders"
	"github.com/decker502/birthday/pkg/config"
	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It defines the structure of data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"` // 外部资源目录中的相对路径前缀
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组一起加载的资源
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"`
	Sounds []SoundResource `yaml:"sounds"`
	Fonts  []FontResource  `yaml:"fonts"`
}

// ImageResource 图片资源
//
// Path 指向外部 PNG/JPEG（可选，存在时优先）；否则按 Generator 程序化生成。
//
//   - id: IMAGE_HEART
//     path: images/heart.png
//     generator: {kind: heart, width: 64, height: 64, color: "#FF1744"}
type ImageResource struct {
	ID        string         `yaml:"id"`
	Path      string         `yaml:"path,omitempty"`
	Cols      int            `yaml:"cols,omitempty"` // 精灵表列数
	Rows      int            `yaml:"rows,omitempty"` // 精灵表行数
	Generator *GeneratorSpec `yaml:"generator,omitempty"`
}

// GeneratorSpec 占位图生成参数（见 internal/placeholders）
type GeneratorSpec struct {
	Kind   string          `yaml:"kind"`
	Width  int             `yaml:"width"`
	Height int             `yaml:"height"`
	Frames int             `yaml:"frames,omitempty"`
	Color  config.HexColor `yaml:"color,omitempty"`
	Accent config.HexColor `yaml:"accent,omitempty"`
	Seed   uint64          `yaml:"seed,omitempty"`
}

// SoundResource 音频资源
//
// Path 指向外部 WAV/MP3/OGG（可选，存在时优先）；否则按 Tone 合成。
//
//   - id: SOUND_COLLECT
//     tone: {waveform: triangle, notes: [880, 1318.5], noteLength: 70ms}
type SoundResource struct {
	ID   string    `yaml:"id"`
	Path string    `yaml:"path,omitempty"`
	Loop bool      `yaml:"loop,omitempty"` // 背景音乐循环播放
	Tone *ToneSpec `yaml:"tone,omitempty"`
}

// ToneSpec 合成音效参数，Notes 为频率（Hz），0 表示休止
type ToneSpec struct {
	Waveform   string        `yaml:"waveform"`
	Notes      []float64     `yaml:"notes"`
	NoteLength time.Duration `yaml:"noteLength"`
	Gain       float64       `yaml:"gain,omitempty"`
	Fade       time.Duration `yaml:"fade,omitempty"`
}

// FontResource 字体资源
//
// Face 为内置 Go 字体（regular / bold / italic / mono），Path 指向外部 TTF/OTF 时优先。
//
//   - id: FONT_TITLE
//     face: bold
//     size: 32
type FontResource struct {
	ID   string  `yaml:"id"`
	Face string  `yaml:"face,omitempty"`
	Path string  `yaml:"path,omitempty"`
	Size float64 `yaml:"size"`
}

// ParseResourceConfig 解析资源配置并校验
func ParseResourceConfig(data []byte) (*ResourceConfig, error) {
	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查资源ID唯一，以及每个资源至少有一种来源
func (c *ResourceConfig) Validate() error {
	seen := make(map[string]string)
	claim := func(id, group string) error {
		if id == "" {
			return fmt.Errorf("group %s: resource with empty id", group)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("duplicate resource id %s (groups %s and %s)", id, prev, group)
		}
		seen[id] = group
		return nil
	}

	for name, group := range c.Groups {
		for _, img := range group.Images {
			if err := claim(img.ID, name); err != nil {
				return err
			}
			if img.Path == "" && img.Generator == nil {
				return fmt.Errorf("image %s: needs a path or a generator", img.ID)
			}
		}
		for _, snd := range group.Sounds {
			if err := claim(snd.ID, name); err != nil {
				return err
			}
			if snd.Path == "" && snd.Tone == nil {
				return fmt.Errorf("sound %s: needs a path or a tone", snd.ID)
			}
		}
		for _, font := range group.Fonts {
			if err := claim(font.ID, name); err != nil {
				return err
			}
			if font.Size <= 0 {
				return fmt.Errorf("font %s: size must be positive", font.ID)
			}
			if font.Path == "" {
				if _, err := goFontTTF(font.Face); err != nil {
					return fmt.Errorf("font %s: %w", font.ID, err)
				}
			}
		}
	}
	return nil
}

// PlaceholderSpec 转换为占位图生成参数
func (g GeneratorSpec) PlaceholderSpec(cols int) placeholders.Spec {
	return placeholders.Spec{
		Kind:    placeholders.Kind(g.Kind),
		Width:   g.Width,
		Height:  g.Height,
		Columns: cols,
		Frames:  g.Frames,
		Color:   g.Color.RGBA(),
		Accent:  g.Accent.RGBA(),
		Seed:    g.Seed,
	}
}

// AudioTone 转换为合成器输入
func (t ToneSpec) AudioTone() (audio.Tone, error) {
	wave, err := audio.ParseWaveform(t.Waveform)
	if err != nil {
		return audio.Tone{}, err
	}
	if len(t.Notes) == 0 {
		return audio.Tone{}, fmt.Errorf("tone has no notes")
	}
	if t.NoteLength <= 0 {
		return audio.Tone{}, fmt.Errorf("tone noteLength must be positive")
	}
	gain := t.Gain
	if gain == 0 {
		gain = 0.5
	}
	fade := t.Fade
	if fade == 0 {
		fade = 5 * time.Millisecond
	}

	notes := make([]audio.Note, len(t.Notes))
	for i, f := range t.Notes {
		notes[i] = audio.Note{Freq: f, Duration: t.NoteLength}
	}
	return audio.Tone{Notes: notes, Waveform: wave, Gain: gain, Fade: fade}, nil
}

// buildFullPath constructs the full file path for a resource.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
