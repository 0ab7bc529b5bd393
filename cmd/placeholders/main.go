// Package main 导出贺卡的程序化资源，作为外部资源目录的起点
//
// Usage:
//
//	go run ./cmd/placeholders [flags]
//
// Flags:
//
//	--config <file>   资源清单（默认 data/resources.yaml）
//	--out <dir>       输出目录（默认 assets）
//	--only <id,...>   只导出指定资源 ID
//
// 导出的文件按清单中的 path 放置（未声明 path 的按 ID 命名），
// 修改后用 `birthday --assets <dir>` 启动即可替换生成的图片和音效。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/decker502/birthday/internal/audio"
	"github.com/decker502/birthday/internal/placeholders"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/game"
)

var (
	configFlag = flag.String("config", "data/resources.yaml", "Resource manifest")
	outFlag    = flag.String("out", "assets", "Output directory")
	onlyFlag   = flag.String("only", "", "Comma separated resource IDs to export")
)

func main() {
	flag.Parse()

	data, err := os.ReadFile(*configFlag)
	if err != nil {
		log.Fatalf("读取资源清单失败: %v", err)
	}
	cfg, err := game.ParseResourceConfig(data)
	if err != nil {
		log.Fatalf("解析资源清单失败: %v", err)
	}

	var only []string
	if *onlyFlag != "" {
		only = strings.Split(*onlyFlag, ",")
	}

	exported, err := export(cfg, *outFlag, only)
	if err != nil {
		log.Fatalf("导出失败: %v", err)
	}
	fmt.Printf("Exported %d resources to %s\n", exported, *outFlag)
}

// export 把带生成器的图片写成 PNG、带音色的音频写成 WAV，返回导出数量
// only 为空时导出全部
func export(cfg *game.ResourceConfig, outDir string, only []string) (int, error) {
	wanted := func(id string) bool { return len(only) == 0 || slices.Contains(only, id) }

	groups := make([]string, 0, len(cfg.Groups))
	for name := range cfg.Groups {
		groups = append(groups, name)
	}
	slices.Sort(groups)

	exported := 0
	for _, name := range groups {
		group := cfg.Groups[name]
		for _, img := range group.Images {
			if img.Generator == nil || !wanted(img.ID) {
				continue
			}
			dst := outputPath(outDir, cfg.BasePath, img.Path, "images", img.ID, ".png")
			if err := exportImage(img, dst); err != nil {
				return exported, fmt.Errorf("%s: %w", img.ID, err)
			}
			fmt.Printf("%-16s -> %s\n", img.ID, dst)
			exported++
		}
		for _, snd := range group.Sounds {
			if snd.Tone == nil || !wanted(snd.ID) {
				continue
			}
			dst := outputPath(outDir, cfg.BasePath, snd.Path, "sounds", snd.ID, ".wav")
			if err := exportSound(snd, dst); err != nil {
				return exported, fmt.Errorf("%s: %w", snd.ID, err)
			}
			fmt.Printf("%-16s -> %s\n", snd.ID, dst)
			exported++
		}
	}
	return exported, nil
}

// outputPath 清单声明了 path 时沿用，否则按 ID 生成文件名
func outputPath(outDir, base, declared, kind, id, ext string) string {
	rel := declared
	if rel == "" {
		rel = filepath.Join(kind, strings.ToLower(id)+ext)
	}
	return filepath.Join(outDir, base, rel)
}
func exportImage(img game.ImageResource, dst string) error {
	generated, err := placeholders.Generate(img.Generator.PlaceholderSpec(img.Cols))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return placeholders.SavePNG(generated, dst)
}

func exportSound(snd game.SoundResource, dst string) error {
	tone, err := snd.Tone.AudioTone()
	if err != nil {
		return err
	}
	stream, err := audio.Synthesize(tone, config.AudioSampleRate)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	return stream.WriteWAV(f)
}
