package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/decker502/birthday/pkg/app"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	embedded.Init(dataFS)

	// 环境变量提供默认值，命令行参数覆盖
	launch, err := config.LoadLaunchConfig()
	if err != nil {
		log.Fatalf("启动参数无效: %v", err)
	}
	flag.BoolVar(&launch.Verbose, "verbose", launch.Verbose, "输出详细日志")
	flag.StringVar(&launch.StartScene, "scene", launch.StartScene, "启动场景: envelope, letter, explore, celebration 或 resume")
	flag.IntVar(&launch.WindowWidth, "width", launch.WindowWidth, "窗口宽度")
	flag.IntVar(&launch.WindowHeight, "height", launch.WindowHeight, "窗口高度")
	flag.BoolVar(&launch.Fullscreen, "fullscreen", launch.Fullscreen, "全屏启动")
	flag.BoolVar(&launch.Muted, "mute", launch.Muted, "静音启动")
	flag.StringVar(&launch.CardFile, "card", launch.CardFile, "外部贺卡 YAML")
	flag.StringVar(&launch.AssetDir, "assets", launch.AssetDir, "外部资源目录（覆盖生成的图片/音频/字体）")
	flag.StringVar(&launch.Recipient, "to", launch.Recipient, "收件人名字")
	flag.BoolVar(&launch.NoSave, "no-save", launch.NoSave, "不保存设置和进度")
	flag.Parse()
	if err := launch.Validate(); err != nil {
		log.Fatalf("启动参数无效: %v", err)
	}

	data, err := embedded.FS()
	if err != nil {
		log.Fatal(err)
	}
	var assets fs.FS
	if launch.AssetDir != "" {
		assets = os.DirFS(launch.AssetDir)
	}

	cardApp, err := app.NewApp(app.Config{
		Launch: launch,
		Data:   data,
		Assets: assets,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "贺卡初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(launch.WindowWidth, launch.WindowHeight)
	ebiten.SetWindowTitle("Selamat Ulang Tahun")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if launch.Fullscreen || cardApp.SavedFullscreen() {
		ebiten.SetFullscreen(true)
	}

	runErr := ebiten.RunGame(cardApp)
	if err := cardApp.Shutdown(); err != nil {
		log.Printf("[main] Warning: failed to save on exit: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
