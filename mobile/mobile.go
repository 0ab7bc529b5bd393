//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。手动构建：
//
//	# Android
//	cp -r data mobile/ && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.birthday -o build/android/birthday.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/ && ebitenmobile bind -target ios -tags mobile -o build/ios/Birthday.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/birthday/pkg/app"
	"github.com/decker502/birthday/pkg/config"
	"github.com/decker502/birthday/pkg/embedded"
	"github.com/decker502/birthday/pkg/game"
)

func init() {
	// 初始化嵌入数据
	embedded.Init(dataFS)
	data, err := embedded.FS()
	if err != nil {
		log.Fatalf("贺卡初始化失败: %v", err)
	}

	// 移动端没有环境变量，使用默认启动参数
	launch := &config.LaunchConfig{
		Verbose:      true,
		StartScene:   "envelope",
		WindowWidth:  config.DefaultWindowWidth,
		WindowHeight: config.DefaultWindowHeight,
		AppName:      game.DefaultAppName,
	}

	cardApp, err := app.NewApp(app.Config{Launch: launch, Data: data})
	if err != nil {
		log.Fatalf("贺卡初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(cardApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
