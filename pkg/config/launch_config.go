package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// LaunchConfig 启动参数
// 先从环境变量读取，命令行参数可再覆盖（见 main.go）
type LaunchConfig struct {
	Verbose bool `env:"BIRTHDAY_VERBOSE"`
	// StartScene 启动场景键；"resume" 表示从上次到达的场景继续
	StartScene   string `env:"BIRTHDAY_START_SCENE" envDefault:"envelope"`
	WindowWidth  int    `env:"BIRTHDAY_WIDTH" envDefault:"1024"`
	WindowHeight int    `env:"BIRTHDAY_HEIGHT" envDefault:"768"`
	Fullscreen   bool   `env:"BIRTHDAY_FULLSCREEN"`
	Muted        bool   `env:"BIRTHDAY_MUTED"`
	// CardFile 外部贺卡 YAML，为空则使用内置 data/card.yaml
	CardFile string `env:"BIRTHDAY_CARD_FILE"`
	// AssetDir 外部资源目录，其中的图片/音频/字体覆盖生成的资源
	AssetDir string `env:"BIRTHDAY_ASSET_DIR"`
	// Recipient 覆盖贺卡中的收件人名字
	Recipient string `env:"BIRTHDAY_RECIPIENT"`
	// NoSave 禁用 gdata 持久化（设置和进度只保存在内存中）
	NoSave  bool   `env:"BIRTHDAY_NO_SAVE"`
	AppName string `env:"BIRTHDAY_APP_NAME" envDefault:"birthday_card"`
}

// LoadLaunchConfig 从环境变量解析启动参数
func LoadLaunchConfig() (*LaunchConfig, error) {
	cfg := &LaunchConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验启动参数
func (c *LaunchConfig) Validate() error {
	if c.WindowWidth < MinLogicalWidth || c.WindowHeight < MinLogicalHeight {
		return fmt.Errorf("window size %dx%d is below the minimum %dx%d",
			c.WindowWidth, c.WindowHeight, MinLogicalWidth, MinLogicalHeight)
	}
	if c.AppName == "" {
		return fmt.Errorf("app name is required")
	}
	return nil
}
