//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.orbitscape -o build/android/orbitscape.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Orbitscape.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/orbitscape/pkg/app"
	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/game"
)

func init() {
	storage, err := game.OpenSettingsStorage("orbitscape")
	if err != nil {
		log.Printf("[Mobile] Warning: %v (settings will not persist)", err)
		storage = nil
	}
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		log.Printf("[Mobile] Warning: failed to load settings: %v (using defaults)", err)
	}

	// 移动端默认低性能模式（utils.IsMobile 恒为 true），引擎调参使用内置默认值
	cfg := app.Config{
		Verbose:  true,
		Variant:  settings.PreferredVariant(),
		Engine:   config.DefaultEngineConfig(),
		Settings: settings,
		Seed:     1,
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("引擎初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
