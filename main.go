// orbitscape 程序化动画引擎
//
// 默认打开窗口轮播主场景；窗口不可用时退回终端渲染，终端也不可用时写出静态海报。
//
// 用法：
//
//	orbitscape [--variant hero|energy|parallax|reveal] [--preview] [--scene moon-system]
//	           [--reduced-motion] [--low-power] [--config engine.yaml] [--graphics auto|opengl|metal|directx]
//	           [--terminal] [--verbose]
//
// 窗口内按键：1-6 选择场景，M 减弱动态效果，L 低性能模式，↑/↓ 调整 reveal 进度，F11 全屏，Esc 退出。
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/decker502/orbitscape/pkg/app"
	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/embedded"
	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/utils"
)

const (
	appName    = "orbitscape"
	posterPath = "orbitscape-poster.png"
)

func main() {
	variantName := flag.String("variant", "", "engine variant: hero, energy, parallax, reveal (default: saved preference)")
	preview := flag.Bool("preview", false, "mount two independent instances side by side")
	scene := flag.String("scene", "", "initial hero scene ID (default: last selected)")
	reducedMotion := flag.Bool("reduced-motion", false, "freeze animation time and skip crossfades")
	lowPower := flag.Bool("low-power", false, "cap pixel density at 1x and draw fewer particles")
	configPath := flag.String("config", "", "engine tuning override file (YAML)")
	graphics := flag.String("graphics", "", "preferred window graphics library, saved for later runs: auto, opengl, metal, directx")
	terminal := flag.Bool("terminal", false, "render in the terminal instead of a window")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	// 配置日志输出
	if *verbose {
		gg.SetLogger(slog.Default())
	} else {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 初始化嵌入资源
	embedded.Init(dataFS)

	engineCfg, err := loadEngineConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	settings := openSettings()

	variant, err := settings.ApplyOverrides(*variantName, *graphics)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg := app.Config{
		Verbose:       *verbose,
		Variant:       variant,
		Preview:       *preview,
		ReducedMotion: *reducedMotion || utils.EnvFlag("ORBITSCAPE_REDUCED_MOTION"),
		LowPower:      *lowPower || utils.EnvFlag("ORBITSCAPE_LOW_POWER"),
		Scene:         *scene,
		Engine:        engineCfg,
		Settings:      settings,
		Seed:          1,
	}

	if err := run(cfg, *terminal, settings.GetSettings().GraphicsLibrary); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run 依次尝试窗口、终端、静态海报
func run(cfg app.Config, terminalOnly bool, graphicsLibrary string) error {
	var errs []error

	if !terminalOnly {
		err := runWindow(cfg, graphicsLibrary)
		if err == nil {
			return nil
		}
		log.Printf("[Main] Window host unavailable: %v", err)
		errs = append(errs, err)
	}

	err := app.RunTerminal(cfg)
	if err == nil {
		return nil
	}
	log.Printf("[Main] Terminal host unavailable: %v", err)
	errs = append(errs, err)

	if err := app.WritePoster(cfg, app.DefaultPosterOptions(), posterPath); err != nil {
		errs = append(errs, err)
		return fmt.Errorf("no surface available: %w", errors.Join(errs...))
	}
	fmt.Fprintf(os.Stderr, "no interactive surface available, wrote %s\n", posterPath)
	return nil
}

// runWindow 运行窗口宿主；图形后端初始化时的 panic 也视为不可用
func runWindow(cfg app.Config, graphicsLibrary string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("window host panic: %v", r)
		}
	}()

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		return err
	}
	defer gameApp.Close()
	return gameApp.Run("Orbitscape", graphicsLibrary)
}

// loadEngineConfig 读取嵌入的调参文件，--config 指定时改用磁盘文件
func loadEngineConfig(path string) (*config.EngineConfig, error) {
	if path != "" {
		return config.LoadEngineConfig(path)
	}
	data, err := embedded.ReadFile(embedded.EngineConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded engine config: %w", err)
	}
	return config.ParseEngineConfig(data)
}

// openSettings 打开偏好存储，失败时使用仅内存的降级模式
func openSettings() *game.SettingsManager {
	storage, err := game.OpenSettingsStorage(appName)
	if err != nil {
		log.Printf("[Main] Warning: %v (settings will not persist)", err)
		storage = nil
	}
	settings, err := game.NewSettingsManager(storage)
	if err != nil {
		log.Printf("[Main] Warning: failed to load settings: %v (using defaults)", err)
	}
	return settings
}
