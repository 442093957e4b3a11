// Package main provides a snapshot tool that renders engine variants to PNG
// through the software rasterizer, without opening a window.
//
// Usage:
//
//	go run ./cmd/snapshot [flags]
//
// Flags:
//
//	--variant <name>     Variant to render: hero, energy, parallax, reveal (default: "hero")
//	--scene <id>         Hero scene ID (default: first scene)
//	--time <duration>    Animation time to render at (default: 2s)
//	--width/--height     Logical size (default: 1280x720)
//	--density <ratio>    Pixel density (default: 1)
//	--progress <0..1>    External progress for the reveal variant (default: 1)
//	--reduced-motion     Render the static reduced-motion form
//	--all                Render every variant and hero scene into --out (a directory)
//	--out <path>         Output file, or directory with --all (default: "snapshot.png")
//	--config <path>      Engine tuning override file
//	--verbose            Enable verbose logging
//
// Purpose:
//   - Static presentation when no interactive surface exists
//   - Visual review of scene changes
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/decker502/orbitscape/pkg/app"
	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/scenes"
)

var (
	variantFlag       = flag.String("variant", "hero", "Variant to render (hero, energy, parallax, reveal)")
	sceneFlag         = flag.String("scene", "", "Hero scene ID (e.g., moon-system)")
	timeFlag          = flag.Duration("time", 2*time.Second, "Animation time to render at")
	widthFlag         = flag.Int("width", app.WindowWidth, "Logical width")
	heightFlag        = flag.Int("height", app.WindowHeight, "Logical height")
	densityFlag       = flag.Float64("density", 1, "Pixel density")
	progressFlag      = flag.Float64("progress", 1, "External progress for the reveal variant")
	reducedMotionFlag = flag.Bool("reduced-motion", false, "Render the reduced-motion form")
	allFlag           = flag.Bool("all", false, "Render every variant and hero scene")
	outFlag           = flag.String("out", "snapshot.png", "Output file (directory with --all)")
	configFlag        = flag.String("config", "", "Engine tuning override file")
	verboseFlag       = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if *verboseFlag {
		gg.SetLogger(slog.Default())
	} else {
		log.SetOutput(io.Discard)
	}

	engineCfg := config.DefaultEngineConfig()
	if *configFlag != "" {
		cfg, err := config.LoadEngineConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		engineCfg = cfg
	}

	opts := app.PosterOptions{
		Width:    *widthFlag,
		Height:   *heightFlag,
		Density:  *densityFlag,
		At:       *timeFlag,
		Progress: *progressFlag,
	}
	base := app.Config{
		Verbose:       *verboseFlag,
		ReducedMotion: *reducedMotionFlag,
		Engine:        engineCfg,
		Seed:          1,
	}

	if *allFlag {
		if err := renderAll(base, opts, *outFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	variant, err := game.ParseVariant(*variantFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	base.Variant = variant
	base.Scene = *sceneFlag

	if err := app.WritePoster(base, opts, *outFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outFlag)
}

// renderAll 每个变体一张图，hero 变体每个场景一张图
func renderAll(base app.Config, opts app.PosterOptions, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	type job struct {
		variant game.Variant
		scene   string
		name    string
	}
	var jobs []job
	for _, s := range scenes.HeroCatalog() {
		jobs = append(jobs, job{game.VariantHero, s.ID, "hero-" + s.ID})
	}
	for _, v := range game.Variants() {
		if v != game.VariantHero {
			jobs = append(jobs, job{variant: v, name: string(v)})
		}
	}

	for _, j := range jobs {
		cfg := base
		cfg.Variant = j.variant
		cfg.Scene = j.scene
		path := filepath.Join(dir, j.name+".png")
		if err := app.WritePoster(cfg, opts, path); err != nil {
			return fmt.Errorf("%s: %w", j.name, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	return nil
}
