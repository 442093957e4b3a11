package app

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/render"
)

// PosterOptions 静态渲染参数
type PosterOptions struct {
	Width, Height int           // 逻辑尺寸
	Density       float64       // 像素比
	At            time.Duration // 动画时间点
	Progress      float64       // reveal 变体的外部进度
}

// DefaultPosterOptions 默认海报参数：1280x720 逻辑像素、1 倍像素比、第 2 秒
func DefaultPosterOptions() PosterOptions {
	return PosterOptions{Width: WindowWidth, Height: WindowHeight, Density: 1, At: 2 * time.Second}
}

// posterStep 离线推进使用的固定帧间隔
const posterStep = time.Second / 60

// RenderPoster 离线推进一个实例到指定时间点并光栅化
//
// 时间由固定 60fps 的虚拟时钟驱动，同样的参数总是得到同样的图像。
// 预览模式只渲染主实例。调用方负责 Close 返回的画布。
func RenderPoster(cfg Config, opts PosterOptions) (*render.GGCanvas, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid poster size %dx%d", opts.Width, opts.Height)
	}
	cfg.Preview = false

	maxDensity := 2.0
	if cfg.Engine != nil {
		maxDensity = cfg.Engine.Display.MaxPixelDensity
	}
	viewport := render.NewViewport(maxDensity)
	session, err := NewSession(cfg, []game.Surface{viewport})
	if err != nil {
		return nil, err
	}
	defer session.Close()

	session.Resize(0, float64(opts.Width), float64(opts.Height), opts.Density)
	engine := session.Instances()[0].Engine
	engine.SetProgress(opts.Progress)

	start := time.Unix(0, 0)
	for elapsed := time.Duration(0); ; elapsed += posterStep {
		session.Tick(start.Add(elapsed))
		if elapsed >= opts.At {
			break
		}
	}

	pw, ph := viewport.BackingSize()
	canvas := render.NewGGCanvas(pw, ph, viewport.Density())
	engine.Render(canvas)
	if err := canvas.Err(); err != nil {
		canvas.Close()
		return nil, fmt.Errorf("failed to rasterize poster: %w", err)
	}
	log.Printf("[Poster] Rendered %s at %v (%dx%d px)", engine.Variant(), opts.At, pw, ph)
	return canvas, nil
}

// WritePoster 渲染静态海报并写入 PNG 文件
func WritePoster(cfg Config, opts PosterOptions, path string) error {
	canvas, err := RenderPoster(cfg, opts)
	if err != nil {
		return err
	}
	defer canvas.Close()
	return canvas.SavePNG(path)
}
