package app

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

// TerminalHost 终端宿主：gg 软件光栅化 + tcell 半块字符输出
//
// 窗口不可用时的降级表面。每个字符单元对应两个纵向像素，像素比固定为 1。
type TerminalHost struct {
	screen    tcell.Screen
	presenter *render.TermPresenter
	session   *Session
	viewports []*render.Viewport
	canvases  []*render.GGCanvas
	bounds    []image.Rectangle
	frame     *image.RGBA

	pixelW, pixelH int
	mouseDown      bool
}

// RunTerminal 在当前终端运行引擎，阻塞到用户退出（q / Esc / Ctrl+C）
func RunTerminal(cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal unavailable: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init failed: %w", err)
	}
	defer screen.Fini()

	host, err := NewTerminalHost(cfg, screen)
	if err != nil {
		return err
	}
	defer host.Close()

	host.Run()
	return nil
}

// NewTerminalHost 在已初始化的屏幕上挂载实例
func NewTerminalHost(cfg Config, screen tcell.Screen) (*TerminalHost, error) {
	engineCfg := cfg.Engine
	if engineCfg == nil {
		engineCfg = config.DefaultEngineConfig()
	}

	variants := cfg.Variants()
	viewports := make([]*render.Viewport, len(variants))
	ports := make([]game.Surface, len(variants))
	for i := range variants {
		viewports[i] = render.NewViewport(engineCfg.Display.MaxPixelDensity)
		ports[i] = viewports[i]
	}

	session, err := NewSession(cfg, ports)
	if err != nil {
		return nil, fmt.Errorf("引擎挂载失败: %w", err)
	}

	screen.EnableMouse()
	screen.HideCursor()

	t := &TerminalHost{
		screen:    screen,
		presenter: render.NewTermPresenter(screen),
		session:   session,
		viewports: viewports,
		canvases:  make([]*render.GGCanvas, len(variants)),
	}
	t.layout()
	log.Printf("[TerminalHost] Ready: %dx%d pixels, variants=%v", t.pixelW, t.pixelH, variants)
	return t, nil
}

// Run 事件与帧循环：事件从单独的 goroutine 读取，16ms 一帧
func (t *TerminalHost) Run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.HandleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			t.Step(now)
		}
	}
}

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (t *TerminalHost) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Key() {
		case tcell.KeyUp:
			t.session.NudgeProgress(1)
		case tcell.KeyDown:
			t.session.NudgeProgress(-1)
		case tcell.KeyRune:
			t.handleRune(ev.Rune())
			if ev.Rune() == 'q' {
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		pressed := ev.Buttons()&tcell.Button1 != 0
		raw := utils.RawPointer{
			X:           x,
			Y:           y * 2,
			Present:     true,
			JustPressed: pressed && !t.mouseDown,
		}
		t.mouseDown = pressed
		for i, inst := range t.session.Instances() {
			t.session.Pointer(i, inst.Pointer.Observe(raw, t.bounds[i]))
		}

	case *tcell.EventResize:
		t.screen.Sync()
		t.layout()
	}
	return true
}

func (t *TerminalHost) handleRune(r rune) {
	switch {
	case r >= '1' && r <= '6':
		t.session.SelectScene(int(r - '1'))
	case r == 'm' || r == 'M':
		t.session.ToggleReducedMotion()
	case r == 'l' || r == 'L':
		t.session.ToggleLowPower()
	}
}

// layout 终端尺寸变化时重新切分区域并重建光栅画布
func (t *TerminalHost) layout() {
	w, h := t.presenter.PixelSize()
	if w == t.pixelW && h == t.pixelH && t.frame != nil {
		return
	}
	t.pixelW, t.pixelH = w, h
	t.bounds = SplitBounds(w, h, len(t.viewports))
	t.frame = image.NewRGBA(image.Rect(0, 0, w, h))

	for i, b := range t.bounds {
		t.session.Resize(i, float64(b.Dx()), float64(b.Dy()), 1)
		if t.canvases[i] != nil {
			t.canvases[i].Close()
			t.canvases[i] = nil
		}
		if bw, bh := t.viewports[i].BackingSize(); bw > 0 && bh > 0 {
			t.canvases[i] = render.NewGGCanvas(bw, bh, t.viewports[i].Density())
		}
	}
	log.Printf("[TerminalHost] Layout %dx%d pixels", w, h)
}

// Step 推进一帧并输出到终端
func (t *TerminalHost) Step(now time.Time) {
	t.layout()
	t.session.Tick(now)
	t.Render()
}

// Render 把每个实例光栅化后合成到整屏图像，再输出到终端
func (t *TerminalHost) Render() {
	for i, inst := range t.session.Instances() {
		canvas := t.canvases[i]
		if canvas == nil {
			continue
		}
		canvas.Clear()
		inst.Engine.Render(canvas)
		if err := canvas.Err(); err != nil {
			log.Printf("[TerminalHost] Warning: raster error: %v", err)
		}
		draw.Draw(t.frame, t.bounds[i], canvas.Image(), image.Point{}, draw.Src)
	}
	t.presenter.Present(t.frame)
}

// Session 返回宿主驱动的会话
func (t *TerminalHost) Session() *Session {
	return t.session
}

// Close 销毁实例并释放光栅画布
func (t *TerminalHost) Close() {
	t.session.Close()
	for i, c := range t.canvases {
		if c != nil {
			c.Close()
			t.canvases[i] = nil
		}
	}
}
