package app

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

// 默认窗口大小（逻辑像素）
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// sceneKeys 数字键 1-6 直接选择轮播场景
var sceneKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

// App 是窗口宿主，实现 ebiten.Game 接口
//
// 每个实例拥有独立的 EbitenSurface，并排预览时按窗口宽度平分。
// Layout 返回设备像素尺寸，各实例的后备图像再按各自的有效像素比缩放到屏幕。
type App struct {
	session  *Session
	surfaces []*render.EbitenSurface
	bounds   []image.Rectangle // 逻辑像素

	outsideW, outsideH int
	deviceScale        float64

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建窗口宿主
//
// 引擎调参由调用方加载后通过 cfg.Engine 传入，nil 时使用默认配置。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	engineCfg := cfg.Engine
	if engineCfg == nil {
		engineCfg = config.DefaultEngineConfig()
	}

	variants := cfg.Variants()
	surfaces := make([]*render.EbitenSurface, len(variants))
	ports := make([]game.Surface, len(variants))
	for i := range variants {
		surfaces[i] = render.NewEbitenSurface(render.NewViewport(engineCfg.Display.MaxPixelDensity))
		ports[i] = surfaces[i]
	}

	session, err := NewSession(cfg, ports)
	if err != nil {
		return nil, fmt.Errorf("引擎挂载失败: %w", err)
	}

	log.Printf("[App] Window host ready: variants=%v", variants)
	return &App{
		session:     session,
		surfaces:    surfaces,
		bounds:      make([]image.Rectangle, len(variants)),
		deviceScale: 1,
	}, nil
}

// Run 打开窗口并阻塞到窗口关闭
//
// 参数：
//   - graphicsLibrary: "auto"/"opengl"/"metal"/"directx"
func (a *App) Run(title, graphicsLibrary string) error {
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	opts := &ebiten.RunGameOptions{GraphicsLibrary: GraphicsLibrary(graphicsLibrary)}
	log.Printf("[App] Running with graphics library %q", graphicsLibrary)
	return ebiten.RunGameWithOptions(a, opts)
}

// GraphicsLibrary 把设置中的图形库名称映射为 ebiten 常量
func GraphicsLibrary(name string) ebiten.GraphicsLibrary {
	switch name {
	case "opengl":
		return ebiten.GraphicsLibraryOpenGL
	case "metal":
		return ebiten.GraphicsLibraryMetal
	case "directx":
		return ebiten.GraphicsLibraryDirectX
	default:
		return ebiten.GraphicsLibraryAuto
	}
}

// Update 处理输入并推进所有实例
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(WindowWidth, WindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", WindowWidth, WindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	a.handleKeys()

	raw := utils.PollPointer().ToLogical(a.deviceScale)
	for i, inst := range a.session.Instances() {
		a.session.Pointer(i, inst.Pointer.Observe(raw, a.bounds[i]))
	}

	a.session.Tick(time.Now())
	return nil
}

func (a *App) handleKeys() {
	for i, key := range sceneKeys {
		if inpututil.IsKeyJustPressed(key) {
			a.session.SelectScene(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.session.ToggleReducedMotion()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		a.session.ToggleLowPower()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		a.session.NudgeProgress(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		a.session.NudgeProgress(-1)
	}
	if _, wheel := ebiten.Wheel(); wheel != 0 {
		a.session.NudgeProgress(wheel)
	}
}

// Draw 绘制所有实例
// 每帧调用一次，绘制的是 Update 推进完毕后的状态
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	for i, inst := range a.session.Instances() {
		surface := a.surfaces[i]
		canvas := surface.Begin()
		if canvas == nil {
			continue
		}
		inst.Engine.Render(canvas)

		// 后备图像像素比可能被上限截断，按屏幕像素比补足
		scale := a.deviceScale / surface.Viewport().Density()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(a.bounds[i].Min.X)*a.deviceScale, float64(a.bounds[i].Min.Y)*a.deviceScale)
		op.Filter = ebiten.FilterLinear // 使用线性滤波减少锯齿和模糊
		screen.DrawImage(surface.Image(), op)
	}
}

// Layout 记录窗口尺寸并返回设备像素尺寸
// 尺寸或像素比变化时通知各实例调整后备分辨率
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	a.applyLayout(outsideWidth, outsideHeight, scale)
	return int(float64(outsideWidth) * a.deviceScale), int(float64(outsideHeight) * a.deviceScale)
}

// applyLayout 按窗口尺寸切分实例区域，变化时分发 resize
func (a *App) applyLayout(outsideWidth, outsideHeight int, scale float64) {
	if !(scale > 0) {
		scale = 1
	}
	if outsideWidth == a.outsideW && outsideHeight == a.outsideH && scale == a.deviceScale {
		return
	}
	a.outsideW, a.outsideH, a.deviceScale = outsideWidth, outsideHeight, scale

	a.bounds = SplitBounds(outsideWidth, outsideHeight, len(a.surfaces))
	for i, b := range a.bounds {
		a.session.Resize(i, float64(b.Dx()), float64(b.Dy()), scale)
	}
	log.Printf("[App] Layout %dx%d @%.2fx, %d region(s)", outsideWidth, outsideHeight, scale, len(a.bounds))
}

// SplitBounds 把窗口水平平分为 n 个区域（最后一个区域吸收余数）
func SplitBounds(width, height, n int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	out := make([]image.Rectangle, n)
	step := width / n
	for i := range out {
		x0 := i * step
		x1 := x0 + step
		if i == n-1 {
			x1 = width
		}
		out[i] = image.Rect(x0, 0, x1, height)
	}
	return out
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Session 返回宿主驱动的会话
func (a *App) Session() *Session {
	return a.session
}

// Close 销毁全部实例并释放后备图像
func (a *App) Close() {
	a.session.Close()
	for _, s := range a.surfaces {
		s.Dispose()
	}
}
