package game

import (
	"log"
	"math"
	"time"

	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/scenes"
	"github.com/decker502/orbitscape/pkg/systems"
	"github.com/decker502/orbitscape/pkg/utils"
)

// Surface 引擎需要的绘制表面能力：按显示尺寸与像素比调整后备分辨率
// render.Viewport 与 render.EbitenSurface 都满足该接口
type Surface interface {
	Resize(displayW, displayH, density float64) bool
	SetMaxDensity(maxDensity float64)
}

// Host 宿主为一个引擎实例提供的端口
type Host struct {
	Scheduler FrameScheduler
	Input     *InputHub
	Surface   Surface
}

// Options 引擎选项
type Options struct {
	Variant       Variant
	Config        *config.EngineConfig // nil 时使用默认配置
	ReducedMotion bool
	LowPower      bool
	InitialScene  int   // 仅轮播变体
	Seed          int64 // 能量包随机外观的种子
}

// Engine 一个程序化动画引擎实例
//
// 每个实例独占自己的时钟、状态、帧请求句柄与输入注册，
// 因此同一宿主上可以同时挂载多个实例（如并排预览）。
//
// 每帧顺序：时钟 → 指针平滑 → 能量模拟 → 场景轮播 → 请求下一帧。
// 绘制由宿主在帧回调之后调用 Render，看到的总是已经推进完毕的状态。
type Engine struct {
	config  *config.EngineConfig
	variant Variant
	host    Host

	clock       *FrameClock
	transitions *TransitionEngine // 仅轮播变体
	scene       scenes.Scene      // 非轮播变体的单一场景
	pointer     *systems.PointerSystem
	energy      *systems.EnergyTransferSystem // 仅能量变体

	reducedMotion bool
	lowPower      bool

	progress        float64
	pendingProgress float64
	hasPending      bool

	displayW, displayH, density float64

	frameHandle FrameHandle
	listeners   []ListenerID
	disposed    bool
	frames      int
}

// Mount 创建引擎并注册到宿主
//
// 宿主缺少调度器、输入端口或绘制表面时返回 nil（可恢复的空结果），
// 调用方应回退到静态展示。
func Mount(host Host, opts Options) *Engine {
	if host.Scheduler == nil || host.Input == nil || host.Surface == nil {
		log.Printf("[Engine] Mount skipped: host surface unavailable")
		return nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultEngineConfig()
	}
	variant := opts.Variant
	if variant == "" {
		variant = VariantHero
	}

	e := &Engine{
		config:        cfg,
		variant:       variant,
		host:          host,
		clock:         NewFrameClock(cfg.Clock),
		pointer:       systems.NewPointerSystem(cfg.Pointer.Smoothing),
		reducedMotion: opts.ReducedMotion,
		density:       1,
	}

	list := variant.Scenes()
	if variant.Cycles() {
		e.transitions = NewTransitionEngine(list, cfg.Transition)
		e.transitions.SetReducedMotion(opts.ReducedMotion)
		if opts.InitialScene != 0 {
			e.transitions.Select(opts.InitialScene)
		}
	} else {
		e.scene = list[0]
	}
	if variant == VariantEnergy {
		e.energy = systems.NewEnergyTransferSystem(cfg.Energy, opts.Seed)
	}

	e.SetLowPower(opts.LowPower)

	e.listeners = []ListenerID{
		host.Input.Listen(InputPointerMove, e.onPointerMove),
		host.Input.Listen(InputPointerLeave, func(InputEvent) { e.pointer.Leave() }),
		host.Input.Listen(InputToggle, func(InputEvent) { e.Toggle() }),
		host.Input.Listen(InputSelectScene, func(ev InputEvent) { e.SelectScene(ev.Index) }),
		host.Input.Listen(InputResize, func(ev InputEvent) { e.Resize(ev.Width, ev.Height, ev.Density) }),
	}
	e.frameHandle = host.Scheduler.RequestFrame(e.onFrame)

	log.Printf("[Engine] Mounted variant=%s reducedMotion=%v lowPower=%v", variant, e.reducedMotion, e.lowPower)
	return e
}

// onFrame 帧回调：推进全部状态后请求下一帧
func (e *Engine) onFrame(now time.Time) {
	if e.disposed {
		return
	}

	dt := e.clock.Tick(now)
	if e.hasPending {
		e.progress = e.pendingProgress
		e.hasPending = false
	}

	e.pointer.Update(dt)
	if e.energy != nil {
		e.energy.Update(dt)
	}
	if e.transitions != nil {
		e.transitions.Advance(dt * 1000)
	}

	e.frames++
	e.frameHandle = e.host.Scheduler.RequestFrame(e.onFrame)
}

func (e *Engine) onPointerMove(ev InputEvent) {
	nx, ny := systems.NormalizePointer(ev.X, ev.Y, e.displayW, e.displayH)
	e.pointer.MoveTo(nx, ny)
}

// Render 把当前状态绘制到画布（不推进任何状态）
func (e *Engine) Render(c render.Canvas) {
	if e.disposed {
		return
	}
	f := e.Frame()
	if e.transitions != nil {
		e.transitions.Draw(c, f)
		return
	}
	scenes.DrawBackground(c, e.scene.Theme, f)
	e.scene.Draw(c, f)
}

// Frame 返回当前状态对应的绘制输入
func (e *Engine) Frame() scenes.Frame {
	f := scenes.Frame{
		Time:          e.clock.Elapsed(),
		ReducedMotion: e.reducedMotion,
		LowPower:      e.lowPower,
		Pointer:       e.pointer.State(),
		Progress:      e.progress,
		Occlusion: &utils.OcclusionBands{
			Edge:     e.config.Occlusion.EdgeBand,
			Depth:    e.config.Occlusion.DepthBand,
			FrontArc: e.config.Occlusion.FrontArc,
		},
	}
	if e.energy != nil {
		f.Energy = &scenes.EnergyView{
			State:   e.energy.State(),
			Mode:    e.energy.Mode(),
			Burst:   e.energy.Burst(),
			Flowing: e.energy.IsFlowing(),
			Packets: e.energy.Packets(),
		}
	}
	return f
}

// Resize 显示尺寸或像素比变化；参数未变时表面不会重新分配
func (e *Engine) Resize(displayW, displayH, density float64) bool {
	e.displayW, e.displayH, e.density = displayW, displayH, density
	return e.host.Surface.Resize(displayW, displayH, density)
}

// SetProgress 设置外部驱动的进度，限制到 [0, 1]（NaN 视为 0），在下一帧生效
func (e *Engine) SetProgress(value float64) {
	if math.IsNaN(value) {
		value = 0
	}
	e.pendingProgress = utils.Clamp01(value)
	e.hasPending = true
}

// Progress 返回当前生效的进度
func (e *Engine) Progress() float64 {
	return e.progress
}

// SelectScene 直接选择轮播场景（非轮播变体忽略）
func (e *Engine) SelectScene(index int) {
	if e.transitions != nil {
		e.transitions.Select(index)
	}
}

// Toggle 切换能量传输方向（非能量变体忽略）
func (e *Engine) Toggle() {
	if e.energy != nil {
		e.energy.Toggle()
	}
}

// SetReducedMotion 运行时切换减弱动态效果
func (e *Engine) SetReducedMotion(enabled bool) {
	e.reducedMotion = enabled
	if e.transitions != nil {
		e.transitions.SetReducedMotion(enabled)
	}
}

// ReducedMotion 是否减弱动态效果
func (e *Engine) ReducedMotion() bool {
	return e.reducedMotion
}

// SetLowPower 低性能模式：像素比上限降为 LowPowerPixelDensity，场景减少粒子数量
func (e *Engine) SetLowPower(enabled bool) {
	e.lowPower = enabled
	maxDensity := e.config.Display.MaxPixelDensity
	if enabled {
		maxDensity = e.config.Display.LowPowerPixelDensity
	}
	e.host.Surface.SetMaxDensity(maxDensity)
	if e.displayW > 0 && e.displayH > 0 {
		e.host.Surface.Resize(e.displayW, e.displayH, e.density)
	}
}

// LowPower 是否处于低性能模式
func (e *Engine) LowPower() bool {
	return e.lowPower
}

// Dispose 撤销挂载时的全部注册：取消帧请求、注销所有输入监听
// 可以在两帧之间任意时刻调用，重复调用是空操作
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	e.host.Scheduler.CancelFrame(e.frameHandle)
	for _, id := range e.listeners {
		e.host.Input.Unlisten(id)
	}
	e.listeners = nil
	log.Printf("[Engine] Disposed variant=%s after %d frames", e.variant, e.frames)
}

// Disposed 是否已销毁
func (e *Engine) Disposed() bool {
	return e.disposed
}

// Frames 返回已执行的帧数
func (e *Engine) Frames() int {
	return e.frames
}

// Variant 返回引擎变体
func (e *Engine) Variant() Variant {
	return e.variant
}

// Transitions 返回轮播引擎（非轮播变体为 nil）
func (e *Engine) Transitions() *TransitionEngine {
	return e.transitions
}

// Energy 返回能量模拟（非能量变体为 nil）
func (e *Engine) Energy() *systems.EnergyTransferSystem {
	return e.energy
}

// Pointer 返回指针系统
func (e *Engine) Pointer() *systems.PointerSystem {
	return e.pointer
}

// Clock 返回帧时钟
func (e *Engine) Clock() *FrameClock {
	return e.clock
}
