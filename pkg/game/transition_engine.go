package game

import (
	"log"
	"math"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/scenes"
	"github.com/decker502/orbitscape/pkg/utils"
)

// verticalDrift 过渡时图层的纵向漂移（占高度比例）
const verticalDrift = 0.015

// TransitionState 场景轮播状态
// 不变量：0 ≤ PhaseElapsedMs < hold + transition
type TransitionState struct {
	ActiveSceneIndex int
	PhaseElapsedMs   float64
}

// Layer 一个待合成的场景图层
type Layer struct {
	Scene scenes.Scene
	Blend components.BlendDescriptor
}

// Composition 一帧的合成结果
//
// 同一时刻只渲染一个场景图层：过渡前半段是旧场景淡出，后半段是新场景淡入。
// Theme 是当前"焦点"场景的主题，用于绘制背景。
type Composition struct {
	Theme   scenes.Theme
	Layers  []Layer
	Blended bool // 是否计算了混合参数
}

// TransitionEngine 定时保持 + 交叉过渡的场景轮播状态机
//
// 每个场景先完整显示 HoldMs，然后用 TransitionMs 过渡到下一个场景：
//   - 进度 = SmoothStep((phase - hold) / transition)
//   - 前半段：旧场景 alpha 1 → MinAlpha，向外平移，缩小
//   - 后半段：新场景 alpha MinAlpha → 1，从另一侧平移进入，放大到 100%
//   - 减弱动态效果：不做任何混合，按进度所在的半段硬切
//
// Advance 在溢出时减去一个周期长度（而不是清零），不丢失也不重复帧时间。
type TransitionEngine struct {
	scenes []scenes.Scene
	config config.TransitionConfig
	state  TransitionState

	reducedMotion     bool
	blendComputations int
}

// NewTransitionEngine 创建轮播引擎
//
// 参数：
//   - list: 参与轮播的场景（固定集合）
//   - cfg: 保持/过渡时长与混合幅度
func NewTransitionEngine(list []scenes.Scene, cfg config.TransitionConfig) *TransitionEngine {
	return &TransitionEngine{
		scenes: list,
		config: cfg,
	}
}

// SetReducedMotion 设置减弱动态效果
func (te *TransitionEngine) SetReducedMotion(enabled bool) {
	te.reducedMotion = enabled
}

// Advance 推进 deltaMs 毫秒，返回场景索引前进的次数（0 或 1）
//
// 单次调用的间隔被限制为最多一个完整周期，因此索引最多前进一次。
// 零、负数或 NaN 间隔不改变状态。
func (te *TransitionEngine) Advance(deltaMs float64) int {
	if !(deltaMs > 0) || len(te.scenes) == 0 {
		return 0
	}

	segment := te.config.SegmentMs()
	deltaMs = math.Min(deltaMs, segment)

	te.state.PhaseElapsedMs += deltaMs
	if te.state.PhaseElapsedMs < segment {
		return 0
	}

	te.state.PhaseElapsedMs -= segment
	if te.state.PhaseElapsedMs >= segment {
		// 浮点边界情况：仍保持不变量
		te.state.PhaseElapsedMs = 0
	}
	te.state.ActiveSceneIndex = utils.WrapIndex(te.state.ActiveSceneIndex+1, len(te.scenes))
	log.Printf("[TransitionEngine] Scene %d (%s) now active",
		te.state.ActiveSceneIndex, te.scenes[te.state.ActiveSceneIndex].ID)
	return 1
}

// Select 直接选择场景，越界索引按场景数取模
// 重置保持计时，即使选择的是当前场景
func (te *TransitionEngine) Select(index int) {
	if len(te.scenes) == 0 {
		return
	}
	te.state.ActiveSceneIndex = utils.WrapIndex(index, len(te.scenes))
	te.state.PhaseElapsedMs = 0
	log.Printf("[TransitionEngine] Scene %d (%s) selected",
		te.state.ActiveSceneIndex, te.scenes[te.state.ActiveSceneIndex].ID)
}

// State 返回当前状态
func (te *TransitionEngine) State() TransitionState {
	return te.state
}

// Scenes 返回参与轮播的场景
func (te *TransitionEngine) Scenes() []scenes.Scene {
	return te.scenes
}

// ActiveScene 返回当前场景
func (te *TransitionEngine) ActiveScene() scenes.Scene {
	return te.scenes[te.state.ActiveSceneIndex]
}

// InTransition 是否处于过渡阶段
func (te *TransitionEngine) InTransition() bool {
	return te.state.PhaseElapsedMs > te.config.HoldMs
}

// Progress 返回缓动后的过渡进度 [0, 1]，保持阶段为 0
func (te *TransitionEngine) Progress() float64 {
	if !te.InTransition() {
		return 0
	}
	return utils.SmoothStep((te.state.PhaseElapsedMs - te.config.HoldMs) / te.config.TransitionMs)
}

// BlendComputations 返回累计计算混合参数的次数
func (te *TransitionEngine) BlendComputations() int {
	return te.blendComputations
}

// Compose 根据当前状态计算本帧的图层与背景主题
func (te *TransitionEngine) Compose(width, height float64) Composition {
	if len(te.scenes) == 0 {
		return Composition{}
	}

	active := te.scenes[te.state.ActiveSceneIndex]
	if !te.InTransition() {
		return single(active)
	}

	progress := te.Progress()
	next := te.scenes[utils.WrapIndex(te.state.ActiveSceneIndex+1, len(te.scenes))]

	if te.reducedMotion {
		if progress < 0.5 {
			return single(active)
		}
		return single(next)
	}

	te.blendComputations++
	if progress < 0.5 {
		return Composition{
			Theme:   active.Theme,
			Layers:  []Layer{{Scene: active, Blend: te.OutgoingBlend(progress/0.5, width, height)}},
			Blended: true,
		}
	}
	return Composition{
		Theme:   next.Theme,
		Layers:  []Layer{{Scene: next, Blend: te.IncomingBlend((progress-0.5)/0.5, width, height)}},
		Blended: true,
	}
}

// OutgoingBlend 前半段旧场景的混合参数，localT ∈ [0, 1]
func (te *TransitionEngine) OutgoingBlend(localT, width, height float64) components.BlendDescriptor {
	localT = utils.Clamp01(localT)
	c := te.config
	return components.BlendDescriptor{
		Alpha:  1 - localT*(1-c.MinAlpha),
		ShiftX: -c.ShiftFraction * width * localT,
		ShiftY: -verticalDrift * height * localT,
		Scale:  1 - c.ScaleDrop*localT,
	}
}

// IncomingBlend 后半段新场景的混合参数，localT ∈ [0, 1]
func (te *TransitionEngine) IncomingBlend(localT, width, height float64) components.BlendDescriptor {
	localT = utils.Clamp01(localT)
	c := te.config
	return components.BlendDescriptor{
		Alpha:  c.MinAlpha + localT*(1-c.MinAlpha),
		ShiftX: c.ShiftFraction * width * (1 - localT),
		ShiftY: verticalDrift * height * (1 - localT),
		Scale:  1 - c.ScaleDrop + c.ScaleDrop*localT,
	}
}

// Draw 绘制一帧：焦点场景的背景 + 合成后的场景图层
func (te *TransitionEngine) Draw(c render.Canvas, f scenes.Frame) {
	w, h := c.Size()
	comp := te.Compose(w, h)
	if len(comp.Layers) == 0 {
		return
	}

	scenes.DrawBackground(c, comp.Theme, f)
	for _, layer := range comp.Layers {
		scene := layer.Scene
		c.DrawLayer(layer.Blend, func(lc render.Canvas) {
			scene.Draw(lc, f)
		})
	}
}

func single(s scenes.Scene) Composition {
	return Composition{
		Theme:  s.Theme,
		Layers: []Layer{{Scene: s, Blend: components.IdentityBlend()}},
	}
}
