// Package scenes 提供固定集合的程序化矢量场景
//
// 场景集合在编译期确定：Kind 是封闭的枚举，Scene.Draw 通过 switch 分发到具体绘制函数，
// 不使用开放的接口层次。每个绘制函数都是 (画布, 尺寸, 时间, 减弱动态标志) 的纯函数，
// 场景之间没有共享的可变状态。
//
// 场景只绘制前景（透明背景），背景由 DrawBackground 按主题单独绘制，
// 这样过渡引擎可以在背景之上合成两个场景图层。
package scenes

import (
	"fmt"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

// Kind 场景类型
type Kind int

const (
	KindSatelliteUplink Kind = iota // 球体 + 两颗倾斜轨道卫星 + 地面接收站
	KindMoonSystem                  // 行星 + 三颗卫星（遮挡淡出）
	KindRelayMesh                   // 种子生成的中继网络
	KindPulseField                  // 星场 + 扩散脉冲环
	KindEnergyTransfer              // 指针交互的能量传输
	KindParallaxField               // 指针视差粒子场
	KindOrbitReveal                 // 进度驱动的轨道展开
)

var kindNames = map[Kind]string{
	KindSatelliteUplink: "satellite-uplink",
	KindMoonSystem:      "moon-system",
	KindRelayMesh:       "relay-mesh",
	KindPulseField:      "pulse-field",
	KindEnergyTransfer:  "energy-transfer",
	KindParallaxField:   "parallax-field",
	KindOrbitReveal:     "orbit-reveal",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// EnergyView 能量场景每帧需要的模拟快照
type EnergyView struct {
	State   components.EnergyState
	Mode    components.TransferMode
	Burst   float64
	Flowing bool
	Packets []components.PacketComponent
}

// Frame 一帧的绘制输入
type Frame struct {
	Time          float64 // 引擎启动后经过的秒数
	ReducedMotion bool
	LowPower      bool

	Pointer  components.PointerState // 平滑后的指针（视差/能量场景使用）
	Energy   *EnergyView             // 仅能量场景使用
	Progress float64                 // 仅进度驱动场景使用 [0, 1]

	// Occlusion 遮挡过渡带；Edge 为相对场景短边的比例，nil 时使用 DefaultOcclusion
	Occlusion *utils.OcclusionBands
}

// motionTime 减弱动态效果时冻结所有与时间相关的漂移
func (f Frame) motionTime() float64 {
	if f.ReducedMotion {
		return 0
	}
	return f.Time
}

// Scene 一个不可变的场景条目
type Scene struct {
	ID    string
	Kind  Kind
	Theme Theme
}

// Draw 将场景前景绘制到画布
func (s Scene) Draw(c render.Canvas, f Frame) {
	w, h := c.Size()
	if w <= 0 || h <= 0 {
		return
	}

	switch s.Kind {
	case KindSatelliteUplink:
		drawSatelliteUplink(c, s.Theme, w, h, f)
	case KindMoonSystem:
		drawMoonSystem(c, s.Theme, w, h, f)
	case KindRelayMesh:
		drawRelayMesh(c, s.Theme, w, h, f)
	case KindPulseField:
		drawPulseField(c, s.Theme, w, h, f)
	case KindEnergyTransfer:
		drawEnergyTransfer(c, s.Theme, w, h, f)
	case KindParallaxField:
		drawParallaxField(c, s.Theme, w, h, f)
	case KindOrbitReveal:
		drawOrbitReveal(c, s.Theme, w, h, f)
	}
}

// HeroCatalog 返回轮播使用的场景集合
func HeroCatalog() []Scene {
	return []Scene{
		{ID: "satellite-uplink", Kind: KindSatelliteUplink, Theme: ThemeNight},
		{ID: "moon-system", Kind: KindMoonSystem, Theme: ThemeDusk},
		{ID: "relay-mesh", Kind: KindRelayMesh, Theme: ThemeDeep},
		{ID: "pulse-field", Kind: KindPulseField, Theme: ThemeAurora},
	}
}

// EnergyScene 能量传输变体使用的单一场景
func EnergyScene() Scene {
	return Scene{ID: "energy-transfer", Kind: KindEnergyTransfer, Theme: ThemeDeep}
}

// ParallaxScene 视差背景变体使用的单一场景
func ParallaxScene() Scene {
	return Scene{ID: "parallax-field", Kind: KindParallaxField, Theme: ThemeNight}
}

// RevealScene 进度驱动变体使用的单一场景
func RevealScene() Scene {
	return Scene{ID: "orbit-reveal", Kind: KindOrbitReveal, Theme: ThemeDusk}
}

// FindByID 在场景列表中查找 ID，返回索引；不存在时返回 -1
func FindByID(list []Scene, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}
