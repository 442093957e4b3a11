package scenes

import (
	"image/color"
	"math"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

// EnergyNodes 返回能量场景两个节点的位置
//
// 轨道节点固定在左侧，指针节点跟随平滑后的指针位置（中性位置在右侧）。
func EnergyNodes(w, h float64, pointer components.PointerState) (orbiter, target utils.Point) {
	orbiter = utils.Point{X: w * 0.25, Y: h * 0.5}
	target = utils.Point{
		X: w*0.68 + pointer.DisplayX*w*0.22,
		Y: h*0.5 + pointer.DisplayY*h*0.35,
	}
	return orbiter, target
}

// PacketPosition 能量包的绘制位置：在源与目标之间线性插值，叠加两端收敛的正弦侧向摆动
func PacketPosition(from, to utils.Point, p components.PacketComponent, time, amplitude float64) utils.Point {
	base := utils.LerpPoint(from, to, p.Progress)
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return base
	}
	nx, ny := -dy/length, dx/length
	wobble := math.Sin(p.Progress*2*math.Pi+p.Phase+time*3) * p.LateralOffset * amplitude * math.Sin(p.Progress*math.Pi)
	return utils.Point{X: base.X + nx*wobble, Y: base.Y + ny*wobble}
}

func drawEnergyTransfer(c render.Canvas, theme Theme, w, h float64, f Frame) {
	view := f.Energy
	if view == nil {
		view = &EnergyView{State: components.EnergyState{OrbiterEnergy: 1}}
	}
	unit := min(w, h)
	orbiter, target := EnergyNodes(w, h, f.Pointer)

	// 连线始终绘制，只有颜色/不透明度反映是否在传输
	lineAlpha, lineColor := 0.18, theme.Secondary
	if view.Flowing {
		lineAlpha, lineColor = 0.55, theme.Accent
	}
	c.StrokeLine(orbiter.X, orbiter.Y, target.X, target.Y, 1.5, render.Fade(lineColor, lineAlpha))

	t := f.motionTime()
	for _, p := range view.Packets {
		from, to := orbiter, target
		if p.Direction == components.TransferReceive {
			from, to = target, orbiter
		}
		pos := PacketPosition(from, to, p, t, unit*0.03)
		c.FillCircle(pos.X, pos.Y, unit*0.008, render.Fade(theme.Accent, 0.4+0.6*math.Sin(p.Progress*math.Pi)))
	}

	base := unit * 0.045
	drawEnergyNode(c, orbiter, base, view.State.OrbiterEnergy, theme.Primary, theme)
	drawEnergyNode(c, target, base, view.State.PointerEnergy, theme.Accent, theme)

	// 点击爆发：接收方外扩的圆环
	if view.Burst > 0 {
		at := target
		if view.Mode == components.TransferReceive {
			at = orbiter
		}
		r := base * (1.4 + (1-view.Burst)*2.5)
		c.StrokeCircle(at.X, at.Y, r, 2, render.Fade(theme.Accent, view.Burst))
	}
}

// drawEnergyNode 节点大小与填充度随能量变化
func drawEnergyNode(c render.Canvas, p utils.Point, base, energy float64, col color.NRGBA, theme Theme) {
	energy = utils.Clamp01(energy)
	c.FillCircle(p.X, p.Y, base*1.6, render.Fade(col, 0.08+0.12*energy))
	c.StrokeCircle(p.X, p.Y, base, 1.5, render.Fade(theme.Secondary, 0.7))
	c.FillCircle(p.X, p.Y, base*(0.25+0.7*energy), col)
}
