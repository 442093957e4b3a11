package scenes

import (
	"math"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

const orbitSegments = 48

// orbitLayout 球体场景的几何布局（由画布尺寸推导）
type orbitLayout struct {
	occluder utils.Occluder
	receiver utils.Point
	unit     float64
}

func newOrbitLayout(w, h float64) orbitLayout {
	unit := min(w, h)
	return orbitLayout{
		occluder: utils.Occluder{Center: utils.Point{X: w * 0.5, Y: h * 0.44}, Radius: unit * 0.17},
		receiver: utils.Point{X: w * 0.5, Y: h * 0.9},
		unit:     unit,
	}
}

// uplinkBodies 卫星场景的两颗轨道体（半径相对 unit）
func uplinkBodies(unit float64) []components.OrbitingBody {
	return []components.OrbitingBody{
		{RadiusX: unit * 0.36, RadiusY: unit * 0.1, Rotation: -0.32, Speed: 0.55, Phase: 0.4},
		{RadiusX: unit * 0.42, RadiusY: unit * 0.14, Rotation: 0.38, Speed: -0.4, Phase: 2.6},
	}
}

// UplinkOcclusion 计算卫星场景中每颗轨道体在本帧的遮挡结果
func UplinkOcclusion(w, h float64, f Frame) []utils.OcclusionResult {
	layout := newOrbitLayout(w, h)
	bodies := uplinkBodies(layout.unit)
	out := make([]utils.OcclusionResult, len(bodies))
	for i, b := range bodies {
		out[i] = occlusionFor(layout, b, f)
	}
	return out
}

// DefaultOcclusion 球体场景默认的遮挡过渡带（Edge 相对场景短边）
func DefaultOcclusion() utils.OcclusionBands {
	bands := utils.DefaultOcclusionBands()
	bands.Edge = 0.02
	return bands
}

func occlusionFor(layout orbitLayout, b components.OrbitingBody, f Frame) utils.OcclusionResult {
	bands := DefaultOcclusion()
	if f.Occlusion != nil {
		bands = *f.Occlusion
	}
	bands.Edge *= layout.unit
	angle := b.AngleAt(f.Time, f.ReducedMotion)
	return utils.ComputeOcclusion(layout.occluder, b.RadiusX, b.RadiusY, b.Rotation, angle, bands)
}

// drawOrbitPath 绘制轨道的后半圈或前半圈
// 后半圈（sin<0，参数角 π..2π）在球体之前绘制，前半圈在之后
func drawOrbitPath(c render.Canvas, layout orbitLayout, b components.OrbitingBody, front bool, theme Theme) {
	from, to, alpha := math.Pi, 2*math.Pi, 0.18
	if front {
		from, to, alpha = 0, math.Pi, 0.4
	}
	pts := utils.EllipsePolyline(nil, layout.occluder.Center, b.RadiusX, b.RadiusY, b.Rotation, from, to, orbitSegments/2)
	c.StrokePolyline(pts, 1, render.Fade(theme.Secondary, alpha))
}

func drawSphere(c render.Canvas, layout orbitLayout, theme Theme) {
	o := layout.occluder
	c.FillCircle(o.Center.X, o.Center.Y, o.Radius, theme.Primary)
	// 高光
	c.FillCircle(o.Center.X-o.Radius*0.3, o.Center.Y-o.Radius*0.3, o.Radius*0.45, render.Fade(theme.Accent, 0.18))
	c.StrokeCircle(o.Center.X, o.Center.Y, o.Radius, 1.5, render.Fade(theme.Accent, 0.5))
}

func drawSatelliteUplink(c render.Canvas, theme Theme, w, h float64, f Frame) {
	layout := newOrbitLayout(w, h)
	bodies := uplinkBodies(layout.unit)
	t := f.motionTime()

	for _, b := range bodies {
		drawOrbitPath(c, layout, b, false, theme)
	}
	drawSphere(c, layout, theme)
	for _, b := range bodies {
		drawOrbitPath(c, layout, b, true, theme)
	}

	// 地面接收站
	rx, ry := layout.receiver.X, layout.receiver.Y
	c.FillRect(rx-layout.unit*0.05, ry, layout.unit*0.1, layout.unit*0.015, theme.Secondary)
	c.StrokeCircle(rx, ry, layout.unit*0.025, 1.5, theme.Accent)

	var beam []utils.Point
	for i, b := range bodies {
		occ := occlusionFor(layout, b, f)

		// 光束规则对每颗轨道体独立判定
		if occ.CanBeam {
			ctrl := utils.BeamControlPoint(occ.Position, layout.receiver, 0.12)
			beam = utils.QuadraticPolyline(beam, occ.Position, ctrl, layout.receiver, 16)
			c.StrokePolyline(beam, 1.5, render.Fade(theme.Accent, 0.55*occ.VisibilityAlpha))

			// 沿光束运动的数据包
			packets := 3
			if f.LowPower {
				packets = 2
			}
			for k := 0; k < packets; k++ {
				p := frac(t*0.7 + float64(k)/float64(packets) + float64(i)*0.37)
				pos := utils.QuadraticPoint(occ.Position, ctrl, layout.receiver, p)
				c.FillCircle(pos.X, pos.Y, layout.unit*0.008, render.Fade(theme.Accent, occ.VisibilityAlpha))
			}
		}

		drawBody(c, occ, layout.unit*0.022, theme)
	}
}

func drawBody(c render.Canvas, occ utils.OcclusionResult, radius float64, theme Theme) {
	if occ.VisibilityAlpha <= 0 {
		return
	}
	p := occ.Position
	c.FillCircle(p.X, p.Y, radius*1.8, render.Fade(theme.Accent, 0.15*occ.VisibilityAlpha))
	c.FillCircle(p.X, p.Y, radius, render.Fade(theme.Accent, occ.VisibilityAlpha))
}

// moonBodies 卫星系统场景的三颗卫星
func moonBodies(unit float64) []components.OrbitingBody {
	return []components.OrbitingBody{
		{RadiusX: unit * 0.27, RadiusY: unit * 0.07, Rotation: 0.15, Speed: 0.8, Phase: 0},
		{RadiusX: unit * 0.36, RadiusY: unit * 0.12, Rotation: -0.45, Speed: 0.5, Phase: 2.1},
		{RadiusX: unit * 0.46, RadiusY: unit * 0.16, Rotation: 0.6, Speed: 0.32, Phase: 4.2},
	}
}

func drawMoonSystem(c render.Canvas, theme Theme, w, h float64, f Frame) {
	layout := newOrbitLayout(w, h)
	layout.occluder.Center.Y = h * 0.5
	layout.occluder.Radius = layout.unit * 0.15
	bodies := moonBodies(layout.unit)

	for _, b := range bodies {
		drawOrbitPath(c, layout, b, false, theme)
	}
	drawSphere(c, layout, theme)
	for _, b := range bodies {
		drawOrbitPath(c, layout, b, true, theme)
	}

	for i, b := range bodies {
		occ := occlusionFor(layout, b, f)
		radius := layout.unit * (0.018 + 0.006*float64(i))
		drawBody(c, occ, radius, theme)
	}
}

// drawOrbitReveal 进度驱动：轨道按进度展开，轨道体在对应轨道展开一半后出现
func drawOrbitReveal(c render.Canvas, theme Theme, w, h float64, f Frame) {
	layout := newOrbitLayout(w, h)
	bodies := moonBodies(layout.unit)
	progress := utils.Clamp01(f.Progress)

	drawSphere(c, layout, theme)

	n := float64(len(bodies))
	for i, b := range bodies {
		// 每条轨道占据进度区间的 1/n
		local := utils.Clamp01(progress*n - float64(i))
		if local <= 0 {
			continue
		}
		sweep := utils.EaseOutCubic(local) * 2 * math.Pi
		pts := utils.EllipsePolyline(nil, layout.occluder.Center, b.RadiusX, b.RadiusY, b.Rotation, 0, sweep, orbitSegments)
		c.StrokePolyline(pts, 1, render.Fade(theme.Secondary, 0.45))

		if local >= 0.5 {
			occ := occlusionFor(layout, b, f)
			occ.VisibilityAlpha *= utils.SmoothStep((local - 0.5) * 2)
			drawBody(c, occ, layout.unit*0.02, theme)
		}
	}
}

// frac 返回 x 的小数部分 [0, 1)
func frac(x float64) float64 {
	return x - math.Floor(x)
}
