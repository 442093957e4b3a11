package scenes

import (
	"math"

	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

// 种子固定，每次启动得到相同的布局
const (
	meshSeed     = 11
	starSeed     = 23
	parallaxSeed = 37
)

// 布局只与种子和数量有关，包初始化时生成一次，之后只读
var (
	meshFull     = meshNodes(9)
	meshLow      = meshNodes(5)
	starLayout   = starField(60) // 低性能模式取前 30 个
	parallaxFull = parallaxLayers(40)
	parallaxLow  = parallaxLayers(20)
)

// meshNode 中继网络节点（归一化坐标）
type meshNode struct {
	x, y       float64
	driftPhase float64
	driftSpeed float64
}

func meshNodes(count int) []meshNode {
	rng := utils.NewSeededRandom(meshSeed)
	nodes := make([]meshNode, count)
	for i := range nodes {
		// 按列排布再抖动，避免节点扎堆
		col := (float64(i) + 0.5) / float64(count)
		nodes[i] = meshNode{
			x:          0.1 + col*0.8 + rng.Range(-0.04, 0.04),
			y:          rng.Range(0.2, 0.8),
			driftPhase: rng.Range(0, 2*math.Pi),
			driftSpeed: rng.Range(0.3, 0.7),
		}
	}
	return nodes
}

func drawRelayMesh(c render.Canvas, theme Theme, w, h float64, f Frame) {
	nodes := meshFull
	if f.LowPower {
		nodes = meshLow
	}
	t := f.motionTime()
	unit := min(w, h)

	pos := make([]utils.Point, len(nodes))
	for i, n := range nodes {
		dx := math.Sin(t*n.driftSpeed+n.driftPhase) * 0.015
		dy := math.Cos(t*n.driftSpeed*0.8+n.driftPhase) * 0.02
		pos[i] = utils.Point{X: (n.x + dx) * w, Y: (n.y + dy) * h}
	}

	// 每个节点连接后面两个节点
	var link []utils.Point
	for i := range pos {
		for step := 1; step <= 2 && i+step < len(pos); step++ {
			a, b := pos[i], pos[i+step]
			bend := 0.12
			if (i+step)%2 == 0 {
				bend = -bend
			}
			ctrl := utils.BeamControlPoint(a, b, bend)
			link = utils.QuadraticPolyline(link, a, ctrl, b, 12)
			c.StrokePolyline(link, 1, render.Fade(theme.Secondary, 0.35))

			p := frac(t*0.25 + nodes[i].driftPhase/(2*math.Pi) + float64(step)*0.5)
			pkt := utils.QuadraticPoint(a, ctrl, b, p)
			c.FillCircle(pkt.X, pkt.Y, unit*0.007, theme.Accent)
		}
	}

	for i, p := range pos {
		pulse := 0.5 + 0.5*math.Sin(t*1.5+nodes[i].driftPhase)
		c.FillCircle(p.X, p.Y, unit*0.03, render.Fade(theme.Primary, 0.15+0.15*pulse))
		c.FillCircle(p.X, p.Y, unit*0.014, theme.Primary)
	}
}

// star 背景星点（归一化坐标）
type star struct {
	x, y  float64
	phase float64
	size  float64
}

func starField(count int) []star {
	v := utils.NewSeededRandom(starSeed).Sequence(4 * count)
	stars := make([]star, count)
	for i := range stars {
		r := v[4*i : 4*i+4]
		stars[i] = star{
			x:     r[0],
			y:     r[1],
			phase: r[2] * 2 * math.Pi,
			size:  utils.Lerp(0.6, 1.8, r[3]),
		}
	}
	return stars
}

func drawPulseField(c render.Canvas, theme Theme, w, h float64, f Frame) {
	stars := starLayout
	if f.LowPower {
		stars = stars[:len(stars)/2]
	}
	t := f.motionTime()
	unit := min(w, h)

	for _, s := range stars {
		twinkle := 0.35 + 0.65*(0.5+0.5*math.Sin(t*2+s.phase))
		c.FillCircle(s.x*w, s.y*h, s.size, render.Fade(theme.Secondary, twinkle))
	}

	cx, cy := w*0.5, h*0.5
	maxR := unit * 0.48
	const rings = 3
	for k := 0; k < rings; k++ {
		p := frac(t*0.18 + float64(k)/rings)
		if f.ReducedMotion {
			// 静态同心环
			p = (float64(k) + 1) / (rings + 1)
		}
		// 外扩时由强调色过渡到辅色
		ring := render.Mix(theme.Accent, theme.Secondary, p)
		c.StrokeCircle(cx, cy, maxR*utils.EaseInOutCubic(p), 2, render.Fade(ring, (1-p)*0.8))
	}
	c.FillCircle(cx, cy, unit*0.04, theme.Primary)
}

const parallaxDepths = 3

// particle 视差层中的粒子（归一化坐标，speed 已按层深缩放）
type particle struct {
	x, y  float64
	speed float64
}

func parallaxLayers(perLayer int) [parallaxDepths][]particle {
	rng := utils.NewSeededRandom(parallaxSeed)
	var layers [parallaxDepths][]particle
	for layer := range layers {
		depth := float64(layer+1) / parallaxDepths
		ps := make([]particle, perLayer)
		for i := range ps {
			ps[i] = particle{x: rng.Float(), y: rng.Float(), speed: rng.Range(0.005, 0.02) * depth}
		}
		layers[layer] = ps
	}
	return layers
}

// drawParallaxField 三层粒子，越近的层随指针偏移越大
func drawParallaxField(c render.Canvas, theme Theme, w, h float64, f Frame) {
	layers := &parallaxFull
	if f.LowPower {
		layers = &parallaxLow
	}
	t := f.motionTime()
	unit := min(w, h)

	for layer, ps := range layers {
		depth := float64(layer+1) / parallaxDepths
		offX := -f.Pointer.DisplayX * unit * 0.05 * depth
		offY := -f.Pointer.DisplayY * unit * 0.05 * depth
		alpha := 0.25 + 0.55*depth

		for _, p := range ps {
			// 向上缓慢漂移，越过顶部后从底部回绕
			y := frac(p.y - t*p.speed)
			c.FillCircle(p.x*w+offX, y*h+offY, 0.8+1.6*depth, render.Fade(theme.Secondary, alpha))
		}
	}
}
