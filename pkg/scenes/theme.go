package scenes

import (
	"image/color"

	"github.com/decker502/orbitscape/pkg/render"
)

// Theme 场景主题，只影响背景与配色
type Theme struct {
	Name       string
	Background color.NRGBA
	Glow       color.NRGBA // 背景中心光晕
	Primary    color.NRGBA // 主体（球体、节点）
	Secondary  color.NRGBA // 轨道、连线
	Accent     color.NRGBA // 光束、能量包、脉冲
}

var (
	ThemeNight = Theme{
		Name:       "night",
		Background: color.NRGBA{R: 6, G: 10, B: 24, A: 255},
		Glow:       color.NRGBA{R: 40, G: 70, B: 160, A: 255},
		Primary:    color.NRGBA{R: 90, G: 140, B: 255, A: 255},
		Secondary:  color.NRGBA{R: 120, G: 150, B: 210, A: 255},
		Accent:     color.NRGBA{R: 120, G: 240, B: 255, A: 255},
	}
	ThemeDusk = Theme{
		Name:       "dusk",
		Background: color.NRGBA{R: 20, G: 10, B: 28, A: 255},
		Glow:       color.NRGBA{R: 150, G: 60, B: 120, A: 255},
		Primary:    color.NRGBA{R: 250, G: 150, B: 110, A: 255},
		Secondary:  color.NRGBA{R: 200, G: 140, B: 190, A: 255},
		Accent:     color.NRGBA{R: 255, G: 220, B: 140, A: 255},
	}
	ThemeDeep = Theme{
		Name:       "deep",
		Background: color.NRGBA{R: 4, G: 16, B: 20, A: 255},
		Glow:       color.NRGBA{R: 20, G: 110, B: 110, A: 255},
		Primary:    color.NRGBA{R: 60, G: 220, B: 190, A: 255},
		Secondary:  color.NRGBA{R: 90, G: 170, B: 170, A: 255},
		Accent:     color.NRGBA{R: 180, G: 255, B: 120, A: 255},
	}
	ThemeAurora = Theme{
		Name:       "aurora",
		Background: color.NRGBA{R: 8, G: 8, B: 20, A: 255},
		Glow:       color.NRGBA{R: 60, G: 160, B: 120, A: 255},
		Primary:    color.NRGBA{R: 160, G: 120, B: 255, A: 255},
		Secondary:  color.NRGBA{R: 110, G: 200, B: 170, A: 255},
		Accent:     color.NRGBA{R: 140, G: 255, B: 200, A: 255},
	}
)

// DrawBackground 绘制主题背景：纯色底 + 同心圆近似的径向光晕
func DrawBackground(c render.Canvas, theme Theme, f Frame) {
	c.Fill(theme.Background)

	w, h := c.Size()
	unit := min(w, h)
	if unit <= 0 {
		return
	}

	rings := 6
	if f.LowPower {
		rings = 3
	}
	cx, cy := w*0.5, h*0.42
	for i := rings; i >= 1; i-- {
		frac := float64(i) / float64(rings)
		c.FillCircle(cx, cy, unit*0.75*frac, render.Fade(theme.Glow, 0.06))
	}
}
