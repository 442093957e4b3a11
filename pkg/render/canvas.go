// Package render 提供即时模式的二维绘制表面抽象
//
// 场景渲染器只依赖 Canvas 接口，具体实现有：
//   - EbitenCanvas：窗口宿主使用，基于 ebiten vector 绘制，离屏图层合成
//   - GGCanvas：软件光栅化（gogpu/gg），用于终端宿主、海报导出与降级模式
//   - Recorder：仅记录绘制指令，用于测试
//
// 所有坐标都是逻辑坐标，像素密度换算由各实现内部处理。
package render

import (
	"image/color"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/utils"
)

// Canvas 即时模式绘制表面
type Canvas interface {
	// Size 返回逻辑尺寸
	Size() (width, height float64)

	// Fill 用纯色填满整个表面（或当前图层）
	Fill(c color.NRGBA)

	FillRect(x, y, width, height float64, c color.NRGBA)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	StrokeCircle(cx, cy, r, lineWidth float64, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, lineWidth float64, c color.NRGBA)
	StrokePolyline(points []utils.Point, lineWidth float64, c color.NRGBA)

	// DrawLayer 在独立图层中执行 draw，然后按 blend 合成到当前表面
	// 变换以表面中心为锚点
	DrawLayer(blend components.BlendDescriptor, draw func(Canvas))
}

// Fade 返回不透明度乘以 alpha 后的颜色
func Fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A)*utils.Clamp01(alpha) + 0.5)
	return c
}

// Mix 在两种颜色之间线性插值（含 alpha）
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	t = utils.Clamp01(t)
	return color.NRGBA{
		R: uint8(utils.Lerp(float64(a.R), float64(b.R), t) + 0.5),
		G: uint8(utils.Lerp(float64(a.G), float64(b.G), t) + 0.5),
		B: uint8(utils.Lerp(float64(a.B), float64(b.B), t) + 0.5),
		A: uint8(utils.Lerp(float64(a.A), float64(b.A), t) + 0.5),
	}
}
