package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/utils"
	"github.com/gogpu/gg"
)

// GGCanvas 基于 gogpu/gg 软件光栅化的 Canvas 实现
//
// 用于没有 GPU 窗口的场合：终端宿主、海报导出、命令行快照。
// gg 的 Fill/Stroke 会返回错误，这里只保留第一个错误，帧结束后通过 Err 取出，
// 场景渲染器不需要逐条处理。
type GGCanvas struct {
	dc            *gg.Context
	width, height float64
	err           error
}

// NewGGCanvas 创建指定后备分辨率的画布
//
// 参数：
//   - pixelW, pixelH: 后备像素尺寸
//   - density: 像素比，逻辑尺寸 = 像素尺寸 / density
func NewGGCanvas(pixelW, pixelH int, density float64) *GGCanvas {
	if !(density > 0) {
		density = 1
	}
	dc := gg.NewContext(pixelW, pixelH)
	dc.Scale(density, density)
	return &GGCanvas{
		dc:     dc,
		width:  float64(pixelW) / density,
		height: float64(pixelH) / density,
	}
}

// Image 返回当前像素内容
func (c *GGCanvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG 将当前内容写入 PNG 文件
func (c *GGCanvas) SavePNG(path string) error {
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save png %s: %w", path, err)
	}
	return nil
}

// Err 返回绘制过程中出现的第一个错误
func (c *GGCanvas) Err() error {
	return c.err
}

// Clear 清空画布并重置错误状态
func (c *GGCanvas) Clear() {
	c.dc.Clear()
	c.err = nil
}

// Close 释放 gg 上下文
func (c *GGCanvas) Close() error {
	return c.dc.Close()
}

func (c *GGCanvas) Size() (float64, float64) {
	return c.width, c.height
}

func (c *GGCanvas) Fill(col color.NRGBA) {
	c.FillRect(0, 0, c.width, c.height, col)
}

func (c *GGCanvas) FillRect(x, y, width, height float64, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(x, y, width, height)
	c.check(c.dc.Fill())
}

func (c *GGCanvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawCircle(cx, cy, r)
	c.check(c.dc.Fill())
}

func (c *GGCanvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawCircle(cx, cy, r)
	c.check(c.dc.Stroke())
}

func (c *GGCanvas) StrokeLine(x0, y0, x1, y1, lineWidth float64, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.check(c.dc.Stroke())
}

func (c *GGCanvas) StrokePolyline(points []utils.Point, lineWidth float64, col color.NRGBA) {
	if len(points) < 2 {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(lineWidth)
	c.dc.SetLineCap(gg.LineCapRound)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.check(c.dc.Stroke())
}

// DrawLayer 使用 gg 图层栈合成；变换通过 Push/Pop 限定在图层内
func (c *GGCanvas) DrawLayer(blend components.BlendDescriptor, draw func(Canvas)) {
	if blend.IsIdentity() {
		draw(c)
		return
	}
	if blend.Alpha <= 0 {
		return
	}

	cx, cy := c.width/2, c.height/2
	c.dc.PushLayer(gg.BlendNormal, utils.Clamp01(blend.Alpha))
	c.dc.Push()
	c.dc.Translate(cx+blend.ShiftX, cy+blend.ShiftY)
	c.dc.Scale(blend.Scale, blend.Scale)
	c.dc.Translate(-cx, -cy)
	draw(c)
	c.dc.Pop()
	c.dc.PopLayer()
}

func (c *GGCanvas) check(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}
