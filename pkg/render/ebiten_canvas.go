package render

import (
	"image/color"
	"log"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 一个引擎实例独占的 ebiten 绘制表面
//
// 持有后备图像与图层离屏图像池。只有 Viewport 报告真正变化时
// 才会释放并重新分配图像，每帧复用同一批图像。
type EbitenSurface struct {
	viewport *Viewport
	target   *ebiten.Image
	layers   []*ebiten.Image
}

// NewEbitenSurface 创建绘制表面
func NewEbitenSurface(viewport *Viewport) *EbitenSurface {
	return &EbitenSurface{viewport: viewport}
}

// Viewport 返回表面使用的视口
func (s *EbitenSurface) Viewport() *Viewport {
	return s.viewport
}

// backingPlan 视口更新后对后备图像的处理方式
type backingPlan int

const (
	backingKeep     backingPlan = iota // 复用现有图像
	backingRelease                     // 释放图像，表面为空
	backingAllocate                    // 释放后按新尺寸重新分配
)

// planBacking 根据视口是否变化、当前是否持有图像、视口是否为空决定处理方式
// 视口未变但图像已被释放（如 Dispose 之后）时需要重新分配
func planBacking(changed, hasTarget, empty bool) backingPlan {
	switch {
	case !changed && (hasTarget || empty):
		return backingKeep
	case empty:
		return backingRelease
	default:
		return backingAllocate
	}
}

// Resize 更新显示尺寸与像素比，返回是否重新分配了后备图像
func (s *EbitenSurface) Resize(displayW, displayH, density float64) bool {
	changed := s.viewport.Resize(displayW, displayH, density)
	switch planBacking(changed, s.target != nil, s.viewport.IsEmpty()) {
	case backingKeep:
		return false
	case backingRelease:
		s.release()
		return true
	}
	s.release()
	w, h := s.viewport.BackingSize()
	s.target = ebiten.NewImage(w, h)
	log.Printf("[EbitenSurface] Backing store %dx%d (density %.2f)", w, h, s.viewport.Density())
	return true
}

// Begin 清空后备图像并返回本帧的画布；表面为空时返回 nil
func (s *EbitenSurface) Begin() *EbitenCanvas {
	if s.target == nil {
		return nil
	}
	s.target.Clear()
	return &EbitenCanvas{surface: s, dst: s.target}
}

// Image 返回后备图像（可能为 nil）
func (s *EbitenSurface) Image() *ebiten.Image {
	return s.target
}

// Dispose 释放全部 GPU 图像
func (s *EbitenSurface) Dispose() {
	s.release()
}

func (s *EbitenSurface) release() {
	if s.target != nil {
		s.target.Deallocate()
		s.target = nil
	}
	for _, img := range s.layers {
		img.Deallocate()
	}
	s.layers = s.layers[:0]
}

// layer 返回指定深度的离屏图像（按需创建、清空后复用）
func (s *EbitenSurface) layer(depth int) *ebiten.Image {
	for len(s.layers) <= depth {
		w, h := s.viewport.BackingSize()
		s.layers = append(s.layers, ebiten.NewImage(w, h))
	}
	img := s.layers[depth]
	img.Clear()
	return img
}

// EbitenCanvas 基于 ebiten vector 包的 Canvas 实现
// 逻辑坐标乘以像素比后绘制到后备图像
type EbitenCanvas struct {
	surface *EbitenSurface
	dst     *ebiten.Image
	depth   int
}

func (c *EbitenCanvas) Size() (float64, float64) {
	return c.surface.viewport.DisplaySize()
}

func (c *EbitenCanvas) scale() float32 {
	return float32(c.surface.viewport.Density())
}

func (c *EbitenCanvas) Fill(col color.NRGBA) {
	c.dst.Fill(col)
}

func (c *EbitenCanvas) FillRect(x, y, width, height float64, col color.NRGBA) {
	s := c.scale()
	vector.DrawFilledRect(c.dst, float32(x)*s, float32(y)*s, float32(width)*s, float32(height)*s, col, true)
}

func (c *EbitenCanvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	s := c.scale()
	vector.DrawFilledCircle(c.dst, float32(cx)*s, float32(cy)*s, float32(r)*s, col, true)
}

func (c *EbitenCanvas) StrokeCircle(cx, cy, r, lineWidth float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	s := c.scale()
	vector.StrokeCircle(c.dst, float32(cx)*s, float32(cy)*s, float32(r)*s, float32(lineWidth)*s, col, true)
}

func (c *EbitenCanvas) StrokeLine(x0, y0, x1, y1, lineWidth float64, col color.NRGBA) {
	s := c.scale()
	vector.StrokeLine(c.dst, float32(x0)*s, float32(y0)*s, float32(x1)*s, float32(y1)*s, float32(lineWidth)*s, col, true)
}

// StrokePolyline 逐段描边，在内部顶点补圆形接头
func (c *EbitenCanvas) StrokePolyline(points []utils.Point, lineWidth float64, col color.NRGBA) {
	if len(points) < 2 {
		return
	}
	s := c.scale()
	w := float32(lineWidth) * s
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		vector.StrokeLine(c.dst, float32(a.X)*s, float32(a.Y)*s, float32(b.X)*s, float32(b.Y)*s, w, col, true)
		if i < len(points)-1 && w > 1.5 {
			vector.DrawFilledCircle(c.dst, float32(b.X)*s, float32(b.Y)*s, w/2, col, true)
		}
	}
}

// DrawLayer 在离屏图像中绘制，然后以表面中心为锚点缩放、平移并按 Alpha 合成
func (c *EbitenCanvas) DrawLayer(blend components.BlendDescriptor, draw func(Canvas)) {
	if blend.IsIdentity() {
		draw(c)
		return
	}
	if blend.Alpha <= 0 {
		return
	}

	img := c.surface.layer(c.depth)
	draw(&EbitenCanvas{surface: c.surface, dst: img, depth: c.depth + 1})

	density := c.surface.viewport.Density()
	w, h := c.surface.viewport.BackingSize()
	cx, cy := float64(w)/2, float64(h)/2

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(blend.Scale, blend.Scale)
	op.GeoM.Translate(cx+blend.ShiftX*density, cy+blend.ShiftY*density)
	op.ColorScale.ScaleAlpha(float32(utils.Clamp01(blend.Alpha)))
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(img, op)
}

// SetMaxDensity 修改像素比上限，下一次 Resize 生效
func (s *EbitenSurface) SetMaxDensity(maxDensity float64) {
	s.viewport.SetMaxDensity(maxDensity)
}
