package render

import (
	"image/color"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/utils"
)

// OpKind 绘制指令类型
type OpKind string

const (
	OpFill           OpKind = "fill"
	OpFillRect       OpKind = "fill-rect"
	OpFillCircle     OpKind = "fill-circle"
	OpStrokeCircle   OpKind = "stroke-circle"
	OpStrokeLine     OpKind = "stroke-line"
	OpStrokePolyline OpKind = "stroke-polyline"
	OpLayerBegin     OpKind = "layer-begin"
	OpLayerEnd       OpKind = "layer-end"
)

// Op 一条已记录的绘制指令
type Op struct {
	Kind   OpKind
	Points []utils.Point // 圆心 / 线段端点 / 折线顶点 / 矩形左上角
	Radius float64
	Width  float64 // 线宽或矩形宽度
	Height float64
	Color  color.NRGBA
	Blend  components.BlendDescriptor // 仅 OpLayerBegin
	Depth  int                        // 图层嵌套深度（0 = 根表面）
}

// Recorder 只记录指令、不产生像素的 Canvas
// 用于测试场景渲染与过渡合成的顺序和参数
type Recorder struct {
	width, height float64
	depth         int
	ops           []Op
}

// NewRecorder 创建指定逻辑尺寸的记录画布
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

func (r *Recorder) Fill(c color.NRGBA) {
	r.record(Op{Kind: OpFill, Color: c})
}

func (r *Recorder) FillRect(x, y, width, height float64, c color.NRGBA) {
	r.record(Op{Kind: OpFillRect, Points: []utils.Point{{X: x, Y: y}}, Width: width, Height: height, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.record(Op{Kind: OpFillCircle, Points: []utils.Point{{X: cx, Y: cy}}, Radius: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, lineWidth float64, c color.NRGBA) {
	r.record(Op{Kind: OpStrokeCircle, Points: []utils.Point{{X: cx, Y: cy}}, Radius: radius, Width: lineWidth, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, lineWidth float64, c color.NRGBA) {
	r.record(Op{Kind: OpStrokeLine, Points: []utils.Point{{X: x0, Y: y0}, {X: x1, Y: y1}}, Width: lineWidth, Color: c})
}

func (r *Recorder) StrokePolyline(points []utils.Point, lineWidth float64, c color.NRGBA) {
	// 调用方可能复用切片，这里必须复制
	r.record(Op{Kind: OpStrokePolyline, Points: append([]utils.Point(nil), points...), Width: lineWidth, Color: c})
}

func (r *Recorder) DrawLayer(blend components.BlendDescriptor, draw func(Canvas)) {
	r.record(Op{Kind: OpLayerBegin, Blend: blend})
	r.depth++
	draw(r)
	r.depth--
	r.record(Op{Kind: OpLayerEnd})
}

func (r *Recorder) record(op Op) {
	op.Depth = r.depth
	r.ops = append(r.ops, op)
}

// Ops 返回已记录的全部指令
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Layers 按顺序返回所有图层的合成参数
func (r *Recorder) Layers() []components.BlendDescriptor {
	var out []components.BlendDescriptor
	for _, op := range r.ops {
		if op.Kind == OpLayerBegin {
			out = append(out, op.Blend)
		}
	}
	return out
}

// Count 返回指定类型指令的数量
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.depth = 0
}
