package components

// PointerState 指针输入状态
//
// Target 是最近一次输入事件写入的原始目标（归一化到 [-1, 1]），
// Display 是每帧指数平滑后用于渲染的值。输入事件只写 Target，
// 渲染只读 Display，抖动的输入不会直接传到画面上。
type PointerState struct {
	TargetX, TargetY   float64
	DisplayX, DisplayY float64
	Inside             bool // 指针是否位于绘制表面内
}
