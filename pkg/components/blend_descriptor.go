package components

// BlendDescriptor 描述一个场景图层如何合成到画布上
//
// 由场景过渡引擎根据 TransitionState 推导，场景渲染器本身不读取过渡状态。
// 变换以画布中心为锚点：先按 Scale 缩放，再平移 (ShiftX, ShiftY)。
type BlendDescriptor struct {
	Alpha  float64 // 图层不透明度 [0, 1]
	ShiftX float64 // 水平平移（逻辑像素）
	ShiftY float64 // 垂直平移（逻辑像素）
	Scale  float64 // 缩放倍数（1.0 = 原始大小）
}

// IdentityBlend 返回不做任何变换的完全不透明图层
func IdentityBlend() BlendDescriptor {
	return BlendDescriptor{Alpha: 1, Scale: 1}
}

// IsIdentity 判断图层是否可以直接绘制（无需离屏合成）
func (b BlendDescriptor) IsIdentity() bool {
	return b.Alpha >= 1 && b.ShiftX == 0 && b.ShiftY == 0 && b.Scale == 1
}
