package components

// OrbitingBody 沿旋转椭圆运动的轨道体
//
// 参数角与位置都不存储：每帧由 AngleAt 求出参数角，再通过
// utils.PointOnRotatedEllipse 重新投影。
type OrbitingBody struct {
	RadiusX  float64 // 椭圆长半轴
	RadiusY  float64 // 椭圆短半轴
	Rotation float64 // 轨道平面旋转（弧度）
	Speed    float64 // 角速度（弧度/秒）
	Phase    float64 // 初始相位（弧度）
}

// AngleAt 计算经过 elapsedSeconds 后的参数角
// 减弱动态效果时角度保持在初始相位
func (b OrbitingBody) AngleAt(elapsedSeconds float64, reducedMotion bool) float64 {
	if reducedMotion {
		return b.Phase
	}
	return b.Phase + elapsedSeconds*b.Speed
}
