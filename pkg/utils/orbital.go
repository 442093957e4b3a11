// Package utils 提供动画引擎常用的纯函数工具
//
// orbital.go 提供轨道几何计算：旋转椭圆上的点、遮挡判定与可见度淡入淡出。
//
// # 坐标约定
//
// 屏幕坐标系 y 轴向下。椭圆参数角 angle 的局部坐标为
//
//	local = (radiusX·cos(angle), radiusY·sin(angle))
//
// 局部 y 分量（sin(angle)）同时作为"深度"项：sin(angle) > 0 的半圈位于遮挡球体前方
// （屏幕下方），sin(angle) < 0 的半圈位于球体后方。
//
// 所有函数都不保存状态，每帧根据角度重新计算，不存在累积误差。
package utils

import "math"

// Point 二维点（逻辑坐标）
type Point struct {
	X, Y float64
}

// Add 返回 p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale 返回 p * s
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dist 返回 p 到 q 的欧氏距离
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// LerpPoint 在 a、b 之间线性插值
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// PointOnRotatedEllipse 计算旋转椭圆上参数角为 angle 的点
//
// 参数：
//   - center: 椭圆中心
//   - radiusX, radiusY: 半轴长度
//   - rotation: 椭圆绕中心的旋转角（弧度）
//   - angle: 椭圆参数角（弧度）
func PointOnRotatedEllipse(center Point, radiusX, radiusY, rotation, angle float64) Point {
	lx := radiusX * math.Cos(angle)
	ly := radiusY * math.Sin(angle)
	sinR, cosR := math.Sincos(rotation)
	return Point{
		X: center.X + lx*cosR - ly*sinR,
		Y: center.Y + lx*sinR + ly*cosR,
	}
}

// EllipseDepth 返回参数角对应的深度项 ∈ [-1, 1]
// 正值在遮挡体前方，负值在后方
func EllipseDepth(angle float64) float64 {
	return math.Sin(angle)
}

// Occluder 遮挡球体（屏幕上的圆形轮廓）
type Occluder struct {
	Center Point
	Radius float64
}

// OcclusionBands 可见度淡入淡出的过渡带宽度
type OcclusionBands struct {
	// Edge 轮廓边缘两侧的距离过渡带（逻辑像素）
	Edge float64
	// Depth 深度项从 0 到 -Depth 之间线性过渡
	Depth float64
	// FrontArc 可发射光束所需的最小深度项
	FrontArc float64
}

// DefaultOcclusionBands 默认过渡带
func DefaultOcclusionBands() OcclusionBands {
	return OcclusionBands{Edge: 10, Depth: 0.18, FrontArc: 0.08}
}

// OcclusionResult 单个轨道体相对遮挡体的判定结果（每帧重新计算，不存储）
type OcclusionResult struct {
	Position         Point
	VisibilityAlpha  float64
	IsBehindOccluder bool
	CanBeam          bool
}

// ComputeOcclusion 计算轨道体在给定参数角下的位置与可见度
//
// 判定规则：
//   - 位于后方（深度 < 0）且投影落在遮挡体半径内 → IsBehindOccluder
//   - 可见度 = 1 - depthFactor·edgeFactor，两个因子都是连续的分段线性函数，
//     因此可见度随角度连续变化，不会出现跳变
//   - 仅当不在遮挡体后方、且位于前方/下方弧段时才允许发射光束
//
// 轨道椭圆以遮挡体中心为中心。
func ComputeOcclusion(occ Occluder, radiusX, radiusY, rotation, angle float64, bands OcclusionBands) OcclusionResult {
	pos := PointOnRotatedEllipse(occ.Center, radiusX, radiusY, rotation, angle)
	depth := EllipseDepth(angle)
	dist := pos.Dist(occ.Center)

	depthFactor := 0.0
	if bands.Depth > 0 {
		depthFactor = Clamp01(-depth / bands.Depth)
	} else if depth < 0 {
		depthFactor = 1
	}

	edgeFactor := 0.0
	if bands.Edge > 0 {
		edgeFactor = Clamp01((occ.Radius + bands.Edge - dist) / (2 * bands.Edge))
	} else if dist < occ.Radius {
		edgeFactor = 1
	}

	behind := depth < 0 && dist < occ.Radius
	frontArc := depth > bands.FrontArc && pos.Y >= occ.Center.Y

	return OcclusionResult{
		Position:         pos,
		VisibilityAlpha:  Clamp01(1 - depthFactor*edgeFactor),
		IsBehindOccluder: behind,
		CanBeam:          !behind && frontArc,
	}
}

// QuadraticPoint 计算二次贝塞尔曲线在参数 t 处的点
// B(t) = (1-t)²·p0 + 2(1-t)t·ctrl + t²·p1
func QuadraticPoint(p0, ctrl, p1 Point, t float64) Point {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	c := t * t
	return Point{
		X: a*p0.X + b*ctrl.X + c*p1.X,
		Y: a*p0.Y + b*ctrl.Y + c*p1.Y,
	}
}

// QuadraticPolyline 将二次贝塞尔曲线采样为折线（segments+1 个点）
// dst 可复用以减少分配
func QuadraticPolyline(dst []Point, p0, ctrl, p1 Point, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	dst = dst[:0]
	for i := 0; i <= segments; i++ {
		dst = append(dst, QuadraticPoint(p0, ctrl, p1, float64(i)/float64(segments)))
	}
	return dst
}

// BeamControlPoint 返回两点之间弯曲光束的控制点
// bend 为相对两点距离的侧向偏移比例（正值向左弯）
func BeamControlPoint(from, to Point, bend float64) Point {
	mid := LerpPoint(from, to, 0.5)
	dx, dy := to.X-from.X, to.Y-from.Y
	return Point{X: mid.X + dy*bend, Y: mid.Y - dx*bend}
}

// EllipsePolyline 将旋转椭圆上 [from, to] 参数区间采样为折线
func EllipsePolyline(dst []Point, center Point, radiusX, radiusY, rotation, from, to float64, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	dst = dst[:0]
	step := (to - from) / float64(segments)
	for i := 0; i <= segments; i++ {
		dst = append(dst, PointOnRotatedEllipse(center, radiusX, radiusY, rotation, from+step*float64(i)))
	}
	return dst
}
