package render

import "math"

// Viewport 绘制表面的显示尺寸与后备分辨率
//
// 后备分辨率 = 显示尺寸 × 设备像素比（上限 maxDensity）。
// 只有当显示尺寸或有效像素比真正变化时才会重新分配，
// 相同参数重复调用 Resize 是空操作。
type Viewport struct {
	maxDensity float64

	displayW, displayH float64
	density            float64
	backingW, backingH int

	reallocations int
}

// NewViewport 创建视口，maxDensity 小于 1 时按 1 处理
func NewViewport(maxDensity float64) *Viewport {
	v := &Viewport{density: 1}
	v.SetMaxDensity(maxDensity)
	return v
}

// SetMaxDensity 修改像素比上限（低性能模式切换时调用）
// 下一次 Resize 会根据新的上限判断是否需要重新分配
func (v *Viewport) SetMaxDensity(maxDensity float64) {
	if !(maxDensity >= 1) {
		maxDensity = 1
	}
	v.maxDensity = maxDensity
}

// EffectiveDensity 返回限制后的像素比
func (v *Viewport) EffectiveDensity(density float64) float64 {
	if !(density > 0) || math.IsInf(density, 0) {
		density = 1
	}
	return math.Min(density, v.maxDensity)
}

// Resize 根据显示尺寸与设备像素比更新后备分辨率
//
// 返回：
//   - bool: 是否发生了重新分配（参数未变化时返回 false）
func (v *Viewport) Resize(displayW, displayH, density float64) bool {
	displayW = sanitizeExtent(displayW)
	displayH = sanitizeExtent(displayH)
	density = v.EffectiveDensity(density)

	if v.reallocations > 0 && displayW == v.displayW && displayH == v.displayH && density == v.density {
		return false
	}

	v.displayW, v.displayH = displayW, displayH
	v.density = density
	v.backingW = int(math.Ceil(displayW * density))
	v.backingH = int(math.Ceil(displayH * density))
	v.reallocations++
	return true
}

// DisplaySize 返回显示（逻辑）尺寸
func (v *Viewport) DisplaySize() (float64, float64) {
	return v.displayW, v.displayH
}

// BackingSize 返回后备分辨率（像素）
func (v *Viewport) BackingSize() (int, int) {
	return v.backingW, v.backingH
}

// Density 返回当前有效像素比（像素/逻辑单位）
func (v *Viewport) Density() float64 {
	return v.density
}

// Reallocations 返回重新分配次数
func (v *Viewport) Reallocations() int {
	return v.reallocations
}

// IsEmpty 表面是否不可绘制（任一边为 0）
func (v *Viewport) IsEmpty() bool {
	return v.backingW <= 0 || v.backingH <= 0
}

func sanitizeExtent(v float64) float64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
