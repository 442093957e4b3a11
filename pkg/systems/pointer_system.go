package systems

import (
	"math"

	"github.com/decker502/orbitscape/pkg/components"
	"github.com/decker502/orbitscape/pkg/utils"
)

// PointerSystem 指针目标与平滑显示值
//
// 输入事件（移动/离开）只写目标值；Update 每帧让显示值以指数方式逼近目标：
//
//	display += (target - display) * factor
//
// factor 由 60fps 下的平滑系数换算为与帧率无关的值：1 - (1-smoothing)^(dt·60)，
// 因此 30fps 与 120fps 下的视觉速度一致。
type PointerSystem struct {
	state     components.PointerState
	smoothing float64
}

// NewPointerSystem 创建指针系统
// smoothing 为 60fps 下每帧的平滑系数 (0, 1]
func NewPointerSystem(smoothing float64) *PointerSystem {
	return &PointerSystem{smoothing: utils.Clamp(smoothing, 1e-6, 1)}
}

// NormalizePointer 将相对绘制表面左上角的坐标归一化到 [-1, 1]
// 表面尺寸无效时返回中性值 (0, 0)
func NormalizePointer(x, y, width, height float64) (float64, float64) {
	if !(width > 0) || !(height > 0) {
		return 0, 0
	}
	nx := utils.Clamp(x/width*2-1, -1, 1)
	ny := utils.Clamp(y/height*2-1, -1, 1)
	return nx, ny
}

// MoveTo 记录新的归一化目标位置
func (ps *PointerSystem) MoveTo(nx, ny float64) {
	ps.state.TargetX = utils.Clamp(nx, -1, 1)
	ps.state.TargetY = utils.Clamp(ny, -1, 1)
	ps.state.Inside = true
}

// Leave 指针离开表面：目标回到中性位置，显示值继续平滑过渡而不是跳变
func (ps *PointerSystem) Leave() {
	ps.state.TargetX = 0
	ps.state.TargetY = 0
	ps.state.Inside = false
}

// Update 推进一帧平滑
func (ps *PointerSystem) Update(deltaTime float64) {
	if !(deltaTime > 0) {
		return
	}
	factor := 1 - math.Pow(1-ps.smoothing, deltaTime*60)
	ps.state.DisplayX += (ps.state.TargetX - ps.state.DisplayX) * factor
	ps.state.DisplayY += (ps.state.TargetY - ps.state.DisplayY) * factor
}

// State 返回当前指针状态
func (ps *PointerSystem) State() components.PointerState {
	return ps.state
}
