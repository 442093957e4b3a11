package utils

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RawPointer 当前帧的原始指针输入
// 统一鼠标与触摸，触摸优先
type RawPointer struct {
	X, Y        int
	Present     bool // 有活动触摸，或窗口获得焦点时的鼠标
	JustPressed bool // 本帧刚按下（点击/触摸开始）
	IsTouch     bool
}

// PollPointer 从 ebiten 读取当前帧的指针输入
func PollPointer() RawPointer {
	// 首先检查新的触摸（移动设备）
	if touchIDs := inpututil.AppendJustPressedTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return RawPointer{X: x, Y: y, Present: true, JustPressed: true, IsTouch: true}
	}

	// 持续的触摸
	if touchIDs := ebiten.AppendTouchIDs(nil); len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return RawPointer{X: x, Y: y, Present: true, IsTouch: true}
	}

	// 其次检查鼠标（桌面设备）
	x, y := ebiten.CursorPosition()
	return RawPointer{
		X:           x,
		Y:           y,
		Present:     ebiten.IsFocused(),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// ToLogical 将屏幕设备像素坐标按设备缩放因子换算为逻辑坐标（向下取整）
func (p RawPointer) ToLogical(deviceScale float64) RawPointer {
	if !(deviceScale > 0) {
		return p
	}
	p.X = int(math.Floor(float64(p.X) / deviceScale))
	p.Y = int(math.Floor(float64(p.Y) / deviceScale))
	return p
}

// PointerEvents 一帧内相对某个绘制区域的指针事件
type PointerEvents struct {
	Moved  bool
	X, Y   float64 // Moved 时有效：相对区域左上角的坐标
	Left   bool    // 指针离开区域（或触摸结束）
	Tapped bool    // 区域内的点击/触摸
}

// PointerTracker 把逐帧的原始指针状态转换为进入/移动/离开事件
//
// ebiten 只提供轮询接口，没有 move/leave 回调；每个绘制区域持有一个 tracker，
// 与上一帧比较得出事件。并排预览时指针从一个区域移到另一个区域，
// 前一个区域收到 Left，后一个区域收到 Moved。
type PointerTracker struct {
	inside     bool
	lastX      int
	lastY      int
	hasLastPos bool
}

// Observe 比较本帧输入与上一帧状态，返回区域内的事件
func (pt *PointerTracker) Observe(raw RawPointer, bounds image.Rectangle) PointerEvents {
	var ev PointerEvents
	inside := raw.Present && image.Pt(raw.X, raw.Y).In(bounds)

	if inside {
		moved := !pt.inside || !pt.hasLastPos || raw.X != pt.lastX || raw.Y != pt.lastY
		if moved {
			ev.Moved = true
			ev.X = float64(raw.X - bounds.Min.X)
			ev.Y = float64(raw.Y - bounds.Min.Y)
		}
		ev.Tapped = raw.JustPressed
		pt.lastX, pt.lastY, pt.hasLastPos = raw.X, raw.Y, true
	} else if pt.inside {
		ev.Left = true
	}

	pt.inside = inside
	return ev
}

// Inside 指针当前是否位于区域内
func (pt *PointerTracker) Inside() bool {
	return pt.inside
}
