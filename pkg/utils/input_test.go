package utils

import (
	"image"
	"testing"
)

// TestPointerTrackerEvents 进入、移动、静止、离开
func TestPointerTrackerEvents(t *testing.T) {
	bounds := image.Rect(100, 0, 300, 200)
	var pt PointerTracker

	tests := []struct {
		name   string
		raw    RawPointer
		moved  bool
		left   bool
		tapped bool
		x, y   float64
	}{
		{"区域外", RawPointer{X: 50, Y: 50, Present: true}, false, false, false, 0, 0},
		{"进入", RawPointer{X: 150, Y: 40, Present: true}, true, false, false, 50, 40},
		{"静止", RawPointer{X: 150, Y: 40, Present: true}, false, false, false, 0, 0},
		{"移动并点击", RawPointer{X: 160, Y: 45, Present: true, JustPressed: true}, true, false, true, 60, 45},
		{"离开到另一区域", RawPointer{X: 320, Y: 45, Present: true}, false, true, false, 0, 0},
		{"保持在外", RawPointer{X: 330, Y: 45, Present: true}, false, false, false, 0, 0},
	}

	for _, tt := range tests {
		ev := pt.Observe(tt.raw, bounds)
		if ev.Moved != tt.moved || ev.Left != tt.left || ev.Tapped != tt.tapped {
			t.Fatalf("%s: got %+v", tt.name, ev)
		}
		if tt.moved && (ev.X != tt.x || ev.Y != tt.y) {
			t.Errorf("%s: 坐标 (%v, %v), want (%v, %v)", tt.name, ev.X, ev.Y, tt.x, tt.y)
		}
	}
}

// TestPointerTrackerTouchEnd 触摸结束视为离开
func TestPointerTrackerTouchEnd(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	var pt PointerTracker

	ev := pt.Observe(RawPointer{X: 10, Y: 10, Present: true, JustPressed: true, IsTouch: true}, bounds)
	if !ev.Moved || !ev.Tapped || !pt.Inside() {
		t.Fatalf("触摸开始: %+v", ev)
	}

	ev = pt.Observe(RawPointer{X: 10, Y: 10}, bounds)
	if !ev.Left || pt.Inside() {
		t.Errorf("触摸结束应离开: %+v", ev)
	}
}

// TestPointerTrackerReenterSamePosition 离开后在同一位置重新进入仍报告移动
func TestPointerTrackerReenterSamePosition(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	var pt PointerTracker

	pt.Observe(RawPointer{X: 20, Y: 20, Present: true}, bounds)
	pt.Observe(RawPointer{X: 20, Y: 20, Present: false}, bounds)
	ev := pt.Observe(RawPointer{X: 20, Y: 20, Present: true}, bounds)
	if !ev.Moved {
		t.Errorf("重新进入应报告移动: %+v", ev)
	}
}

// TestRawPointerToLogical 设备像素按缩放因子换算为逻辑坐标，其余字段保持不变
func TestRawPointerToLogical(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawPointer
		scale float64
		x, y  int
	}{
		{"缩放 1", RawPointer{X: 120, Y: 80, Present: true}, 1, 120, 80},
		{"缩放 2", RawPointer{X: 121, Y: 81, Present: true}, 2, 60, 40},
		{"缩放 1.5", RawPointer{X: 300, Y: 150, Present: true, JustPressed: true}, 1.5, 200, 100},
		{"负坐标向下取整", RawPointer{X: -1, Y: -3, Present: true}, 2, -1, -2},
		{"无效缩放保持原值", RawPointer{X: 50, Y: 60, IsTouch: true}, 0, 50, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.raw.ToLogical(tt.scale)
			if got.X != tt.x || got.Y != tt.y {
				t.Errorf("ToLogical(%v): got (%d, %d), want (%d, %d)", tt.scale, got.X, got.Y, tt.x, tt.y)
			}
			if got.Present != tt.raw.Present || got.JustPressed != tt.raw.JustPressed || got.IsTouch != tt.raw.IsTouch {
				t.Errorf("状态字段被修改: %+v -> %+v", tt.raw, got)
			}
		})
	}
}
