package game

import (
	"time"

	"github.com/decker502/orbitscape/pkg/config"
)

// FrameClock 帧时钟
//
// 把宿主提供的时间戳换算为每帧的间隔（秒），并做两件事：
//   - 首帧没有上一帧可比较，使用 FallbackDeltaMs（约 1/60 秒）
//   - 单帧间隔不超过 MaxDeltaMs，窗口挂起/失焦恢复后不会跳一大步
//
// 时间倒退（非单调时间源）按 0 处理，该帧被各系统跳过。
type FrameClock struct {
	fallback float64 // 秒
	maxDelta float64 // 秒

	last    time.Time
	started bool
	elapsed float64
	delta   float64
}

// NewFrameClock 创建帧时钟
func NewFrameClock(cfg config.ClockConfig) *FrameClock {
	return &FrameClock{
		fallback: cfg.FallbackDeltaMs / 1000,
		maxDelta: cfg.MaxDeltaMs / 1000,
	}
}

// Tick 记录新的时间戳，返回限制后的帧间隔（秒）
func (c *FrameClock) Tick(now time.Time) float64 {
	delta := c.fallback
	if c.started {
		delta = now.Sub(c.last).Seconds()
	}
	c.last = now
	c.started = true

	if !(delta > 0) {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}

	c.delta = delta
	c.elapsed += delta
	return delta
}

// Reset 回到初始状态，下一次 Tick 视为首帧
func (c *FrameClock) Reset() {
	c.started = false
	c.elapsed = 0
	c.delta = 0
}

// Elapsed 返回累计的（已限制的）运行时间，单位秒
func (c *FrameClock) Elapsed() float64 {
	return c.elapsed
}

// Delta 返回最近一帧的间隔，单位秒
func (c *FrameClock) Delta() float64 {
	return c.delta
}
