package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EngineConfig 动画引擎调参配置
//
// 配置文件位置: data/engine.yaml（嵌入到可执行文件中），
// 可以通过 --config 指定磁盘上的覆盖文件。
type EngineConfig struct {
	// Transition 场景轮播与过渡
	Transition TransitionConfig `yaml:"transition"`

	// Clock 帧时钟
	Clock ClockConfig `yaml:"clock"`

	// Display 绘制表面
	Display DisplayConfig `yaml:"display"`

	// Pointer 指针平滑
	Pointer PointerConfig `yaml:"pointer"`

	// Energy 能量传输模拟
	Energy EnergyConfig `yaml:"energy"`

	// Occlusion 遮挡淡入淡出
	Occlusion OcclusionConfig `yaml:"occlusion"`
}

// TransitionConfig 场景过渡配置
type TransitionConfig struct {
	HoldMs        float64 `yaml:"holdMs"`        // 单个场景完全显示的时长
	TransitionMs  float64 `yaml:"transitionMs"`  // 交叉过渡时长
	ShiftFraction float64 `yaml:"shiftFraction"` // 最大水平位移（占宽度比例）
	ScaleDrop     float64 `yaml:"scaleDrop"`     // 最大缩小比例
	MinAlpha      float64 `yaml:"minAlpha"`      // 过渡中点的最低不透明度
}

// SegmentMs 返回一个完整周期（保持 + 过渡）的时长
func (c TransitionConfig) SegmentMs() float64 {
	return c.HoldMs + c.TransitionMs
}

// ClockConfig 帧时钟配置
type ClockConfig struct {
	FallbackDeltaMs float64 `yaml:"fallbackDeltaMs"` // 首帧使用的默认间隔
	MaxDeltaMs      float64 `yaml:"maxDeltaMs"`      // 单帧间隔上限（防止标签页挂起后跳帧）
}

// DisplayConfig 绘制表面配置
type DisplayConfig struct {
	MaxPixelDensity      float64 `yaml:"maxPixelDensity"`      // 设备像素比上限
	LowPowerPixelDensity float64 `yaml:"lowPowerPixelDensity"` // 低性能模式下的像素比上限
}

// PointerConfig 指针平滑配置
type PointerConfig struct {
	Smoothing float64 `yaml:"smoothing"` // 60fps 下每帧的平滑系数 (0, 1]
}

// EnergyConfig 能量传输配置
type EnergyConfig struct {
	TransferRate     float64 `yaml:"transferRate"`     // 每秒最大传输量
	PacketsPerSecond float64 `yaml:"packetsPerSecond"` // 有效流量时每秒生成的能量包
	SpawnThreshold   float64 `yaml:"spawnThreshold"`   // 可传输量低于此值时不生成能量包
	BurstDecay       float64 `yaml:"burstDecay"`       // 点击爆发每帧衰减系数
	Epsilon          float64 `yaml:"epsilon"`          // 守恒校正阈值
	PacketSpeedMin   float64 `yaml:"packetSpeedMin"`   // 能量包速度下限（进度/秒）
	PacketSpeedMax   float64 `yaml:"packetSpeedMax"`   // 能量包速度上限
	InitialOrbiter   float64 `yaml:"initialOrbiter"`   // 轨道节点初始能量
}

// OcclusionConfig 遮挡过渡带配置
type OcclusionConfig struct {
	EdgeBand  float64 `yaml:"edgeBand"`  // 轮廓边缘过渡带（相对场景短边的比例）
	DepthBand float64 `yaml:"depthBand"` // 深度过渡带
	FrontArc  float64 `yaml:"frontArc"`  // 允许发射光束的最小深度
}

// DefaultEngineConfig 返回默认配置
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		Transition: TransitionConfig{
			HoldMs:        8000,
			TransitionMs:  1200,
			ShiftFraction: 0.28,
			ScaleDrop:     0.06,
			MinAlpha:      0.05,
		},
		Clock: ClockConfig{
			FallbackDeltaMs: 1000.0 / 60.0,
			MaxDeltaMs:      80,
		},
		Display: DisplayConfig{
			MaxPixelDensity:      2,
			LowPowerPixelDensity: 1,
		},
		Pointer: PointerConfig{
			Smoothing: 0.12,
		},
		Energy: EnergyConfig{
			TransferRate:     0.25,
			PacketsPerSecond: 18,
			SpawnThreshold:   1e-4,
			BurstDecay:       0.92,
			Epsilon:          1e-9,
			PacketSpeedMin:   0.9,
			PacketSpeedMax:   1.3,
			InitialOrbiter:   1,
		},
		Occlusion: OcclusionConfig{
			EdgeBand:  0.02,
			DepthBand: 0.18,
			FrontArc:  0.08,
		},
	}
}

// LoadEngineConfig 从磁盘加载引擎配置
//
// 参数:
//   - path: 配置文件路径（如 "data/engine.yaml"）
//
// 返回:
//   - *EngineConfig: 加载成功后的配置（未填写的字段使用默认值）
//   - error: 读取、解析或验证失败时返回错误
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	return ParseEngineConfig(data)
}

// ParseEngineConfig 解析 YAML 格式的引擎配置
// 以默认配置为底，文件中出现的字段覆盖默认值
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	config := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 检查配置值是否在合理范围内：
//   - 时长必须为正
//   - 比例类参数必须位于 [0, 1]
//   - 帧间隔上限不能小于首帧默认间隔
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *EngineConfig) Validate() error {
	t := c.Transition
	if t.HoldMs <= 0 {
		return fmt.Errorf("transition.holdMs must be positive, got %.1f", t.HoldMs)
	}
	if t.TransitionMs <= 0 {
		return fmt.Errorf("transition.transitionMs must be positive, got %.1f", t.TransitionMs)
	}
	if !inUnit(t.ShiftFraction) {
		return fmt.Errorf("transition.shiftFraction out of range [0,1]: %.3f", t.ShiftFraction)
	}
	if !inUnit(t.ScaleDrop) || t.ScaleDrop >= 1 {
		return fmt.Errorf("transition.scaleDrop out of range [0,1): %.3f", t.ScaleDrop)
	}
	if !inUnit(t.MinAlpha) {
		return fmt.Errorf("transition.minAlpha out of range [0,1]: %.3f", t.MinAlpha)
	}

	if c.Clock.FallbackDeltaMs <= 0 {
		return fmt.Errorf("clock.fallbackDeltaMs must be positive, got %.3f", c.Clock.FallbackDeltaMs)
	}
	if c.Clock.MaxDeltaMs < c.Clock.FallbackDeltaMs {
		return fmt.Errorf("clock.maxDeltaMs(%.1f) < clock.fallbackDeltaMs(%.1f)",
			c.Clock.MaxDeltaMs, c.Clock.FallbackDeltaMs)
	}

	if c.Display.MaxPixelDensity < 1 {
		return fmt.Errorf("display.maxPixelDensity must be >= 1, got %.2f", c.Display.MaxPixelDensity)
	}
	if c.Display.LowPowerPixelDensity < 1 || c.Display.LowPowerPixelDensity > c.Display.MaxPixelDensity {
		return fmt.Errorf("display.lowPowerPixelDensity must be in [1, maxPixelDensity], got %.2f",
			c.Display.LowPowerPixelDensity)
	}

	if c.Pointer.Smoothing <= 0 || c.Pointer.Smoothing > 1 {
		return fmt.Errorf("pointer.smoothing out of range (0,1]: %.3f", c.Pointer.Smoothing)
	}

	e := c.Energy
	if e.TransferRate <= 0 {
		return fmt.Errorf("energy.transferRate must be positive, got %.3f", e.TransferRate)
	}
	if e.PacketsPerSecond < 0 {
		return fmt.Errorf("energy.packetsPerSecond must not be negative, got %.3f", e.PacketsPerSecond)
	}
	if e.SpawnThreshold < 0 {
		return fmt.Errorf("energy.spawnThreshold must not be negative, got %g", e.SpawnThreshold)
	}
	if !inUnit(e.BurstDecay) {
		return fmt.Errorf("energy.burstDecay out of range [0,1]: %.3f", e.BurstDecay)
	}
	if e.Epsilon <= 0 {
		return fmt.Errorf("energy.epsilon must be positive, got %g", e.Epsilon)
	}
	if e.PacketSpeedMin <= 0 || e.PacketSpeedMax < e.PacketSpeedMin {
		return fmt.Errorf("energy packet speed range invalid: min(%.2f) max(%.2f)",
			e.PacketSpeedMin, e.PacketSpeedMax)
	}
	if !inUnit(e.InitialOrbiter) {
		return fmt.Errorf("energy.initialOrbiter out of range [0,1]: %.3f", e.InitialOrbiter)
	}

	o := c.Occlusion
	if o.EdgeBand < 0 || o.DepthBand < 0 {
		return fmt.Errorf("occlusion bands must not be negative: edge(%.2f) depth(%.2f)", o.EdgeBand, o.DepthBand)
	}
	if o.EdgeBand > 0.5 {
		return fmt.Errorf("occlusion.edgeBand is a fraction of the scene size, got %.2f", o.EdgeBand)
	}

	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
