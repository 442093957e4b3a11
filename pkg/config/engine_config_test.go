package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDefaultEngineConfig 验证默认配置合法且与设计常量一致
func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("默认配置验证失败: %v", err)
	}

	if cfg.Transition.HoldMs != 8000 {
		t.Errorf("HoldMs: got %v, want 8000", cfg.Transition.HoldMs)
	}
	if cfg.Transition.TransitionMs != 1200 {
		t.Errorf("TransitionMs: got %v, want 1200", cfg.Transition.TransitionMs)
	}
	if cfg.Transition.SegmentMs() != 9200 {
		t.Errorf("SegmentMs: got %v, want 9200", cfg.Transition.SegmentMs())
	}
	if cfg.Clock.MaxDeltaMs != 80 {
		t.Errorf("MaxDeltaMs: got %v, want 80", cfg.Clock.MaxDeltaMs)
	}
	if cfg.Display.MaxPixelDensity != 2 {
		t.Errorf("MaxPixelDensity: got %v, want 2", cfg.Display.MaxPixelDensity)
	}
	if cfg.Energy.BurstDecay != 0.92 {
		t.Errorf("BurstDecay: got %v, want 0.92", cfg.Energy.BurstDecay)
	}
}

// TestLoadEngineConfigFromDataDir 加载仓库内的 data/engine.yaml
func TestLoadEngineConfigFromDataDir(t *testing.T) {
	cfg, err := LoadEngineConfig("../../data/engine.yaml")
	if err != nil {
		t.Fatalf("加载 data/engine.yaml 失败: %v", err)
	}

	if cfg.Transition.HoldMs != 8000 || cfg.Transition.TransitionMs != 1200 {
		t.Errorf("过渡时长: got %v/%v, want 8000/1200", cfg.Transition.HoldMs, cfg.Transition.TransitionMs)
	}
	if cfg.Energy.PacketsPerSecond != 18 {
		t.Errorf("PacketsPerSecond: got %v, want 18", cfg.Energy.PacketsPerSecond)
	}
}

// TestParseEngineConfigPartial 部分字段覆盖，其余保留默认值
func TestParseEngineConfigPartial(t *testing.T) {
	cfg, err := ParseEngineConfig([]byte("transition:\n  holdMs: 3000\n"))
	if err != nil {
		t.Fatalf("ParseEngineConfig() error: %v", err)
	}
	if cfg.Transition.HoldMs != 3000 {
		t.Errorf("HoldMs: got %v, want 3000", cfg.Transition.HoldMs)
	}
	if cfg.Transition.TransitionMs != 1200 {
		t.Errorf("TransitionMs 应保留默认值 1200, got %v", cfg.Transition.TransitionMs)
	}
	if cfg.Pointer.Smoothing != 0.12 {
		t.Errorf("Smoothing 应保留默认值 0.12, got %v", cfg.Pointer.Smoothing)
	}
}

// TestEngineConfigValidate 测试非法配置
func TestEngineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *EngineConfig)
		wantErr string
	}{
		{"保持时长为零", func(c *EngineConfig) { c.Transition.HoldMs = 0 }, "holdMs"},
		{"过渡时长为负", func(c *EngineConfig) { c.Transition.TransitionMs = -1 }, "transitionMs"},
		{"位移比例越界", func(c *EngineConfig) { c.Transition.ShiftFraction = 1.5 }, "shiftFraction"},
		{"缩小比例为 1", func(c *EngineConfig) { c.Transition.ScaleDrop = 1 }, "scaleDrop"},
		{"帧间隔上限过小", func(c *EngineConfig) { c.Clock.MaxDeltaMs = 5 }, "maxDeltaMs"},
		{"像素比上限小于 1", func(c *EngineConfig) { c.Display.MaxPixelDensity = 0.5 }, "maxPixelDensity"},
		{"低性能像素比过大", func(c *EngineConfig) { c.Display.LowPowerPixelDensity = 3 }, "lowPowerPixelDensity"},
		{"平滑系数为零", func(c *EngineConfig) { c.Pointer.Smoothing = 0 }, "smoothing"},
		{"传输速率为零", func(c *EngineConfig) { c.Energy.TransferRate = 0 }, "transferRate"},
		{"衰减系数越界", func(c *EngineConfig) { c.Energy.BurstDecay = 1.2 }, "burstDecay"},
		{"速度范围颠倒", func(c *EngineConfig) { c.Energy.PacketSpeedMax = 0.1 }, "packet speed"},
		{"初始能量越界", func(c *EngineConfig) { c.Energy.InitialOrbiter = 2 }, "initialOrbiter"},
		{"过渡带为负", func(c *EngineConfig) { c.Occlusion.EdgeBand = -1 }, "occlusion"},
		{"边缘过渡带按像素填写", func(c *EngineConfig) { c.Occlusion.EdgeBand = 10 }, "edgeBand"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEngineConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("期望验证失败，但返回 nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("错误信息 %q 应包含 %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestLoadEngineConfigErrors 测试文件不存在与格式错误
func TestLoadEngineConfigErrors(t *testing.T) {
	if _, err := LoadEngineConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("文件不存在时应返回错误")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("transition: [1, 2"), 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	if _, err := LoadEngineConfig(bad); err == nil {
		t.Error("YAML 格式错误时应返回错误")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("pointer:\n  smoothing: 4\n"), 0o644); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	if _, err := LoadEngineConfig(invalid); err == nil {
		t.Error("配置非法时应返回错误")
	}
}
