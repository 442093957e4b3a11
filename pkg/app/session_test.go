package app

import (
	"os"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/render"
	"github.com/decker502/orbitscape/pkg/utils"
)

func newTestSurfaces(n int) ([]game.Surface, []*render.Viewport) {
	ports := make([]game.Surface, n)
	viewports := make([]*render.Viewport, n)
	for i := range ports {
		viewports[i] = render.NewViewport(2)
		ports[i] = viewports[i]
	}
	return ports, viewports
}

// openTestSettings 在临时 HOME 下打开可持久化的设置管理器
func openTestSettings(t *testing.T) (*game.SettingsManager, *gdata.Manager) {
	t.Helper()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	manager, err := gdata.Open(gdata.Config{AppName: "orbitscape_app_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	sm, err := game.NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	return sm, manager
}

// TestConfigVariants 预览模式挂载两个不同变体
func TestConfigVariants(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []game.Variant
	}{
		{"默认", Config{}, []game.Variant{game.VariantHero}},
		{"单实例", Config{Variant: game.VariantReveal}, []game.Variant{game.VariantReveal}},
		{"主场景预览", Config{Variant: game.VariantHero, Preview: true}, []game.Variant{game.VariantHero, game.VariantEnergy}},
		{"能量预览", Config{Variant: game.VariantEnergy, Preview: true}, []game.Variant{game.VariantEnergy, game.VariantHero}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.Variants()
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestNewSessionSurfaceMismatch 表面数量与实例数量不一致时报错
func TestNewSessionSurfaceMismatch(t *testing.T) {
	ports, _ := newTestSurfaces(1)
	if _, err := NewSession(Config{Preview: true}, ports); err == nil {
		t.Error("表面数量不足时应返回错误")
	}
}

// TestSessionPreviewInstancesIndependent 并排实例各自处理输入
func TestSessionPreviewInstancesIndependent(t *testing.T) {
	ports, viewports := newTestSurfaces(2)
	s, err := NewSession(Config{Variant: game.VariantHero, Preview: true}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	s.Resize(0, 400, 300, 2)
	s.Resize(1, 400, 300, 1)
	if w, _ := viewports[0].BackingSize(); w != 800 {
		t.Errorf("左侧后备宽度: got %d, want 800", w)
	}
	if w, _ := viewports[1].BackingSize(); w != 400 {
		t.Errorf("右侧后备宽度: got %d, want 400", w)
	}

	// 点击只发给右侧（能量）实例
	s.Pointer(1, utils.PointerEvents{Moved: true, X: 300, Y: 150, Tapped: true})
	right := s.Instances()[1].Engine
	if right.Energy() == nil || right.Energy().Burst() != 1 {
		t.Error("右侧能量实例应收到切换")
	}
	left := s.Instances()[0].Engine
	if left.Pointer().State().Inside || !right.Pointer().State().Inside {
		t.Error("指针移动只应发给右侧实例")
	}
	if got := right.Pointer().State().TargetX; got != 0.5 {
		t.Errorf("右侧 TargetX: got %v, want 0.5", got)
	}

	start := time.Unix(100, 0)
	s.Tick(start)
	s.Tick(start.Add(16 * time.Millisecond))
	for i, inst := range s.Instances() {
		if inst.Engine.Frames() != 2 {
			t.Errorf("实例 %d 帧数: got %d, want 2", i, inst.Engine.Frames())
		}
	}
}

// TestSessionSelectScenePersists 数字键选择场景并记住
func TestSessionSelectScenePersists(t *testing.T) {
	sm, manager := openTestSettings(t)
	ports, _ := newTestSurfaces(1)
	s, err := NewSession(Config{Settings: sm}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}

	s.SelectScene(5) // 6 号键，4 个场景取模后为索引 1
	te := s.Instances()[0].Engine.Transitions()
	if te.State().ActiveSceneIndex != 1 {
		t.Errorf("ActiveSceneIndex: got %d, want 1", te.State().ActiveSceneIndex)
	}
	if sm.GetSettings().LastScene != "moon-system" {
		t.Errorf("LastScene: got %q, want moon-system", sm.GetSettings().LastScene)
	}
	s.Close()

	// 重新启动后从记住的场景开始
	reloaded, err := game.NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	ports, _ = newTestSurfaces(1)
	s2, err := NewSession(Config{Settings: reloaded}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s2.Close()
	if got := s2.Instances()[0].Engine.Transitions().ActiveScene().ID; got != "moon-system" {
		t.Errorf("重启后场景: got %q, want moon-system", got)
	}
}

// TestSessionToggleReducedMotion 切换减弱动态效果并持久化
func TestSessionToggleReducedMotion(t *testing.T) {
	sm, _ := openTestSettings(t)
	ports, _ := newTestSurfaces(2)
	s, err := NewSession(Config{Preview: true, Settings: sm}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if !s.ToggleReducedMotion() {
		t.Fatal("第一次切换后应启用")
	}
	for i, inst := range s.Instances() {
		if !inst.Engine.ReducedMotion() {
			t.Errorf("实例 %d 未启用减弱动态效果", i)
		}
	}
	if !sm.GetSettings().ReducedMotion {
		t.Error("设置应被记住")
	}

	if s.ToggleReducedMotion() {
		t.Error("第二次切换后应关闭")
	}
}

// TestSessionSavedPreferencesApplied 已保存的偏好在挂载时生效
func TestSessionSavedPreferencesApplied(t *testing.T) {
	sm, _ := openTestSettings(t)
	sm.SetReducedMotion(true)
	sm.SetLowPower(true)

	ports, viewports := newTestSurfaces(1)
	s, err := NewSession(Config{Settings: sm}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	if !s.ReducedMotion() || !s.LowPower() {
		t.Errorf("偏好未生效: reducedMotion=%v lowPower=%v", s.ReducedMotion(), s.LowPower())
	}
	s.Resize(0, 300, 200, 3)
	if viewports[0].Density() != 1 {
		t.Errorf("低性能模式像素比: got %v, want 1", viewports[0].Density())
	}
}

// TestSessionNudgeProgress 只有 reveal 实例接收进度
func TestSessionNudgeProgress(t *testing.T) {
	ports, _ := newTestSurfaces(2)
	s, err := NewSession(Config{Variant: game.VariantReveal, Preview: true}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	defer s.Close()

	for i := 0; i < 30; i++ {
		s.NudgeProgress(1)
	}
	s.Tick(time.Unix(5, 0))

	reveal := s.Instances()[0].Engine
	if reveal.Progress() != 1 {
		t.Errorf("reveal 进度: got %v, want 1", reveal.Progress())
	}
	if hero := s.Instances()[1].Engine; hero.Progress() != 0 {
		t.Errorf("hero 进度应保持 0, got %v", hero.Progress())
	}

	s.NudgeProgress(-100)
	s.Tick(time.Unix(6, 0))
	if reveal.Progress() != 0 {
		t.Errorf("进度下限: got %v, want 0", reveal.Progress())
	}
}

// TestSessionClose 关闭后没有残留的帧请求
func TestSessionClose(t *testing.T) {
	ports, _ := newTestSurfaces(2)
	s, err := NewSession(Config{Preview: true}, ports)
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	s.Close()

	if n := s.Tick(time.Unix(1, 0)); n != 0 {
		t.Errorf("关闭后仍执行了 %d 个帧回调", n)
	}
	for i, inst := range s.Instances() {
		if !inst.Engine.Disposed() || inst.Input.ListenerCount() != 0 {
			t.Errorf("实例 %d 未完全销毁", i)
		}
	}
}

// TestSplitBounds 窗口平分
func TestSplitBounds(t *testing.T) {
	got := SplitBounds(801, 600, 2)
	if len(got) != 2 {
		t.Fatalf("区域数: got %d, want 2", len(got))
	}
	if got[0].Dx() != 400 || got[1].Dx() != 401 || got[1].Max.X != 801 {
		t.Errorf("got %v", got)
	}
	if SplitBounds(100, 100, 0) != nil {
		t.Error("n=0 应返回 nil")
	}
}
