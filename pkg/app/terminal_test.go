package app

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/orbitscape/pkg/game"
)

func newTestTerminal(t *testing.T, cfg Config, cols, rows int) (*TerminalHost, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)

	host, err := NewTerminalHost(cfg, screen)
	if err != nil {
		t.Fatalf("NewTerminalHost() error: %v", err)
	}
	t.Cleanup(host.Close)
	return host, screen
}

// TestTerminalHostRendersFrame 一帧后终端被半块字符填满
func TestTerminalHostRendersFrame(t *testing.T) {
	host, screen := newTestTerminal(t, Config{}, 40, 12)

	host.Step(time.Unix(10, 0))

	for _, pos := range [][2]int{{0, 0}, {39, 11}, {20, 6}} {
		mainc, _, _, _ := screen.GetContent(pos[0], pos[1])
		if mainc != '▀' {
			t.Errorf("单元 %v: got %q, want 半块字符", pos, mainc)
		}
	}
	if host.Session().Instances()[0].Engine.Frames() != 1 {
		t.Errorf("Frames: got %d, want 1", host.Session().Instances()[0].Engine.Frames())
	}
}

// TestTerminalHostKeys 数字键、M 键与退出键
func TestTerminalHostKeys(t *testing.T) {
	host, _ := newTestTerminal(t, Config{}, 40, 12)
	session := host.Session()

	if !host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone)) {
		t.Fatal("数字键不应退出")
	}
	te := session.Instances()[0].Engine.Transitions()
	if te.State().ActiveSceneIndex != 2 {
		t.Errorf("ActiveSceneIndex: got %d, want 2", te.State().ActiveSceneIndex)
	}

	host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone))
	if !session.ReducedMotion() {
		t.Error("M 键应启用减弱动态效果")
	}

	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"Esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"Ctrl+C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if host.HandleEvent(tt.ev) {
				t.Errorf("%s 应退出", tt.name)
			}
		})
	}
}

// TestTerminalHostMouseToggle 左键按下触发一次切换，按住不重复触发
func TestTerminalHostMouseToggle(t *testing.T) {
	host, _ := newTestTerminal(t, Config{Variant: game.VariantEnergy}, 40, 12)
	energy := host.Session().Instances()[0].Engine.Energy()

	host.HandleEvent(tcell.NewEventMouse(30, 3, tcell.Button1, tcell.ModNone))
	if energy.Burst() != 1 {
		t.Fatalf("按下后 Burst: got %v, want 1", energy.Burst())
	}
	mode := energy.Mode()

	host.HandleEvent(tcell.NewEventMouse(31, 3, tcell.Button1, tcell.ModNone))
	if energy.Mode() != mode {
		t.Error("按住移动不应再次切换")
	}

	host.HandleEvent(tcell.NewEventMouse(31, 3, tcell.ButtonNone, tcell.ModNone))
	host.HandleEvent(tcell.NewEventMouse(31, 3, tcell.Button1, tcell.ModNone))
	if energy.Mode() == mode {
		t.Error("再次按下应切换")
	}

	if !host.Session().Instances()[0].Engine.Pointer().State().Inside {
		t.Error("鼠标事件后指针应位于表面内")
	}
}

// TestTerminalHostResize 终端尺寸变化后重新切分区域
func TestTerminalHostResize(t *testing.T) {
	host, screen := newTestTerminal(t, Config{Preview: true}, 40, 12)
	if len(host.bounds) != 2 || host.bounds[0].Dx() != 20 || host.bounds[0].Dy() != 24 {
		t.Fatalf("初始区域: %v", host.bounds)
	}

	screen.SetSize(60, 20)
	host.HandleEvent(tcell.NewEventResize(60, 20))
	if host.bounds[1].Max.X != 60 || host.bounds[1].Dy() != 40 {
		t.Errorf("resize 后区域: %v", host.bounds)
	}
	if w, h := host.viewports[0].BackingSize(); w != 30 || h != 40 {
		t.Errorf("左侧后备尺寸: got %dx%d, want 30x40", w, h)
	}

	host.Step(time.Unix(1, 0))
	for i, inst := range host.Session().Instances() {
		if inst.Engine.Frames() != 1 {
			t.Errorf("实例 %d 帧数: got %d, want 1", i, inst.Engine.Frames())
		}
	}
}
