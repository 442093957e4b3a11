// Package app 提供动画引擎的宿主
//
// Session 持有帧循环、引擎实例与用户偏好，与具体窗口系统无关；
// App 是 ebiten 窗口宿主，RunTerminal 是 tcell 终端宿主，两者都驱动同一个 Session。
// 桌面端通过 main.go 调用，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/orbitscape/pkg/config"
	"github.com/decker502/orbitscape/pkg/game"
	"github.com/decker502/orbitscape/pkg/scenes"
	"github.com/decker502/orbitscape/pkg/utils"
)

// Config 定义宿主启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Variant 主实例的引擎变体
	Variant game.Variant
	// Preview 并排挂载两个独立实例
	Preview bool
	// ReducedMotion / LowPower 初始显示偏好（与已保存设置取或）
	ReducedMotion bool
	LowPower      bool
	// Scene 初始轮播场景 ID，为空时使用上次手动选择的场景
	Scene string
	// Engine 引擎调参，nil 时使用默认配置
	Engine *config.EngineConfig
	// Settings 偏好持久化，可为 nil（不保存）
	Settings *game.SettingsManager
	// Seed 能量包外观的随机种子
	Seed int64
}

// progressStep 每次键盘/滚轮调整 reveal 进度的步长
const progressStep = 0.05

// Instance 一个挂载在宿主上的引擎实例及其输入端口
type Instance struct {
	Engine  *game.Engine
	Input   *game.InputHub
	Pointer utils.PointerTracker
}

// Session 宿主无关的运行会话
type Session struct {
	loop          *game.FrameLoop
	instances     []*Instance
	settings      *game.SettingsManager
	reducedMotion bool
	lowPower      bool
	progress      float64
}

// PreviewPeer 并排预览时右侧实例使用的变体
func PreviewPeer(v game.Variant) game.Variant {
	if v == game.VariantHero {
		return game.VariantEnergy
	}
	return game.VariantHero
}

// Variants 返回会话要挂载的变体（预览模式为两个）
func (cfg Config) Variants() []game.Variant {
	v := cfg.Variant
	if v == "" {
		v = game.VariantHero
	}
	if cfg.Preview {
		return []game.Variant{v, PreviewPeer(v)}
	}
	return []game.Variant{v}
}

// NewSession 为每个绘制表面挂载一个引擎实例
//
// 参数：
//   - cfg: 宿主配置
//   - surfaces: 与 cfg.Variants() 一一对应的绘制表面
//
// 返回：
//   - *Session: 会话
//   - error: 表面数量不匹配或某个实例挂载失败
func NewSession(cfg Config, surfaces []game.Surface) (*Session, error) {
	variants := cfg.Variants()
	if len(surfaces) != len(variants) {
		return nil, fmt.Errorf("need %d surfaces for %d instances, got %d", len(variants), len(variants), len(surfaces))
	}

	s := &Session{
		loop:          game.NewFrameLoop(),
		settings:      cfg.Settings,
		reducedMotion: cfg.ReducedMotion,
		lowPower:      cfg.LowPower || utils.IsMobile(),
	}
	lastScene := cfg.Scene
	if cfg.Settings != nil {
		saved := cfg.Settings.GetSettings()
		s.reducedMotion = s.reducedMotion || saved.ReducedMotion
		s.lowPower = s.lowPower || saved.LowPower
		if lastScene == "" {
			lastScene = saved.LastScene
		}
	}

	for i, v := range variants {
		initial := 0
		if idx := scenes.FindByID(v.Scenes(), lastScene); idx >= 0 {
			initial = idx
		}
		hub := game.NewInputHub()
		engine := game.Mount(game.Host{
			Scheduler: s.loop,
			Input:     hub,
			Surface:   surfaces[i],
		}, game.Options{
			Variant:       v,
			Config:        cfg.Engine,
			ReducedMotion: s.reducedMotion,
			LowPower:      s.lowPower,
			InitialScene:  initial,
			Seed:          cfg.Seed + int64(i),
		})
		if engine == nil {
			s.Close()
			return nil, fmt.Errorf("failed to mount %s instance", v)
		}
		s.instances = append(s.instances, &Instance{Engine: engine, Input: hub})
	}

	log.Printf("[Session] %d instance(s) mounted, reducedMotion=%v lowPower=%v",
		len(s.instances), s.reducedMotion, s.lowPower)
	return s, nil
}

// Tick 运行一帧：执行所有实例已请求的帧回调
func (s *Session) Tick(now time.Time) int {
	return s.loop.RunFrame(now)
}

// Instances 返回全部实例（左到右）
func (s *Session) Instances() []*Instance {
	return s.instances
}

// Resize 通知实例显示尺寸变化
func (s *Session) Resize(i int, width, height, density float64) {
	s.instances[i].Input.Dispatch(game.InputEvent{
		Kind:    game.InputResize,
		Width:   width,
		Height:  height,
		Density: density,
	})
}

// Pointer 把一个实例区域内的指针事件转发给该实例
// 坐标为相对实例区域的逻辑像素
func (s *Session) Pointer(i int, ev utils.PointerEvents) {
	hub := s.instances[i].Input
	if ev.Moved {
		hub.Dispatch(game.InputEvent{Kind: game.InputPointerMove, X: ev.X, Y: ev.Y})
	}
	if ev.Left {
		hub.Dispatch(game.InputEvent{Kind: game.InputPointerLeave})
	}
	if ev.Tapped {
		hub.Dispatch(game.InputEvent{Kind: game.InputToggle})
	}
}

// SelectScene 手动选择轮播场景（0 起始），并记住选择
func (s *Session) SelectScene(index int) {
	for _, inst := range s.instances {
		inst.Input.Dispatch(game.InputEvent{Kind: game.InputSelectScene, Index: index})
	}

	for _, inst := range s.instances {
		if te := inst.Engine.Transitions(); te != nil {
			if s.settings != nil {
				s.settings.SetLastScene(te.ActiveScene().ID)
				s.save()
			}
			return
		}
	}
}

// ToggleReducedMotion 切换减弱动态效果，并记住选择
func (s *Session) ToggleReducedMotion() bool {
	s.reducedMotion = !s.reducedMotion
	for _, inst := range s.instances {
		inst.Engine.SetReducedMotion(s.reducedMotion)
	}
	if s.settings != nil {
		s.settings.SetReducedMotion(s.reducedMotion)
		s.save()
	}
	log.Printf("[Session] Reduced motion: %v", s.reducedMotion)
	return s.reducedMotion
}

// ToggleLowPower 切换低性能模式，并记住选择
func (s *Session) ToggleLowPower() bool {
	s.lowPower = !s.lowPower
	for _, inst := range s.instances {
		inst.Engine.SetLowPower(s.lowPower)
	}
	if s.settings != nil {
		s.settings.SetLowPower(s.lowPower)
		s.save()
	}
	log.Printf("[Session] Low power: %v", s.lowPower)
	return s.lowPower
}

// NudgeProgress 调整 reveal 实例的外部进度
func (s *Session) NudgeProgress(steps float64) {
	s.progress = utils.Clamp01(s.progress + steps*progressStep)
	for _, inst := range s.instances {
		if inst.Engine.Variant() == game.VariantReveal {
			inst.Engine.SetProgress(s.progress)
		}
	}
}

// ReducedMotion 当前是否减弱动态效果
func (s *Session) ReducedMotion() bool {
	return s.reducedMotion
}

// LowPower 当前是否处于低性能模式
func (s *Session) LowPower() bool {
	return s.lowPower
}

func (s *Session) save() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[Session] Warning: failed to save settings: %v", err)
	}
}

// Close 销毁全部实例
func (s *Session) Close() {
	for _, inst := range s.instances {
		inst.Engine.Dispose()
	}
	log.Printf("[Session] Closed, %d frame request(s) left", s.loop.Pending())
}
