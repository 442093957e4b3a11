package game

import (
	"fmt"
	"log"

	"github.com/decker502/orbitscape/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DisplaySettings 用户显示偏好
// 全局设置，跨启动保留
type DisplaySettings struct {
	ReducedMotion    bool   `yaml:"reducedMotion"`    // 减弱动态效果
	LowPower         bool   `yaml:"lowPower"`         // 低性能模式
	GraphicsLibrary  string `yaml:"graphicsLibrary"`  // 窗口宿主首选图形库（auto/opengl/metal/directx）
	LastScene        string `yaml:"lastScene"`        // 最近手动选择的轮播场景 ID
	PreferredVariant string `yaml:"preferredVariant"` // 启动时默认的变体
}

// DefaultSettings 返回默认设置
func DefaultSettings() *DisplaySettings {
	return &DisplaySettings{
		ReducedMotion:    false,
		LowPower:         utils.IsMobile(),
		GraphicsLibrary:  "auto",
		LastScene:        "",
		PreferredVariant: string(VariantHero),
	}
}

// SettingsManager 设置管理器
// 负责显示偏好的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager   // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *DisplaySettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "display"
)

// OpenSettingsStorage 打开 gdata 存储
//
// 参数：
//   - appName: 存储目录名（如 "orbitscape"）
//
// 返回：
//   - *gdata.Manager: 存储管理器
//   - error: 存储不可用时返回错误，调用方应使用降级模式
func OpenSettingsStorage(appName string) (*gdata.Manager, error) {
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, fmt.Errorf("failed to prepare storage dir: %w", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open settings storage: %w", err)
	}
	if dir := utils.StorageDir(); dir != "" {
		log.Printf("[SettingsManager] Storage root: %s", dir)
	}
	return manager, nil
}

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例，总是可用（加载失败时为默认设置）
//   - error: 已保存的设置无法读取或解析时返回错误，调用方记录后可继续使用
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		return sm, err
	}
	return sm, nil
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，旧版本文件缺少的字段保持默认
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *DisplaySettings {
	return sm.settings
}

// IsPersistent 设置是否能够持久化（非降级模式）
func (sm *SettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// SetReducedMotion 设置减弱动态效果
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetReducedMotion(enabled bool) {
	sm.settings.ReducedMotion = enabled
}

// SetLowPower 设置低性能模式
func (sm *SettingsManager) SetLowPower(enabled bool) {
	sm.settings.LowPower = enabled
}

// SetGraphicsLibrary 设置首选图形库，未知名称按 "auto" 处理
func (sm *SettingsManager) SetGraphicsLibrary(name string) {
	switch name {
	case "auto", "opengl", "metal", "directx":
		sm.settings.GraphicsLibrary = name
	default:
		sm.settings.GraphicsLibrary = "auto"
	}
}

// SetLastScene 记录最近手动选择的场景 ID
func (sm *SettingsManager) SetLastScene(id string) {
	sm.settings.LastScene = id
}

// SetPreferredVariant 设置启动时默认的变体
func (sm *SettingsManager) SetPreferredVariant(v Variant) {
	sm.settings.PreferredVariant = string(v)
}

// ApplyOverrides 将命令行指定的变体与图形库写入偏好并保存
//
// 参数为空表示未指定。返回生效的变体；变体名称无效时不修改任何设置。
func (sm *SettingsManager) ApplyOverrides(variantName, graphicsLibrary string) (Variant, error) {
	variant := sm.PreferredVariant()
	if variantName == "" && graphicsLibrary == "" {
		return variant, nil
	}
	if variantName != "" {
		v, err := ParseVariant(variantName)
		if err != nil {
			return variant, err
		}
		variant = v
		sm.SetPreferredVariant(v)
	}
	if graphicsLibrary != "" {
		sm.SetGraphicsLibrary(graphicsLibrary)
	}

	if !sm.IsPersistent() {
		log.Printf("[SettingsManager] Overrides apply to this run only (storage unavailable)")
		return variant, nil
	}
	if err := sm.Save(); err != nil {
		log.Printf("[SettingsManager] Warning: failed to save overrides: %v", err)
	}
	return variant, nil
}

// PreferredVariant 返回已保存的变体；无效值回退到 hero
func (sm *SettingsManager) PreferredVariant() Variant {
	v, err := ParseVariant(sm.settings.PreferredVariant)
	if err != nil {
		return VariantHero
	}
	return v
}
