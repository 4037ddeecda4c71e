package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HintSettings 玩家的提示偏好
// 与 data/hint_config.yaml 不同，这些设置随存档保存，玩家可以在游戏内修改
type HintSettings struct {
	// HintsEnabled 是否显示教学提示
	HintsEnabled bool `yaml:"hintsEnabled"`

	// InactivityDelay 玩家自定义的空闲阈值（秒），0 表示使用配置文件的值
	InactivityDelay int `yaml:"inactivityDelay"`

	// StartGameHintSeen 是否已经看过开局提示（开局提示只播放一次）
	StartGameHintSeen bool `yaml:"startGameHintSeen"`

	// 提示音效
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
}

// DefaultHintSettings 返回默认提示设置
func DefaultHintSettings() *HintSettings {
	return &HintSettings{
		HintsEnabled:      true,
		InactivityDelay:   0,
		StartGameHintSeen: false,
		SoundEnabled:      true,
		SoundVolume:       0.8,
	}
}

// HintSettingsManager 提示设置管理器
// 负责提示偏好的加载、保存和内存管理
type HintSettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存）
	settings     *HintSettings
}

// 存储路径常量
const (
	hintSettingsObject   = "settings"
	hintSettingsProperty = "hints"
)

// NewHintSettingsManager 创建提示设置管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 加载失败不是致命错误，记录日志后使用默认设置
func NewHintSettingsManager(gdataManager *gdata.Manager) *HintSettingsManager {
	sm := &HintSettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultHintSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[HintSettingsManager] Warning: Failed to load hint settings: %v (using defaults)", err)
	}

	return sm
}

// OpenHintSettings 按应用名打开存储并创建设置管理器
// 存储不可用时退化为内存模式
func OpenHintSettings(appName string) *HintSettingsManager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[HintSettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		manager = nil
	}
	return NewHintSettingsManager(manager)
}

// Load 从 gdata 加载设置
// 没有存储或文件不存在时使用默认设置
func (sm *HintSettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultHintSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(hintSettingsObject, hintSettingsProperty) {
		sm.settings = DefaultHintSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(hintSettingsObject, hintSettingsProperty)
	if err != nil {
		sm.settings = DefaultHintSettings()
		return fmt.Errorf("failed to load hint settings: %w", err)
	}

	loaded := DefaultHintSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultHintSettings()
		return fmt.Errorf("failed to unmarshal hint settings: %w", err)
	}
	if loaded.InactivityDelay < 0 {
		loaded.InactivityDelay = 0
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)

	sm.settings = loaded
	log.Printf("[HintSettingsManager] Hint settings loaded (enabled=%v, delay=%d, seen=%v)",
		loaded.HintsEnabled, loaded.InactivityDelay, loaded.StartGameHintSeen)
	return nil
}

// Save 保存设置到 gdata
// 降级模式下不报错
func (sm *HintSettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal hint settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(hintSettingsObject, hintSettingsProperty, data); err != nil {
		return fmt.Errorf("failed to save hint settings: %w", err)
	}

	log.Printf("[HintSettingsManager] Hint settings saved")
	return nil
}

// IsPersistent 返回设置是否会写入磁盘
func (sm *HintSettingsManager) IsPersistent() bool {
	return sm.gdataManager != nil
}

// GetSettings 获取当前设置
func (sm *HintSettingsManager) GetSettings() *HintSettings {
	return sm.settings
}

// SetHintsEnabled 设置提示开关
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *HintSettingsManager) SetHintsEnabled(enabled bool) {
	sm.settings.HintsEnabled = enabled
}

// SetInactivityDelay 设置自定义空闲阈值，负数视为 0（使用配置文件的值）
func (sm *HintSettingsManager) SetInactivityDelay(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	sm.settings.InactivityDelay = seconds
}

// SetSoundEnabled 设置音效开关
func (sm *HintSettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
func (sm *HintSettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// MarkStartGameHintSeen 记录开局提示已播放
func (sm *HintSettingsManager) MarkStartGameHintSeen() {
	sm.settings.StartGameHintSeen = true
}

// ResolveInactivityDelay 玩家设置优先，否则使用配置值
func (sm *HintSettingsManager) ResolveInactivityDelay(configured int) int {
	if sm.settings.InactivityDelay > 0 {
		return sm.settings.InactivityDelay
	}
	return configured
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
