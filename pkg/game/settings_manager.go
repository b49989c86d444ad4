package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings 玩家偏好设置（与存档无关，所有存档共享）
type Settings struct {
	MusicVolume  float64 `yaml:"musicVolume"`
	SoundVolume  float64 `yaml:"soundVolume"`
	MusicEnabled bool    `yaml:"musicEnabled"`
	SoundEnabled bool    `yaml:"soundEnabled"`

	Fullscreen bool `yaml:"fullscreen"`
	// ShowGrid 在农田上叠加网格线和格子坐标，调试用
	ShowGrid bool `yaml:"showGrid"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *Settings {
	return &Settings{
		MusicVolume:  0.5,
		SoundVolume:  0.8,
		MusicEnabled: true,
		SoundEnabled: true,
	}
}

const (
	settingsObject   = "settings"
	settingsProperty = "prefs"
)

// SettingsManager 负责设置的加载和持久化
//
// gdataManager 为 nil 时进入降级模式：只在内存中保存设置，Save 不报错。
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *Settings
	logger       *log.Logger
}

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
//
// 加载失败时记录警告并使用默认设置，不会返回错误。
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		logger:       log.WithPrefix("SettingsManager"),
	}
	if err := sm.Load(); err != nil {
		sm.logger.Warn("failed to load settings, using defaults", "err", err)
	}
	return sm
}

// Load 从 gdata 读取设置
// 对象不存在时回到默认值；数据损坏时回到默认值并返回错误。
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("unmarshal settings: %w", err)
	}
	loaded.MusicVolume = clampVolume(loaded.MusicVolume)
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	sm.logger.Debug("settings loaded")
	return nil
}

// Save 持久化当前设置
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	sm.logger.Debug("settings saved")
	return nil
}

// Settings 返回当前设置（可直接读取，修改请用 Set* 方法）
func (sm *SettingsManager) Settings() *Settings {
	return sm.settings
}

// SetMusicVolume 设置音乐音量，超出 0..1 的值会被截断
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.MusicVolume = clampVolume(volume)
}

// SetSoundVolume 设置音效音量，超出 0..1 的值会被截断
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

func (sm *SettingsManager) SetMusicEnabled(enabled bool) { sm.settings.MusicEnabled = enabled }
func (sm *SettingsManager) SetSoundEnabled(enabled bool) { sm.settings.SoundEnabled = enabled }
func (sm *SettingsManager) SetFullscreen(enabled bool)   { sm.settings.Fullscreen = enabled }

// ToggleShowGrid 切换网格调试显示，返回切换后的状态
func (sm *SettingsManager) ToggleShowGrid() bool {
	sm.settings.ShowGrid = !sm.settings.ShowGrid
	return sm.settings.ShowGrid
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
