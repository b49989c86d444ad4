package game

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func() (Scene, error)

// SceneManager 管理当前活动场景
type SceneManager struct {
	currentScene Scene
	currentName  string
	factories    map[string]SceneFactory
	logger       *log.Logger
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[string]SceneFactory),
		logger:    log.WithPrefix("SceneManager"),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(name string, factory SceneFactory) {
	sm.factories[name] = factory
}

// SwitchTo 直接切换到给定场景
func (sm *SceneManager) SwitchTo(name string, scene Scene) {
	sm.currentScene = scene
	sm.currentName = name
}

// Load 用已注册的工厂创建场景并切换过去
// 创建失败时保留当前场景
func (sm *SceneManager) Load(name string) error {
	factory, ok := sm.factories[name]
	if !ok {
		return fmt.Errorf("scene %q is not registered", name)
	}
	scene, err := factory()
	if err != nil {
		return fmt.Errorf("create scene %q: %w", name, err)
	}
	sm.SwitchTo(name, scene)
	sm.logger.Debug("switched scene", "name", name)
	return nil
}

// CurrentScene 返回当前场景，可能为 nil
func (sm *SceneManager) CurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// SaveOnExit 如果当前场景实现了 Saveable 则保存
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
