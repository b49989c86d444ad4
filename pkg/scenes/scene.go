// Package scenes 实现基于 ebiten 的游戏场景
package scenes

import (
	"github.com/decker502/farmvale/pkg/game"
)

// Scene 场景接口的别名，所有场景都实现 game.Scene
type Scene = game.Scene

// 场景名称（用于 SceneManager 注册）
const (
	SceneFarm = "farm"
)
