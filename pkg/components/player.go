package components

import "github.com/decker502/farmvale/pkg/types"

// PlayerComponent 玩家角色状态
type PlayerComponent struct {
	Facing types.Facing
	Moving bool
	Speed  float64 // 像素/秒

	Tool      types.Tool
	SeedIndex int // 当前选中的种子（types.AllPlants 下标）

	// 工具使用计时：UseTimer > 0 时角色处于挥动动作中，结束时结算工具效果
	UseTimer    float64
	PendingUse  bool
	PendingSeed bool

	// 切换工具/种子的冷却，防止按住按键时连续切换
	SwitchCooldown float64

	// Hitbox 相对绘制矩形缩小后的碰撞盒（中心与绘制矩形一致）
	HitboxW float64
	HitboxH float64

	Sleeping bool
}

// InteractableComponent 可交互区域（例如床）
type InteractableComponent struct {
	Name string
}
