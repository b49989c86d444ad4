package components

import (
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

// TreeComponent 果树
// 被斧头砍时掉落一个苹果并扣血，血量归零后变成树桩
type TreeComponent struct {
	Size       string // "small" / "large"
	Health     int
	Alive      bool
	FruitSlots []types.Point // 苹果相对树左上角的位置
	Fruits     []ecs.EntityID

	// 受击后的无敌时间（秒），避免一次挥斧多次结算
	InvulnerableTimer float64
}

// FruitComponent 挂在树上的苹果
type FruitComponent struct {
	Tree ecs.EntityID
}
