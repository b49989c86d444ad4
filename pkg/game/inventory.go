package game

import (
	"errors"
	"fmt"

	"github.com/decker502/farmvale/pkg/types"
)

var (
	// ErrInsufficientFunds 金钱不足
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrOutOfStock 库存不足
	ErrOutOfStock = errors.New("out of stock")
	// ErrUnknownItem 未知物品或种子
	ErrUnknownItem = errors.New("unknown item")
)

// Inventory 玩家背包
// 物品（可出售）和种子（可种植）分开计数
type Inventory struct {
	Items map[types.ItemType]int
	Seeds map[types.PlantType]int
	Money int
}

// NewInventory 创建空背包
func NewInventory(money int) *Inventory {
	inv := &Inventory{
		Items: make(map[types.ItemType]int),
		Seeds: make(map[types.PlantType]int),
		Money: money,
	}
	for _, item := range types.AllItems {
		inv.Items[item] = 0
	}
	for _, p := range types.AllPlants {
		inv.Seeds[p] = 0
	}
	return inv
}

// AddItem 增加物品（收获、砍树时调用）
func (inv *Inventory) AddItem(item types.ItemType, amount int) {
	inv.Items[item] += amount
}

// RemoveItem 扣除物品，数量不足时返回 ErrOutOfStock
func (inv *Inventory) RemoveItem(item types.ItemType, amount int) error {
	if inv.Items[item] < amount {
		return fmt.Errorf("%w: %s has %d, need %d", ErrOutOfStock, item, inv.Items[item], amount)
	}
	inv.Items[item] -= amount
	return nil
}

// AddSeed 增加种子
func (inv *Inventory) AddSeed(p types.PlantType, amount int) {
	inv.Seeds[p] += amount
}

// UseSeed 消耗一颗种子，没有库存时返回 false
func (inv *Inventory) UseSeed(p types.PlantType) bool {
	if inv.Seeds[p] <= 0 {
		return false
	}
	inv.Seeds[p]--
	return true
}

// HasSeed 检查是否还有该种子
func (inv *Inventory) HasSeed(p types.PlantType) bool {
	return inv.Seeds[p] > 0
}

// ItemCount 返回物品数量
func (inv *Inventory) ItemCount(item types.ItemType) int {
	return inv.Items[item]
}
