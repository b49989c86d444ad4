package game

import (
	"fmt"

	"github.com/decker502/farmvale/pkg/types"
)

// PriceList 商店价格表
type PriceList interface {
	SalePrice(item types.ItemType) int
	SeedPrice(p types.PlantType) int
}

// ShopEntry 商店菜单中的一行
type ShopEntry struct {
	Label  string
	Sell   bool // true: 出售物品；false: 购买种子
	Item   types.ItemType
	Seed   types.PlantType
	Price  int
	Amount int // 当前背包中的数量
}

// Shop 商店菜单
//
// 菜单先列出可出售的物品，再列出可购买的种子；光标上下移动时首尾循环。
type Shop struct {
	inventory *Inventory
	prices    PriceList
	index     int
}

// NewShop 创建商店
func NewShop(inv *Inventory, prices PriceList) *Shop {
	return &Shop{inventory: inv, prices: prices}
}

// Entries 返回菜单内容（含当前数量）
func (s *Shop) Entries() []ShopEntry {
	entries := make([]ShopEntry, 0, len(types.AllItems)+len(types.AllPlants))
	for _, item := range types.AllItems {
		entries = append(entries, ShopEntry{
			Label:  item.String(),
			Sell:   true,
			Item:   item,
			Price:  s.prices.SalePrice(item),
			Amount: s.inventory.Items[item],
		})
	}
	for _, p := range types.AllPlants {
		entries = append(entries, ShopEntry{
			Label:  p.String() + " seed",
			Seed:   p,
			Price:  s.prices.SeedPrice(p),
			Amount: s.inventory.Seeds[p],
		})
	}
	return entries
}

// Index 返回光标位置
func (s *Shop) Index() int {
	return s.index
}

// MoveUp 光标上移（到顶后回到末尾）
func (s *Shop) MoveUp() {
	n := len(types.AllItems) + len(types.AllPlants)
	s.index = (s.index - 1 + n) % n
}

// MoveDown 光标下移（到底后回到开头）
func (s *Shop) MoveDown() {
	n := len(types.AllItems) + len(types.AllPlants)
	s.index = (s.index + 1) % n
}

// Confirm 对光标所在行执行出售或购买
func (s *Shop) Confirm() error {
	entry := s.Entries()[s.index]
	if entry.Sell {
		return s.Sell(entry.Item)
	}
	return s.Buy(entry.Seed)
}

// Sell 出售一个物品
func (s *Shop) Sell(item types.ItemType) error {
	if item == types.ItemUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownItem, item)
	}
	if err := s.inventory.RemoveItem(item, 1); err != nil {
		return err
	}
	s.inventory.Money += s.prices.SalePrice(item)
	return nil
}

// Buy 购买一颗种子
func (s *Shop) Buy(p types.PlantType) error {
	if p == types.PlantUnknown {
		return fmt.Errorf("%w: %s", ErrUnknownItem, p)
	}
	price := s.prices.SeedPrice(p)
	if s.inventory.Money < price {
		return fmt.Errorf("%w: %s seed costs %d, have %d", ErrInsufficientFunds, p, price, s.inventory.Money)
	}
	s.inventory.Money -= price
	s.inventory.AddSeed(p, 1)
	return nil
}
