package types

import "fmt"

// ItemType 定义可出售物品的类型
type ItemType int

const (
	// ItemUnknown 未知物品
	ItemUnknown ItemType = iota
	// ItemWood 木材（砍倒树木获得）
	ItemWood
	// ItemApple 苹果（砍树时掉落）
	ItemApple
	// ItemCorn 玉米（收获获得）
	ItemCorn
	// ItemTomato 番茄（收获获得）
	ItemTomato
)

// AllItems 所有物品（按商店显示顺序）
var AllItems = []ItemType{ItemWood, ItemApple, ItemCorn, ItemTomato}

// String 返回物品的配置键
func (i ItemType) String() string {
	switch i {
	case ItemWood:
		return "wood"
	case ItemApple:
		return "apple"
	case ItemCorn:
		return "corn"
	case ItemTomato:
		return "tomato"
	default:
		return "unknown"
	}
}

// ParseItemType 将配置键解析为物品类型
func ParseItemType(s string) (ItemType, error) {
	for _, it := range AllItems {
		if it.String() == s {
			return it, nil
		}
	}
	return ItemUnknown, fmt.Errorf("unknown item type %q", s)
}
