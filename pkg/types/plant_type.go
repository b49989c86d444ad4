// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// PlantType 定义作物的类型
type PlantType int

const (
	// PlantUnknown 未知作物类型
	PlantUnknown PlantType = iota
	// PlantCorn 玉米
	PlantCorn
	// PlantTomato 番茄
	PlantTomato
)

// AllPlants 所有可种植的作物（按商店显示顺序）
var AllPlants = []PlantType{PlantCorn, PlantTomato}

// String 返回作物类型的配置键（与 YAML 配置中的键一致）
func (p PlantType) String() string {
	switch p {
	case PlantCorn:
		return "corn"
	case PlantTomato:
		return "tomato"
	default:
		return "unknown"
	}
}

// Item 返回收获该作物得到的物品类型
func (p PlantType) Item() ItemType {
	switch p {
	case PlantCorn:
		return ItemCorn
	case PlantTomato:
		return ItemTomato
	default:
		return ItemUnknown
	}
}

// ParsePlantType 将配置键解析为作物类型
func ParsePlantType(s string) (PlantType, error) {
	for _, p := range AllPlants {
		if p.String() == s {
			return p, nil
		}
	}
	return PlantUnknown, fmt.Errorf("unknown plant type %q", s)
}
