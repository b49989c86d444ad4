package systems

import (
	"github.com/decker502/farmvale/pkg/components"
)

// ageEpsilon 浮点累加误差容限：累加 n 次生长量后应恰好达到最大年龄
const ageEpsilon = 1e-9

// growthChange 一次生长的结果
type growthChange struct {
	Grew     bool // 年龄增加了
	Sprouted bool // 本次从 0 长到 > 0（开始阻挡移动）
	Ripened  bool // 本次达到最大年龄
}

// advanceCrop 让作物生长一次
//
// 没浇水或已成熟时不变。年龄不会超过 MaxAge，达到时标记为可收获。
func advanceCrop(crop *components.CropComponent, watered bool) growthChange {
	if !watered || crop.Harvestable {
		return growthChange{}
	}

	before := crop.Age
	crop.Age += crop.GrowSpeed
	change := growthChange{Grew: crop.Age > before}
	change.Sprouted = before <= 0 && crop.Age > 0

	if crop.Age >= crop.MaxAge-ageEpsilon {
		crop.Age = crop.MaxAge
		crop.Harvestable = true
		change.Ripened = true
	}
	return change
}

// CropGrowthSystem 每帧驱动一次作物生长
type CropGrowthSystem struct {
	soil *SoilSystem
}

// NewCropGrowthSystem 创建作物生长系统
func NewCropGrowthSystem(soil *SoilSystem) *CropGrowthSystem {
	return &CropGrowthSystem{soil: soil}
}

// Update 生长按帧计算，与 deltaTime 无关
func (s *CropGrowthSystem) Update(deltaTime float64) {
	s.soil.GrowAll()
}
