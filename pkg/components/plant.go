package components

import (
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// SoilTileComponent 标识实体为耕地贴图
// 与已锄格子一一对应，完全由网格派生，每次网格拓扑变化时重建
type SoilTileComponent struct {
	Cell    farm.Cell
	Variant farm.TileVariant
}

// WaterOverlayComponent 标识实体为浇水覆盖层
// 与已浇水格子一一对应，生命周期由浇水/清除操作决定，不受耕地重建影响
type WaterOverlayComponent struct {
	Cell farm.Cell
}

// CropComponent 标识实体为作物
//
// Age 连续增长，范围 [0, MaxAge]；MaxAge = 生长阶段帧数 - 1。
// Age 达到 MaxAge 时 Harvestable 置为 true，之后不再增长。
type CropComponent struct {
	PlantType   types.PlantType
	Age         float64
	MaxAge      float64
	GrowSpeed   float64 // 每次生长（每帧）的增量
	Harvestable bool

	Cell       farm.Cell
	SoilEntity ecs.EntityID // 所在耕地实体（用于定位）

	// 绘制尺寸与相对耕地底边的竖直偏移（来自作物配置）
	Width   float64
	Height  float64
	YOffset float64
}

// Stage 返回当前生长阶段（贴图帧索引）
func (c *CropComponent) Stage() int {
	return int(c.Age)
}
