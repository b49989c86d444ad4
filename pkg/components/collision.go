package components

import "github.com/decker502/farmvale/pkg/types"

// ObstacleComponent 标记实体为移动障碍物
//
// Hitbox 是实际参与碰撞的矩形，通常比绘制矩形小（例如树只有树干部分阻挡）。
// Solid 为 false 时实体已登记为障碍物但暂不阻挡移动（刚种下的作物）。
type ObstacleComponent struct {
	Hitbox types.Rect
	Solid  bool
}

// BoundsComponent 实体在世界坐标中的绘制矩形
type BoundsComponent struct {
	Rect types.Rect
}
