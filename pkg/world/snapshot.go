package world

import (
	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// Snapshot 世界状态的只读摘要（终端检查器和模拟输出使用）
type Snapshot struct {
	Day     int
	Raining bool
	Money   int

	Farmable int
	Tilled   int
	Watered  int
	Planted  int
	Ripe     int

	TreesStanding int
	Fruit         int

	Items map[types.ItemType]int
	Seeds map[types.PlantType]int

	PlayerCenter types.Point
	Tool         types.Tool
	Seed         types.PlantType
}

// Snapshot 生成当前状态摘要
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Day:          w.Day(),
		Raining:      w.Raining(),
		Money:        w.inv.Money,
		Farmable:     w.grid.Count(farm.Farmable),
		Tilled:       w.grid.Count(farm.Tilled),
		Watered:      w.grid.Count(farm.Watered),
		Planted:      w.grid.Count(farm.Planted),
		Items:        make(map[types.ItemType]int, len(w.inv.Items)),
		Seeds:        make(map[types.PlantType]int, len(w.inv.Seeds)),
		PlayerCenter: w.player.Center(),
		Seed:         w.player.SelectedSeed(),
	}
	for k, v := range w.inv.Items {
		s.Items[k] = v
	}
	for k, v := range w.inv.Seeds {
		s.Seeds[k] = v
	}

	for _, id := range w.soil.Plants() {
		if crop, ok := ecs.GetComponent[*components.CropComponent](w.em, id); ok && crop.Harvestable {
			s.Ripe++
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.TreeComponent](w.em) {
		tc, _ := ecs.GetComponent[*components.TreeComponent](w.em, id)
		if tc.Alive {
			s.TreesStanding++
		}
		s.Fruit += len(tc.Fruits)
	}
	if pc, ok := ecs.GetComponent[*components.PlayerComponent](w.em, w.player.Player()); ok {
		s.Tool = pc.Tool
	}
	return s
}

// CropAt 返回格子上作物的类型和生长阶段
func (w *World) CropAt(c farm.Cell) (types.PlantType, int, bool, bool) {
	id, ok := w.soil.PlantAt(c)
	if !ok {
		return types.PlantUnknown, 0, false, false
	}
	crop, ok := ecs.GetComponent[*components.CropComponent](w.em, id)
	if !ok {
		return types.PlantUnknown, 0, false, false
	}
	return crop.PlantType, crop.Stage(), crop.Harvestable, true
}
