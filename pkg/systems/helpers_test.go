package systems

import (
	"testing"

	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// recordingSounds 记录触发过的音效
type recordingSounds struct {
	played []types.SoundID
}

func (r *recordingSounds) PlaySound(id types.SoundID) bool {
	r.played = append(r.played, id)
	return true
}

func (r *recordingSounds) count(id types.SoundID) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

// countingReceiver 统计收到的物品
type countingReceiver map[types.ItemType]int

func (c countingReceiver) AddItem(item types.ItemType, amount int) {
	c[item] += amount
}

// testCrops 测试用作物参数：tile size 为 64 时作物中心落在自己的格子里
var testCrops = map[types.PlantType]CropSpec{
	types.PlantCorn:   {GrowSpeed: 0.25, MaxAge: 3, YOffset: -16, Width: 32, Height: 48},
	types.PlantTomato: {GrowSpeed: 0.004, MaxAge: 3, YOffset: -8, Width: 32, Height: 40},
}

const testTile = 64.0

// newTestSoil 创建 rows×cols 全部可耕种的农田
func newTestSoil(t *testing.T, rows, cols int) (*SoilSystem, *ecs.EntityManager, *recordingSounds, countingReceiver) {
	t.Helper()
	var cells []farm.Cell
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, farm.Cell{Row: r, Col: c})
		}
	}
	grid, err := farm.Build(rows, cols, testTile, cells)
	if err != nil {
		t.Fatalf("farm.Build: %v", err)
	}
	em := ecs.NewEntityManager()
	sounds := &recordingSounds{}
	receiver := countingReceiver{}
	return NewSoilSystem(em, grid, testCrops, sounds, receiver), em, sounds, receiver
}

// cellCenter 返回格子中心的世界坐标
func cellCenter(row, col int) types.Point {
	return types.Point{X: (float64(col) + 0.5) * testTile, Y: (float64(row) + 0.5) * testTile}
}

// assertInvariants 检查所有格子满足 Watered ⇒ Tilled ⇒ Farmable、Planted ⇒ Tilled
func assertInvariants(t *testing.T, g *farm.Grid) {
	t.Helper()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := farm.Cell{Row: r, Col: c}
			f := g.Flags(cell)
			if f.Has(farm.Watered) && !f.Has(farm.Tilled) {
				t.Errorf("cell %s watered but not tilled (%s)", cell, f)
			}
			if f.Has(farm.Tilled) && !f.Has(farm.Farmable) {
				t.Errorf("cell %s tilled but not farmable (%s)", cell, f)
			}
			if f.Has(farm.Planted) && !f.Has(farm.Tilled) {
				t.Errorf("cell %s planted but not tilled (%s)", cell, f)
			}
		}
	}
}
