package world

import (
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// Farmhand 无界面模式下代替玩家直接操作农田
// 按格子坐标执行动作，不经过角色移动和工具计时
type Farmhand struct {
	w *World
}

// Farmhand 返回绑定到当前世界的帮工
func (w *World) Farmhand() *Farmhand {
	return &Farmhand{w: w}
}

func (f *Farmhand) center(c farm.Cell) types.Point {
	return f.w.grid.CellRect(c).Center()
}

// Till 锄一个格子
func (f *Farmhand) Till(c farm.Cell) bool {
	return f.w.soil.Till(f.center(c))
}

// Water 给一个格子浇水
func (f *Farmhand) Water(c farm.Cell) bool {
	return f.w.soil.Water(f.center(c))
}

// Plant 在格子上种下作物，成功时消耗一粒种子；没有种子时不操作
func (f *Farmhand) Plant(c farm.Cell, p types.PlantType) bool {
	if !f.w.inv.HasSeed(p) {
		return false
	}
	if !f.w.soil.Plant(f.center(c), p) {
		return false
	}
	f.w.inv.UseSeed(p)
	return true
}

// Harvest 收获格子上的成熟作物
func (f *Farmhand) Harvest(c farm.Cell) bool {
	id, ok := f.w.soil.PlantAt(c)
	if !ok {
		return false
	}
	return f.w.soil.Harvest(id, f.w.grid.CellRect(c))
}

// TillAll 锄所有可耕种格子，返回新锄的数量
func (f *Farmhand) TillAll() int {
	n := 0
	for _, c := range f.w.grid.Cells(farm.Farmable) {
		if f.Till(c) {
			n++
		}
	}
	return n
}

// WaterAll 给所有已锄格子浇水，返回新浇的数量
func (f *Farmhand) WaterAll() int {
	n := 0
	for _, c := range f.w.grid.Cells(farm.Tilled) {
		if f.Water(c) {
			n++
		}
	}
	return n
}

// PlantAll 在所有空的已锄格子上轮流种下各种作物，种子用完为止
func (f *Farmhand) PlantAll() int {
	n := 0
	for _, c := range f.w.grid.Cells(farm.Tilled) {
		if f.w.grid.Has(c, farm.Planted) {
			continue
		}
		for i := range types.AllPlants {
			p := types.AllPlants[(c.Row+c.Col+i)%len(types.AllPlants)]
			if f.Plant(c, p) {
				n++
				break
			}
		}
	}
	return n
}

// HarvestAll 收获所有成熟作物
func (f *Farmhand) HarvestAll() int {
	n := 0
	for _, c := range f.w.grid.Cells(farm.Planted) {
		if f.Harvest(c) {
			n++
		}
	}
	return n
}

// RestockSeeds 卖掉所有作物，再轮流买种子直到够种满全部已锄格子或钱不够
func (f *Farmhand) RestockSeeds() {
	shop := f.w.shop
	for _, p := range types.AllPlants {
		for f.w.inv.ItemCount(p.Item()) > 0 {
			if err := shop.Sell(p.Item()); err != nil {
				break
			}
		}
	}

	want := f.w.grid.Count(farm.Tilled)
	for {
		have := 0
		for _, p := range types.AllPlants {
			have += f.w.inv.Seeds[p]
		}
		if have >= want {
			return
		}
		bought := false
		for _, p := range types.AllPlants {
			if have < want && shop.Buy(p) == nil {
				have++
				bought = true
			}
		}
		if !bought {
			return
		}
	}
}
