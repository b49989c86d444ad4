// Package farm 实现农田网格：每个格子的状态标记、点到格子的命中测试，
// 以及根据相邻格子推导耕地贴图形状的自动拼接规则。
//
// 本包只包含纯数据和算法，不创建任何实体；实体的创建与销毁由
// systems.SoilSystem 负责。
package farm

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/farmvale/pkg/types"
)

// ErrInvalidMapData 地图数据中出现了网格范围之外的可耕种坐标
var ErrInvalidMapData = errors.New("invalid map data")

// CellFlags 单个格子的状态标记（4 位位集）
type CellFlags uint8

const (
	// Farmable 可耕种（来自静态地图数据，构建后不再变化）
	Farmable CellFlags = 1 << iota
	// Tilled 已锄地
	Tilled
	// Watered 已浇水
	Watered
	// Planted 已种植
	Planted
)

// Has 检查是否包含全部指定标记
func (f CellFlags) Has(flags CellFlags) bool {
	return f&flags == flags
}

func (f CellFlags) String() string {
	s := ""
	for _, item := range []struct {
		flag CellFlags
		name string
	}{{Farmable, "F"}, {Tilled, "X"}, {Watered, "W"}, {Planted, "P"}} {
		if f.Has(item.flag) {
			s += item.name
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// Cell 网格坐标
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid 农田网格
//
// 格子按行优先顺序存储在一维切片中，下标为 row*cols+col。
// 所有修改方法都会维护不变式：Watered ⇒ Tilled ⇒ Farmable，Planted ⇒ Tilled。
type Grid struct {
	rows     int
	cols     int
	tileSize float64
	cells    []CellFlags
}

// Build 创建网格并标记可耕种格子
//
// 参数:
//   - rows, cols: 网格尺寸（世界尺寸 / 格子尺寸）
//   - tileSize: 每个格子的世界尺寸
//   - farmable: 可耕种格子列表
//
// 返回:
//   - *Grid: 新网格，所有格子初始为空，仅 farmable 中的格子带有 Farmable 标记
//   - error: 任一坐标越界时返回包装了 ErrInvalidMapData 的错误
func Build(rows, cols int, tileSize float64, farmable []Cell) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidMapData, rows, cols)
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("%w: tile size %v", ErrInvalidMapData, tileSize)
	}

	g := &Grid{
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
		cells:    make([]CellFlags, rows*cols),
	}

	for _, c := range farmable {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("%w: farmable cell %s outside %dx%d grid", ErrInvalidMapData, c, rows, cols)
		}
		g.cells[g.index(c)] |= Farmable
	}

	return g, nil
}

// Rows 返回行数
func (g *Grid) Rows() int { return g.rows }

// Cols 返回列数
func (g *Grid) Cols() int { return g.cols }

// TileSize 返回格子尺寸
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds 检查坐标是否位于网格内
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.cols + c.Col
}

// Flags 返回格子的标记，越界坐标返回空集（视为标记不存在）
func (g *Grid) Flags(c Cell) CellFlags {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[g.index(c)]
}

// Has 检查格子是否包含指定标记，越界返回 false
func (g *Grid) Has(c Cell, flags CellFlags) bool {
	return g.Flags(c).Has(flags)
}

// CellAt 将世界坐标映射到格子（不检查可耕种标记）
// 每个轴都是半开区间：x ∈ [col*tileSize, (col+1)*tileSize)
func (g *Grid) CellAt(p types.Point) (Cell, bool) {
	if p.X < 0 || p.Y < 0 {
		return Cell{}, false
	}
	c := Cell{
		Row: int(math.Floor(p.Y / g.tileSize)),
		Col: int(math.Floor(p.X / g.tileSize)),
	}
	if !g.InBounds(c) {
		return Cell{}, false
	}
	return c, true
}

// HitTest 返回包含该点的可耕种格子
// 点位于网格之外或格子不可耕种时返回 false
func (g *Grid) HitTest(p types.Point) (Cell, bool) {
	c, ok := g.CellAt(p)
	if !ok || !g.Has(c, Farmable) {
		return Cell{}, false
	}
	return c, true
}

// CellRect 返回格子在世界坐标中的矩形
func (g *Grid) CellRect(c Cell) types.Rect {
	return types.Rect{
		X: float64(c.Col) * g.tileSize,
		Y: float64(c.Row) * g.tileSize,
		W: g.tileSize,
		H: g.tileSize,
	}
}

// Till 锄地：仅当格子可耕种且尚未锄过时生效
func (g *Grid) Till(c Cell) bool {
	f := g.Flags(c)
	if !f.Has(Farmable) || f.Has(Tilled) {
		return false
	}
	g.cells[g.index(c)] |= Tilled
	return true
}

// Water 浇水：仅当格子已锄且尚未浇水时生效
func (g *Grid) Water(c Cell) bool {
	f := g.Flags(c)
	if !f.Has(Tilled) || f.Has(Watered) {
		return false
	}
	g.cells[g.index(c)] |= Watered
	return true
}

// Dry 清除单个格子的浇水标记
func (g *Grid) Dry(c Cell) bool {
	if !g.Has(c, Watered) {
		return false
	}
	g.cells[g.index(c)] &^= Watered
	return true
}

// Plant 种植：仅当格子已锄且尚未种植时生效
func (g *Grid) Plant(c Cell) bool {
	f := g.Flags(c)
	if !f.Has(Tilled) || f.Has(Planted) {
		return false
	}
	g.cells[g.index(c)] |= Planted
	return true
}

// Unplant 清除种植标记（收获后调用）
func (g *Grid) Unplant(c Cell) bool {
	if !g.Has(c, Planted) {
		return false
	}
	g.cells[g.index(c)] &^= Planted
	return true
}

// Cells 按行优先顺序返回包含全部指定标记的格子
func (g *Grid) Cells(flags CellFlags) []Cell {
	result := make([]Cell, 0)
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := Cell{Row: row, Col: col}
			if g.cells[g.index(c)].Has(flags) {
				result = append(result, c)
			}
		}
	}
	return result
}

// Count 统计包含全部指定标记的格子数量
func (g *Grid) Count(flags CellFlags) int {
	n := 0
	for _, f := range g.cells {
		if f.Has(flags) {
			n++
		}
	}
	return n
}
