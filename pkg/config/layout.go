package config

import (
	"fmt"

	"github.com/decker502/farmvale/pkg/farm"
)

// 地图图例
const (
	TileGrass     = '.'
	TileFarmable  = 'F'
	TileFence     = '#'
	TilePond      = '~'
	TileTreeLarge = 'T'
	TileTreeSmall = 't'
	TilePlayer    = 'P'
	TileBed       = 'B'
)

// TreePlacement 地图上的一棵树
type TreePlacement struct {
	Cell farm.Cell
	Size string // "small" / "large"
}

// Layout 解析后的地图数据
type Layout struct {
	Farmable    []farm.Cell
	Fences      []farm.Cell
	Ponds       []farm.Cell
	Beds        []farm.Cell
	Trees       []TreePlacement
	PlayerStart farm.Cell
	HasPlayer   bool
}

// ParseLayout 解析 ASCII 地图
// 出现未知字符或多个玩家出生点时返回 ErrInvalidConfig
func ParseLayout(lines []string) (*Layout, error) {
	l := &Layout{}
	for row, line := range lines {
		for col, ch := range line {
			c := farm.Cell{Row: row, Col: col}
			switch ch {
			case TileGrass, ' ':
			case TileFarmable:
				l.Farmable = append(l.Farmable, c)
			case TileFence:
				l.Fences = append(l.Fences, c)
			case TilePond:
				l.Ponds = append(l.Ponds, c)
			case TileBed:
				l.Beds = append(l.Beds, c)
			case TileTreeLarge:
				l.Trees = append(l.Trees, TreePlacement{Cell: c, Size: "large"})
			case TileTreeSmall:
				l.Trees = append(l.Trees, TreePlacement{Cell: c, Size: "small"})
			case TilePlayer:
				if l.HasPlayer {
					return nil, fmt.Errorf("%w: layout has more than one player start (second at %s)", ErrInvalidConfig, c)
				}
				l.PlayerStart = c
				l.HasPlayer = true
			default:
				return nil, fmt.Errorf("%w: unknown layout tile %q at %s", ErrInvalidConfig, ch, c)
			}
		}
	}
	return l, nil
}

// FarmableCells 返回地图和额外列表中的全部可耕种格子
// 越界检查由 farm.Build 完成（越界属于地图数据错误）
func (w WorldConfig) FarmableCells(l *Layout) []farm.Cell {
	cells := make([]farm.Cell, 0, len(l.Farmable)+len(w.Farmable))
	cells = append(cells, l.Farmable...)
	for _, rc := range w.Farmable {
		cells = append(cells, farm.Cell{Row: rc[0], Col: rc[1]})
	}
	return cells
}
