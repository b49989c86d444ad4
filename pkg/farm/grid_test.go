package farm

import (
	"errors"
	"testing"

	"github.com/decker502/farmvale/pkg/types"
)

// allCells 返回 rows x cols 网格的全部坐标
func allCells(rows, cols int) []Cell {
	cells := make([]Cell, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cells = append(cells, Cell{Row: r, Col: c})
		}
	}
	return cells
}

func newTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := Build(5, 5, 1, allCells(5, 5))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return g
}

func TestBuild(t *testing.T) {
	g, err := Build(3, 4, 64, []Cell{{Row: 0, Col: 0}, {Row: 2, Col: 3}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if g.Rows() != 3 || g.Cols() != 4 {
		t.Errorf("grid size = %dx%d, want 3x4", g.Rows(), g.Cols())
	}
	if !g.Has(Cell{Row: 0, Col: 0}, Farmable) || !g.Has(Cell{Row: 2, Col: 3}, Farmable) {
		t.Error("listed cells should be farmable")
	}
	if g.Count(Farmable) != 2 {
		t.Errorf("farmable count = %d, want 2", g.Count(Farmable))
	}
	if g.Flags(Cell{Row: 1, Col: 1}) != 0 {
		t.Error("unlisted cell should have no flags")
	}
}

func TestBuildInvalidMapData(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		cols     int
		tileSize float64
		farmable []Cell
	}{
		{"行越界", 3, 3, 1, []Cell{{Row: 3, Col: 0}}},
		{"列越界", 3, 3, 1, []Cell{{Row: 0, Col: 3}}},
		{"负坐标", 3, 3, 1, []Cell{{Row: -1, Col: 0}}},
		{"空网格", 0, 3, 1, nil},
		{"格子尺寸为0", 3, 3, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.rows, tt.cols, tt.tileSize, tt.farmable)
			if !errors.Is(err, ErrInvalidMapData) {
				t.Errorf("Build() error = %v, want ErrInvalidMapData", err)
			}
		})
	}
}

func TestHitTestBoundaries(t *testing.T) {
	g, err := Build(2, 2, 64, []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tests := []struct {
		name   string
		point  types.Point
		want   Cell
		wantOK bool
	}{
		{"左上角原点", types.Point{X: 0, Y: 0}, Cell{Row: 0, Col: 0}, true},
		{"格子内部", types.Point{X: 10, Y: 63.9}, Cell{Row: 0, Col: 0}, true},
		{"正好在列边界上属于右侧格子", types.Point{X: 64, Y: 0}, Cell{Row: 0, Col: 1}, true},
		{"正好在行边界上属于下方格子", types.Point{X: 64, Y: 64}, Cell{Row: 1, Col: 1}, true},
		{"不可耕种格子", types.Point{X: 10, Y: 70}, Cell{}, false},
		{"右边界之外", types.Point{X: 128, Y: 0}, Cell{}, false},
		{"下边界之外", types.Point{X: 0, Y: 128}, Cell{}, false},
		{"负坐标", types.Point{X: -0.1, Y: 0}, Cell{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.HitTest(tt.point)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("HitTest(%v) = %v, %v; want %v, %v", tt.point, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFlagTransitions(t *testing.T) {
	g, err := Build(1, 2, 1, []Cell{{Row: 0, Col: 0}})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	farm := Cell{Row: 0, Col: 0}
	wild := Cell{Row: 0, Col: 1}

	// 未锄地时不能浇水和种植
	if g.Water(farm) || g.Plant(farm) {
		t.Fatal("water/plant should fail before tilling")
	}
	// 不可耕种格子不能锄地
	if g.Till(wild) {
		t.Fatal("till should fail on non-farmable cell")
	}
	if !g.Till(farm) {
		t.Fatal("till should succeed on farmable cell")
	}
	if g.Till(farm) {
		t.Error("second till should be a no-op")
	}
	if !g.Water(farm) || g.Water(farm) {
		t.Error("water should succeed exactly once")
	}
	if !g.Plant(farm) || g.Plant(farm) {
		t.Error("plant should succeed exactly once")
	}
	if got := g.Flags(farm); got != Farmable|Tilled|Watered|Planted {
		t.Errorf("flags = %v, want FXWP", got)
	}
	if !g.Dry(farm) || g.Has(farm, Watered) {
		t.Error("dry should clear watered")
	}
	if !g.Unplant(farm) || g.Has(farm, Planted) {
		t.Error("unplant should clear planted")
	}
	// 越界访问视为标记不存在
	if g.Has(Cell{Row: 5, Col: 5}, Farmable) || g.Till(Cell{Row: -1, Col: 0}) {
		t.Error("out-of-bounds cells should have no flags")
	}
}

func TestCellFlagsString(t *testing.T) {
	if got := (Farmable | Tilled | Watered).String(); got != "FXW" {
		t.Errorf("String() = %q, want FXW", got)
	}
	if got := CellFlags(0).String(); got != "-" {
		t.Errorf("String() = %q, want -", got)
	}
}
