package farm

// 相邻方向位掩码
const (
	NeighborNorth uint8 = 1 << iota
	NeighborEast
	NeighborSouth
	NeighborWest
)

// TileVariant 耕地贴图形状
type TileVariant int

const (
	// VariantIsolated 四周都没有耕地
	VariantIsolated TileVariant = iota
	// VariantCross 四个方向都是耕地
	VariantCross
	// VariantEndWest 只有西侧相邻（水平端点）
	VariantEndWest
	// VariantEndEast 只有东侧相邻（水平端点）
	VariantEndEast
	// VariantHorizontal 东西两侧相邻
	VariantHorizontal
	// VariantEndNorth 只有北侧相邻（竖直端点）
	VariantEndNorth
	// VariantEndSouth 只有南侧相邻（竖直端点）
	VariantEndSouth
	// VariantVertical 南北两侧相邻
	VariantVertical
	// VariantCornerSouthWest 南侧和西侧相邻
	VariantCornerSouthWest
	// VariantCornerSouthEast 南侧和东侧相邻
	VariantCornerSouthEast
	// VariantCornerNorthWest 北侧和西侧相邻
	VariantCornerNorthWest
	// VariantCornerNorthEast 北侧和东侧相邻
	VariantCornerNorthEast
	// VariantTeeOpenWest 缺少西侧
	VariantTeeOpenWest
	// VariantTeeOpenEast 缺少东侧
	VariantTeeOpenEast
	// VariantTeeOpenSouth 缺少南侧
	VariantTeeOpenSouth
	// VariantTeeOpenNorth 缺少北侧
	VariantTeeOpenNorth
)

// variantSprites 贴图键，与耕地贴图文件名一致
var variantSprites = map[TileVariant]string{
	VariantIsolated:        "o",
	VariantCross:           "x",
	VariantEndWest:         "r",
	VariantEndEast:         "l",
	VariantHorizontal:      "lr",
	VariantEndNorth:        "b",
	VariantEndSouth:        "t",
	VariantVertical:        "tb",
	VariantCornerSouthWest: "tr",
	VariantCornerSouthEast: "tl",
	VariantCornerNorthWest: "br",
	VariantCornerNorthEast: "bl",
	VariantTeeOpenWest:     "tbr",
	VariantTeeOpenEast:     "tbl",
	VariantTeeOpenSouth:    "lrb",
	VariantTeeOpenNorth:    "lrt",
}

// Sprite 返回贴图键
func (v TileVariant) Sprite() string {
	if s, ok := variantSprites[v]; ok {
		return s
	}
	return "o"
}

func (v TileVariant) String() string {
	return v.Sprite()
}

// Mask 返回该形状对应的相邻掩码
func (v TileVariant) Mask() uint8 {
	for _, r := range autotileRules {
		if r.variant == v {
			return r.neighbors
		}
	}
	return 0
}

// autotileRule 一条拼接规则：相邻耕地集合必须与 neighbors 完全一致
// （集合之外的方向必须不是耕地），因此各规则天然互斥
type autotileRule struct {
	neighbors uint8
	variant   TileVariant
}

// autotileRules 按优先级排列，第一条匹配的规则生效，全部不匹配时为 VariantIsolated
var autotileRules = []autotileRule{
	{NeighborNorth | NeighborEast | NeighborSouth | NeighborWest, VariantCross},

	{NeighborWest, VariantEndWest},
	{NeighborEast, VariantEndEast},
	{NeighborEast | NeighborWest, VariantHorizontal},

	{NeighborNorth, VariantEndNorth},
	{NeighborSouth, VariantEndSouth},
	{NeighborNorth | NeighborSouth, VariantVertical},

	{NeighborWest | NeighborSouth, VariantCornerSouthWest},
	{NeighborEast | NeighborSouth, VariantCornerSouthEast},
	{NeighborWest | NeighborNorth, VariantCornerNorthWest},
	{NeighborEast | NeighborNorth, VariantCornerNorthEast},

	{NeighborNorth | NeighborSouth | NeighborEast, VariantTeeOpenWest},
	{NeighborNorth | NeighborSouth | NeighborWest, VariantTeeOpenEast},
	{NeighborWest | NeighborEast | NeighborNorth, VariantTeeOpenSouth},
	{NeighborWest | NeighborEast | NeighborSouth, VariantTeeOpenNorth},
}

// NeighborMask 计算四邻域中已锄格子的位掩码，越界视为未锄
func NeighborMask(g *Grid, c Cell) uint8 {
	var mask uint8
	if g.Has(Cell{Row: c.Row - 1, Col: c.Col}, Tilled) {
		mask |= NeighborNorth
	}
	if g.Has(Cell{Row: c.Row, Col: c.Col + 1}, Tilled) {
		mask |= NeighborEast
	}
	if g.Has(Cell{Row: c.Row + 1, Col: c.Col}, Tilled) {
		mask |= NeighborSouth
	}
	if g.Has(Cell{Row: c.Row, Col: c.Col - 1}, Tilled) {
		mask |= NeighborWest
	}
	return mask
}

// VariantForMask 根据相邻掩码选择贴图形状
func VariantForMask(mask uint8) TileVariant {
	for _, r := range autotileRules {
		if mask == r.neighbors {
			return r.variant
		}
	}
	return VariantIsolated
}

// ResolveVariant 计算已锄格子的贴图形状
func ResolveVariant(g *Grid, c Cell) TileVariant {
	return VariantForMask(NeighborMask(g, c))
}

// ResolveAll 为所有已锄格子计算贴图形状（行优先顺序）
func ResolveAll(g *Grid) map[Cell]TileVariant {
	result := make(map[Cell]TileVariant)
	for _, c := range g.Cells(Tilled) {
		result[c] = ResolveVariant(g, c)
	}
	return result
}
