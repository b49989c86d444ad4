package types

// Tool 玩家手持的工具
type Tool int

const (
	ToolHoe Tool = iota
	ToolAxe
	ToolWater
)

// AllTools 工具切换顺序
var AllTools = []Tool{ToolHoe, ToolAxe, ToolWater}

func (t Tool) String() string {
	switch t {
	case ToolHoe:
		return "hoe"
	case ToolAxe:
		return "axe"
	case ToolWater:
		return "water"
	default:
		return "unknown"
	}
}

// Facing 玩家朝向，决定工具作用点的偏移
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}
