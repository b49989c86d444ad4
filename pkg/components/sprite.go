package components

// RenderKind 渲染记录的种类
type RenderKind int

const (
	RenderGround RenderKind = iota
	RenderSoil
	RenderWater
	RenderPlant
	RenderTree
	RenderFruit
	RenderPlayer
	RenderParticle
	RenderRain
	RenderDecor
)

func (k RenderKind) String() string {
	switch k {
	case RenderSoil:
		return "soil"
	case RenderWater:
		return "water"
	case RenderPlant:
		return "plant"
	case RenderTree:
		return "tree"
	case RenderFruit:
		return "fruit"
	case RenderPlayer:
		return "player"
	case RenderParticle:
		return "particle"
	case RenderRain:
		return "rain"
	case RenderDecor:
		return "decor"
	default:
		return "ground"
	}
}

// RenderLayer 绘制层级，数值越小越先绘制
type RenderLayer int

const (
	LayerWater RenderLayer = iota
	LayerGround
	LayerSoil
	LayerSoilWater
	LayerRainFloor
	LayerHouseBottom
	LayerGroundPlant
	LayerMain
	LayerHouseTop
	LayerFruit
	LayerRainDrops
)

// RenderComponent 存储实体的视觉表现
// Sprite 是贴图键（如耕地形状 "lr"、作物类型 "corn"），Frame 是动画帧或生长阶段
type RenderComponent struct {
	Kind   RenderKind
	Layer  RenderLayer
	Sprite string
	Frame  int
}
