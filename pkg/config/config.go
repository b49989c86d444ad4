package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// ErrInvalidConfig 配置内容不合法
var ErrInvalidConfig = errors.New("invalid config")

// Config 游戏全局配置
type Config struct {
	World   WorldConfig           `yaml:"world"`
	Crops   map[string]CropConfig `yaml:"crops"`
	Items   map[string]ItemConfig `yaml:"items"`
	Trees   map[string]TreeConfig `yaml:"trees"`
	Weather WeatherConfig         `yaml:"weather"`
	Player  PlayerConfig          `yaml:"player"`
}

// WorldConfig 世界地图配置
type WorldConfig struct {
	TileSize int      `yaml:"tileSize"` // 每个格子的像素尺寸
	Rows     int      `yaml:"rows"`     // 网格行数，0 表示按 layout 推导
	Cols     int      `yaml:"cols"`     // 网格列数，0 表示按 layout 推导
	Layout   []string `yaml:"layout"`   // ASCII 地图（图例见默认配置）
	Farmable [][2]int `yaml:"farmable"` // 额外的可耕种格子 [row, col]
}

// CropConfig 单种作物的生长与外观配置
type CropConfig struct {
	GrowSpeed float64 `yaml:"growSpeed"` // 每帧生长量（浇过水时）
	Frames    int     `yaml:"frames"`    // 生长阶段贴图数量，最大年龄 = Frames - 1
	YOffset   float64 `yaml:"yOffset"`   // 相对耕地底边的竖直偏移（负值向上）
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	SeedPrice int     `yaml:"seedPrice"` // 商店种子价格
}

// MaxAge 返回作物的最大年龄
func (c CropConfig) MaxAge() float64 {
	return float64(c.Frames - 1)
}

// ItemConfig 物品配置
type ItemConfig struct {
	SalePrice int `yaml:"salePrice"`
}

// TreeConfig 果树配置
type TreeConfig struct {
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	Health     int          `yaml:"health"`
	FruitSlots [][2]float64 `yaml:"fruitSlots"` // 相对树左上角的苹果位置
}

// WeatherConfig 天气配置
type WeatherConfig struct {
	// RainThreshold 每天掷 0..10 的随机数，大于该值则下雨；未配置时为 7，配置 0 合法
	RainThreshold *int `yaml:"rainThreshold"`
	// Seed 随机种子，0 表示使用当前时间
	Seed int64 `yaml:"seed"`
}

const defaultRainThreshold = 7

// Threshold 返回降雨阈值，未配置时返回默认值
func (w WeatherConfig) Threshold() int {
	if w.RainThreshold == nil {
		return defaultRainThreshold
	}
	return *w.RainThreshold
}

// PlayerConfig 玩家配置
type PlayerConfig struct {
	Speed          float64               `yaml:"speed"`
	Width          float64               `yaml:"width"`
	Height         float64               `yaml:"height"`
	HitboxWidth    float64               `yaml:"hitboxWidth"`
	HitboxHeight   float64               `yaml:"hitboxHeight"`
	ToolUseSeconds float64               `yaml:"toolUseSeconds"`
	ToolOffsets    map[string][2]float64 `yaml:"toolOffsets"` // 按朝向的工具作用点偏移
	StartMoney     int                   `yaml:"startMoney"`
	StartSeeds     map[string]int        `yaml:"startSeeds"`
}

// Crop 返回作物配置
func (c *Config) Crop(p types.PlantType) (CropConfig, bool) {
	cfg, ok := c.Crops[p.String()]
	return cfg, ok
}

// SalePrice 返回物品售价，未配置时为 0
func (c *Config) SalePrice(item types.ItemType) int {
	return c.Items[item.String()].SalePrice
}

// SeedPrice 返回种子价格，未配置时为 0
func (c *Config) SeedPrice(p types.PlantType) int {
	return c.Crops[p.String()].SeedPrice
}

// ToolOffset 返回指定朝向的工具作用点偏移
func (c *Config) ToolOffset(f types.Facing) types.Point {
	off := c.Player.ToolOffsets[f.String()]
	return types.Point{X: off[0], Y: off[1]}
}

// GrowthRates 返回作物类型到每帧生长量的映射
func (c *Config) GrowthRates() map[types.PlantType]float64 {
	rates := make(map[types.PlantType]float64, len(c.Crops))
	for _, p := range types.AllPlants {
		if crop, ok := c.Crop(p); ok {
			rates[p] = crop.GrowSpeed
		}
	}
	return rates
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *Config) {
	if cfg.World.TileSize == 0 {
		cfg.World.TileSize = 64
	}
	if cfg.World.Rows == 0 {
		cfg.World.Rows = len(cfg.World.Layout)
	}
	if cfg.World.Cols == 0 {
		for _, line := range cfg.World.Layout {
			if len(line) > cfg.World.Cols {
				cfg.World.Cols = len(line)
			}
		}
	}

	if cfg.Weather.RainThreshold == nil {
		threshold := defaultRainThreshold
		cfg.Weather.RainThreshold = &threshold
	}

	p := &cfg.Player
	if p.Speed == 0 {
		p.Speed = 200
	}
	if p.Width == 0 {
		p.Width = 48
	}
	if p.Height == 0 {
		p.Height = 64
	}
	if p.HitboxWidth == 0 {
		p.HitboxWidth = p.Width / 2
	}
	if p.HitboxHeight == 0 {
		p.HitboxHeight = p.Height / 4
	}
	if p.ToolUseSeconds == 0 {
		p.ToolUseSeconds = 0.35
	}
	if p.ToolOffsets == nil {
		p.ToolOffsets = map[string][2]float64{
			"left":  {-50, 40},
			"right": {50, 40},
			"up":    {0, -10},
			"down":  {0, 50},
		}
	}
}

// validate 验证配置的完整性和合法性
func validate(cfg *Config) error {
	w := cfg.World
	if w.TileSize <= 0 {
		return fmt.Errorf("%w: world.tileSize must be positive", ErrInvalidConfig)
	}
	if w.Rows <= 0 || w.Cols <= 0 {
		return fmt.Errorf("%w: world size %dx%d (set rows/cols or a layout)", ErrInvalidConfig, w.Rows, w.Cols)
	}
	layout, err := ParseLayout(w.Layout)
	if err != nil {
		return err
	}
	inBounds := func(c farm.Cell) bool {
		return c.Row >= 0 && c.Row < w.Rows && c.Col >= 0 && c.Col < w.Cols
	}
	for _, group := range [][]farm.Cell{layout.Fences, layout.Ponds, layout.Beds} {
		for _, c := range group {
			if !inBounds(c) {
				return fmt.Errorf("%w: layout tile at %s outside %dx%d world", ErrInvalidConfig, c, w.Rows, w.Cols)
			}
		}
	}
	for _, tree := range layout.Trees {
		if !inBounds(tree.Cell) {
			return fmt.Errorf("%w: tree at %s outside %dx%d world", ErrInvalidConfig, tree.Cell, w.Rows, w.Cols)
		}
		if _, ok := cfg.Trees[tree.Size]; !ok {
			return fmt.Errorf("%w: layout uses %s tree but trees.%s is not configured", ErrInvalidConfig, tree.Size, tree.Size)
		}
	}
	if layout.HasPlayer && !inBounds(layout.PlayerStart) {
		return fmt.Errorf("%w: player start %s outside world", ErrInvalidConfig, layout.PlayerStart)
	}

	for _, p := range types.AllPlants {
		crop, ok := cfg.Crop(p)
		if !ok {
			return fmt.Errorf("%w: missing crop %q", ErrInvalidConfig, p)
		}
		if err := validateCrop(p.String(), crop, float64(w.TileSize)); err != nil {
			return err
		}
	}
	for name := range cfg.Crops {
		if _, err := types.ParsePlantType(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	for name := range cfg.Items {
		if _, err := types.ParseItemType(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	for _, name := range sortedKeys(cfg.Trees) {
		tree := cfg.Trees[name]
		if tree.Width <= 0 || tree.Height <= 0 || tree.Health <= 0 {
			return fmt.Errorf("%w: tree %q needs positive width, height and health", ErrInvalidConfig, name)
		}
	}

	if t := cfg.Weather.Threshold(); t < 0 || t > 10 {
		return fmt.Errorf("%w: weather.rainThreshold %d outside 0..10", ErrInvalidConfig, t)
	}

	for name, count := range cfg.Player.StartSeeds {
		if _, err := types.ParsePlantType(name); err != nil {
			return fmt.Errorf("%w: player.startSeeds: %v", ErrInvalidConfig, err)
		}
		if count < 0 {
			return fmt.Errorf("%w: player.startSeeds[%s] is negative", ErrInvalidConfig, name)
		}
	}
	if cfg.Player.StartMoney < 0 {
		return fmt.Errorf("%w: player.startMoney is negative", ErrInvalidConfig)
	}

	return nil
}

// validateCrop 验证作物配置
// 作物中心点必须落在所在耕地格子内，否则浇水检测会查到相邻格子
func validateCrop(name string, crop CropConfig, tileSize float64) error {
	if crop.GrowSpeed <= 0 {
		return fmt.Errorf("%w: crop %q growSpeed must be positive", ErrInvalidConfig, name)
	}
	if crop.Frames < 2 {
		return fmt.Errorf("%w: crop %q needs at least 2 frames", ErrInvalidConfig, name)
	}
	if crop.Width <= 0 || crop.Height <= 0 {
		return fmt.Errorf("%w: crop %q needs positive width and height", ErrInvalidConfig, name)
	}
	centerFromTop := tileSize + crop.YOffset - crop.Height/2
	if centerFromTop < 0 || centerFromTop >= tileSize {
		return fmt.Errorf("%w: crop %q centre falls outside its soil tile (yOffset %v, height %v)",
			ErrInvalidConfig, name, crop.YOffset, crop.Height)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
