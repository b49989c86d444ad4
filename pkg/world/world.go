// Package world 把配置、网格、库存和各个系统组装成一个可运行的农场世界
//
// World 本身不依赖任何引擎：ebiten 场景、终端检查器和无界面模拟都通过
// Update/Sleep/RenderList 驱动同一个世界。
package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/config"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/game"
	"github.com/decker502/farmvale/pkg/systems"
	"github.com/decker502/farmvale/pkg/types"
)

// Options 世界构建选项
type Options struct {
	// Seed 随机种子，非 0 时覆盖配置中的 weather.seed；两者都为 0 时使用当前时间
	Seed int64
	// Sounds 音效播放器，可为 nil（无声）
	Sounds systems.SoundPlayer
	// Inventory 初始背包，nil 时按配置的初始金钱和种子创建
	Inventory *game.Inventory
}

// DaySummary 一天结束时的汇总（供农场日志记录）
type DaySummary struct {
	Day      int
	Raining  bool
	Money    int
	Gathered map[types.ItemType]int // 当天获得的物品
}

// World 农场世界
type World struct {
	cfg   *config.Config
	em    *ecs.EntityManager
	grid  *farm.Grid
	inv   *game.Inventory
	shop  *game.Shop
	seed  int64
	today *gatherCounter

	weather  *game.Weather
	bounds   types.Rect
	playerAt types.Point

	soil       *systems.SoilSystem
	growth     *systems.CropGrowthSystem
	orchard    *systems.OrchardSystem
	dayCycle   *systems.DayCycleSystem
	player     *systems.PlayerSystem
	rain       *systems.RainSystem
	lifetime   *systems.LifetimeSystem
	renderList *systems.RenderListSystem

	logger *log.Logger
}

// New 根据配置构建世界
//
// 地图中越界的可耕种坐标返回 farm.ErrInvalidMapData。
func New(cfg *config.Config, opts Options) (*World, error) {
	logger := log.WithPrefix("World")

	layout, err := config.ParseLayout(cfg.World.Layout)
	if err != nil {
		return nil, err
	}

	tileSize := float64(cfg.World.TileSize)
	grid, err := farm.Build(cfg.World.Rows, cfg.World.Cols, tileSize, cfg.World.FarmableCells(layout))
	if err != nil {
		return nil, fmt.Errorf("build farm grid: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Weather.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inv := opts.Inventory
	if inv == nil {
		inv = startingInventory(cfg)
	}

	w := &World{
		cfg:     cfg,
		em:      ecs.NewEntityManager(),
		grid:    grid,
		inv:     inv,
		seed:    seed,
		today:   newGatherCounter(inv),
		weather: game.NewWeather(seed, cfg.Weather.Threshold()),
		bounds:  types.Rect{W: float64(grid.Cols()) * tileSize, H: float64(grid.Rows()) * tileSize},
		logger:  logger,
	}
	w.shop = game.NewShop(inv, cfg)

	w.soil = systems.NewSoilSystem(w.em, grid, cropSpecs(cfg), opts.Sounds, w.today)
	w.growth = systems.NewCropGrowthSystem(w.soil)
	w.orchard = systems.NewOrchardSystem(w.em, w.weather.Rand(), opts.Sounds, w.today)
	w.dayCycle = systems.NewDayCycleSystem(w.soil, w.orchard, w.weather)
	w.player = systems.NewPlayerSystem(w.em, w.soil, w.orchard, inv, opts.Sounds, playerSettings(cfg), w.bounds)
	w.rain = systems.NewRainSystem(w.em, w.soil, rand.New(rand.NewSource(seed+1)), w.bounds)
	w.lifetime = systems.NewLifetimeSystem(w.em)
	w.renderList = systems.NewRenderListSystem(w.em)

	w.placeScenery(layout)
	if err := w.placeTrees(layout); err != nil {
		return nil, err
	}

	w.playerAt = w.bounds.Center()
	if layout.HasPlayer {
		w.playerAt = grid.CellRect(layout.PlayerStart).Center()
	}
	w.player.CreatePlayer(w.playerAt)

	w.dayCycle.Begin()
	w.em.RemoveMarkedEntities()

	logger.Debug("world built",
		"rows", grid.Rows(), "cols", grid.Cols(),
		"farmable", grid.Count(farm.Farmable),
		"seed", seed, "raining", w.weather.Raining())
	return w, nil
}

func startingInventory(cfg *config.Config) *game.Inventory {
	inv := game.NewInventory(cfg.Player.StartMoney)
	for name, count := range cfg.Player.StartSeeds {
		if p, err := types.ParsePlantType(name); err == nil {
			inv.AddSeed(p, count)
		}
	}
	return inv
}

func cropSpecs(cfg *config.Config) map[types.PlantType]systems.CropSpec {
	specs := make(map[types.PlantType]systems.CropSpec, len(types.AllPlants))
	for _, p := range types.AllPlants {
		crop, ok := cfg.Crop(p)
		if !ok {
			continue
		}
		specs[p] = systems.CropSpec{
			GrowSpeed: crop.GrowSpeed,
			MaxAge:    crop.MaxAge(),
			YOffset:   crop.YOffset,
			Width:     crop.Width,
			Height:    crop.Height,
		}
	}
	return specs
}

func playerSettings(cfg *config.Config) systems.PlayerSettings {
	p := cfg.Player
	offsets := make(map[types.Facing]types.Point, 4)
	for _, f := range []types.Facing{types.FacingDown, types.FacingUp, types.FacingLeft, types.FacingRight} {
		offsets[f] = cfg.ToolOffset(f)
	}
	return systems.PlayerSettings{
		Speed:          p.Speed,
		Width:          p.Width,
		Height:         p.Height,
		HitboxW:        p.HitboxWidth,
		HitboxH:        p.HitboxHeight,
		ToolUseSeconds: p.ToolUseSeconds,
		ToolOffsets:    offsets,
	}
}

// placeScenery 创建围栏、池塘（阻挡移动）和床（可交互）
func (w *World) placeScenery(layout *config.Layout) {
	for _, c := range layout.Fences {
		w.addDecor(c, "fence", components.LayerGround, true)
	}
	for _, c := range layout.Ponds {
		w.addDecor(c, "pond", components.LayerWater, true)
	}
	for _, c := range layout.Beds {
		id := w.addDecor(c, "bed", components.LayerHouseBottom, false)
		ecs.AddComponent(w.em, id, &components.InteractableComponent{Name: systems.BedInteractable})
	}
}

func (w *World) addDecor(c farm.Cell, sprite string, layer components.RenderLayer, solid bool) ecs.EntityID {
	rect := w.grid.CellRect(c)
	id := w.em.CreateEntity()
	ecs.AddComponent(w.em, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(w.em, id, &components.RenderComponent{
		Kind:   components.RenderDecor,
		Layer:  layer,
		Sprite: sprite,
	})
	if solid {
		ecs.AddComponent(w.em, id, &components.ObstacleComponent{Hitbox: rect, Solid: true})
	}
	return id
}

// placeTrees 按地图创建果树，树的底边中点与所在格子底边中点对齐
func (w *World) placeTrees(layout *config.Layout) error {
	for _, t := range layout.Trees {
		tc, ok := w.cfg.Trees[t.Size]
		if !ok {
			return fmt.Errorf("%w: tree size %q is not configured", config.ErrInvalidConfig, t.Size)
		}
		slots := make([]types.Point, len(tc.FruitSlots))
		for i, s := range tc.FruitSlots {
			slots[i] = types.Point{X: s[0], Y: s[1]}
		}
		rect := types.RectFromMidBottom(w.grid.CellRect(t.Cell).MidBottom(), tc.Width, tc.Height)
		w.orchard.CreateTree(rect, t.Size, tc.Health, slots)
	}
	return nil
}

// Update 推进一帧
// 顺序：玩家 → 果树 → 作物生长 → 雨 → 生命周期 → 清理已标记实体
func (w *World) Update(deltaTime float64, in systems.PlayerInput) {
	w.player.Update(deltaTime, in)
	w.orchard.Update(deltaTime)
	w.growth.Update(deltaTime)
	w.rain.Update(deltaTime)
	w.lifetime.Update(deltaTime)
	w.em.RemoveMarkedEntities()
}

// SleepRequested 玩家是否在床上请求睡觉
func (w *World) SleepRequested() bool {
	return w.player.SleepRequested()
}

// Sleep 结束当天：执行每日重置，唤醒玩家，返回刚结束那天的汇总
func (w *World) Sleep() DaySummary {
	summary := DaySummary{
		Day:      w.dayCycle.Day(),
		Raining:  w.soil.Raining(),
		Money:    w.inv.Money,
		Gathered: w.today.take(),
	}
	w.dayCycle.Reset()
	w.player.WakeUp()
	w.em.RemoveMarkedEntities()
	return summary
}

// OnNewDay 注册换日监听者
func (w *World) OnNewDay(l systems.DayListener) {
	w.dayCycle.AddListener(l)
}

// RenderList 返回当前帧的有序绘制列表
func (w *World) RenderList() []systems.RenderRecord {
	return w.renderList.Build()
}

// SaveData 生成存档数据（网格本身不存档）
func (w *World) SaveData() *game.SaveData {
	return game.NewSaveData(w.dayCycle.Day(), w.inv)
}

// ApplySave 读档：恢复天数和背包
func (w *World) ApplySave(data *game.SaveData) error {
	if err := data.ApplyTo(w.inv); err != nil {
		return fmt.Errorf("apply save: %w", err)
	}
	w.dayCycle.SetDay(data.Day)
	return nil
}

// Config 返回世界使用的配置
func (w *World) Config() *config.Config { return w.cfg }

// EntityManager 返回实体管理器
func (w *World) EntityManager() *ecs.EntityManager { return w.em }

// Grid 返回农田网格
func (w *World) Grid() *farm.Grid { return w.grid }

// Inventory 返回玩家背包
func (w *World) Inventory() *game.Inventory { return w.inv }

// Shop 返回商店
func (w *World) Shop() *game.Shop { return w.shop }

// Soil 返回农田系统
func (w *World) Soil() *systems.SoilSystem { return w.soil }

// Orchard 返回果树系统
func (w *World) Orchard() *systems.OrchardSystem { return w.orchard }

// Player 返回玩家系统
func (w *World) Player() *systems.PlayerSystem { return w.player }

// Day 返回当前天数
func (w *World) Day() int { return w.dayCycle.Day() }

// Raining 今天是否下雨
func (w *World) Raining() bool { return w.soil.Raining() }

// Bounds 返回世界范围（像素）
func (w *World) Bounds() types.Rect { return w.bounds }

// Seed 返回实际使用的随机种子
func (w *World) Seed() int64 { return w.seed }

// GatheredToday 返回今天已获得的物品数量（副本）
func (w *World) GatheredToday() map[types.ItemType]int {
	return w.today.snapshot()
}
