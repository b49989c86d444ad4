package systems

import (
	"github.com/charmbracelet/log"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// SoundPlayer 一次性音效播放（发出即忘）
type SoundPlayer interface {
	PlaySound(id types.SoundID) bool
}

// ItemReceiver 接收收获物（背包）
type ItemReceiver interface {
	AddItem(item types.ItemType, amount int)
}

// CropSpec 作物的生长与外观参数
type CropSpec struct {
	GrowSpeed float64
	MaxAge    float64
	YOffset   float64
	Width     float64
	Height    float64
}

// 作物长出后（age > 0）碰撞盒相对绘制矩形的缩小量
const (
	cropHitboxShrinkW     = 26
	cropHitboxShrinkRatio = 0.4
)

// HarvestDecaySeconds 收获特效的持续时间
const HarvestDecaySeconds = 0.2

// waterVariants 浇水贴图的变体数量
const waterVariants = 3

// SoilSystem 农田状态机
//
// 独占网格以及耕地、浇水覆盖层、作物三类实体。
// 所有操作都在一次 Update 内同步完成；销毁的实体在帧末统一清理，
// 因此系统内部用自己的索引表而不是实体查询来判断实体是否存在。
type SoilSystem struct {
	entityManager *ecs.EntityManager
	grid          *farm.Grid
	crops         map[types.PlantType]CropSpec
	sounds        SoundPlayer
	receiver      ItemReceiver
	raining       bool

	soilByCell  map[farm.Cell]ecs.EntityID
	waterByCell map[farm.Cell]ecs.EntityID
	plantByCell map[farm.Cell]ecs.EntityID

	logger *log.Logger
}

// NewSoilSystem 创建农田系统
//
// 参数：
//   - em: 实体管理器
//   - grid: 农田网格（由系统独占）
//   - crops: 作物参数表
//   - sounds: 音效播放，可为 nil
//   - receiver: 收获物接收者，可为 nil
func NewSoilSystem(em *ecs.EntityManager, grid *farm.Grid, crops map[types.PlantType]CropSpec, sounds SoundPlayer, receiver ItemReceiver) *SoilSystem {
	return &SoilSystem{
		entityManager: em,
		grid:          grid,
		crops:         crops,
		sounds:        sounds,
		receiver:      receiver,
		soilByCell:    make(map[farm.Cell]ecs.EntityID),
		waterByCell:   make(map[farm.Cell]ecs.EntityID),
		plantByCell:   make(map[farm.Cell]ecs.EntityID),
		logger:        log.WithPrefix("SoilSystem"),
	}
}

// Grid 返回网格（只读使用）
func (s *SoilSystem) Grid() *farm.Grid {
	return s.grid
}

// SetReceiver 替换收获物接收者
func (s *SoilSystem) SetReceiver(r ItemReceiver) {
	s.receiver = r
}

// SetRaining 设置当天是否下雨
func (s *SoilSystem) SetRaining(raining bool) {
	s.raining = raining
}

// Raining 返回当天是否下雨
func (s *SoilSystem) Raining() bool {
	return s.raining
}

func (s *SoilSystem) playSound(id types.SoundID) {
	if s.sounds != nil {
		s.sounds.PlaySound(id)
	}
}

// Till 锄地
//
// 非可耕种或已锄过的格子不做任何事并返回 false。
// 成功时重建全部耕地贴图；下雨天新锄的地立即浇湿。
func (s *SoilSystem) Till(p types.Point) bool {
	cell, ok := s.grid.HitTest(p)
	if !ok || !s.grid.Till(cell) {
		return false
	}
	s.rebuildSoil()
	if s.raining {
		s.waterCell(cell)
	}
	s.playSound(types.SoundHoe)
	s.logger.Debug("tilled", "cell", cell)
	return true
}

// soilAt 在现存的耕地实体中查找包含该点的一块
func (s *SoilSystem) soilAt(p types.Point) (ecs.EntityID, farm.Cell, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.SoilTileComponent, *components.BoundsComponent](s.entityManager) {
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if !bounds.Rect.Contains(p) {
			continue
		}
		soil, _ := ecs.GetComponent[*components.SoilTileComponent](s.entityManager, id)
		return id, soil.Cell, true
	}
	return 0, farm.Cell{}, false
}

// Water 浇水
//
// 只对已有耕地贴图的位置生效；已浇过的格子不会再生成覆盖层。
// 返回是否新浇了水。
func (s *SoilSystem) Water(p types.Point) bool {
	_, cell, ok := s.soilAt(p)
	if !ok {
		return false
	}
	return s.waterCell(cell)
}

// waterCell 给单个格子设置浇水标记并生成覆盖层
func (s *SoilSystem) waterCell(cell farm.Cell) bool {
	if !s.grid.Water(cell) {
		return false
	}
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.WaterOverlayComponent{Cell: cell})
	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: s.grid.CellRect(cell)})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderWater,
		Layer:  components.LayerSoilWater,
		Sprite: "water",
		Frame:  waterVariant(cell),
	})
	s.waterByCell[cell] = id
	return true
}

// waterVariant 按格子坐标散列选择浇水贴图变体，同一格子总是同一变体
func waterVariant(cell farm.Cell) int {
	h := cell.Col*7 + cell.Row*13
	return h % waterVariants
}

// WaterAll 给所有已锄未浇的格子浇水（下雨）
func (s *SoilSystem) WaterAll() int {
	n := 0
	for _, cell := range s.grid.Cells(farm.Tilled) {
		if s.waterCell(cell) {
			n++
		}
	}
	return n
}

// RemoveWater 销毁全部浇水覆盖层并清除所有浇水标记
func (s *SoilSystem) RemoveWater() {
	for cell, id := range s.waterByCell {
		s.entityManager.DestroyEntity(id)
		delete(s.waterByCell, cell)
	}
	for _, cell := range s.grid.Cells(farm.Watered) {
		s.grid.Dry(cell)
	}
}

// Plant 播种
//
// 只对已有耕地贴图且尚未种植的位置生效。作物以耕地底边中点为锚点，
// 按作物的竖直偏移放置，并登记为（暂不阻挡的）障碍物。
func (s *SoilSystem) Plant(p types.Point, plantType types.PlantType) bool {
	spec, ok := s.crops[plantType]
	if !ok {
		return false
	}
	soilID, cell, ok := s.soilAt(p)
	if !ok || !s.grid.Plant(cell) {
		return false
	}

	anchor := s.grid.CellRect(cell).MidBottom().Add(0, spec.YOffset)
	rect := types.RectFromMidBottom(anchor, spec.Width, spec.Height)

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.CropComponent{
		PlantType:  plantType,
		MaxAge:     spec.MaxAge,
		GrowSpeed:  spec.GrowSpeed,
		Cell:       cell,
		SoilEntity: soilID,
		Width:      spec.Width,
		Height:     spec.Height,
		YOffset:    spec.YOffset,
	})
	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(s.entityManager, id, &components.ObstacleComponent{Hitbox: rect})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderPlant,
		Layer:  components.LayerGroundPlant,
		Sprite: plantType.String(),
	})
	s.plantByCell[cell] = id

	s.playSound(types.SoundPlant)
	s.logger.Debug("planted", "cell", cell, "plant", plantType)
	return true
}

// CheckWatered 查询某个位置所在格子是否浇过水（边界规则与命中测试一致）
func (s *SoilSystem) CheckWatered(p types.Point) bool {
	cell, ok := s.grid.CellAt(p)
	if !ok {
		return false
	}
	return s.grid.Has(cell, farm.Watered)
}

// Plants 按实体ID升序返回所有存活的作物
func (s *SoilSystem) Plants() []ecs.EntityID {
	result := make([]ecs.EntityID, 0, len(s.plantByCell))
	for _, id := range ecs.GetEntitiesWith2[*components.CropComponent, *components.BoundsComponent](s.entityManager) {
		crop, _ := ecs.GetComponent[*components.CropComponent](s.entityManager, id)
		if s.plantByCell[crop.Cell] == id {
			result = append(result, id)
		}
	}
	return result
}

// PlantAt 返回格子上的作物
func (s *SoilSystem) PlantAt(cell farm.Cell) (ecs.EntityID, bool) {
	id, ok := s.plantByCell[cell]
	return id, ok
}

// GrowAll 让所有站在湿地上的作物生长一次
func (s *SoilSystem) GrowAll() {
	for _, id := range s.Plants() {
		crop, _ := ecs.GetComponent[*components.CropComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)

		change := advanceCrop(crop, s.CheckWatered(bounds.Rect.Center()))
		if !change.Grew {
			continue
		}
		if render, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, id); ok {
			render.Frame = crop.Stage()
			if change.Sprouted {
				render.Layer = components.LayerMain
			}
		}
		if change.Sprouted {
			if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id); ok {
				obstacle.Solid = true
				obstacle.Hitbox = bounds.Rect.Inflate(-cropHitboxShrinkW, -bounds.Rect.H*cropHitboxShrinkRatio)
			}
		}
		if change.Ripened {
			s.logger.Debug("ripe", "cell", crop.Cell, "plant", crop.PlantType)
		}
	}
}

// Harvest 收获一株作物
//
// 要求作物已成熟且收获者的碰撞盒与作物矩形相交。
// 成功时清除种植标记、销毁作物、向背包发放一个对应物品，并在原位置留下消散特效。
func (s *SoilSystem) Harvest(plant ecs.EntityID, actorBox types.Rect) bool {
	crop, ok := ecs.GetComponent[*components.CropComponent](s.entityManager, plant)
	if !ok || !crop.Harvestable || s.plantByCell[crop.Cell] != plant {
		return false
	}
	bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, plant)
	if !ok || !bounds.Rect.Intersects(actorBox) {
		return false
	}

	s.grid.Unplant(crop.Cell)
	delete(s.plantByCell, crop.Cell)
	s.entityManager.DestroyEntity(plant)

	if s.receiver != nil {
		s.receiver.AddItem(crop.PlantType.Item(), 1)
	}
	s.spawnDecay(bounds.Rect, crop.PlantType.String(), crop.Stage())
	s.playSound(types.SoundSuccess)
	s.logger.Debug("harvested", "cell", crop.Cell, "plant", crop.PlantType)
	return true
}

// HarvestTouching 收获所有与碰撞盒相交的成熟作物，返回收获到的作物类型
func (s *SoilSystem) HarvestTouching(actorBox types.Rect) []types.PlantType {
	var harvested []types.PlantType
	for _, id := range s.Plants() {
		crop, _ := ecs.GetComponent[*components.CropComponent](s.entityManager, id)
		plantType := crop.PlantType
		if s.Harvest(id, actorBox) {
			harvested = append(harvested, plantType)
		}
	}
	return harvested
}

// spawnDecay 生成收获后的短暂消散特效
func (s *SoilSystem) spawnDecay(rect types.Rect, sprite string, frame int) {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderParticle,
		Layer:  components.LayerMain,
		Sprite: sprite,
		Frame:  frame,
	})
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxLifetime: HarvestDecaySeconds})
}

// rebuildSoil 销毁全部耕地贴图并按当前网格重建（每个已锄格子一块）
// 重建在同一次调用内完成，绘制阶段不会看到一半的结果
func (s *SoilSystem) rebuildSoil() {
	for cell, id := range s.soilByCell {
		s.entityManager.DestroyEntity(id)
		delete(s.soilByCell, cell)
	}

	for _, cell := range s.grid.Cells(farm.Tilled) {
		variant := farm.ResolveVariant(s.grid, cell)
		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.SoilTileComponent{Cell: cell, Variant: variant})
		ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: s.grid.CellRect(cell)})
		ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
			Kind:   components.RenderSoil,
			Layer:  components.LayerSoil,
			Sprite: variant.Sprite(),
		})
		s.soilByCell[cell] = id

		if plant, ok := s.plantByCell[cell]; ok {
			if crop, ok := ecs.GetComponent[*components.CropComponent](s.entityManager, plant); ok {
				crop.SoilEntity = id
			}
		}
	}
}

// SoilEntities 返回格子到耕地实体的映射副本
func (s *SoilSystem) SoilEntities() map[farm.Cell]ecs.EntityID {
	out := make(map[farm.Cell]ecs.EntityID, len(s.soilByCell))
	for c, id := range s.soilByCell {
		out[c] = id
	}
	return out
}

// WaterOverlayCount 返回当前浇水覆盖层数量
func (s *SoilSystem) WaterOverlayCount() int {
	return len(s.waterByCell)
}
