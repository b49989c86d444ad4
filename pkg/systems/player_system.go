package systems

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

// switchCooldownSeconds 切换工具/种子之间的最短间隔
const switchCooldownSeconds = 0.2

// BedInteractable 床的交互名称
const BedInteractable = "bed"

// PlayerInput 一帧的玩家输入，与具体输入设备无关
type PlayerInput struct {
	MoveX, MoveY float64 // 各轴 -1..1

	UseTool   bool
	UseSeed   bool
	CycleTool bool
	CycleSeed bool
	Interact  bool
}

// SeedStock 种子库存
type SeedStock interface {
	HasSeed(p types.PlantType) bool
	UseSeed(p types.PlantType) bool
}

// PlayerSettings 玩家参数
type PlayerSettings struct {
	Speed          float64
	Width, Height  float64
	HitboxW        float64
	HitboxH        float64
	ToolUseSeconds float64
	ToolOffsets    map[types.Facing]types.Point
}

// PlayerSystem 玩家控制
//
// 每帧依次处理：动作计时结算、工具/种子切换、移动与碰撞、触碰收获、与床交互。
// 工具或播种动作开始后角色停住，计时结束时才对作用点结算效果。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	soil          *SoilSystem
	orchard       *OrchardSystem
	seeds         SeedStock
	sounds        SoundPlayer
	settings      PlayerSettings
	worldBounds   types.Rect
	player        ecs.EntityID
	logger        *log.Logger
}

// NewPlayerSystem 创建玩家系统
//
// 参数：
//   - worldBounds: 角色可活动的世界范围
//   - orchard、seeds、sounds 可为 nil
func NewPlayerSystem(em *ecs.EntityManager, soil *SoilSystem, orchard *OrchardSystem, seeds SeedStock, sounds SoundPlayer, settings PlayerSettings, worldBounds types.Rect) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		soil:          soil,
		orchard:       orchard,
		seeds:         seeds,
		sounds:        sounds,
		settings:      settings,
		worldBounds:   worldBounds,
		logger:        log.WithPrefix("PlayerSystem"),
	}
}

// SetSeedStock 替换种子库存
func (s *PlayerSystem) SetSeedStock(seeds SeedStock) {
	s.seeds = seeds
}

// CreatePlayer 在给定中心点创建玩家实体
func (s *PlayerSystem) CreatePlayer(center types.Point) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.PlayerComponent{
		Facing:  types.FacingDown,
		Speed:   s.settings.Speed,
		Tool:    types.ToolHoe,
		HitboxW: s.settings.HitboxW,
		HitboxH: s.settings.HitboxH,
	})
	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{
		Rect: types.Rect{W: s.settings.Width, H: s.settings.Height}.WithCenter(center),
	})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderPlayer,
		Layer:  components.LayerMain,
		Sprite: "down_idle",
	})
	s.player = id
	return id
}

// Player 返回玩家实体
func (s *PlayerSystem) Player() ecs.EntityID {
	return s.player
}

// Hitbox 返回玩家碰撞盒（以绘制矩形中心为中心）
func (s *PlayerSystem) Hitbox() types.Rect {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return types.Rect{}
	}
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, s.player)
	return types.Rect{W: pc.HitboxW, H: pc.HitboxH}.WithCenter(bounds.Rect.Center())
}

// Center 返回玩家中心
func (s *PlayerSystem) Center() types.Point {
	bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, s.player)
	if !ok {
		return types.Point{}
	}
	return bounds.Rect.Center()
}

// SetCenter 把玩家移到指定中心点（不做碰撞检测）
func (s *PlayerSystem) SetCenter(c types.Point) {
	if bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, s.player); ok {
		bounds.Rect = bounds.Rect.WithCenter(c)
	}
}

// ToolTarget 返回工具作用点：中心 + 当前朝向的偏移
func (s *PlayerSystem) ToolTarget() types.Point {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return types.Point{}
	}
	off := s.settings.ToolOffsets[pc.Facing]
	return s.Center().Add(off.X, off.Y)
}

// SelectedSeed 返回当前选中的种子
func (s *PlayerSystem) SelectedSeed() types.PlantType {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok || len(types.AllPlants) == 0 {
		return types.PlantUnknown
	}
	return types.AllPlants[pc.SeedIndex%len(types.AllPlants)]
}

// SleepRequested 玩家是否已在床上请求睡觉
func (s *PlayerSystem) SleepRequested() bool {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	return ok && pc.Sleeping
}

// WakeUp 换日完成后清除睡觉状态
func (s *PlayerSystem) WakeUp() {
	if pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player); ok {
		pc.Sleeping = false
	}
}

// Update 处理一帧输入
func (s *PlayerSystem) Update(deltaTime float64, in PlayerInput) {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok || pc.Sleeping {
		return
	}

	if pc.SwitchCooldown > 0 {
		pc.SwitchCooldown -= deltaTime
	}

	if pc.UseTimer > 0 {
		pc.UseTimer -= deltaTime
		if pc.UseTimer <= 0 {
			pc.UseTimer = 0
			s.finishAction(pc)
		}
	} else {
		s.handleInput(pc, in, deltaTime)
	}

	s.soil.HarvestTouching(s.Hitbox())
	s.updateSprite(pc)
}

func (s *PlayerSystem) handleInput(pc *components.PlayerComponent, in PlayerInput, deltaTime float64) {
	switch {
	case in.UseTool:
		pc.UseTimer = s.settings.ToolUseSeconds
		pc.PendingUse = true
		pc.Moving = false
		return
	case in.UseSeed:
		pc.UseTimer = s.settings.ToolUseSeconds
		pc.PendingSeed = true
		pc.Moving = false
		return
	}

	if pc.SwitchCooldown <= 0 {
		if in.CycleTool {
			pc.Tool = types.AllTools[(int(pc.Tool)+1)%len(types.AllTools)]
			pc.SwitchCooldown = switchCooldownSeconds
		} else if in.CycleSeed {
			pc.SeedIndex = (pc.SeedIndex + 1) % len(types.AllPlants)
			pc.SwitchCooldown = switchCooldownSeconds
		}
	}

	if in.Interact && s.touchingBed() {
		pc.Sleeping = true
		pc.Moving = false
		s.logger.Debug("going to sleep")
		return
	}

	s.move(pc, in.MoveX, in.MoveY, deltaTime)
}

// finishAction 动作计时结束：结算工具或播种
func (s *PlayerSystem) finishAction(pc *components.PlayerComponent) {
	target := s.ToolTarget()
	if pc.PendingUse {
		pc.PendingUse = false
		s.useTool(pc.Tool, target)
	}
	if pc.PendingSeed {
		pc.PendingSeed = false
		s.useSeed(target)
	}
}

func (s *PlayerSystem) useTool(tool types.Tool, target types.Point) {
	switch tool {
	case types.ToolHoe:
		s.soil.Till(target)
	case types.ToolWater:
		s.soil.Water(target)
		if s.sounds != nil {
			s.sounds.PlaySound(types.SoundWater)
		}
	case types.ToolAxe:
		if s.orchard == nil {
			return
		}
		if tree, ok := s.orchard.TreeAt(target); ok {
			s.orchard.Damage(tree)
		}
	}
}

// useSeed 播种成功才消耗种子
func (s *PlayerSystem) useSeed(target types.Point) {
	seed := s.SelectedSeed()
	if s.seeds == nil || !s.seeds.HasSeed(seed) {
		return
	}
	if s.soil.Plant(target, seed) {
		s.seeds.UseSeed(seed)
	}
}

func (s *PlayerSystem) touchingBed() bool {
	hitbox := s.Hitbox()
	for _, id := range ecs.GetEntitiesWith2[*components.InteractableComponent, *components.BoundsComponent](s.entityManager) {
		it, _ := ecs.GetComponent[*components.InteractableComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if it.Name == BedInteractable && bounds.Rect.Intersects(hitbox) {
			return true
		}
	}
	return false
}

// move 归一化方向后分轴移动，每个轴单独与障碍物求解碰撞
func (s *PlayerSystem) move(pc *components.PlayerComponent, dx, dy, deltaTime float64) {
	if dy < 0 {
		pc.Facing = types.FacingUp
	} else if dy > 0 {
		pc.Facing = types.FacingDown
	}
	if dx < 0 {
		pc.Facing = types.FacingLeft
	} else if dx > 0 {
		pc.Facing = types.FacingRight
	}

	mag := math.Hypot(dx, dy)
	pc.Moving = mag > 0
	if mag == 0 {
		return
	}
	dx, dy = dx/mag, dy/mag

	bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, s.player)
	center := bounds.Rect.Center()
	hitbox := types.Rect{W: pc.HitboxW, H: pc.HitboxH}.WithCenter(center)

	hitbox.X += dx * pc.Speed * deltaTime
	hitbox = s.resolveCollisions(hitbox, dx, 0)
	hitbox.Y += dy * pc.Speed * deltaTime
	hitbox = s.resolveCollisions(hitbox, 0, dy)

	bounds.Rect = bounds.Rect.WithCenter(hitbox.Center())
}

// resolveCollisions 把碰撞盒推出与之相交的实心障碍物和世界边界
func (s *PlayerSystem) resolveCollisions(hitbox types.Rect, dx, dy float64) types.Rect {
	for _, id := range ecs.GetEntitiesWith1[*components.ObstacleComponent](s.entityManager) {
		if id == s.player {
			continue
		}
		obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, id)
		if !obstacle.Solid || !obstacle.Hitbox.Intersects(hitbox) {
			continue
		}
		o := obstacle.Hitbox
		switch {
		case dx > 0:
			hitbox.X = o.X - hitbox.W
		case dx < 0:
			hitbox.X = o.Right()
		case dy > 0:
			hitbox.Y = o.Y - hitbox.H
		case dy < 0:
			hitbox.Y = o.Bottom()
		}
	}

	wb := s.worldBounds
	if wb.W > 0 && wb.H > 0 {
		hitbox.X = math.Max(wb.X, math.Min(hitbox.X, wb.Right()-hitbox.W))
		hitbox.Y = math.Max(wb.Y, math.Min(hitbox.Y, wb.Bottom()-hitbox.H))
	}
	return hitbox
}

// updateSprite 根据朝向、动作和移动状态选择贴图键（如 "left_hoe"、"up_idle"）
func (s *PlayerSystem) updateSprite(pc *components.PlayerComponent) {
	render, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	status := pc.Facing.String()
	switch {
	case pc.UseTimer > 0 && pc.PendingUse:
		status += "_" + pc.Tool.String()
	case !pc.Moving:
		status += "_idle"
	}
	if render.Sprite != status {
		render.Sprite = status
		render.Frame = 0
	}
}
