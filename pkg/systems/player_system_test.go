package systems

import (
	"testing"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// seedBag 测试用种子库存
type seedBag map[types.PlantType]int

func (b seedBag) HasSeed(p types.PlantType) bool { return b[p] > 0 }
func (b seedBag) UseSeed(p types.PlantType) bool {
	if b[p] <= 0 {
		return false
	}
	b[p]--
	return true
}

var testPlayerSettings = PlayerSettings{
	Speed:          200,
	Width:          48,
	Height:         64,
	HitboxW:        24,
	HitboxH:        16,
	ToolUseSeconds: 0.35,
	ToolOffsets: map[types.Facing]types.Point{
		types.FacingLeft:  {X: -50, Y: 40},
		types.FacingRight: {X: 50, Y: 40},
		types.FacingUp:    {X: 0, Y: -10},
		types.FacingDown:  {X: 0, Y: 50},
	},
}

func newTestPlayer(t *testing.T) (*PlayerSystem, *SoilSystem, *ecs.EntityManager, seedBag, *recordingSounds) {
	t.Helper()
	soil, em, sounds, _ := newTestSoil(t, 5, 5)
	seeds := seedBag{types.PlantCorn: 1}
	ps := NewPlayerSystem(em, soil, nil, seeds, sounds, testPlayerSettings, types.Rect{W: 5 * testTile, H: 5 * testTile})
	// 站在 (1,2) 中心，朝下时作用点落在 (2,2)
	ps.CreatePlayer(cellCenter(1, 2))
	return ps, soil, em, seeds, sounds
}

// runAction 按下一次动作键并等动作结束
func runAction(ps *PlayerSystem, in PlayerInput) {
	ps.Update(0.016, in)
	for i := 0; i < 30; i++ {
		ps.Update(0.016, PlayerInput{})
	}
}

// TestToolTarget 测试作用点为中心加朝向偏移
func TestToolTarget(t *testing.T) {
	ps, _, _, _, _ := newTestPlayer(t)
	want := cellCenter(1, 2).Add(0, 50)
	if got := ps.ToolTarget(); got != want {
		t.Errorf("ToolTarget() = %+v, want %+v", got, want)
	}
}

// TestToolUseIsDelayed 测试工具效果在动作计时结束后才结算
func TestToolUseIsDelayed(t *testing.T) {
	ps, soil, _, _, _ := newTestPlayer(t)
	target := farm.Cell{Row: 2, Col: 2}

	ps.Update(0.016, PlayerInput{UseTool: true})
	ps.Update(0.2, PlayerInput{MoveX: 1})
	if soil.Grid().Has(target, farm.Tilled) {
		t.Fatal("tilled before the swing finished")
	}
	if ps.Center() != cellCenter(1, 2) {
		t.Error("player should not move while swinging")
	}
	ps.Update(0.2, PlayerInput{})
	if !soil.Grid().Has(target, farm.Tilled) {
		t.Fatal("hoe should till the target once the swing finishes")
	}
}

// TestToolCycleAndWater 测试切换工具后浇水
func TestToolCycleAndWater(t *testing.T) {
	ps, soil, em, _, sounds := newTestPlayer(t)
	runAction(ps, PlayerInput{UseTool: true})

	ps.Update(0.016, PlayerInput{CycleTool: true})
	ps.Update(0.016, PlayerInput{CycleTool: true}) // 冷却中，忽略
	for i := 0; i < 20; i++ {
		ps.Update(0.016, PlayerInput{})
	}
	ps.Update(0.016, PlayerInput{CycleTool: true})
	pc, _ := ecs.GetComponent[*components.PlayerComponent](em, ps.Player())
	if pc.Tool != types.ToolWater {
		t.Fatalf("Tool = %s, want water", pc.Tool)
	}

	runAction(ps, PlayerInput{UseTool: true})
	if !soil.Grid().Has(farm.Cell{Row: 2, Col: 2}, farm.Watered) {
		t.Error("watering can should water the target")
	}
	if sounds.count(types.SoundWater) != 1 {
		t.Errorf("water sounds = %d, want 1", sounds.count(types.SoundWater))
	}
}

// TestSeedConsumedOnlyOnSuccess 测试只有播种成功才消耗种子
func TestSeedConsumedOnlyOnSuccess(t *testing.T) {
	ps, soil, _, seeds, _ := newTestPlayer(t)

	runAction(ps, PlayerInput{UseSeed: true})
	if seeds[types.PlantCorn] != 1 {
		t.Fatalf("seed consumed on untilled ground")
	}

	runAction(ps, PlayerInput{UseTool: true})
	runAction(ps, PlayerInput{UseSeed: true})
	if !soil.Grid().Has(farm.Cell{Row: 2, Col: 2}, farm.Planted) {
		t.Fatal("seed should be planted on tilled ground")
	}
	if seeds[types.PlantCorn] != 0 {
		t.Errorf("corn seeds = %d, want 0", seeds[types.PlantCorn])
	}

	runAction(ps, PlayerInput{UseSeed: true})
	if seeds[types.PlantCorn] != 0 {
		t.Error("no stock left, nothing to plant")
	}
}

// TestMovementNormalisedAndBlocked 测试斜向移动归一化以及被实心障碍挡住
func TestMovementNormalisedAndBlocked(t *testing.T) {
	ps, _, em, _, _ := newTestPlayer(t)
	start := ps.Center()
	ps.Update(0.1, PlayerInput{MoveX: 1, MoveY: 1})
	got := ps.Center()
	dist := (got.X-start.X)*(got.X-start.X) + (got.Y-start.Y)*(got.Y-start.Y)
	if dist < 19.9*19.9 || dist > 20.1*20.1 {
		t.Errorf("diagonal step = %.2f px, want 20", dist)
	}

	wall := em.CreateEntity()
	hitbox := ps.Hitbox()
	ecs.AddComponent(em, wall, &components.ObstacleComponent{
		Hitbox: types.Rect{X: hitbox.Right() + 5, Y: hitbox.Y - 50, W: 10, H: 100},
		Solid:  true,
	})
	for i := 0; i < 20; i++ {
		ps.Update(0.05, PlayerInput{MoveX: 1})
	}
	if ps.Hitbox().Right() > hitbox.Right()+5+1e-6 {
		t.Errorf("player passed through the wall: hitbox right %v", ps.Hitbox().Right())
	}
}

// TestMovementClampedToWorld 测试不能走出世界
func TestMovementClampedToWorld(t *testing.T) {
	ps, _, _, _, _ := newTestPlayer(t)
	for i := 0; i < 100; i++ {
		ps.Update(0.1, PlayerInput{MoveX: -1, MoveY: -1})
	}
	hb := ps.Hitbox()
	if hb.X != 0 || hb.Y != 0 {
		t.Errorf("hitbox = %+v, want clamped at the origin", hb)
	}
}

// TestSleepAtBed 测试在床边交互请求睡觉
func TestSleepAtBed(t *testing.T) {
	ps, _, em, _, _ := newTestPlayer(t)
	bed := em.CreateEntity()
	ecs.AddComponent(em, bed, &components.InteractableComponent{Name: BedInteractable})
	ecs.AddComponent(em, bed, &components.BoundsComponent{Rect: types.Rect{X: 0, Y: 0, W: 10, H: 10}})

	ps.Update(0.016, PlayerInput{Interact: true})
	if ps.SleepRequested() {
		t.Fatal("bed is out of reach")
	}

	ps.SetCenter(types.Point{X: 20, Y: 10})
	ps.Update(0.016, PlayerInput{Interact: true})
	if !ps.SleepRequested() {
		t.Fatal("interacting at the bed should request sleep")
	}
	center := ps.Center()
	ps.Update(0.5, PlayerInput{MoveX: 1})
	if ps.Center() != center {
		t.Error("a sleeping player does not move")
	}
	ps.WakeUp()
	if ps.SleepRequested() {
		t.Error("WakeUp() should clear the request")
	}
}

// TestPlayerHarvestsByTouch 测试走到成熟作物上自动收获
func TestPlayerHarvestsByTouch(t *testing.T) {
	soil, em, _, receiver := newTestSoil(t, 5, 5)
	ps := NewPlayerSystem(em, soil, nil, seedBag{}, nil, testPlayerSettings, types.Rect{})
	ripenCrop(t, soil)
	ps.CreatePlayer(cellCenter(1, 1).Add(0, -8))

	ps.Update(0.016, PlayerInput{})
	if receiver[types.ItemCorn] != 1 {
		t.Errorf("corn = %d, want 1", receiver[types.ItemCorn])
	}
}

// TestPlayerSpriteStatus 测试贴图键
func TestPlayerSpriteStatus(t *testing.T) {
	ps, _, em, _, _ := newTestPlayer(t)
	render, _ := ecs.GetComponent[*components.RenderComponent](em, ps.Player())

	ps.Update(0.016, PlayerInput{MoveX: -1})
	if render.Sprite != "left" {
		t.Errorf("Sprite = %q, want left", render.Sprite)
	}
	ps.Update(0.016, PlayerInput{})
	if render.Sprite != "left_idle" {
		t.Errorf("Sprite = %q, want left_idle", render.Sprite)
	}
	ps.Update(0.016, PlayerInput{UseTool: true})
	if render.Sprite != "left_hoe" {
		t.Errorf("Sprite = %q, want left_hoe", render.Sprite)
	}
}
