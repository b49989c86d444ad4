package systems

import (
	"math"
	"testing"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

// TestTill 测试锄地的前置条件和副作用
func TestTill(t *testing.T) {
	soil, em, sounds, _ := newTestSoil(t, 3, 3)

	if !soil.Till(cellCenter(1, 1)) {
		t.Fatal("Till() on farmable ground should succeed")
	}
	if soil.Till(cellCenter(1, 1)) {
		t.Error("Till() on tilled ground should be a no-op")
	}
	if soil.Till(types.Point{X: -1, Y: 10}) {
		t.Error("Till() outside the grid should be a no-op")
	}
	if got := sounds.count(types.SoundHoe); got != 1 {
		t.Errorf("hoe sounds = %d, want 1", got)
	}
	if n := len(ecs.GetEntitiesWith1[*components.SoilTileComponent](em)); n != 1 {
		t.Errorf("soil entities = %d, want 1", n)
	}
	if soil.Grid().Has(farm.Cell{Row: 1, Col: 1}, farm.Watered) {
		t.Error("tilled cell should stay dry when not raining")
	}
}

// TestTillNonFarmable 测试不可耕种的格子
func TestTillNonFarmable(t *testing.T) {
	grid, err := farm.Build(2, 2, testTile, []farm.Cell{{Row: 0, Col: 0}})
	if err != nil {
		t.Fatal(err)
	}
	soil := NewSoilSystem(ecs.NewEntityManager(), grid, testCrops, nil, nil)
	if soil.Till(cellCenter(1, 1)) {
		t.Error("Till() on non-farmable ground should be a no-op")
	}
	if !soil.Till(cellCenter(0, 0)) {
		t.Error("Till() on farmable ground should succeed without collaborators")
	}
}

// TestTillWhileRaining 测试下雨时新锄的地立即浇湿
func TestTillWhileRaining(t *testing.T) {
	soil, _, _, _ := newTestSoil(t, 3, 3)
	soil.SetRaining(true)
	soil.Till(cellCenter(0, 0))
	if !soil.Grid().Has(farm.Cell{Row: 0, Col: 0}, farm.Watered) {
		t.Error("tilled cell should be watered while raining")
	}
	if soil.WaterOverlayCount() != 1 {
		t.Errorf("overlays = %d, want 1", soil.WaterOverlayCount())
	}
}

// TestSoilRebuildOnePerTilledCell 测试每次锄地后耕地实体与已锄格子一一对应
func TestSoilRebuildOnePerTilledCell(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 5, 5)
	soil.Till(cellCenter(2, 1))
	soil.Till(cellCenter(2, 2))
	soil.Till(cellCenter(2, 3))

	ids := ecs.GetEntitiesWith1[*components.SoilTileComponent](em)
	if len(ids) != 3 {
		t.Fatalf("live soil entities = %d, want 3", len(ids))
	}
	variants := make(map[farm.Cell]farm.TileVariant)
	for _, id := range ids {
		st, _ := ecs.GetComponent[*components.SoilTileComponent](em, id)
		variants[st.Cell] = st.Variant
	}
	want := map[farm.Cell]farm.TileVariant{
		{Row: 2, Col: 1}: farm.VariantEndEast,
		{Row: 2, Col: 2}: farm.VariantHorizontal,
		{Row: 2, Col: 3}: farm.VariantEndWest,
	}
	for cell, v := range want {
		if variants[cell] != v {
			t.Errorf("variant at %s = %s, want %s", cell, variants[cell], v)
		}
	}

	em.RemoveMarkedEntities()
	if n := len(ecs.GetEntitiesWith1[*components.SoilTileComponent](em)); n != 3 {
		t.Errorf("soil entities after flush = %d, want 3", n)
	}
}

// TestWaterRequiresSoil 测试浇水只对已锄的地生效
func TestWaterRequiresSoil(t *testing.T) {
	soil, _, _, _ := newTestSoil(t, 3, 3)
	if soil.Water(cellCenter(0, 0)) {
		t.Error("Water() off soil should be a no-op")
	}
	soil.Till(cellCenter(0, 0))
	if !soil.Water(cellCenter(0, 0)) {
		t.Error("Water() on soil should succeed")
	}
	assertInvariants(t, soil.Grid())
}

// TestWaterIdempotent 测试重复浇水只有一个覆盖层
func TestWaterIdempotent(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 3, 3)
	soil.Till(cellCenter(1, 1))
	soil.Water(cellCenter(1, 1))
	flagsOnce := soil.Grid().Flags(farm.Cell{Row: 1, Col: 1})

	if soil.Water(cellCenter(1, 1)) {
		t.Error("second Water() should report no change")
	}
	if n := len(ecs.GetEntitiesWith1[*components.WaterOverlayComponent](em)); n != 1 {
		t.Errorf("water overlays = %d, want 1", n)
	}
	if got := soil.Grid().Flags(farm.Cell{Row: 1, Col: 1}); got != flagsOnce {
		t.Errorf("flags after second water = %s, want %s", got, flagsOnce)
	}
}

// TestWaterAllAndRemoveWater 测试批量浇水与清除
func TestWaterAllAndRemoveWater(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 3, 3)
	soil.Till(cellCenter(0, 0))
	soil.Till(cellCenter(2, 2))
	soil.Water(cellCenter(0, 0))

	if n := soil.WaterAll(); n != 1 {
		t.Errorf("WaterAll() watered %d cells, want 1", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.WaterOverlayComponent](em)); n != 2 {
		t.Errorf("overlays = %d, want 2", n)
	}

	soil.RemoveWater()
	if soil.Grid().Count(farm.Watered) != 0 {
		t.Error("RemoveWater() should clear every Watered flag")
	}
	if n := len(ecs.GetEntitiesWith1[*components.WaterOverlayComponent](em)); n != 0 {
		t.Errorf("overlays after RemoveWater() = %d, want 0", n)
	}
	assertInvariants(t, soil.Grid())
}

// TestWaterOverlaySurvivesRetile 测试重建耕地不影响已有的浇水覆盖层
func TestWaterOverlaySurvivesRetile(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 3, 3)
	soil.Till(cellCenter(1, 1))
	soil.Water(cellCenter(1, 1))
	soil.Till(cellCenter(1, 2))
	em.RemoveMarkedEntities()

	if n := len(ecs.GetEntitiesWith1[*components.WaterOverlayComponent](em)); n != 1 {
		t.Errorf("overlays after retile = %d, want 1", n)
	}
}

// TestPlant 测试播种的前置条件与作物位置
func TestPlant(t *testing.T) {
	soil, em, sounds, _ := newTestSoil(t, 3, 3)
	if soil.Plant(cellCenter(1, 1), types.PlantCorn) {
		t.Error("Plant() off soil should be a no-op")
	}
	soil.Till(cellCenter(1, 1))
	if !soil.Plant(cellCenter(1, 1), types.PlantCorn) {
		t.Fatal("Plant() on soil should succeed")
	}
	if soil.Plant(cellCenter(1, 1), types.PlantTomato) {
		t.Error("Plant() on a planted cell should be a no-op")
	}
	if soil.Plant(cellCenter(1, 1), types.PlantUnknown) {
		t.Error("Plant() with an unknown crop should be a no-op")
	}
	if sounds.count(types.SoundPlant) != 1 {
		t.Errorf("plant sounds = %d, want 1", sounds.count(types.SoundPlant))
	}

	plants := soil.Plants()
	if len(plants) != 1 {
		t.Fatalf("plants = %d, want 1", len(plants))
	}
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, plants[0])
	tile := soil.Grid().CellRect(farm.Cell{Row: 1, Col: 1})
	wantBottom := tile.Bottom() + testCrops[types.PlantCorn].YOffset
	if bounds.Rect.Bottom() != wantBottom || bounds.Rect.Center().X != tile.Center().X {
		t.Errorf("plant rect = %+v, want mid-bottom (%v, %v)", bounds.Rect, tile.Center().X, wantBottom)
	}
	if cell, _ := soil.Grid().CellAt(bounds.Rect.Center()); cell != (farm.Cell{Row: 1, Col: 1}) {
		t.Errorf("plant centre falls in %s, want its own cell", cell)
	}
	obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](em, plants[0])
	if !ok || obstacle.Solid {
		t.Error("a seedling should be registered as a non-solid obstacle")
	}
	assertInvariants(t, soil.Grid())
}

// TestGrowthGating 测试没浇水不生长；浇水后在 ceil(maxAge/growSpeed) 次后成熟
func TestGrowthGating(t *testing.T) {
	for _, plantType := range []types.PlantType{types.PlantCorn, types.PlantTomato} {
		t.Run(plantType.String(), func(t *testing.T) {
			soil, em, _, _ := newTestSoil(t, 3, 3)
			soil.Till(cellCenter(1, 1))
			soil.Plant(cellCenter(1, 1), plantType)
			id := soil.Plants()[0]
			crop, _ := ecs.GetComponent[*components.CropComponent](em, id)

			for i := 0; i < 100; i++ {
				soil.GrowAll()
			}
			if crop.Age != 0 || crop.Harvestable {
				t.Fatalf("dry crop grew: age=%v harvestable=%v", crop.Age, crop.Harvestable)
			}

			soil.Water(cellCenter(1, 1))
			spec := testCrops[plantType]
			ticks := int(math.Ceil(spec.MaxAge / spec.GrowSpeed))
			for i := 0; i < ticks-1; i++ {
				soil.GrowAll()
			}
			if crop.Harvestable {
				t.Fatalf("crop harvestable after %d ticks, want %d", ticks-1, ticks)
			}
			soil.GrowAll()
			if !crop.Harvestable {
				t.Fatalf("crop not harvestable after %d ticks", ticks)
			}
			for i := 0; i < 10; i++ {
				soil.GrowAll()
			}
			if crop.Age != spec.MaxAge {
				t.Errorf("age = %v, want exactly %v", crop.Age, spec.MaxAge)
			}
		})
	}
}

// TestSproutBecomesSolid 测试作物长出后成为实心障碍并移到主层
func TestSproutBecomesSolid(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 3, 3)
	soil.Till(cellCenter(1, 1))
	soil.Water(cellCenter(1, 1))
	soil.Plant(cellCenter(1, 1), types.PlantCorn)
	id := soil.Plants()[0]

	soil.GrowAll()

	obstacle, _ := ecs.GetComponent[*components.ObstacleComponent](em, id)
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
	render, _ := ecs.GetComponent[*components.RenderComponent](em, id)
	if !obstacle.Solid {
		t.Error("sprouted crop should be solid")
	}
	if obstacle.Hitbox.W >= bounds.Rect.W || obstacle.Hitbox.H >= bounds.Rect.H {
		t.Errorf("hitbox %+v should be smaller than %+v", obstacle.Hitbox, bounds.Rect)
	}
	if render.Layer != components.LayerMain {
		t.Errorf("layer = %v, want main", render.Layer)
	}
}

// ripenCrop 在 (1,1) 种下玉米并让它成熟
func ripenCrop(t *testing.T, soil *SoilSystem) ecs.EntityID {
	t.Helper()
	soil.Till(cellCenter(1, 1))
	soil.Water(cellCenter(1, 1))
	soil.Plant(cellCenter(1, 1), types.PlantCorn)
	for i := 0; i < 20; i++ {
		soil.GrowAll()
	}
	id := soil.Plants()[0]
	return id
}

// TestHarvestRemovesState 测试收获清除种植标记、销毁作物并发放一个物品
func TestHarvestRemovesState(t *testing.T) {
	soil, em, _, receiver := newTestSoil(t, 3, 3)
	id := ripenCrop(t, soil)
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)

	far := types.Rect{X: 1000, Y: 1000, W: 10, H: 10}
	if soil.Harvest(id, far) {
		t.Fatal("Harvest() without contact should fail")
	}

	if !soil.Harvest(id, bounds.Rect) {
		t.Fatal("Harvest() of a ripe crop should succeed")
	}
	if soil.Grid().Has(farm.Cell{Row: 1, Col: 1}, farm.Planted) {
		t.Error("cell should no longer be planted")
	}
	if len(soil.Plants()) != 0 {
		t.Error("plant entity should be gone")
	}
	if receiver[types.ItemCorn] != 1 {
		t.Errorf("corn = %d, want 1", receiver[types.ItemCorn])
	}
	if soil.Harvest(id, bounds.Rect) {
		t.Error("second Harvest() should fail")
	}

	em.RemoveMarkedEntities()
	if em.IsAlive(id) {
		t.Error("plant entity should be destroyed after flush")
	}
	particles := 0
	for _, pid := range ecs.GetEntitiesWith1[*components.LifetimeComponent](em) {
		r, _ := ecs.GetComponent[*components.RenderComponent](em, pid)
		if r.Kind == components.RenderParticle {
			particles++
		}
	}
	if particles != 1 {
		t.Errorf("decay particles = %d, want 1", particles)
	}
	assertInvariants(t, soil.Grid())

	if !soil.Plant(cellCenter(1, 1), types.PlantTomato) {
		t.Error("harvested cell should be plantable again")
	}
}

// TestHarvestUnripe 测试未成熟的作物不能收获
func TestHarvestUnripe(t *testing.T) {
	soil, em, _, receiver := newTestSoil(t, 3, 3)
	soil.Till(cellCenter(1, 1))
	soil.Plant(cellCenter(1, 1), types.PlantCorn)
	id := soil.Plants()[0]
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)
	if soil.Harvest(id, bounds.Rect) {
		t.Error("Harvest() of an unripe crop should fail")
	}
	if len(receiver) != 0 {
		t.Error("nothing should be awarded")
	}
}

// TestHarvestTouching 测试按碰撞盒批量收获
func TestHarvestTouching(t *testing.T) {
	soil, em, _, receiver := newTestSoil(t, 3, 3)
	id := ripenCrop(t, soil)
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](em, id)

	got := soil.HarvestTouching(bounds.Rect.Inflate(-4, -4))
	if len(got) != 1 || got[0] != types.PlantCorn {
		t.Errorf("HarvestTouching() = %v, want [corn]", got)
	}
	if receiver[types.ItemCorn] != 1 {
		t.Errorf("corn = %d, want 1", receiver[types.ItemCorn])
	}
	if len(soil.HarvestTouching(bounds.Rect)) != 0 {
		t.Error("nothing left to harvest")
	}
}

// TestCheckWateredBoundaries 测试边界点与命中测试一致（半开区间）
func TestCheckWateredBoundaries(t *testing.T) {
	soil, _, _, _ := newTestSoil(t, 2, 2)
	soil.Till(cellCenter(0, 1))
	soil.Water(cellCenter(0, 1))

	tests := []struct {
		p    types.Point
		want bool
	}{
		{types.Point{X: testTile, Y: 0}, true},             // (0,1) 的左上角
		{types.Point{X: testTile - 0.001, Y: 0}, false},    // 仍在 (0,0)
		{types.Point{X: 2*testTile - 0.001, Y: 10}, true},  // (0,1) 的右边界内侧
		{types.Point{X: 2 * testTile, Y: 10}, false},       // 网格外
		{types.Point{X: testTile + 1, Y: testTile}, false}, // (1,1)
		{types.Point{X: -1, Y: -1}, false},
	}
	for _, tt := range tests {
		if got := soil.CheckWatered(tt.p); got != tt.want {
			t.Errorf("CheckWatered(%+v) = %v, want %v", tt.p, got, tt.want)
		}
		cell, ok := soil.Grid().HitTest(tt.p)
		if tt.want && (!ok || cell != (farm.Cell{Row: 0, Col: 1})) {
			t.Errorf("HitTest(%+v) = %v/%v, want (0,1)", tt.p, cell, ok)
		}
	}
}

// TestInvariantsUnderRandomActions 测试任意操作序列后不变式仍成立
func TestInvariantsUnderRandomActions(t *testing.T) {
	soil, em, _, _ := newTestSoil(t, 4, 4)
	actions := []func(p types.Point){
		func(p types.Point) { soil.Till(p) },
		func(p types.Point) { soil.Water(p) },
		func(p types.Point) { soil.Plant(p, types.PlantCorn) },
		func(types.Point) { soil.GrowAll() },
		func(types.Point) { soil.RemoveWater() },
		func(types.Point) { soil.WaterAll() },
		func(p types.Point) { soil.HarvestTouching(types.Rect{X: p.X - 40, Y: p.Y - 40, W: 80, H: 80}) },
	}
	seq := 0
	for step := 0; step < 500; step++ {
		seq = (seq*31 + 17) % 997
		p := types.Point{X: float64(seq%5) * testTile * 0.9, Y: float64((seq/5)%5) * testTile * 0.9}
		actions[seq%len(actions)](p)
		em.RemoveMarkedEntities()
		assertInvariants(t, soil.Grid())
	}

	if got, want := len(soil.SoilEntities()), soil.Grid().Count(farm.Tilled); got != want {
		t.Errorf("soil entities = %d, tilled cells = %d", got, want)
	}
	if got, want := soil.WaterOverlayCount(), soil.Grid().Count(farm.Watered); got != want {
		t.Errorf("overlays = %d, watered cells = %d", got, want)
	}
	if got, want := len(soil.Plants()), soil.Grid().Count(farm.Planted); got != want {
		t.Errorf("plants = %d, planted cells = %d", got, want)
	}
}
