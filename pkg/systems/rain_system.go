package systems

import (
	"math/rand"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

// 雨滴参数
const (
	rainDropMinLife  = 0.4
	rainDropMaxLife  = 0.5
	rainDropMinSpeed = 200
	rainDropMaxSpeed = 250
	rainDropSize     = 8
	rainFloorSize    = 12
	rainFloorFrames  = 3
	rainDropFrames   = 3
)

// RainSystem 下雨时每帧生成一颗下落的雨滴和一个地面水花
type RainSystem struct {
	entityManager *ecs.EntityManager
	soil          *SoilSystem
	rng           *rand.Rand
	area          types.Rect
}

// NewRainSystem 创建降雨系统，area 为生成雨滴的世界范围
func NewRainSystem(em *ecs.EntityManager, soil *SoilSystem, rng *rand.Rand, area types.Rect) *RainSystem {
	return &RainSystem{entityManager: em, soil: soil, rng: rng, area: area}
}

// Update 移动已有雨滴；下雨时生成新的雨滴
func (s *RainSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith3[*components.ParticleComponent, *components.BoundsComponent, *components.LifetimeComponent](s.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		bounds.Rect.X += p.VelocityX * deltaTime
		bounds.Rect.Y += p.VelocityY * deltaTime
		if life.MaxLifetime > 0 {
			p.Alpha = 1 - life.CurrentLifetime/life.MaxLifetime
		}
	}

	if !s.soil.Raining() || s.area.W <= 0 || s.area.H <= 0 {
		return
	}
	s.spawn(true)
	s.spawn(false)
}

func (s *RainSystem) randomPoint() types.Point {
	return types.Point{
		X: s.area.X + s.rng.Float64()*s.area.W,
		Y: s.area.Y + s.rng.Float64()*s.area.H,
	}
}

// spawn 生成一颗雨滴（moving）或一个地面水花
func (s *RainSystem) spawn(moving bool) {
	p := s.randomPoint()
	id := s.entityManager.CreateEntity()
	life := rainDropMinLife + s.rng.Float64()*(rainDropMaxLife-rainDropMinLife)
	ecs.AddComponent(s.entityManager, id, &components.LifetimeComponent{MaxLifetime: life})

	if moving {
		speed := rainDropMinSpeed + s.rng.Float64()*(rainDropMaxSpeed-rainDropMinSpeed)
		ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: types.Rect{X: p.X, Y: p.Y, W: rainDropSize / 2, H: rainDropSize}})
		// 方向 (-2, 4)，与原始雨滴贴图的倾斜一致
		ecs.AddComponent(s.entityManager, id, &components.ParticleComponent{VelocityX: -2 * speed / 4, VelocityY: speed, Alpha: 1})
		ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
			Kind:   components.RenderRain,
			Layer:  components.LayerRainDrops,
			Sprite: "drop",
			Frame:  s.rng.Intn(rainDropFrames),
		})
		return
	}

	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: types.Rect{X: p.X, Y: p.Y, W: rainFloorSize, H: rainFloorSize / 2}})
	ecs.AddComponent(s.entityManager, id, &components.ParticleComponent{Alpha: 1})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderRain,
		Layer:  components.LayerRainFloor,
		Sprite: "floor",
		Frame:  s.rng.Intn(rainFloorFrames),
	})
}
