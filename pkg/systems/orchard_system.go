package systems

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

const (
	// TreeInvulnerableSeconds 受击后的无敌时间
	TreeInvulnerableSeconds = 0.2
	// fruitChance 每个苹果位置每天结果的概率为 fruitChance/11
	fruitChance = 2
	fruitSize   = 12
)

// OrchardSystem 果树：结果、砍伐、变成树桩
type OrchardSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
	sounds        SoundPlayer
	receiver      ItemReceiver
	logger        *log.Logger
}

// NewOrchardSystem 创建果树系统，rng 由调用方注入以便复现
func NewOrchardSystem(em *ecs.EntityManager, rng *rand.Rand, sounds SoundPlayer, receiver ItemReceiver) *OrchardSystem {
	return &OrchardSystem{
		entityManager: em,
		rng:           rng,
		sounds:        sounds,
		receiver:      receiver,
		logger:        log.WithPrefix("OrchardSystem"),
	}
}

// SetReceiver 替换掉落物接收者
func (s *OrchardSystem) SetReceiver(r ItemReceiver) {
	s.receiver = r
}

// CreateTree 创建一棵树并立即结第一批果
//
// 参数：
//   - rect: 树的绘制矩形
//   - size: 贴图尺寸名（"small"/"large"）
//   - health: 初始血量
//   - slots: 苹果相对树左上角的位置
func (s *OrchardSystem) CreateTree(rect types.Rect, size string, health int, slots []types.Point) ecs.EntityID {
	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, &components.TreeComponent{
		Size:       size,
		Health:     health,
		Alive:      true,
		FruitSlots: slots,
	})
	ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: rect})
	ecs.AddComponent(s.entityManager, id, &components.ObstacleComponent{
		Hitbox: rect.Inflate(-rect.W*0.2, -rect.H*0.75),
		Solid:  true,
	})
	ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
		Kind:   components.RenderTree,
		Layer:  components.LayerMain,
		Sprite: size,
	})
	s.CreateFruit(id)
	return id
}

// CreateFruit 在每个苹果位置按概率结果，返回新结的苹果数
func (s *OrchardSystem) CreateFruit(tree ecs.EntityID) int {
	tc, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, tree)
	if !ok || !tc.Alive {
		return 0
	}
	bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, tree)

	n := 0
	for _, slot := range tc.FruitSlots {
		if s.rng.Intn(11) >= fruitChance {
			continue
		}
		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, &components.FruitComponent{Tree: tree})
		ecs.AddComponent(s.entityManager, id, &components.BoundsComponent{Rect: types.Rect{
			X: bounds.Rect.X + slot.X,
			Y: bounds.Rect.Y + slot.Y,
			W: fruitSize,
			H: fruitSize,
		}})
		ecs.AddComponent(s.entityManager, id, &components.RenderComponent{
			Kind:   components.RenderFruit,
			Layer:  components.LayerFruit,
			Sprite: "apple",
		})
		tc.Fruits = append(tc.Fruits, id)
		n++
	}
	return n
}

// TreeAt 返回绘制矩形包含该点的第一棵活树
func (s *OrchardSystem) TreeAt(p types.Point) (ecs.EntityID, bool) {
	for _, id := range ecs.GetEntitiesWith2[*components.TreeComponent, *components.BoundsComponent](s.entityManager) {
		tc, _ := ecs.GetComponent[*components.TreeComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if tc.Alive && bounds.Rect.Contains(p) {
			return id, true
		}
	}
	return 0, false
}

// Damage 用斧头砍树
//
// 无敌时间内或树已倒时返回 false。每次命中扣 1 血，随机打落一个苹果（发放 apple），
// 血量归零时变成树桩并发放 wood。
func (s *OrchardSystem) Damage(tree ecs.EntityID) bool {
	tc, ok := ecs.GetComponent[*components.TreeComponent](s.entityManager, tree)
	if !ok || !tc.Alive || tc.InvulnerableTimer > 0 {
		return false
	}

	tc.Health--
	tc.InvulnerableTimer = TreeInvulnerableSeconds
	if s.sounds != nil {
		s.sounds.PlaySound(types.SoundAxe)
	}

	if len(tc.Fruits) > 0 {
		i := s.rng.Intn(len(tc.Fruits))
		s.entityManager.DestroyEntity(tc.Fruits[i])
		tc.Fruits = append(tc.Fruits[:i], tc.Fruits[i+1:]...)
		s.award(types.ItemApple)
	}

	if tc.Health <= 0 {
		s.fell(tree, tc)
	}
	return true
}

// fell 把树变成树桩：缩小绘制矩形与碰撞盒，剩余苹果一并消失
func (s *OrchardSystem) fell(tree ecs.EntityID, tc *components.TreeComponent) {
	tc.Alive = false
	s.clearFruit(tc)

	if bounds, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, tree); ok {
		stump := types.RectFromMidBottom(bounds.Rect.MidBottom(), bounds.Rect.W/2, bounds.Rect.H/3)
		bounds.Rect = stump
		if obstacle, ok := ecs.GetComponent[*components.ObstacleComponent](s.entityManager, tree); ok {
			obstacle.Hitbox = stump.Inflate(-10, -stump.H*0.6)
		}
	}
	if render, ok := ecs.GetComponent[*components.RenderComponent](s.entityManager, tree); ok {
		render.Sprite = tc.Size + "_stump"
	}
	s.award(types.ItemWood)
	s.logger.Debug("tree felled", "entity", tree)
}

func (s *OrchardSystem) clearFruit(tc *components.TreeComponent) {
	for _, fruit := range tc.Fruits {
		s.entityManager.DestroyEntity(fruit)
	}
	tc.Fruits = tc.Fruits[:0]
}

func (s *OrchardSystem) award(item types.ItemType) {
	if s.receiver != nil {
		s.receiver.AddItem(item, 1)
	}
}

// RegrowFruit 每日重置：活树上的苹果全部清掉后重新结果
func (s *OrchardSystem) RegrowFruit() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.TreeComponent](s.entityManager) {
		tc, _ := ecs.GetComponent[*components.TreeComponent](s.entityManager, id)
		if !tc.Alive {
			continue
		}
		s.clearFruit(tc)
		n += s.CreateFruit(id)
	}
	return n
}

// Update 递减无敌时间
func (s *OrchardSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.TreeComponent](s.entityManager) {
		tc, _ := ecs.GetComponent[*components.TreeComponent](s.entityManager, id)
		if tc.InvulnerableTimer > 0 {
			tc.InvulnerableTimer -= deltaTime
			if tc.InvulnerableTimer < 0 {
				tc.InvulnerableTimer = 0
			}
		}
	}
}
