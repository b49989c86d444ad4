package systems

import (
	"math"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/utils"
)

// CameraSystem 镜头跟随目标（玩家），并限制在世界范围内
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
	world         types.Rect
}

// NewCameraSystem 创建镜头系统
//
// 参数：
//   - viewW/viewH: 视口尺寸
//   - follow: 平滑系数（每秒靠近剩余距离的比例），0 表示不平滑
//   - world: 世界范围，视口不会移出该范围
func NewCameraSystem(em *ecs.EntityManager, viewW, viewH, follow float64, world types.Rect) *CameraSystem {
	cs := &CameraSystem{entityManager: em, world: world}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		ViewW:  viewW,
		ViewH:  viewH,
		Follow: follow,
	})
	return cs
}

// Offset 返回视口左上角（世界坐标 - Offset = 屏幕坐标）
func (cs *CameraSystem) Offset() types.Point {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return types.Point{}
	}
	return types.Point{X: cam.X, Y: cam.Y}
}

// SetViewSize 窗口尺寸变化时更新视口
func (cs *CameraSystem) SetViewSize(w, h float64) {
	if cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity); ok {
		cam.ViewW, cam.ViewH = w, h
	}
}

// Snap 立即对准目标
func (cs *CameraSystem) Snap(target types.Point) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	cam.X, cam.Y = cs.clamp(cam, target.X-cam.ViewW/2, target.Y-cam.ViewH/2)
}

// Update 让镜头中心靠近目标
func (cs *CameraSystem) Update(dt float64, target types.Point) {
	cam, ok := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}
	tx, ty := cs.clamp(cam, target.X-cam.ViewW/2, target.Y-cam.ViewH/2)
	if cam.Follow <= 0 {
		cam.X, cam.Y = tx, ty
		return
	}
	cam.X = utils.Approach(cam.X, tx, cam.Follow, dt)
	cam.Y = utils.Approach(cam.Y, ty, cam.Follow, dt)
}

// clamp 世界小于视口时居中，否则限制在世界范围内
func (cs *CameraSystem) clamp(cam *components.CameraComponent, x, y float64) (float64, float64) {
	if cs.world.W <= 0 || cs.world.H <= 0 {
		return x, y
	}
	clampAxis := func(v, min, size, view float64) float64 {
		if size <= view {
			return min - (view-size)/2
		}
		return math.Max(min, math.Min(v, min+size-view))
	}
	return clampAxis(x, cs.world.X, cs.world.W, cam.ViewW), clampAxis(y, cs.world.Y, cs.world.H, cam.ViewH)
}
