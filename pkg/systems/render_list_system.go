package systems

import (
	"sort"

	"github.com/decker502/farmvale/pkg/components"
	"github.com/decker502/farmvale/pkg/ecs"
	"github.com/decker502/farmvale/pkg/types"
)

// RenderRecord 一条与引擎无关的绘制记录
type RenderRecord struct {
	Entity ecs.EntityID
	Kind   components.RenderKind
	Layer  components.RenderLayer
	Rect   types.Rect
	Sprite string
	Frame  int
}

// RenderListSystem 收集所有可见实体，生成有序绘制列表
// 排序：层级 → 矩形上边（靠下的后画，形成前后遮挡）→ 实体ID
type RenderListSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderListSystem 创建绘制列表系统
func NewRenderListSystem(em *ecs.EntityManager) *RenderListSystem {
	return &RenderListSystem{entityManager: em}
}

// Build 生成当前帧的绘制列表（应在帧末清理实体之后调用）
func (s *RenderListSystem) Build() []RenderRecord {
	ids := ecs.GetEntitiesWith2[*components.RenderComponent, *components.BoundsComponent](s.entityManager)
	records := make([]RenderRecord, 0, len(ids))
	for _, id := range ids {
		render, _ := ecs.GetComponent[*components.RenderComponent](s.entityManager, id)
		bounds, _ := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		records = append(records, RenderRecord{
			Entity: id,
			Kind:   render.Kind,
			Layer:  render.Layer,
			Rect:   bounds.Rect,
			Sprite: render.Sprite,
			Frame:  render.Frame,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.Rect.Y != b.Rect.Y {
			return a.Rect.Y < b.Rect.Y
		}
		return a.Entity < b.Entity
	})
	return records
}

// Filter 返回指定种类的记录（保持原顺序）
func Filter(records []RenderRecord, kinds ...components.RenderKind) []RenderRecord {
	var out []RenderRecord
	for _, r := range records {
		for _, k := range kinds {
			if r.Kind == k {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
