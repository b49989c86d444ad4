package world

import (
	"github.com/decker502/farmvale/pkg/game"
	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/types"
)

// gatherCounter 转发物品到背包，同时统计当天获得的数量
type gatherCounter struct {
	inv    *game.Inventory
	counts map[types.ItemType]int
}

func newGatherCounter(inv *game.Inventory) *gatherCounter {
	return &gatherCounter{inv: inv, counts: make(map[types.ItemType]int)}
}

// AddItem 实现 systems.ItemReceiver
func (g *gatherCounter) AddItem(item types.ItemType, amount int) {
	g.inv.AddItem(item, amount)
	g.counts[item] += amount
}

func (g *gatherCounter) snapshot() map[types.ItemType]int {
	out := make(map[types.ItemType]int, len(g.counts))
	for k, v := range g.counts {
		out[k] = v
	}
	return out
}

// take 返回并清空当天的统计
func (g *gatherCounter) take() map[types.ItemType]int {
	out := g.counts
	g.counts = make(map[types.ItemType]int)
	return out
}

// JournalRecord 转换为农场日志的一行
func (s DaySummary) JournalRecord() storage.DayRecord {
	harvested := make(map[string]int, len(s.Gathered))
	for item, n := range s.Gathered {
		if n > 0 {
			harvested[item.String()] = n
		}
	}
	return storage.DayRecord{
		Day:       s.Day,
		Raining:   s.Raining,
		Money:     s.Money,
		Harvested: harvested,
	}
}
