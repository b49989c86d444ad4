package world

import "github.com/decker502/farmvale/pkg/systems"

// SimulateOptions 无界面模拟参数
type SimulateOptions struct {
	Days        int // 模拟的天数
	TicksPerDay int // 每天推进的帧数
}

// Simulate 让帮工连续经营若干天
//
// 每天：锄完所有可耕种格子 → 播种 → 浇水 → 推进帧 → 收获成熟作物 → 卖出作物补种子 → 睡觉。
// onDay 在每天结束后调用，可为 nil。
func Simulate(w *World, opts SimulateOptions, onDay func(DaySummary)) []DaySummary {
	hand := w.Farmhand()
	summaries := make([]DaySummary, 0, opts.Days)
	for d := 0; d < opts.Days; d++ {
		hand.TillAll()
		hand.PlantAll()
		hand.WaterAll()
		for t := 0; t < opts.TicksPerDay; t++ {
			w.Update(tickSeconds, systems.PlayerInput{})
		}
		harvested := hand.HarvestAll()
		hand.RestockSeeds()

		summary := w.Sleep()
		w.logger.Debug("simulated day", "day", summary.Day, "harvested", harvested, "money", summary.Money)
		summaries = append(summaries, summary)
		if onDay != nil {
			onDay(summary)
		}
	}
	return summaries
}

// tickSeconds 模拟时每帧的时长
const tickSeconds = 1.0 / 60
