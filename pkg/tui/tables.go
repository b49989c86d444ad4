package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/world"
)

var (
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

// formatCounts 把数量表格式化为 "corn 3, tomato 1"，按名称排序，省略 0
func formatCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name, n := range counts {
		if n > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s %d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}

func weatherLabel(raining bool) string {
	if raining {
		return "rain"
	}
	return "sun"
}

// JournalTable 渲染农场日志中最近几天的记录
func JournalTable(days []storage.DayRecord) string {
	t := newTable("Day", "Weather", "Money", "Gathered", "Recorded")
	for _, d := range days {
		recorded := "-"
		if !d.CreatedAt.IsZero() {
			recorded = d.CreatedAt.Format("Jan 02 15:04")
		}
		t.Row(
			fmt.Sprintf("%d", d.Day),
			weatherLabel(d.Raining),
			fmt.Sprintf("$%d", d.Money),
			formatCounts(d.Harvested),
			recorded,
		)
	}
	return t.String()
}

// TotalsTable 渲染累计收获量
func TotalsTable(totals map[string]int) string {
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	t := newTable("Item", "Total")
	for _, name := range names {
		t.Row(name, fmt.Sprintf("%d", totals[name]))
	}
	return t.String()
}

// SimulationTable 渲染模拟运行中每一天的汇总
func SimulationTable(days []world.DaySummary) string {
	t := newTable("Day", "Weather", "Money", "Gathered")
	for _, d := range days {
		counts := make(map[string]int, len(d.Gathered))
		for item, n := range d.Gathered {
			counts[item.String()] = n
		}
		t.Row(
			fmt.Sprintf("%d", d.Day),
			weatherLabel(d.Raining),
			fmt.Sprintf("$%d", d.Money),
			formatCounts(counts),
		)
	}
	return t.String()
}

// SnapshotLine 单行状态摘要
func SnapshotLine(s world.Snapshot) string {
	var items []string
	for _, item := range types.AllItems {
		if n := s.Items[item]; n > 0 {
			items = append(items, fmt.Sprintf("%s %d", item, n))
		}
	}
	return fmt.Sprintf("day %d (%s)  $%d  tilled %d/%d  planted %d  ripe %d  items [%s]",
		s.Day, weatherLabel(s.Raining), s.Money, s.Tilled, s.Farmable, s.Planted, s.Ripe, strings.Join(items, ", "))
}
