package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/systems"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/world"
)

// ticksPerBurst GrowMany 一次推进的帧数
const ticksPerBurst = 60

// tickSeconds 每帧时长
const tickSeconds = 1.0 / 60

// DayHook 换日后的回调（写农场日志等），可为 nil
type DayHook func(world.DaySummary)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	styleGrass   = lipgloss.NewStyle().Foreground(lipgloss.Color("64"))
	styleBlocked = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleLand    = lipgloss.NewStyle().Foreground(lipgloss.Color("180"))
	styleTilled  = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
	styleWatered = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	styleCrop    = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	styleRipe    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	stylePanel   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	styleHelp = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Inspector 终端检查器
// 在网格上移动光标，对光标格子执行锄地、浇水、播种、收获，并手动推进帧和换日
type Inspector struct {
	world   *world.World
	hand    *world.Farmhand
	onDay   DayHook
	cursor  farm.Cell
	seed    int
	message string

	keys     KeyMap
	help     help.Model
	width    int
	quitting bool
}

// NewInspector 创建检查器，光标初始位于第一个可耕种格子
func NewInspector(w *world.World, onDay DayHook) Inspector {
	m := Inspector{
		world: w,
		hand:  w.Farmhand(),
		onDay: onDay,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	if cells := w.Grid().Cells(farm.Farmable); len(cells) > 0 {
		m.cursor = cells[0]
	}
	return m
}

// Init 实现 tea.Model
func (m Inspector) Init() tea.Cmd {
	return nil
}

// Update 实现 tea.Model
func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		g := m.world.Grid()
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1, 0, g)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1, 0, g)
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(0, -1, g)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(0, 1, g)
		case key.Matches(msg, m.keys.Till):
			m.report("till", m.hand.Till(m.cursor))
		case key.Matches(msg, m.keys.Water):
			m.report("water", m.hand.Water(m.cursor))
		case key.Matches(msg, m.keys.Plant):
			seed := m.selectedSeed()
			m.report("plant "+seed.String(), m.hand.Plant(m.cursor, seed))
		case key.Matches(msg, m.keys.NextSeed):
			m.seed = (m.seed + 1) % len(types.AllPlants)
			m.message = "seed: " + m.selectedSeed().String()
		case key.Matches(msg, m.keys.Harvest):
			m.report("harvest", m.hand.Harvest(m.cursor))
		case key.Matches(msg, m.keys.Grow):
			m.tick(1)
		case key.Matches(msg, m.keys.GrowMany):
			m.tick(ticksPerBurst)
		case key.Matches(msg, m.keys.Sleep):
			summary := m.world.Sleep()
			if m.onDay != nil {
				m.onDay(summary)
			}
			weather := "sunny"
			if m.world.Raining() {
				weather = "raining"
			}
			m.message = fmt.Sprintf("day %d ended, day %d is %s", summary.Day, m.world.Day(), weather)
		}
	}
	return m, nil
}

func (m *Inspector) moveCursor(dr, dc int, g *farm.Grid) {
	next := farm.Cell{Row: m.cursor.Row + dr, Col: m.cursor.Col + dc}
	if g.InBounds(next) {
		m.cursor = next
	}
}

func (m *Inspector) report(action string, ok bool) {
	if ok {
		m.message = fmt.Sprintf("%s %s: ok", action, m.cursor)
	} else {
		m.message = fmt.Sprintf("%s %s: nothing happened", action, m.cursor)
	}
}

func (m *Inspector) tick(n int) {
	for i := 0; i < n; i++ {
		m.world.Update(tickSeconds, systems.PlayerInput{})
	}
	m.message = fmt.Sprintf("advanced %d tick(s)", n)
}

func (m Inspector) selectedSeed() types.PlantType {
	return types.AllPlants[m.seed%len(types.AllPlants)]
}

// Cursor 返回光标所在格子
func (m Inspector) Cursor() farm.Cell {
	return m.cursor
}

// View 实现 tea.Model
func (m Inspector) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleTitle.Render("FARMVALE INSPECTOR"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderGrid(), "  ", m.renderStats()))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(m.message)
		b.WriteString("\n")
	}
	b.WriteString(styleHelp.Render(m.help.View(m.keys)))
	return b.String()
}

// cellGlyph 单个格子的字符和样式
//
//	.  草地  :  可耕种  =  已锄  ~  已浇水
//	作物用首字母表示，小写生长中，大写成熟
func (m Inspector) cellGlyph(c farm.Cell) (string, lipgloss.Style) {
	g := m.world.Grid()
	flags := g.Flags(c)
	if p, _, ripe, ok := m.world.CropAt(c); ok {
		letter := p.String()[:1]
		if ripe {
			return strings.ToUpper(letter), styleRipe
		}
		return letter, styleCrop
	}
	switch {
	case flags.Has(farm.Watered):
		return "~", styleWatered
	case flags.Has(farm.Tilled):
		return "=", styleTilled
	case flags.Has(farm.Farmable):
		return ":", styleLand
	}
	if m.blocked(c) {
		return "#", styleBlocked
	}
	return ".", styleGrass
}

// blocked 格子中心是否被围栏或池塘占据
func (m Inspector) blocked(c farm.Cell) bool {
	layout := m.world.Config().World.Layout
	if c.Row >= len(layout) || c.Col >= len(layout[c.Row]) {
		return false
	}
	switch layout[c.Row][c.Col] {
	case '#', '~':
		return true
	}
	return false
}

func (m Inspector) renderGrid() string {
	g := m.world.Grid()
	var b strings.Builder
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := farm.Cell{Row: r, Col: c}
			glyph, style := m.cellGlyph(cell)
			if cell == m.cursor {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(glyph))
		}
		if r < g.Rows()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Inspector) renderStats() string {
	snap := m.world.Snapshot()
	weather := "sunny"
	if snap.Raining {
		weather = "raining"
	}
	lines := []string{
		fmt.Sprintf("Day %d (%s)", snap.Day, weather),
		fmt.Sprintf("Money $%d", snap.Money),
		"",
		fmt.Sprintf("Tilled  %d/%d", snap.Tilled, snap.Farmable),
		fmt.Sprintf("Watered %d", snap.Watered),
		fmt.Sprintf("Planted %d (ripe %d)", snap.Planted, snap.Ripe),
		fmt.Sprintf("Trees   %d, apples %d", snap.TreesStanding, snap.Fruit),
		"",
		fmt.Sprintf("Cursor  %s [%s]", m.cursor, m.world.Grid().Flags(m.cursor)),
		fmt.Sprintf("Seed    %s x%d", m.selectedSeed(), snap.Seeds[m.selectedSeed()]),
		"",
	}
	for _, item := range types.AllItems {
		lines = append(lines, fmt.Sprintf("%-7s %d", item, snap.Items[item]))
	}
	return stylePanel.Render(strings.Join(lines, "\n"))
}
