// Package tui 终端界面：无窗口世界的检查器，以及命令行输出用的表格
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap 检查器键位
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Till     key.Binding
	Water    key.Binding
	Plant    key.Binding
	NextSeed key.Binding
	Harvest  key.Binding
	Grow     key.Binding
	GrowMany key.Binding
	Sleep    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp 实现 help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Till, k.Water, k.Plant, k.Harvest, k.Grow, k.Sleep, k.Help, k.Quit}
}

// FullHelp 实现 help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Till, k.Water, k.Plant, k.NextSeed, k.Harvest},
		{k.Grow, k.GrowMany, k.Sleep},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap 默认键位
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Till: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "till"),
		),
		Water: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "water"),
		),
		Plant: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "plant"),
		),
		NextSeed: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "next seed"),
		),
		Harvest: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "harvest"),
		),
		Grow: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "tick"),
		),
		GrowMany: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "60 ticks"),
		),
		Sleep: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "sleep"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
