package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/decker502/farmvale/pkg/config"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/types"
	"github.com/decker502/farmvale/pkg/world"
)

const inspectorConfig = `
world:
  tileSize: 64
  layout:
    - "#####"
    - "#FF.#"
    - "#.P.#"
    - "#####"
crops:
  corn: {growSpeed: 1, frames: 2, yOffset: -16, width: 32, height: 48}
  tomato: {growSpeed: 0.5, frames: 2, yOffset: -8, width: 32, height: 40}
weather:
  rainThreshold: 10
  seed: 3
player:
  startSeeds: {corn: 2, tomato: 1}
`

func newTestInspector(t *testing.T, hook DayHook) (Inspector, *world.World) {
	t.Helper()
	cfg, err := config.Parse([]byte(inspectorConfig), "test")
	if err != nil {
		t.Fatalf("config.Parse() failed: %v", err)
	}
	w, err := world.New(cfg, world.Options{})
	if err != nil {
		t.Fatalf("world.New() failed: %v", err)
	}
	return NewInspector(w, hook), w
}

func press(t *testing.T, m Inspector, keys ...string) Inspector {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Inspector)
	}
	return m
}

func TestInspectorStartsOnFirstFarmableCell(t *testing.T) {
	m, _ := newTestInspector(t, nil)
	if m.Cursor() != (farm.Cell{Row: 1, Col: 1}) {
		t.Errorf("cursor = %s, want (1,1)", m.Cursor())
	}
}

func TestInspectorFarmCycle(t *testing.T) {
	var summaries []world.DaySummary
	m, w := newTestInspector(t, func(s world.DaySummary) { summaries = append(summaries, s) })

	m = press(t, m, "t", "w", "p", "g")
	c := m.Cursor()
	if !w.Grid().Has(c, farm.Tilled|farm.Watered|farm.Planted) {
		t.Fatalf("cell flags = %s, want tilled+watered+planted", w.Grid().Flags(c))
	}
	if _, _, ripe, ok := w.CropAt(c); !ok || !ripe {
		t.Fatalf("corn should be ripe after one watered tick (ok=%v ripe=%v)", ok, ripe)
	}

	m = press(t, m, "x")
	if w.Inventory().ItemCount(types.ItemCorn) != 1 {
		t.Errorf("corn = %d, want 1", w.Inventory().ItemCount(types.ItemCorn))
	}

	m = press(t, m, "z")
	if len(summaries) != 1 || summaries[0].Gathered[types.ItemCorn] != 1 {
		t.Errorf("summaries = %+v", summaries)
	}
	if w.Grid().Has(c, farm.Watered) {
		t.Error("water should be cleared on a dry day")
	}
	if !strings.Contains(m.View(), "Day 2") {
		t.Error("view should show the new day")
	}
}

func TestInspectorCursorStaysInGrid(t *testing.T) {
	m, w := newTestInspector(t, nil)
	m = press(t, m, "up", "up", "up", "left", "left", "left")
	if m.Cursor() != (farm.Cell{Row: 0, Col: 0}) {
		t.Errorf("cursor = %s, want (0,0)", m.Cursor())
	}
	for i := 0; i < 10; i++ {
		m = press(t, m, "down", "right")
	}
	want := farm.Cell{Row: w.Grid().Rows() - 1, Col: w.Grid().Cols() - 1}
	if m.Cursor() != want {
		t.Errorf("cursor = %s, want %s", m.Cursor(), want)
	}
}

func TestInspectorSeedCycleAndMissingStock(t *testing.T) {
	m, w := newTestInspector(t, nil)
	m = press(t, m, "s", "t", "p")
	if _, _, _, ok := w.CropAt(m.Cursor()); !ok {
		t.Fatal("tomato should be planted")
	}
	m = press(t, m, "right", "t", "p")
	if _, _, _, ok := w.CropAt(m.Cursor()); ok {
		t.Error("planting without tomato seeds should do nothing")
	}
	if !strings.Contains(m.message, "nothing happened") {
		t.Errorf("message = %q", m.message)
	}
}

func TestInspectorQuit(t *testing.T) {
	m, _ := newTestInspector(t, nil)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return tea.Quit")
	}
	if next.(Inspector).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestTables(t *testing.T) {
	out := JournalTable([]storage.DayRecord{
		{Day: 2, Raining: true, Money: 40, Harvested: map[string]int{"tomato": 1, "corn": 2}},
	})
	if !strings.Contains(out, "corn 2, tomato 1") || !strings.Contains(out, "rain") {
		t.Errorf("journal table missing content:\n%s", out)
	}

	totals := TotalsTable(map[string]int{"corn": 7})
	if !strings.Contains(totals, "corn") || !strings.Contains(totals, "7") {
		t.Errorf("totals table missing content:\n%s", totals)
	}

	sim := SimulationTable([]world.DaySummary{{Day: 1, Gathered: map[types.ItemType]int{}}})
	if !strings.Contains(sim, "sun") || !strings.Contains(sim, "-") {
		t.Errorf("simulation table missing content:\n%s", sim)
	}
}
