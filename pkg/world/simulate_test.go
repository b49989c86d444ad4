package world

import (
	"testing"

	"github.com/decker502/farmvale/pkg/config"
	"github.com/decker502/farmvale/pkg/farm"
	"github.com/decker502/farmvale/pkg/types"
)

func TestSimulateIsDeterministic(t *testing.T) {
	run := func() []DaySummary {
		cfg, err := config.Default()
		if err != nil {
			t.Fatalf("config.Default() failed: %v", err)
		}
		w, err := New(cfg, Options{Seed: 99})
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		return Simulate(w, SimulateOptions{Days: 4, TicksPerDay: 900}, nil)
	}

	a, b := run(), run()
	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("expected 4 summaries, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Day != i+1 {
			t.Errorf("summary %d day = %d", i, a[i].Day)
		}
		if a[i].Raining != b[i].Raining || a[i].Money != b[i].Money {
			t.Errorf("day %d differs between runs: %+v vs %+v", i+1, a[i], b[i])
		}
	}
}

func TestSimulateHarvestsCrops(t *testing.T) {
	w := newTestWorld(t)
	var seen int
	summaries := Simulate(w, SimulateOptions{Days: 2, TicksPerDay: 4}, func(DaySummary) { seen++ })

	if seen != 2 || w.Day() != 3 {
		t.Errorf("callbacks %d, day %d", seen, w.Day())
	}
	first := summaries[0].Gathered
	if first[types.ItemCorn]+first[types.ItemTomato] != 6 {
		t.Errorf("day 1 gathered = %v, want 6 crops", first)
	}
	if w.Grid().Count(farm.Tilled) != 6 {
		t.Errorf("tilled = %d, want 6", w.Grid().Count(farm.Tilled))
	}
}
