package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "journal.db")
	j, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer j.Close()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestJournalRecordAndRecent(t *testing.T) {
	j := openTestJournal(t)

	days := []DayRecord{
		{Day: 1, Money: 200, Harvested: map[string]int{}},
		{Day: 2, Raining: true, Money: 230, Harvested: map[string]int{"corn": 3}},
		{Day: 3, Money: 260, Harvested: map[string]int{"corn": 1, "tomato": 2, "pumpkin": 0}},
	}
	for _, d := range days {
		if _, err := j.RecordDay(d); err != nil {
			t.Fatalf("RecordDay(%d) failed: %v", d.Day, err)
		}
	}

	recent, err := j.RecentDays(2)
	if err != nil {
		t.Fatalf("RecentDays() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recent))
	}
	if recent[0].Day != 3 || recent[1].Day != 2 {
		t.Errorf("records not newest first: %d, %d", recent[0].Day, recent[1].Day)
	}
	if !recent[1].Raining || recent[0].Raining {
		t.Error("raining flag not preserved")
	}
	if recent[0].Harvested["tomato"] != 2 || recent[0].TotalHarvested() != 3 {
		t.Errorf("day 3 harvest = %v", recent[0].Harvested)
	}
	if _, ok := recent[0].Harvested["pumpkin"]; ok {
		t.Error("zero amounts should not be stored")
	}
	if recent[0].Money != 260 {
		t.Errorf("money = %d, want 260", recent[0].Money)
	}
}

func TestJournalHarvestTotals(t *testing.T) {
	j := openTestJournal(t)
	j.RecordDay(DayRecord{Day: 1, Harvested: map[string]int{"corn": 2}})
	j.RecordDay(DayRecord{Day: 2, Harvested: map[string]int{"corn": 5, "tomato": 1}})

	totals, err := j.HarvestTotals()
	if err != nil {
		t.Fatalf("HarvestTotals() failed: %v", err)
	}
	if totals["corn"] != 7 || totals["tomato"] != 1 {
		t.Errorf("totals = %v", totals)
	}

	rainy, total, err := j.RainyDays()
	if err != nil {
		t.Fatalf("RainyDays() failed: %v", err)
	}
	if rainy != 0 || total != 2 {
		t.Errorf("rainy/total = %d/%d, want 0/2", rainy, total)
	}
}

func TestJournalClear(t *testing.T) {
	j := openTestJournal(t)
	j.RecordDay(DayRecord{Day: 1, Raining: true, Harvested: map[string]int{"corn": 2}})
	if err := j.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	recent, _ := j.RecentDays(10)
	totals, _ := j.HarvestTotals()
	if len(recent) != 0 || len(totals) != 0 {
		t.Errorf("journal not empty after Clear(): %v %v", recent, totals)
	}
}
