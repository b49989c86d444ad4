package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/farmvale/pkg/config"
	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/tui"
	"github.com/decker502/farmvale/pkg/world"
)

var (
	flagDays      int
	flagTicks     int
	flagNoJournal bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the farm headless for a number of days",
	Long: `Run the farm without a window. Each day every farmable cell is tilled,
planted and watered, the world advances --ticks frames, ripe crops are
harvested and sold for new seeds, and the farmer sleeps.

Every finished day is written to the farm journal unless --no-journal is set.

Examples:
  farmvale simulate --days 7
  farmvale simulate --days 30 --ticks 1200 --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagDays, "days", 7, "Number of days to simulate")
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 900, "Frames per day")
	simulateCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not write to the farm journal")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if flagDays <= 0 || flagTicks < 0 {
		return fmt.Errorf("--days must be positive and --ticks non-negative")
	}

	w, err := newWorld()
	if err != nil {
		return err
	}

	var journal *storage.Journal
	if !flagNoJournal {
		journal, err = storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer journal.Close()
	}

	summaries := world.Simulate(w, world.SimulateOptions{Days: flagDays, TicksPerDay: flagTicks}, func(s world.DaySummary) {
		if journal == nil {
			return
		}
		if _, err := journal.RecordDay(s.JournalRecord()); err != nil {
			log.Warn("failed to record day", "day", s.Day, "error", err)
		}
	})

	fmt.Printf("Simulated %d day(s), seed %d\n\n", len(summaries), w.Seed())
	fmt.Println(tui.SimulationTable(summaries))
	fmt.Println(tui.SnapshotLine(w.Snapshot()))
	return nil
}

// newWorld 按全局参数加载配置并构建世界
func newWorld() (*world.World, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	return world.New(cfg, world.Options{Seed: flagSeed})
}
