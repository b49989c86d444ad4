package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/tui"
)

var (
	flagLimit int
	flagClear bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show the farm journal",
	Long: `Show the most recent days recorded in the farm journal and the total
harvest over all recorded days.

Examples:
  farmvale journal
  farmvale journal --limit 30
  farmvale journal --clear`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

func init() {
	journalCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent days to show")
	journalCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all journal entries")
}

func runJournal(cmd *cobra.Command, args []string) error {
	journal, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer journal.Close()

	if flagClear {
		if err := journal.Clear(); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	}

	days, err := journal.RecentDays(flagLimit)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Println("No days recorded yet.")
		fmt.Println()
		fmt.Println("Play 'farmvale play' or run 'farmvale simulate' to start the journal.")
		return nil
	}

	fmt.Println("Recent days")
	fmt.Println(tui.JournalTable(days))

	totals, err := journal.HarvestTotals()
	if err != nil {
		return err
	}
	rainy, total, err := journal.RainyDays()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Totals")
	fmt.Println(tui.TotalsTable(totals))
	fmt.Printf("Rainy days: %d of %d\n", rainy, total)
	return nil
}
