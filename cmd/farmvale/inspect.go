package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/decker502/farmvale/pkg/storage"
	"github.com/decker502/farmvale/pkg/tui"
	"github.com/decker502/farmvale/pkg/world"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect and drive the farm from the terminal",
	Long: `Open a terminal view of the farm grid. Move the cursor over cells and
till, water, plant or harvest them directly; advance frames and sleep to
watch crops grow. Finished days are written to the farm journal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := newWorld()
		if err != nil {
			return err
		}

		var onDay tui.DayHook
		journal, err := storage.Open(flagDBPath)
		if err != nil {
			log.Warn("farm journal disabled", "error", err)
		} else {
			defer journal.Close()
			onDay = func(s world.DaySummary) {
				if _, err := journal.RecordDay(s.JournalRecord()); err != nil {
					log.Warn("failed to record day", "day", s.Day, "error", err)
				}
			}
		}

		p := tea.NewProgram(tui.NewInspector(w, onDay), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}
