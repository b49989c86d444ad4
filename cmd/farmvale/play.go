package main

import (
	"github.com/spf13/cobra"

	"github.com/decker502/farmvale/pkg/app"
)

var flagNewGame bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game window and continue from the last save.

Controls:
  arrows     move
  space      use tool (hoe / axe / water)
  Q          switch tool
  left ctrl  plant selected seed
  E          switch seed
  enter      sleep (at the bed)
  M          shop
  F3         grid overlay
  F11        fullscreen`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(app.Config{
			ConfigPath:  flagConfig,
			Seed:        flagSeed,
			JournalPath: flagDBPath,
			NewGame:     flagNewGame,
		})
	},
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Start a new farm, ignoring the save")
}
