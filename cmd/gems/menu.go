package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive selector loop",
	Long: `Opens the mode selector. Quitting a game returns to the selector,
so several rounds can be played without restarting the program.

Navigation:
  Up/Down     - Move between entries
  Left/Right  - Change difficulty
  Enter       - Start the selected mode
  Q/Ctrl+C    - Quit`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gems config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset")
}

func runMenu(cmd *cobra.Command, args []string) {
	preset, err := parseDifficulty()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	gems.SetConfigPath(flagConfig)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	for {
		selection, updatedCfg, selErr := tui.RunGemsMenu(store, cfg, preset)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		if selection == nil {
			return
		}
		cfg = updatedCfg
		// Remember the last choice for the next round.
		preset = selection.Preset

		if err := playOnce(selection.GameID, selection.Preset, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
	}
}
