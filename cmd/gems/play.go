package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gems/internal/config"
	"github.com/vovakirdan/tui-gems/internal/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode. Without a mode the selector opens first.

Modes:
  gems          - Classic: limited moves, chase the high score
  gems_endless  - Endless: no move limit, board reshuffles when stuck

Controls:
  Arrows/WASD  - Move cursor (swap when a gem is selected)
  Enter/Space  - Select or deselect a gem
  Esc/B        - Deselect
  H/?          - Show a hint
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer gem types, more moves, wider bomb blasts
  normal - Five gem types, 30 moves
  hard   - Every gem type, 20 moves, bombs need a match of five
  fixed  - Config file used as-is

Examples:
  gems play
  gems play gems --difficulty hard
  gems play gems_endless --seed 42
  gems play gems --config ./my-gems.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom gems config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// runtimeConfig builds the runtime config from the global flags and the
// current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// parseDifficulty validates the --difficulty flag. Empty is allowed.
func parseDifficulty() (config.DifficultyPreset, error) {
	if flagDifficulty == "" {
		return "", nil
	}
	preset := config.ParsePreset(flagDifficulty)
	if preset == "" {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return preset, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	preset, err := parseDifficulty()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gems.SetConfigPath(flagConfig)
	cfg := runtimeConfig()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	var gameID string
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
			fmt.Fprintln(os.Stderr, "Run 'gems list' to see available modes.")
			os.Exit(1)
		}
	} else {
		selection, updatedCfg, selErr := tui.RunGemsMenu(store, cfg, preset)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		// User pressed back or quit
		if selection == nil {
			return
		}
		cfg = updatedCfg
		gameID = selection.GameID
		preset = selection.Preset
	}

	if err := playOnce(gameID, preset, store, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playOnce creates the game and runs it until the player quits.
func playOnce(gameID string, preset config.DifficultyPreset, store *storage.Store, cfg core.RuntimeConfig) error {
	gems.SetDifficultyPreset(preset)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return tui.Run(game, store, cfg)
}
