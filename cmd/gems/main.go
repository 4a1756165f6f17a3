// gems is a terminal match-3 puzzle built on a deterministic tile
// resolution engine.
//
// Usage:
//
//	gems list              - List available modes
//	gems play [mode]       - Play a mode (opens the selector when omitted)
//	gems menu              - Selector loop: pick a mode, play, repeat
//	gems serve             - Start SSH server for remote play
//	gems scores <mode>     - Show high scores and resolve totals
//	gems config            - Show or write the active configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible boards
//	--db <path>     - Set database path (default: ~/.arcade/gems.db)
//	--log <path>    - Write debug logs to a file
//	--no-color      - Plain output without colors
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/tui"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagNoColor bool

	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gems",
	Short: "Gems - match-3 in your terminal",
	Long: `Gems is a match-3 puzzle for the terminal. Swap neighbouring gems to
line up three or more of a kind, chain cascades and set off bombs.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive selector loop
  serve    - Start SSH server for remote play
  scores   - View high scores and resolve statistics
  config   - Show or write the active configuration

Examples:
  gems play
  gems play gems_endless --difficulty easy
  gems menu --seed 42
  gems serve --ssh :2222
  gems scores gems`,
	PersistentPreRunE: setupGlobals,
	SilenceUsage:      true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/gems.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colors")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setupGlobals wires logging and theming before any subcommand runs.
// The TUI owns the terminal, so logs only go somewhere when --log is set.
func setupGlobals(_ *cobra.Command, _ []string) error {
	if flagNoColor {
		tui.SetMenuTheme(tui.MonochromeMenuTheme())
		tui.SetColorEnabled(false)
	}
	if flagLogPath == "" {
		return nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "gems",
	})
	log.SetDefault(logger)
	gems.SetLogger(logger)
	return nil
}
