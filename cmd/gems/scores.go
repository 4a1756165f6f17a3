package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gems/internal/platform/tui"
	"github.com/vovakirdan/tui-gems/internal/registry"
	"github.com/vovakirdan/tui-gems/internal/storage"
)

var (
	flagScoresTUI    bool
	flagScoresAll    bool
	flagScoresRecent int
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and the resolve statistics for a mode.
Without a mode, prints a summary of every mode played so far.
With --tui the interactive scoreboard opens instead.

Examples:
  gems scores
  gems scores gems
  gems scores gems_endless --recent 5
  gems scores gems --all
  gems scores gems --clear
  gems scores --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "List every recorded score, not just the top 10")
	scoresCmd.Flags().IntVar(&flagScoresRecent, "recent", 0, "Also list resolve statistics of the last N games")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and statistics of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagScoresTUI {
		runScoreboard()
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printOverview(store)
		return
	}
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'gems list' to see available modes.")
		return
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s\n", gameID)
		return
	}

	printScores(store, gameID)
}

// printOverview lists every mode that has recorded scores.
func printOverview(store *storage.Store) {
	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet. Run 'gems play' to start.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-14s  %-6s  %-8s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-14s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %-6d  %-8d  %-8.1f  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printScores(store *storage.Store, gameID string) {
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gems play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if st, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Average: %.1f  Games: %d\n", st.HighScore, st.AvgScore, st.GamesCount)
	}

	totals, err := store.ResolveTotals(gameID)
	if err != nil || totals.Games == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("Resolve stats over %d games\n", totals.Games)
	fmt.Printf("  Swaps: %d (reverted %d)\n", totals.Swaps, totals.Reverts)
	fmt.Printf("  Cascades: %d (%.2f per swap), best chain x%d\n", totals.Cascades, totals.CascadeRate(), totals.BestChain)
	fmt.Printf("  Bombs: %d spawned, %d detonated\n", totals.BombsSpawned, totals.BombsDetonated)
	fmt.Printf("  Tiles destroyed: %d\n", totals.TilesDestroyed)
	if totals.Fallbacks > 0 || totals.Misplaced > 0 || totals.Reshuffles > 0 {
		fmt.Printf("  Refill fallbacks: %d, misplaced: %d, reshuffles: %d\n",
			totals.Fallbacks, totals.Misplaced, totals.Reshuffles)
	}

	if flagScoresRecent <= 0 {
		return
	}
	records, err := store.RecentResolveStats(gameID, flagScoresRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving recent games: %v\n", err)
		return
	}
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-6s  %-6s  %-5s  %s\n", "Date", "Score", "Swaps", "Chain", "Bombs", "Tiles")
	for _, r := range records {
		fmt.Printf("  %-16s  %-8d  %-6d  x%-5d  %-5d  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Stats.Swaps, r.Stats.MaxChain,
			r.Stats.BombsDetonated, r.Stats.TilesDestroyed)
	}
}

func runScoreboard() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
