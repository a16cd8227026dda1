package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/makeup-rain/internal/platform/tui"
	"github.com/vovakirdan/makeup-rain/internal/storage"
)

var (
	flagScoresMode   string
	flagScoresLimit  int
	flagScoresBrowse bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display the best runs recorded in the run history database.

Examples:
  rain scores
  rain scores --mode coop
  rain scores --browse
  rain scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Filter by mode: single or coop")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresBrowse, "browse", "i", false, "Browse runs interactively")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the run history (the high score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	switch flagScoresMode {
	case "", "single", "coop":
	default:
		return fmt.Errorf("unknown mode %q (want single or coop)", flagScoresMode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening run history: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("error clearing runs: %w", err)
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagScoresBrowse {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	runs, err := store.TopRuns(flagScoresMode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Println("Makeup Rain - Best Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rain play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-15s  %s\n", "Rank", "Score", "Round", "Mode", "P1/P2", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-6s  %-15s  %s\n", "----", "-----", "-----", "----", "-----", "----")
	for i, run := range runs {
		split := "-"
		if run.Mode == "coop" {
			split = fmt.Sprintf("%d/%d", run.Score1, run.Score2)
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-6s  %-15s  %s\n",
			i+1, run.Score, run.Round, run.Mode, split, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Runs: %d  Best: %d  Best round: %d  Average: %.0f\n",
			stats.Runs, stats.BestScore, stats.BestRound, stats.AvgScore)
	}
	return nil
}
