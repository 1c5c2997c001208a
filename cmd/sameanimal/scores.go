package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/same-animal/internal/games/sameanimal"
	"github.com/vovakirdan/same-animal/internal/registry"
	"github.com/vovakirdan/same-animal/internal/storage"
)

var flagRuns int

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 scores, the best stage reached and the latest runs
of a variant (default: sameanimal).

Examples:
  sameanimal scores
  sameanimal scores sameanimal_relaxed --runs 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := sameanimal.IDTimed
	if len(args) == 1 {
		gameID = args[0]
	}

	title, ok := variantTitle(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q; run 'sameanimal list' to see them", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("cannot read scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'sameanimal play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, statsErr := store.GetGameStats(gameID); statsErr == nil {
		fmt.Printf("Best: %d  |  Best stage: %d  |  Full clears: %d\n",
			stats.HighScore, stats.BestStage, stats.Completed)
	}

	runs, err := store.RecentRuns(gameID, flagRuns)
	if err != nil {
		return fmt.Errorf("cannot read runs: %w", err)
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-16s  %-5s  %-7s  %-6s  %s\n", "Date", "Stage", "Result", "Score", "Time")
	for _, r := range runs {
		result := "failed"
		if r.Completed {
			result = "cleared"
		}
		fmt.Printf("  %-16s  %-5d  %-7s  %-6d  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.StageReached, result, r.Score, r.Duration)
	}
	return nil
}

// variantTitle looks up the display title of a registered variant.
func variantTitle(gameID string) (string, bool) {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title, true
		}
	}
	return "", false
}
