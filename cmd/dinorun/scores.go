package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dino-runner/internal/registry"
	"github.com/vovakirdan/dino-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresReset bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs",
	Long: `Display the best runs for a mode, or for every mode when none is given.

Examples:
  dinorun scores
  dinorun scores classic --limit 20
  dinorun scores arcade --reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset", false, "Delete the mode's runs and high score")
}

func runScores(_ *cobra.Command, args []string) error {
	var modes []registry.Mode
	if len(args) == 1 {
		m, err := registry.Get(args[0])
		if err != nil {
			return checkMode(args[0])
		}
		modes = []registry.Mode{m}
	} else {
		if flagScoresReset {
			return fmt.Errorf("--reset needs a mode")
		}
		modes = registry.List()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresReset {
		id := modes[0].ID
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		if err := store.ResetHighScore(storage.HighScoreKey(id)); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", modes[0].Title)
		return nil
	}

	for i, m := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(os.Stdout, store, m, flagScoresLimit); err != nil {
			return err
		}
	}
	return nil
}

// printScores writes one mode's table of best runs.
func printScores(w io.Writer, store *storage.Store, m registry.Mode, limit int) error {
	runs, err := store.TopRuns(m.ID, limit)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "High Scores - %s\n", m.Title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintf(w, "Play 'dinorun play %s' to set the first high score!\n", m.ID)
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-4s  %-6s  %s\n", "Rank", "Score", "Level", "Auto", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-5s  %-4s  %-6s  %s\n", "----", "-----", "-----", "----", "----", "----")

	for i, r := range runs {
		auto := ""
		if r.AutoPlayed {
			auto = "yes"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-5d  %-4s  %-6s  %s\n",
			i+1, r.Score, r.Level, auto, r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	if best, err := store.HighScore(storage.HighScoreKey(m.ID)); err == nil {
		fmt.Fprintf(w, "Best: %d\n", max(best, runs[0].Score))
	}
	return nil
}
