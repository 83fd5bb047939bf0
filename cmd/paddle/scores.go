package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/platform/tui"
	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

var (
	flagInteractive bool
	flagLimit       int
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent matches",
	Long: `Display the top high scores and most recent matches for a game
(default: pong).

Examples:
  paddle scores
  paddle scores --limit 20
  paddle scores --interactive
  paddle scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores and matches to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and matches for the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID, err := gameArg(args)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared scores for %s.\n", gameID)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieve scores: %w", err)
	}
	matches, err := store.RecentMatches(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieve matches: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(scores) == 0 && len(matches) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'paddle play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Recent matches")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-6s  %-7s  %-4s  %-8s  %s\n", "Result", "Score", "Vs", "Level", "Date")
	fmt.Fprintf(out, "  %-6s  %-7s  %-4s  %-8s  %s\n", "------", "-----", "--", "-----", "----")
	for _, m := range matches {
		result := "WIN"
		if m.Winner != 1 {
			result = "LOSS"
		}
		level := m.Difficulty
		if level == "" {
			level = "-"
		}
		fmt.Fprintf(out, "  %-6s  %-7s  %-4s  %-8s  %s\n",
			result, fmt.Sprintf("%d-%d", m.Score1, m.Score2), m.Opponent, level,
			m.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount+stats.Wins+stats.Losses > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Won: %d  Lost: %d\n", stats.HighScore, stats.Wins, stats.Losses)
	}
	return nil
}
