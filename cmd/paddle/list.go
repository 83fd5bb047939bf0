package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all registered games with how often each was played.`,
	Run:   runList,
}

// playStats returns per-game score stats, or nil when the database cannot
// be opened.
func playStats() map[string]*storage.GameStats {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	games := registry.List()
	stats := playStats()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-8s  %6s  %4s\n", maxIDLen, "ID", "Title", "Played", "Best")
	fmt.Fprintf(out, "  %-*s  %-8s  %6s  %4s\n", maxIDLen, "--", "-----", "------", "----")
	for _, g := range games {
		played, best := 0, 0
		if gs, ok := stats[g.ID]; ok {
			played, best = gs.GamesCount, gs.HighScore
		}
		fmt.Fprintf(out, "  %-*s  %-8s  %6d  %4d\n", maxIDLen, g.ID, g.Title, played, best)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'paddle play <id>' to play a game.")
}
