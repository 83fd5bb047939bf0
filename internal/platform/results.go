// Package platform holds what the terminal frontends share.
package platform

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-paddle/internal/registry"
	"github.com/vovakirdan/tui-paddle/internal/storage"
)

// MatchRecord converts a finished game's match report into a storage row.
// It reports false if the game keeps no match or the match is still running.
func MatchRecord(game registry.Game, difficulty string) (storage.MatchResult, bool) {
	reporter, ok := game.(registry.MatchReporter)
	if !ok {
		return storage.MatchResult{}, false
	}
	match, over := reporter.Match()
	if !over {
		return storage.MatchResult{}, false
	}
	return storage.MatchResult{
		GameID:     game.ID(),
		Opponent:   match.Opponent,
		Difficulty: difficulty,
		Score1:     match.Score1,
		Score2:     match.Score2,
		Winner:     match.Winner,
		Ticks:      match.Ticks,
	}, true
}

// SaveResult stores a finished game's score and match outcome.
// Storage is best-effort: failures are logged, and a nil store only logs.
func SaveResult(store *storage.Store, game registry.Game, score int, difficulty string, logger *log.Logger) {
	match, hasMatch := MatchRecord(game, difficulty)
	if hasMatch {
		logger.Info("match over",
			"game", game.ID(),
			"score", fmt.Sprintf("%d-%d", match.Score1, match.Score2),
			"winner", match.Winner,
			"difficulty", difficulty,
		)
	}

	if store == nil {
		return
	}

	if score > 0 {
		if _, err := store.SaveScore(game.ID(), score); err != nil {
			logger.Warn("could not save score", "game", game.ID(), "error", err)
		}
	}
	if hasMatch {
		if _, err := store.SaveMatch(match); err != nil {
			logger.Warn("could not save match", "game", game.ID(), "error", err)
		}
	}
}
