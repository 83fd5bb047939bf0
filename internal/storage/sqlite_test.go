package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.paddle/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".paddle", "scores.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{3, 1, 5} {
		if _, err := store.SaveScore("pong", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 9); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("pong", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	for i, expected := range []int{5, 3, 1} {
		if scores[i].Score != expected {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, expected)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("pong", i+1)
	}

	scores, err := store.TopScores("pong", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 5 || scores[1].Score != 4 || scores[2].Score != 3 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("pong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("pong", 2)
	store.SaveScore("pong", 5)
	store.SaveScore("pong", 4)

	high, err = store.HighScore("pong")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 5 {
		t.Errorf("Expected high score of 5, got %d", high)
	}
}

func TestStoreMatches(t *testing.T) {
	store := openTestStore(t)

	results := []MatchResult{
		{GameID: "pong", Opponent: "cpu", Difficulty: "normal", Score1: 5, Score2: 3, Winner: 1, Ticks: 4000},
		{GameID: "pong", Opponent: "cpu", Difficulty: "hard", Score1: 2, Score2: 5, Winner: 2, Ticks: 3100},
		{GameID: "pong", Opponent: "p2", Score1: 5, Score2: 4, Winner: 1, Ticks: 5200},
	}
	for _, m := range results {
		if _, err := store.SaveMatch(m); err != nil {
			t.Fatalf("SaveMatch() failed: %v", err)
		}
	}

	if _, err := store.SaveMatch(MatchResult{GameID: "pong", Opponent: "cpu"}); err == nil {
		t.Error("SaveMatch() accepted a match without a winner")
	}

	recent, err := store.RecentMatches("pong", 2)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(recent))
	}
	if recent[0].Opponent != "p2" || recent[1].Difficulty != "hard" {
		t.Errorf("Matches not newest first: %+v", recent)
	}
	if recent[1].Score2 != 5 || recent[1].Ticks != 3100 {
		t.Errorf("Match fields not round-tripped: %+v", recent[1])
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pong", 5)
	store.SaveScore("pong", 2)
	store.SaveMatch(MatchResult{GameID: "pong", Opponent: "cpu", Score1: 5, Score2: 1, Winner: 1})
	store.SaveMatch(MatchResult{GameID: "pong", Opponent: "cpu", Score1: 2, Score2: 5, Winner: 2})
	store.SaveMatch(MatchResult{GameID: "pong", Opponent: "cpu", Score1: 5, Score2: 4, Winner: 1})

	stats, err := store.GetGameStats("pong")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 5 || stats.TotalScore != 7 {
		t.Errorf("unexpected score stats: %+v", stats)
	}
	if stats.AvgScore != 3.5 {
		t.Errorf("AvgScore = %v, expected 3.5", stats.AvgScore)
	}
	if stats.Wins != 2 || stats.Losses != 1 {
		t.Errorf("Wins/Losses = %d/%d, expected 2/1", stats.Wins, stats.Losses)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("other")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["pong"] == nil || all["pong"].HighScore != 5 {
		t.Errorf("unexpected all-games stats: %+v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("pong", 1)
	store.SaveScore("pong", 2)
	store.SaveScore("other", 3)
	store.SaveMatch(MatchResult{GameID: "pong", Opponent: "cpu", Winner: 2})

	if err := store.ClearScores("pong"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("pong", 10); len(scores) != 0 {
		t.Errorf("Expected 0 pong scores after clear, got %d", len(scores))
	}
	if matches, _ := store.RecentMatches("pong", 10); len(matches) != 0 {
		t.Errorf("Expected 0 pong matches after clear, got %d", len(matches))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("Other game's scores should not be affected")
	}
}
