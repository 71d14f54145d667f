package storage

import (
	"errors"
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

func save(t *testing.T, store *Store, r GameResult) int64 {
	t.Helper()
	id, err := store.SaveResult(r)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 256, Moves: 140})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	results, err := store.RecentResults("2048", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result after reopen, got %d", len(results))
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 512, Moves: 300})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeWon, MaxTile: 2048, Moves: 950})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeAbandoned, MaxTile: 64, Moves: 30})
	save(t, store, GameResult{GameID: "2048_mini", Rows: 3, Cols: 3, Outcome: OutcomeWon, MaxTile: 256, Moves: 180})

	recent, err := store.RecentResults("2048", 10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(recent))
	}
	// Newest first
	if recent[0].MaxTile != 64 || recent[2].MaxTile != 512 {
		t.Errorf("Unexpected order: %+v", recent)
	}
	for _, r := range recent {
		if r.SessionID == "" {
			t.Error("SessionID was not generated")
		}
		if r.CreatedAt.IsZero() {
			t.Error("CreatedAt was not set")
		}
	}

	all, err := store.RecentResults("", 10)
	if err != nil {
		t.Fatalf("RecentResults(all) failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 results across games, got %d", len(all))
	}

	mini, err := store.RecentResults("2048_mini", 10)
	if err != nil {
		t.Fatalf("RecentResults(mini) failed: %v", err)
	}
	if len(mini) != 1 || mini[0].Rows != 3 || mini[0].Cols != 3 {
		t.Errorf("Unexpected mini results: %+v", mini)
	}
}

func TestStoreBestResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 512, Moves: 400})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 512, Moves: 350})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 1024, Moves: 600})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 128, Moves: 90})

	best, err := store.BestResults("2048", 3)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(best))
	}
	if best[0].MaxTile != 1024 {
		t.Errorf("Expected best tile 1024, got %d", best[0].MaxTile)
	}
	if best[1].Moves != 350 || best[2].Moves != 400 {
		t.Errorf("Ties should go to fewer moves: %+v", best)
	}
}

func TestStoreBestTile(t *testing.T) {
	store := openTestStore(t)

	tile, err := store.BestTile("2048")
	if err != nil {
		t.Fatalf("BestTile() failed: %v", err)
	}
	if tile != 0 {
		t.Errorf("Expected 0 for empty history, got %d", tile)
	}

	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeGameOver, MaxTile: 256})
	save(t, store, GameResult{GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeWon, MaxTile: 2048})

	tile, err = store.BestTile("2048")
	if err != nil {
		t.Fatalf("BestTile() failed: %v", err)
	}
	if tile != 2048 {
		t.Errorf("Expected 2048, got %d", tile)
	}
}

func TestStoreSessionID(t *testing.T) {
	store := openTestStore(t)

	save(t, store, GameResult{SessionID: "fixed-session", GameID: "2048", Rows: 4, Cols: 4, Outcome: OutcomeWon, MaxTile: 2048, Moves: 1000})

	r, err := store.ResultBySession("fixed-session")
	if err != nil {
		t.Fatalf("ResultBySession() failed: %v", err)
	}
	if r == nil || r.MaxTile != 2048 || r.Outcome != OutcomeWon {
		t.Errorf("Unexpected result: %+v", r)
	}

	missing, err := store.ResultBySession("nope")
	if err != nil || missing != nil {
		t.Errorf("ResultBySession(missing) = %+v, %v", missing, err)
	}

	// Session IDs are unique.
	if _, err := store.SaveResult(GameResult{SessionID: "fixed-session", GameID: "2048", Outcome: OutcomeWon}); err == nil {
		t.Error("Expected error for duplicate session ID")
	}
}

func TestStoreRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveResult(GameResult{GameID: "2048", Outcome: "draw"})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("SaveResult() error = %v, want ErrInvalidOutcome", err)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	save(t, store, GameResult{GameID: "2048", Outcome: OutcomeGameOver, MaxTile: 128})
	save(t, store, GameResult{GameID: "2048_big", Outcome: OutcomeGameOver, MaxTile: 256})

	if err := store.ClearResults("2048"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, _ := store.RecentResults("2048", 10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	big, _ := store.RecentResults("2048_big", 10)
	if len(big) != 1 {
		t.Errorf("Clear removed results of another game")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	save(t, store, GameResult{GameID: "2048", Outcome: OutcomeWon, MaxTile: 2048, Moves: 900})
	save(t, store, GameResult{GameID: "2048", Outcome: OutcomeGameOver, MaxTile: 512, Moves: 300})
	save(t, store, GameResult{GameID: "2048_mini", Outcome: OutcomeGameOver, MaxTile: 64, Moves: 50})

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.BestTile != 2048 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgMoves != 600 {
		t.Errorf("AvgMoves = %v, want 600", stats.AvgMoves)
	}

	empty, err := store.GetGameStats("2048_big")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.BestTile != 0 {
		t.Errorf("Unexpected stats for unplayed game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 games, got %d", len(all))
	}
	if all["2048_mini"] == nil || all["2048_mini"].Wins != 0 {
		t.Errorf("Unexpected mini stats: %+v", all["2048_mini"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
