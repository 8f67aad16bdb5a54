package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
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

func mustSave(t *testing.T, store *Store, rec GameRecord) uuid.UUID {
	t.Helper()
	id, err := store.SaveGame(rec)
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsGamesAndSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, first, GameRecord{Mode: "bowling", Player: "alice", Score: 150, Rolls: []int{10}})
	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer second.Close()

	var version int
	if err := second.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("user_version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("user_version = %d, expected %d", version, len(migrations))
	}
	if best, err := second.HighScore("bowling"); err != nil || best != 150 {
		t.Errorf("HighScore() = %d, %v; expected 150", best, err)
	}
}

func TestStoreSaveAndGetByID(t *testing.T) {
	store := openTestStore(t)

	rolls := []int{10, 7, 3, 9, 0, 10, 0, 8, 8, 2, 0, 6, 10, 10, 10, 8, 1}
	id := mustSave(t, store, GameRecord{Mode: "bowling", Player: "Dude", Score: 167, Rolls: rolls})
	if id == uuid.Nil {
		t.Fatal("SaveGame() should assign an ID")
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got.ID != id || got.Mode != "bowling" || got.Player != "Dude" || got.Score != 167 {
		t.Errorf("GameByID() = %+v", got)
	}
	if diff := cmp.Diff(rolls, got.Rolls); diff != "" {
		t.Errorf("rolls mismatch (-want +got):\n%s", diff)
	}
	if got.MatchID != "" {
		t.Errorf("MatchID = %q, expected empty for a solo game", got.MatchID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreSaveKeepsGivenID(t *testing.T) {
	store := openTestStore(t)
	want := uuid.New()

	if got := mustSave(t, store, GameRecord{ID: want, Mode: "bowling", Player: "A", Rolls: []int{}}); got != want {
		t.Errorf("SaveGame() = %s, expected %s", got, want)
	}
	if _, err := store.SaveGame(GameRecord{ID: want, Mode: "bowling", Player: "A"}); err == nil {
		t.Error("saving a duplicate ID should fail")
	}
}

func TestStoreGameByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GameByID(uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GameByID() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		mustSave(t, store, GameRecord{Mode: "bowling", Player: "A", Score: score})
	}
	mustSave(t, store, GameRecord{Mode: "bowling_cpu", Player: "B", Score: 250})

	scores, err := store.TopScores("bowling", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	var got []int
	for _, g := range scores {
		got = append(got, g.Score)
	}
	if diff := cmp.Diff([]int{200, 100, 50}, got); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}

	all, err := store.TopScores("", 2)
	if err != nil {
		t.Fatalf("TopScores(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].Score != 250 || all[0].Mode != "bowling_cpu" {
		t.Errorf("TopScores(\"\", 2) = %+v, expected the CPU game first", all)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("bowling")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() = %d, expected 0 with no games", high)
	}

	stats, err := store.GetGameStats("bowling")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, score := range []int{100, 300, 200} {
		mustSave(t, store, GameRecord{Mode: "bowling", Player: "A", Score: score})
	}

	if high, _ = store.HighScore("bowling"); high != 300 {
		t.Errorf("HighScore() = %d, expected 300", high)
	}

	stats, err = store.GetGameStats("bowling")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v, expected 3 games, high 300, avg 200", stats)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, GameRecord{Mode: "bowling", Player: "A", Score: 100})
	mustSave(t, store, GameRecord{Mode: "bowling_cpu", Player: "A", Score: 120})

	if err := store.ClearScores("bowling"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if solo, _ := store.TopScores("bowling", 10); len(solo) != 0 {
		t.Errorf("expected no solo games after clear, got %d", len(solo))
	}
	if cpu, _ := store.TopScores("bowling_cpu", 10); len(cpu) != 1 {
		t.Error("clearing one mode should not touch another")
	}
}

func TestStorePlayerGames(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, GameRecord{Mode: "bowling", Player: "Walter", Score: 90})
	second := mustSave(t, store, GameRecord{Mode: "bowling", Player: "Walter", Score: 110})
	mustSave(t, store, GameRecord{Mode: "bowling", Player: "Donny", Score: 300})

	games, err := store.PlayerGames("Walter", 10)
	if err != nil {
		t.Fatalf("PlayerGames() failed: %v", err)
	}
	if len(games) != 2 || games[0].ID != second || games[1].ID != first {
		t.Errorf("PlayerGames() = %+v, expected newest first", games)
	}
}

func TestStoreSaveMatch(t *testing.T) {
	store := openTestStore(t)

	m := MatchResult{
		MatchID: uuid.NewString(),
		Player1: GameRecord{Mode: "bowling_online", Player: "Hank", Score: 150, Rolls: []int{5, 5}},
		Player2: GameRecord{Mode: "bowling_online", Player: "Jo", Score: 120, Rolls: []int{3, 4}},
		Winner:  "Hank",
	}
	if err := store.SaveMatch(m); err != nil {
		t.Fatalf("SaveMatch() failed: %v", err)
	}

	matches, err := store.RecentMatches(5)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("RecentMatches() returned %d rows, expected 1", len(matches))
	}
	got := matches[0]
	if got.MatchID != m.MatchID || got.Player1 != "Hank" || got.Score2 != 120 || got.Winner != "Hank" {
		t.Errorf("match = %+v", got)
	}

	games, err := store.TopScores("bowling_online", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected both games saved, got %d", len(games))
	}
	for _, g := range games {
		if g.MatchID != m.MatchID {
			t.Errorf("game %s MatchID = %q, expected %q", g.ID, g.MatchID, m.MatchID)
		}
	}
}

func TestStoreSaveMatchIsAtomic(t *testing.T) {
	store := openTestStore(t)

	dup := uuid.New()
	mustSave(t, store, GameRecord{ID: dup, Mode: "bowling", Player: "X"})

	m := MatchResult{
		MatchID: uuid.NewString(),
		Player1: GameRecord{Mode: "bowling_online", Player: "Hank"},
		Player2: GameRecord{ID: dup, Mode: "bowling_online", Player: "Jo"},
	}
	if err := store.SaveMatch(m); err == nil {
		t.Fatal("SaveMatch() should fail on a duplicate game ID")
	}

	if games, _ := store.TopScores("bowling_online", 10); len(games) != 0 {
		t.Errorf("failed match left %d games behind", len(games))
	}
	if matches, _ := store.RecentMatches(10); len(matches) != 0 {
		t.Errorf("failed match left %d match rows behind", len(matches))
	}
}

func TestStoreSaveGames(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveGames([]GameRecord{
		{Mode: "bowling_cpu", Player: "Walter", Score: 180},
		{Mode: "bowling_cpu", Player: "Donny", Score: 95},
	})
	if err != nil {
		t.Fatalf("SaveGames() failed: %v", err)
	}
	if games, _ := store.TopScores("bowling_cpu", 10); len(games) != 2 {
		t.Errorf("expected both games saved, got %d", len(games))
	}

	dup := uuid.New()
	err = store.SaveGames([]GameRecord{
		{ID: dup, Mode: "bowling", Player: "Walter"},
		{ID: dup, Mode: "bowling", Player: "Donny"},
	})
	if err == nil {
		t.Fatal("SaveGames() should fail on a duplicate game ID")
	}
	if games, _ := store.TopScores("bowling", 10); len(games) != 0 {
		t.Errorf("failed batch left %d games behind", len(games))
	}
}

func TestRollsEncoding(t *testing.T) {
	tests := []struct {
		rolls   []int
		encoded string
	}{
		{[]int{}, ""},
		{[]int{10}, "10"},
		{[]int{7, 3, 10, 0}, "7,3,10,0"},
	}

	for _, tc := range tests {
		if got := EncodeRolls(tc.rolls); got != tc.encoded {
			t.Errorf("EncodeRolls(%v) = %q, expected %q", tc.rolls, got, tc.encoded)
		}
		decoded, err := DecodeRolls(tc.encoded)
		if err != nil {
			t.Fatalf("DecodeRolls(%q) failed: %v", tc.encoded, err)
		}
		if diff := cmp.Diff(tc.rolls, decoded); diff != "" {
			t.Errorf("DecodeRolls(%q) mismatch (-want +got):\n%s", tc.encoded, diff)
		}
	}

	if _, err := DecodeRolls("1,x,3"); err == nil {
		t.Error("DecodeRolls should reject non-numeric rolls")
	}
}
