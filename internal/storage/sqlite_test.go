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

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Mode: "single", Score: 100, Round: 1, Score1: 100, Seed: 7},
		{Mode: "single", Score: 50, Round: 1, Score1: 50},
		{Mode: "single", Score: 200, Round: 2, Score1: 200, Duration: 95},
		{Mode: "coop", Score: 500, Round: 3, Score1: 300, Score2: 200},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	single, err := store.TopRuns("single", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(single) != 3 {
		t.Fatalf("Expected 3 single runs, got %d", len(single))
	}
	if single[0].Score != 200 || single[1].Score != 100 || single[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", single)
	}
	if single[0].Round != 2 || single[0].Duration != 95 {
		t.Errorf("Run fields not round-tripped: %+v", single[0])
	}
	if single[1].Seed != 7 {
		t.Errorf("Seed = %d, want 7", single[1].Seed)
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].Mode != "coop" || all[0].Score2 != 200 {
		t.Errorf("Unfiltered top runs = %v", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Mode: "single", Score: (i + 1) * 100, Round: 1})
	}

	runs, err := store.TopRuns("single", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveRun(RunRecord{Mode: "single", Score: i * 10, Round: 1})
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 190 {
		t.Errorf("Most recent run should come first, got score %d", runs[0].Score)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestScore != 0 {
		t.Errorf("Empty stats = %+v", stats)
	}

	store.SaveRun(RunRecord{Mode: "single", Score: 100, Round: 2})
	store.SaveRun(RunRecord{Mode: "coop", Score: 300, Round: 4})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestScore != 300 || stats.BestRound != 4 {
		t.Errorf("Stats = %+v", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("Averages = %v / %v", stats.AvgScore, stats.TotalScore)
	}
}

func TestStoreClearRunsKeepsRecord(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Mode: "single", Score: 100, Round: 1})
	if err := store.SaveHighScore(100); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	high, _ := store.LoadHighScore()
	if high != 100 {
		t.Errorf("High score should survive clearing history, got %d", high)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for a fresh database, got %d", high)
	}

	tests := []struct {
		save int
		want int
	}{
		{100, 100},
		{300, 300},
		{250, 300}, // lower save keeps the record
		{300, 300},
		{301, 301},
	}
	for _, tt := range tests {
		if err := store.SaveHighScore(tt.save); err != nil {
			t.Fatalf("SaveHighScore(%d) failed: %v", tt.save, err)
		}
		high, err = store.LoadHighScore()
		if err != nil {
			t.Fatalf("LoadHighScore() failed: %v", err)
		}
		if high != tt.want {
			t.Errorf("after SaveHighScore(%d) record = %d, want %d", tt.save, high, tt.want)
		}
	}
}

func TestStoreHighScoreSharedBySessions(t *testing.T) {
	store := openTestStore(t)

	// Both sessions load the empty record before either plays.
	first, _ := store.LoadHighScore()
	second, _ := store.LoadHighScore()
	if first != 0 || second != 0 {
		t.Fatalf("fresh records = %d, %d", first, second)
	}

	if err := store.SaveHighScore(900); err != nil {
		t.Fatalf("SaveHighScore(900) failed: %v", err)
	}
	// The second session beats its stale record of 0 but not the shared one.
	if err := store.SaveHighScore(50); err != nil {
		t.Fatalf("SaveHighScore(50) failed: %v", err)
	}

	high, err := store.LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 900 {
		t.Errorf("shared record went from 900 to %d", high)
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

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/tmp/rain.db", "/tmp/rain.db"},
		{"~/.arcade/rain.db", filepath.Join(home, ".arcade/rain.db")},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil {
			t.Errorf("expandHome(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
