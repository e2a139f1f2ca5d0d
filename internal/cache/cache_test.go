package cache

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestQueryMapping_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveQueryMapping("photosynthesis", "q-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	id, ok, err := store.CachedQueryID("photosynthesis")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || id != "q-1" {
		t.Errorf("expected q-1, got %q (ok=%v)", id, ok)
	}
}

func TestQueryMapping_MissIsNotAnError(t *testing.T) {
	store := openTestStore(t)

	id, ok, err := store.CachedQueryID("never seen")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok || id != "" {
		t.Errorf("expected miss, got %q (ok=%v)", id, ok)
	}
}

func TestQueryMapping_UpsertReplacesID(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveQueryMapping("photosynthesis", "q-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveQueryMapping("photosynthesis", "q-2"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	id, ok, _ := store.CachedQueryID("photosynthesis")
	if !ok || id != "q-2" {
		t.Errorf("expected q-2 after upsert, got %q", id)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Mappings != 1 {
		t.Errorf("expected 1 mapping, got %d", stats.Mappings)
	}
}

func TestProgress_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveProgress("black holes", "q-1", 2); err != nil {
		t.Fatalf("save: %v", err)
	}

	p, ok, err := store.ProgressForTopic("black holes")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a progress entry")
	}
	if p.QueryID != "q-1" || p.LastStepIndex != 2 {
		t.Errorf("unexpected entry: %+v", p)
	}
}

func TestProgress_UpsertKeepsOneRowPerTopic(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveProgress("black holes", "q-1", 0); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveProgress("black holes", "q-1", 4); err != nil {
		t.Fatalf("second save: %v", err)
	}

	p, _, _ := store.ProgressForTopic("black holes")
	if p.LastStepIndex != 4 {
		t.Errorf("expected step 4, got %d", p.LastStepIndex)
	}

	stats, _ := store.Stats()
	if stats.ProgressEntries != 1 {
		t.Errorf("expected 1 entry, got %d", stats.ProgressEntries)
	}
}

func TestLatestProgress_NewestFirst(t *testing.T) {
	store := openTestStore(t)

	if _, ok, err := store.LatestProgress(); err != nil || ok {
		t.Fatalf("expected empty store (ok=%v, err=%v)", ok, err)
	}

	_ = store.SaveProgress("topic a", "q-1", 0)
	_ = store.SaveProgress("topic b", "q-2", 0)

	p, ok, err := store.LatestProgress()
	if err != nil || !ok {
		t.Fatalf("latest: ok=%v err=%v", ok, err)
	}
	if p.Topic != "topic b" {
		t.Errorf("expected topic b, got %q", p.Topic)
	}
}

func TestRecentProgress_OrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	_ = store.SaveProgress("topic a", "q-1", 0)
	_ = store.SaveProgress("topic b", "q-2", 0)
	_ = store.SaveProgress("topic c", "q-3", 0)

	entries, err := store.RecentProgress(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Topic != "topic c" {
		t.Errorf("expected newest first, got %q", entries[0].Topic)
	}
}

func TestClearAll(t *testing.T) {
	store := openTestStore(t)

	_ = store.SaveQueryMapping("photosynthesis", "q-1")
	_ = store.SaveProgress("photosynthesis", "q-1", 1)

	if err := store.ClearAll(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	stats, _ := store.Stats()
	if stats.Mappings != 0 || stats.ProgressEntries != 0 {
		t.Errorf("expected empty store, got %+v", stats)
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "override.db")
	t.Setenv("LEARNIX_DB", dbPath)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p != dbPath {
		t.Errorf("expected %q, got %q", dbPath, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	t.Setenv("LEARNIX_DB", "")
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := filepath.Join(dataHome, "learnix", "learnix.db")
	if p != want {
		t.Errorf("expected %q, got %q", want, p)
	}
}
