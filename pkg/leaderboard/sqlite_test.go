package leaderboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "leaderboard.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreAppendStampsRecord(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	rec := &Record{PlayerName: "alice", Score: 70}
	if err := s.Append(ctx, rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if rec.ID == "" {
		t.Error("Expected an id to be assigned")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("Expected a server timestamp")
	}

	recs, err := s.Top(ctx, 1)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID || recs[0].PlayerName != "alice" || recs[0].Score != 70 {
		t.Errorf("Unexpected records %+v", recs)
	}
}

func TestSQLiteStoreTopOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	inputs := []Record{
		{PlayerName: "low", Score: 10, CreatedAt: base},
		{PlayerName: "first", Score: 50, CreatedAt: base.Add(time.Minute)},
		{PlayerName: "second", Score: 50, CreatedAt: base.Add(2 * time.Minute)},
		{PlayerName: "top", Score: 90, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range inputs {
		if err := s.Append(ctx, &inputs[i]); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	recs, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	want := []string{"top", "first", "second"}
	if len(recs) != len(want) {
		t.Fatalf("Expected %d records, got %d", len(want), len(recs))
	}
	for i, name := range want {
		if recs[i].PlayerName != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, recs[i].PlayerName)
		}
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	recs, err := newTestSQLiteStore(t).Top(context.Background(), 10)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Expected no records, got %d", len(recs))
	}
}

func TestLocalCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	lc := newTestLocalCache(t)

	if _, ok, err := lc.Load(ctx); err != nil || ok {
		t.Fatalf("Expected empty cache, got ok=%v err=%v", ok, err)
	}
	if err := lc.Save(ctx, HighScore{Score: 40, PlayerName: "bob"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := lc.Save(ctx, HighScore{Score: 50, PlayerName: "alice"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	hs, ok, err := lc.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if hs != (HighScore{Score: 50, PlayerName: "alice"}) {
		t.Errorf("Expected (50, alice), got %+v", hs)
	}
}
