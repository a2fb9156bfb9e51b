package history_test

import (
	"context"
	"testing"

	"studioctl/internal/history"
	"studioctl/internal/testsupport"
)

func TestStoreLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	if err := store.Begin(ctx, history.Record{ID: "s1", Mode: "launch", PID: 101}); err != nil {
		t.Fatalf("Begin s1: %v", err)
	}
	if err := store.Begin(ctx, history.Record{ID: "s2", Mode: "attach", PID: 102}); err != nil {
		t.Fatalf("Begin s2: %v", err)
	}

	if err := store.Finish(ctx, "s1", history.StatusCompleted, ""); err != nil {
		t.Fatalf("Finish s1: %v", err)
	}
	if err := store.Finish(ctx, "s2", history.StatusFailed, "connection refused"); err != nil {
		t.Fatalf("Finish s2: %v", err)
	}

	records, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	byID := map[string]history.Record{}
	for _, rec := range records {
		byID[rec.ID] = rec
	}
	if byID["s1"].Status != history.StatusCompleted {
		t.Fatalf("s1 status = %q", byID["s1"].Status)
	}
	if byID["s2"].Error != "connection refused" {
		t.Fatalf("s2 error = %q", byID["s2"].Error)
	}
	if byID["s2"].FinishedAt.IsZero() {
		t.Fatal("s2 should have a finish timestamp")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[history.StatusCompleted] != 1 || stats[history.StatusFailed] != 1 {
		t.Fatalf("stats = %v", stats)
	}
}
