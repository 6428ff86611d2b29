package postlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/reel-publisher-bot/pkg/logger"
)

func TestFileIncrementAndCap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "post_count.json")
	store := NewFile(path, logger.Nop())
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		got, err := store.Increment(ctx, "2025-06-01", 2)
		if err != nil {
			t.Fatalf("Increment() #%d error = %v", i, err)
		}
		if got.Count != i {
			t.Fatalf("count = %d, want %d", got.Count, i)
		}
	}

	got, err := store.Increment(ctx, "2025-06-01", 2)
	if !errors.Is(err, ErrCapReached) || got.Count != 2 {
		t.Fatalf("Increment() past cap = %+v, %v", got, err)
	}
}

func TestFileResetsOnNewDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post_count.json")
	if err := os.WriteFile(path, []byte(`{"date":"2025-05-31","count":4}`), 0o644); err != nil {
		t.Fatal(err)
	}
	store := NewFile(path, logger.Nop())
	ctx := context.Background()

	yesterday, err := store.Get(ctx, "2025-05-31")
	if err != nil || yesterday.Count != 4 {
		t.Fatalf("Get(yesterday) = %+v, %v", yesterday, err)
	}
	today, err := store.Get(ctx, "2025-06-01")
	if err != nil || today.Count != 0 || today.Date != "2025-06-01" {
		t.Fatalf("Get(today) = %+v, %v", today, err)
	}
	got, err := store.Increment(ctx, "2025-06-01", 4)
	if err != nil || got.Count != 1 {
		t.Fatalf("Increment() = %+v, %v", got, err)
	}
}

func TestFileMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	missing := NewFile(filepath.Join(dir, "none.json"), logger.Nop())
	if got, err := missing.Get(ctx, "2025-06-01"); err != nil || got.Count != 0 {
		t.Fatalf("Get(missing) = %+v, %v", got, err)
	}

	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	corrupt := NewFile(path, logger.Nop())
	if got, err := corrupt.Get(ctx, "2025-06-01"); err != nil || got.Count != 0 {
		t.Fatalf("Get(corrupt) = %+v, %v", got, err)
	}
}

func TestFileUnlimitedCap(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "p.json"), logger.Nop())
	for i := 0; i < 5; i++ {
		if _, err := store.Increment(context.Background(), "2025-06-01", 0); err != nil {
			t.Fatalf("Increment() error = %v", err)
		}
	}
}

func TestIncrementQuery(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	query, args, err := incrementQuery("2025-06-01", 3, now)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(query, "INSERT INTO daily_post_log") ||
		!strings.Contains(query, "WHERE daily_post_log.post_count < $4") ||
		!strings.HasSuffix(query, "RETURNING post_count") {
		t.Errorf("query = %s", query)
	}
	if len(args) != 4 || args[3] != 3 {
		t.Errorf("args = %v", args)
	}

	query, args, err = incrementQuery("2025-06-01", 0, now)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(query, "WHERE") || len(args) != 3 {
		t.Errorf("uncapped query = %s %v", query, args)
	}
}
