package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	"github.com/louisbranch/lastarena/internal/storage"
)

func archiveFixture(t *testing.T, seed string) snapshot.Envelope {
	t.Helper()
	characterIDs := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		characterIDs = append(characterIDs, fmt.Sprintf("char-%02d", i))
	}
	var n int
	state, err := domain.NewMatchState(domain.CreateMatchInput{
		CharacterIDs: characterIDs,
		Settings:     domain.Settings{Seed: seed},
	}, func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}, func() (string, error) {
		n++
		return fmt.Sprintf("%s-%04d", seed, n), nil
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	env, err := snapshot.Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	return env
}

// TestArchiveRoundTrip covers open, migrate, insert, list, and load.
func TestArchiveRoundTrip(t *testing.T) {
	archive, err := OpenArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	env := archiveFixture(t, "arch-1")
	if err := archive.ArchiveMatch(ctx, env, "winner-1"); err != nil {
		t.Fatalf("archive match: %v", err)
	}

	rows, err := archive.ListArchived(ctx, 10)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].MatchID != env.Snapshot.Match.ID || rows[0].WinnerID != "winner-1" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}

	loaded, err := archive.GetSnapshot(ctx, env.Snapshot.Match.ID)
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if loaded.Checksum != env.Checksum {
		t.Fatalf("checksum mismatch after round trip")
	}
	if _, err := snapshot.Restore(loaded); err != nil {
		t.Fatalf("restore archived snapshot: %v", err)
	}
}

// TestArchiveOverwritesSameMatch ensures re-archiving replaces the row.
func TestArchiveOverwritesSameMatch(t *testing.T) {
	archive, err := OpenArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	env := archiveFixture(t, "arch-2")
	if err := archive.ArchiveMatch(ctx, env, "first"); err != nil {
		t.Fatalf("archive match: %v", err)
	}
	if err := archive.ArchiveMatch(ctx, env, "second"); err != nil {
		t.Fatalf("archive match again: %v", err)
	}

	rows, err := archive.ListArchived(ctx, 10)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(rows) != 1 || rows[0].WinnerID != "second" {
		t.Fatalf("expected a single replaced row, got %+v", rows)
	}
}

// TestArchiveMissingSnapshot ensures a miss maps to ErrNotFound.
func TestArchiveMissingSnapshot(t *testing.T) {
	archive, err := OpenArchive(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer archive.Close()

	_, err = archive.GetSnapshot(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// TestMigrationsAreIdempotent reopens the same database file and expects
// a clean second migration pass.
func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")
	archive, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if err := archive.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenArchive(path)
	if err != nil {
		t.Fatalf("reopen archive: %v", err)
	}
	defer reopened.Close()
}
