// Package sqlite implements the optional finished-match archive on an
// embedded SQLite database.
//
// The archive is write-mostly: the service appends a snapshot envelope
// when a match finishes, and operators query it out of band. Live match
// state never lives here; the in-memory store stays the only source of
// truth for running matches.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	"github.com/louisbranch/lastarena/internal/storage"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Archive stores finished-match snapshots.
type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// OpenArchive opens (or creates) the archive database at path and applies
// pending migrations.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}
	if err := applyMigrations(db, migrationFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate archive database: %w", err)
	}
	return &Archive{db: db, now: time.Now}, nil
}

// ArchiveMatch records a finished match's snapshot envelope. Re-archiving
// the same match overwrites the previous row.
func (a *Archive) ArchiveMatch(ctx context.Context, env snapshot.Envelope, winnerID string) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal snapshot envelope: %w", err)
	}
	_, err = a.db.ExecContext(ctx, `
INSERT OR REPLACE INTO archived_matches
    (match_id, seed, winner_id, turn_count, snapshot_json, archived_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		env.Snapshot.Match.ID,
		env.Snapshot.Match.Seed,
		winnerID,
		env.Snapshot.Match.TurnNumber,
		string(raw),
		a.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("archive match %s: %w", env.Snapshot.Match.ID, err)
	}
	return nil
}

// ArchivedMatch is one row of the archive listing.
type ArchivedMatch struct {
	MatchID    string
	Seed       string
	WinnerID   string
	TurnCount  int
	ArchivedAt time.Time
}

// ListArchived returns the most recently archived matches, newest first.
func (a *Archive) ListArchived(ctx context.Context, limit int) ([]ArchivedMatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.QueryContext(ctx, `
SELECT match_id, seed, winner_id, turn_count, archived_at
FROM archived_matches
ORDER BY archived_at DESC, match_id
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list archived matches: %w", err)
	}
	defer rows.Close()

	var out []ArchivedMatch
	for rows.Next() {
		var row ArchivedMatch
		var archivedAt int64
		if err := rows.Scan(&row.MatchID, &row.Seed, &row.WinnerID, &row.TurnCount, &archivedAt); err != nil {
			return nil, fmt.Errorf("scan archived match: %w", err)
		}
		row.ArchivedAt = time.UnixMilli(archivedAt).UTC()
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetSnapshot returns the archived snapshot envelope for a match.
func (a *Archive) GetSnapshot(ctx context.Context, matchID string) (snapshot.Envelope, error) {
	var raw string
	err := a.db.QueryRowContext(ctx,
		"SELECT snapshot_json FROM archived_matches WHERE match_id = ?", matchID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return snapshot.Envelope{}, storage.ErrNotFound
		}
		return snapshot.Envelope{}, fmt.Errorf("load archived snapshot %s: %w", matchID, err)
	}
	var env snapshot.Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return snapshot.Envelope{}, fmt.Errorf("decode archived snapshot %s: %w", matchID, err)
	}
	return env, nil
}

// Close releases the underlying database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}
