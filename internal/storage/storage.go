// Package storage defines the persistence interfaces for the arena
// service.
//
// Live match state is process-local and never durable by default: the
// engine's statelessness across restarts is a design decision, not a gap.
// Finished matches may additionally be written to an optional archive.
package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// MatchStore holds live match state keyed by match id. Implementations
// must return deep copies so callers can mutate freely and commit via Put.
type MatchStore interface {
	Put(ctx context.Context, state domain.MatchState) error
	Get(ctx context.Context, matchID string) (domain.MatchState, error)
	Delete(ctx context.Context, matchID string) error
	List(ctx context.Context) ([]domain.MatchState, error)
}

// MatchArchiver records finished matches for after-the-fact inspection.
// Archiving is best-effort and strictly additive; it never feeds back
// into live match resolution.
type MatchArchiver interface {
	ArchiveMatch(ctx context.Context, env snapshot.Envelope, winnerID string) error
}
