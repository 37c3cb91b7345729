// Package memory implements the live match store as an in-process map.
// It is the default and only live store: matches do not survive a
// process restart by design.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/storage"
)

// Store is a mutex-guarded map of match state. Every Put and Get deep
// copies, so two callers never share mutable state.
type Store struct {
	mu      sync.RWMutex
	matches map[string]domain.MatchState
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{matches: make(map[string]domain.MatchState)}
}

// Put stores a deep copy of the state under its match id.
func (s *Store) Put(_ context.Context, state domain.MatchState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[state.Match.ID] = state.Clone()
	return nil
}

// Get returns a deep copy of the stored state.
func (s *Store) Get(_ context.Context, matchID string) (domain.MatchState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.matches[matchID]
	if !ok {
		return domain.MatchState{}, storage.ErrNotFound
	}
	return state.Clone(), nil
}

// Delete removes a match. Deleting an absent match is not an error.
func (s *Store) Delete(_ context.Context, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, matchID)
	return nil
}

// List returns deep copies of every stored match, ordered by creation
// time and then id so output is stable.
func (s *Store) List(_ context.Context) ([]domain.MatchState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MatchState, 0, len(s.matches))
	for _, state := range s.matches {
		out = append(out, state.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Match.CreatedAt.Equal(out[j].Match.CreatedAt) {
			return out[i].Match.CreatedAt.Before(out[j].Match.CreatedAt)
		}
		return out[i].Match.ID < out[j].Match.ID
	})
	return out, nil
}

// Reset drops every match. Intended for tests.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = make(map[string]domain.MatchState)
}
