// Package service exposes the match lifecycle operations: create, start,
// queue god-mode actions, advance, inspect, and snapshot export/import.
//
// The service owns the commit discipline: every operation loads a copy of
// match state from the store, mutates it locally, and writes it back only
// on success, so a failed turn never leaves a half-mutated match behind.
package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/engine"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
	"github.com/louisbranch/lastarena/internal/id"
	"github.com/louisbranch/lastarena/internal/storage"
	"github.com/louisbranch/lastarena/internal/telemetry"
)

// MaxActionsPerRequest bounds one queue request. The per-match pending
// queue is bounded separately by domain.MaxPendingActions.
const MaxActionsPerRequest = 8

// Service implements the arena operations against a live match store.
type Service struct {
	store       storage.MatchStore
	engine      *engine.Engine
	emitter     *telemetry.Emitter
	archive     storage.MatchArchiver
	tracer      trace.Tracer
	now         func() time.Time
	idGenerator func() (string, error)
}

// Option configures a Service.
type Option func(*Service)

// WithEmitter attaches a telemetry emitter.
func WithEmitter(emitter *telemetry.Emitter) Option {
	return func(s *Service) { s.emitter = emitter }
}

// WithArchive attaches a finished-match archive.
func WithArchive(archive storage.MatchArchiver) Option {
	return func(s *Service) { s.archive = archive }
}

// WithEngine overrides the turn engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) { s.engine = e }
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides match and participant id generation, for tests.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.idGenerator = gen }
}

// New creates a Service backed by the given live store.
func New(store storage.MatchStore, opts ...Option) *Service {
	s := &Service{
		store:       store,
		engine:      engine.New(),
		tracer:      otel.Tracer("lastarena/arena"),
		now:         time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMatchResult reports a freshly created match.
type CreateMatchResult struct {
	MatchID string
	Phase   string
}

// CreateMatch validates the roster and settings and stores a new match in
// the setup phase.
func (s *Service) CreateMatch(ctx context.Context, input domain.CreateMatchInput) (CreateMatchResult, error) {
	state, err := domain.NewMatchState(input, s.now, s.idGenerator)
	if err != nil {
		return CreateMatchResult{}, err
	}
	if err := s.store.Put(ctx, state); err != nil {
		return CreateMatchResult{}, apperrors.Wrap(apperrors.CodeInternal, "store match", err)
	}
	s.emit(ctx, telemetry.Event{
		Name:    "match_created",
		MatchID: state.Match.ID,
		Attrs: map[string]string{
			"roster_size": strconv.Itoa(len(state.Participants)),
			"seed":        state.Match.Seed,
		},
	})
	return CreateMatchResult{MatchID: state.Match.ID, Phase: state.Match.Phase.String()}, nil
}

// StartMatchResult reports the running match after start.
type StartMatchResult struct {
	Phase      string
	CyclePhase string
	TurnNumber int
}

// StartMatch transitions a setup-phase match to running.
func (s *Service) StartMatch(ctx context.Context, matchID string) (StartMatchResult, error) {
	state, err := s.getState(ctx, matchID)
	if err != nil {
		return StartMatchResult{}, err
	}
	if err := state.Start(); err != nil {
		return StartMatchResult{}, err
	}
	if err := s.store.Put(ctx, state); err != nil {
		return StartMatchResult{}, apperrors.Wrap(apperrors.CodeInternal, "store match", err)
	}
	s.emit(ctx, telemetry.Event{Name: "match_started", MatchID: matchID})
	return StartMatchResult{
		Phase:      state.Match.Phase.String(),
		CyclePhase: state.Match.CyclePhase.String(),
		TurnNumber: state.Match.TurnNumber,
	}, nil
}

// QueueActionsResult reports how much of a queue request was accepted.
type QueueActionsResult struct {
	AcceptedCount int
	PendingCount  int
}

// QueueActions appends god-mode actions for the next turn. Requests beyond
// the remaining queue capacity are truncated silently, never rejected.
func (s *Service) QueueActions(ctx context.Context, matchID string, actions []domain.Action) (QueueActionsResult, error) {
	if len(actions) == 0 {
		return QueueActionsResult{}, apperrors.New(apperrors.CodeValidation, "at least one action is required")
	}
	if len(actions) > MaxActionsPerRequest {
		return QueueActionsResult{}, apperrors.Newf(apperrors.CodeValidation,
			"at most %d actions per request, got %d", MaxActionsPerRequest, len(actions))
	}
	for _, action := range actions {
		if err := domain.ValidateAction(action); err != nil {
			return QueueActionsResult{}, err
		}
	}

	state, err := s.getState(ctx, matchID)
	if err != nil {
		return QueueActionsResult{}, err
	}
	if state.Match.Phase != domain.MatchPhaseRunning {
		return QueueActionsResult{}, apperrors.Newf(apperrors.CodeMatchStateConflict,
			"cannot queue actions in phase %s", state.Match.Phase)
	}

	accepted := state.QueueActions(actions)
	if err := s.store.Put(ctx, state); err != nil {
		return QueueActionsResult{}, apperrors.Wrap(apperrors.CodeInternal, "store match", err)
	}
	s.emit(ctx, telemetry.Event{
		Name:    "actions_queued",
		MatchID: matchID,
		Attrs: map[string]string{
			"accepted": strconv.Itoa(accepted),
			"pending":  strconv.Itoa(len(state.PendingActions)),
		},
	})
	return QueueActionsResult{AcceptedCount: accepted, PendingCount: len(state.PendingActions)}, nil
}

// AdvanceTurn resolves exactly one turn and commits the resulting state.
func (s *Service) AdvanceTurn(ctx context.Context, matchID string) (engine.TurnResult, error) {
	ctx, span := s.tracer.Start(ctx, "arena.advance_turn",
		trace.WithAttributes(attribute.String("match.id", matchID)))
	defer span.End()

	state, err := s.getState(ctx, matchID)
	if err != nil {
		return engine.TurnResult{}, err
	}

	result, err := s.engine.AdvanceTurn(&state)
	if err != nil {
		return engine.TurnResult{}, err
	}
	if err := s.store.Put(ctx, state); err != nil {
		return engine.TurnResult{}, apperrors.Wrap(apperrors.CodeInternal, "store match", err)
	}

	span.SetAttributes(
		attribute.Int("match.turn", result.TurnNumber),
		attribute.String("match.cycle_phase", result.CyclePhase.String()),
		attribute.String("match.replay_signature", result.Signature),
	)
	s.emit(ctx, telemetry.Event{
		Name:    "turn_resolved",
		MatchID: matchID,
		Attrs: map[string]string{
			"turn":             strconv.Itoa(result.TurnNumber),
			"cycle_phase":      result.CyclePhase.String(),
			"template":         result.Event.TemplateID,
			"survivors":        strconv.Itoa(result.SurvivorsCount),
			"replay_signature": result.Signature,
		},
	})

	if result.Finished {
		s.emit(ctx, telemetry.Event{
			Name:    "match_finished",
			MatchID: matchID,
			Attrs:   map[string]string{"winner": result.WinnerID},
		})
		s.archiveFinished(ctx, state, result.WinnerID)
	}
	return result, nil
}

// archiveFinished best-effort records a finished match. Archive failures
// never fail the turn that finished the match.
func (s *Service) archiveFinished(ctx context.Context, state domain.MatchState, winnerID string) {
	if s.archive == nil {
		return
	}
	env, err := snapshot.Capture(state)
	if err == nil {
		err = s.archive.ArchiveMatch(ctx, env, winnerID)
	}
	if err != nil {
		s.emit(ctx, telemetry.Event{
			Severity: telemetry.SeverityWarn,
			Name:     "archive_failed",
			MatchID:  state.Match.ID,
			Attrs:    map[string]string{"error": err.Error()},
		})
	}
}

// GetMatchState returns the full wire view of a match.
func (s *Service) GetMatchState(ctx context.Context, matchID string) (MatchView, error) {
	state, err := s.getState(ctx, matchID)
	if err != nil {
		return MatchView{}, err
	}
	return viewFromState(state)
}

// ExportSnapshot captures a checksummed envelope of the match.
func (s *Service) ExportSnapshot(ctx context.Context, matchID string) (snapshot.Envelope, error) {
	state, err := s.getState(ctx, matchID)
	if err != nil {
		return snapshot.Envelope{}, err
	}
	env, err := snapshot.Capture(state)
	if err != nil {
		return snapshot.Envelope{}, apperrors.Wrap(apperrors.CodeInternal, "capture snapshot", err)
	}
	return env, nil
}

// ImportSnapshot verifies an envelope and installs the restored match in
// the live store. Importing over an existing match is a conflict.
func (s *Service) ImportSnapshot(ctx context.Context, env snapshot.Envelope) (CreateMatchResult, error) {
	state, err := snapshot.Restore(env)
	if err != nil {
		return CreateMatchResult{}, err
	}
	if _, err := s.store.Get(ctx, state.Match.ID); err == nil {
		return CreateMatchResult{}, apperrors.Newf(apperrors.CodeMatchAlreadyExists,
			"match %s already exists in the live store", state.Match.ID)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return CreateMatchResult{}, apperrors.Wrap(apperrors.CodeInternal, "check existing match", err)
	}
	if err := s.store.Put(ctx, state); err != nil {
		return CreateMatchResult{}, apperrors.Wrap(apperrors.CodeInternal, "store match", err)
	}
	s.emit(ctx, telemetry.Event{Name: "snapshot_imported", MatchID: state.Match.ID})
	return CreateMatchResult{MatchID: state.Match.ID, Phase: state.Match.Phase.String()}, nil
}

// getState loads a match, mapping a store miss to MATCH_NOT_FOUND.
func (s *Service) getState(ctx context.Context, matchID string) (domain.MatchState, error) {
	state, err := s.store.Get(ctx, matchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeMatchNotFound, "match %s not found", matchID)
		}
		return domain.MatchState{}, apperrors.Wrap(apperrors.CodeInternal, "load match", err)
	}
	return state, nil
}

func (s *Service) emit(ctx context.Context, evt telemetry.Event) {
	_ = s.emitter.Emit(ctx, evt)
}
