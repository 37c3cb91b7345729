package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/engine"
	"github.com/louisbranch/lastarena/internal/arena/snapshot"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
	"github.com/louisbranch/lastarena/internal/storage/memory"
	"github.com/louisbranch/lastarena/internal/telemetry"
)

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
}

func testIDGenerator() func() (string, error) {
	var n int
	return func() (string, error) {
		n++
		return fmt.Sprintf("id-%04d", n), nil
	}
}

func rosterIDs(n int) []string {
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, fmt.Sprintf("char-%02d", i))
	}
	return ids
}

// recordingArchiver captures archive calls for assertions.
type recordingArchiver struct {
	envelopes []snapshot.Envelope
	winners   []string
}

func (a *recordingArchiver) ArchiveMatch(_ context.Context, env snapshot.Envelope, winnerID string) error {
	a.envelopes = append(a.envelopes, env)
	a.winners = append(a.winners, winnerID)
	return nil
}

func newTestService(opts ...Option) (*Service, *memory.Store, *telemetry.MemorySink) {
	store := memory.NewStore()
	sink := &telemetry.MemorySink{}
	gen := testIDGenerator()
	base := []Option{
		WithClock(testClock()),
		WithIDGenerator(gen),
		WithEmitter(telemetry.NewEmitter(sink)),
		WithEngine(engine.New(engine.WithClock(testClock()), engine.WithIDGenerator(gen))),
	}
	svc := New(store, append(base, opts...)...)
	return svc, store, sink
}

// TestCreateMatchValidatesRoster ensures roster bounds surface as
// validation errors.
func TestCreateMatchValidatesRoster(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.CreateMatch(context.Background(), domain.CreateMatchInput{
		CharacterIDs: rosterIDs(3),
	})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}

// TestMatchLifecycle walks create, start, advance, and inspect.
func TestMatchLifecycle(t *testing.T) {
	svc, _, sink := newTestService()
	ctx := context.Background()

	created, err := svc.CreateMatch(ctx, domain.CreateMatchInput{
		CharacterIDs: rosterIDs(10),
		Settings:     domain.Settings{Seed: "svc-1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Phase != "setup" {
		t.Fatalf("expected setup phase, got %s", created.Phase)
	}

	started, err := svc.StartMatch(ctx, created.MatchID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if started.Phase != "running" || started.CyclePhase != "bloodbath" || started.TurnNumber != 0 {
		t.Fatalf("unexpected start result: %+v", started)
	}

	result, err := svc.AdvanceTurn(ctx, created.MatchID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if result.TurnNumber != 1 {
		t.Fatalf("expected turn 1, got %d", result.TurnNumber)
	}
	if result.Signature == "" {
		t.Fatal("expected a replay signature")
	}

	view, err := svc.GetMatchState(ctx, created.MatchID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if view.Match.TurnNumber != 1 {
		t.Fatalf("view turn %d", view.Match.TurnNumber)
	}
	if len(view.RecentEvents) == 0 {
		t.Fatal("expected recent events in the view")
	}
	if view.GodMode.Phase != domain.GodModePhaseLabel {
		t.Fatalf("expected god_mode label, got %s", view.GodMode.Phase)
	}

	var sawSignature bool
	for _, evt := range sink.Events() {
		if evt.Name == "turn_resolved" && evt.Attrs["replay_signature"] != "" {
			sawSignature = true
		}
	}
	if !sawSignature {
		t.Fatal("expected turn_resolved telemetry with a replay signature")
	}
}

// TestStartMatchTwiceConflicts ensures restart is a state conflict.
func TestStartMatchTwiceConflicts(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateMatch(ctx, domain.CreateMatchInput{CharacterIDs: rosterIDs(10)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.StartMatch(ctx, created.MatchID); err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err = svc.StartMatch(ctx, created.MatchID)
	if !apperrors.IsCode(err, apperrors.CodeMatchStateConflict) {
		t.Fatalf("expected MATCH_STATE_CONFLICT, got %v", err)
	}
}

// TestQueueActions covers request bounds, phase gating, and silent
// truncation at queue capacity.
func TestQueueActions(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateMatch(ctx, domain.CreateMatchInput{CharacterIDs: rosterIDs(10)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	adjustment := domain.ResourceAdjustment{Target: "someone", Delta: -5}

	if _, err := svc.QueueActions(ctx, created.MatchID, nil); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION for empty request, got %v", err)
	}

	nine := make([]domain.Action, 9)
	for i := range nine {
		nine[i] = adjustment
	}
	if _, err := svc.QueueActions(ctx, created.MatchID, nine); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION for oversized request, got %v", err)
	}

	if _, err := svc.QueueActions(ctx, created.MatchID, []domain.Action{adjustment}); !apperrors.IsCode(err, apperrors.CodeMatchStateConflict) {
		t.Fatalf("expected MATCH_STATE_CONFLICT before start, got %v", err)
	}

	if _, err := svc.StartMatch(ctx, created.MatchID); err != nil {
		t.Fatalf("start: %v", err)
	}
	eight := make([]domain.Action, 8)
	for i := range eight {
		eight[i] = adjustment
	}
	result, err := svc.QueueActions(ctx, created.MatchID, eight)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if result.AcceptedCount != domain.MaxPendingActions || result.PendingCount != domain.MaxPendingActions {
		t.Fatalf("expected truncation to %d, got %+v", domain.MaxPendingActions, result)
	}
}

// TestAdvanceTurnMissingMatch maps a store miss to MATCH_NOT_FOUND.
func TestAdvanceTurnMissingMatch(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.AdvanceTurn(context.Background(), "missing")
	if !apperrors.IsCode(err, apperrors.CodeMatchNotFound) {
		t.Fatalf("expected MATCH_NOT_FOUND, got %v", err)
	}
}

// TestSnapshotExportImport round-trips a match through the envelope and
// rejects importing over a live match.
func TestSnapshotExportImport(t *testing.T) {
	svc, store, _ := newTestService()
	ctx := context.Background()
	created, err := svc.CreateMatch(ctx, domain.CreateMatchInput{
		CharacterIDs: rosterIDs(10),
		Settings:     domain.Settings{Seed: "export-1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.StartMatch(ctx, created.MatchID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.AdvanceTurn(ctx, created.MatchID); err != nil {
		t.Fatalf("advance: %v", err)
	}

	env, err := svc.ExportSnapshot(ctx, created.MatchID)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, err := svc.ImportSnapshot(ctx, env); !apperrors.IsCode(err, apperrors.CodeMatchAlreadyExists) {
		t.Fatalf("expected MATCH_ALREADY_EXISTS, got %v", err)
	}

	if err := store.Delete(ctx, created.MatchID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	imported, err := svc.ImportSnapshot(ctx, env)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.MatchID != created.MatchID {
		t.Fatalf("expected id %s, got %s", created.MatchID, imported.MatchID)
	}

	view, err := svc.GetMatchState(ctx, created.MatchID)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if view.Match.TurnNumber != 1 {
		t.Fatalf("restored turn %d", view.Match.TurnNumber)
	}
}

// TestFinishedMatchIsArchived drives a match to completion and expects
// one archive write with the winner.
func TestFinishedMatchIsArchived(t *testing.T) {
	archiver := &recordingArchiver{}
	svc, _, _ := newTestService(WithArchive(archiver))
	ctx := context.Background()
	created, err := svc.CreateMatch(ctx, domain.CreateMatchInput{
		CharacterIDs: rosterIDs(10),
		Settings:     domain.Settings{Seed: "archive-1"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.StartMatch(ctx, created.MatchID); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 500; i++ {
		result, err := svc.AdvanceTurn(ctx, created.MatchID)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if result.Finished {
			if result.WinnerID == "" {
				t.Fatal("expected a winner")
			}
			if len(archiver.winners) != 1 || archiver.winners[0] != result.WinnerID {
				t.Fatalf("expected one archive write for %s, got %v", result.WinnerID, archiver.winners)
			}
			if archiver.envelopes[0].Snapshot.Match.ID != created.MatchID {
				t.Fatalf("archived wrong match: %s", archiver.envelopes[0].Snapshot.Match.ID)
			}
			return
		}
	}
	t.Fatal("match did not finish")
}
