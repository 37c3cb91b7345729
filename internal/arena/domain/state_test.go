package domain

import (
	"fmt"
	"testing"
	"time"

	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

func testRoster(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("char-%d", i)
	}
	return ids
}

func testClock() func() time.Time {
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return fixed }
}

func testIDGenerator() func() (string, error) {
	counter := 0
	return func() (string, error) {
		counter++
		return fmt.Sprintf("id-%d", counter), nil
	}
}

// TestNewMatchStateAssignsRoundRobinLocations ensures starting placement.
func TestNewMatchStateAssignsRoundRobinLocations(t *testing.T) {
	state, err := NewMatchState(CreateMatchInput{CharacterIDs: testRoster(10)}, testClock(), testIDGenerator())
	if err != nil {
		t.Fatalf("new match state: %v", err)
	}

	if state.Match.Phase != MatchPhaseSetup {
		t.Fatalf("expected setup phase, got %s", state.Match.Phase)
	}
	locations := Locations()
	for i, p := range state.Participants {
		want := locations[i%len(locations)]
		if p.Location != want {
			t.Fatalf("participant %d: expected %s, got %s", i, want, p.Location)
		}
		if p.CurrentHealth != MaxHealth || p.Status != ParticipantStatusAlive {
			t.Fatalf("participant %d: expected full health alive, got %d/%s", i, p.CurrentHealth, p.Status)
		}
		if p.MatchID != state.Match.ID {
			t.Fatalf("participant %d: wrong match back-reference %q", i, p.MatchID)
		}
	}
}

// TestNewMatchStateRejectsBadRosters ensures roster bounds and uniqueness.
func TestNewMatchStateRejectsBadRosters(t *testing.T) {
	tests := []struct {
		name   string
		roster []string
	}{
		{"too small", testRoster(9)},
		{"too large", testRoster(49)},
		{"duplicate ids", append(testRoster(9), "char-0")},
		{"empty id", append(testRoster(9), "")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMatchState(CreateMatchInput{CharacterIDs: tc.roster}, testClock(), testIDGenerator())
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Fatalf("expected VALIDATION error, got %v", err)
			}
		})
	}
}

// TestStartTransitionsOnlyFromSetup ensures the lifecycle guard.
func TestStartTransitionsOnlyFromSetup(t *testing.T) {
	state, err := NewMatchState(CreateMatchInput{CharacterIDs: testRoster(10)}, testClock(), testIDGenerator())
	if err != nil {
		t.Fatalf("new match state: %v", err)
	}

	if err := state.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.Match.Phase != MatchPhaseRunning || state.Match.CyclePhase != CyclePhaseBloodbath {
		t.Fatalf("expected running/bloodbath, got %s/%s", state.Match.Phase, state.Match.CyclePhase)
	}
	if state.Match.TurnNumber != 0 {
		t.Fatalf("expected turn 0, got %d", state.Match.TurnNumber)
	}

	err = state.Start()
	if !apperrors.IsCode(err, apperrors.CodeMatchStateConflict) {
		t.Fatalf("expected MATCH_STATE_CONFLICT, got %v", err)
	}
}

// TestQueueActionsTruncatesAtCapacity ensures the bounded queue semantics.
func TestQueueActionsTruncatesAtCapacity(t *testing.T) {
	state, err := NewMatchState(CreateMatchInput{CharacterIDs: testRoster(10)}, testClock(), testIDGenerator())
	if err != nil {
		t.Fatalf("new match state: %v", err)
	}

	actions := make([]Action, 8)
	for i := range actions {
		actions[i] = GlobalEvent{Event: GlobalEventExtremeWeather}
	}

	accepted := state.QueueActions(actions)
	if accepted != MaxPendingActions {
		t.Fatalf("expected %d accepted, got %d", MaxPendingActions, accepted)
	}
	if len(state.PendingActions) != MaxPendingActions {
		t.Fatalf("expected %d pending, got %d", MaxPendingActions, len(state.PendingActions))
	}

	if accepted := state.QueueActions(actions[:1]); accepted != 0 {
		t.Fatalf("expected full queue to accept 0, got %d", accepted)
	}

	drained := state.DrainActions()
	if len(drained) != MaxPendingActions {
		t.Fatalf("expected %d drained, got %d", MaxPendingActions, len(drained))
	}
	if len(state.PendingActions) != 0 {
		t.Fatal("expected empty queue after drain")
	}
}

// TestCloneIsolatesMutableState ensures turns can be built on a copy.
func TestCloneIsolatesMutableState(t *testing.T) {
	state, err := NewMatchState(CreateMatchInput{CharacterIDs: testRoster(10)}, testClock(), testIDGenerator())
	if err != nil {
		t.Fatalf("new match state: %v", err)
	}
	state.Relationships.SetMutual("a", "b", RelationEnemy)
	state.ActiveFires[LocationForest] = 2
	state.Events.Append(EventRecord{TemplateID: "tpl"})

	clone := state.Clone()
	clone.Participants[0].ApplyDamage(40)
	clone.Relationships.SetMutual("c", "d", RelationEnemy)
	clone.ActiveFires[LocationForest] = 1
	clone.Events.Append(EventRecord{TemplateID: "tpl-2"})

	if state.Participants[0].CurrentHealth != MaxHealth {
		t.Fatal("expected original participant untouched")
	}
	if state.Relationships.AreEnemies("c", "d") {
		t.Fatal("expected original relationships untouched")
	}
	if state.ActiveFires[LocationForest] != 2 {
		t.Fatal("expected original fires untouched")
	}
	if len(state.Events.Recent()) != 1 {
		t.Fatal("expected original event log untouched")
	}
}

// TestLastSurvivor ensures the winner helper only fires at exactly one.
func TestLastSurvivor(t *testing.T) {
	state, err := NewMatchState(CreateMatchInput{CharacterIDs: testRoster(10)}, testClock(), testIDGenerator())
	if err != nil {
		t.Fatalf("new match state: %v", err)
	}
	if state.LastSurvivor() != nil {
		t.Fatal("expected no survivor with full roster")
	}
	for i := 1; i < len(state.Participants); i++ {
		state.Participants[i].Eliminate()
	}
	survivor := state.LastSurvivor()
	if survivor == nil || survivor.ID != state.Participants[0].ID {
		t.Fatal("expected first participant as survivor")
	}
}
