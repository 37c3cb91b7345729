package snapshot

import (
	"fmt"
	"testing"
	"time"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

func snapshotFixture(t *testing.T) domain.MatchState {
	t.Helper()
	characterIDs := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		characterIDs = append(characterIDs, fmt.Sprintf("char-%02d", i))
	}
	var n int
	state, err := domain.NewMatchState(domain.CreateMatchInput{
		CharacterIDs: characterIDs,
		Settings:     domain.Settings{Seed: "snap-1"},
	}, func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}, func() (string, error) {
		n++
		return fmt.Sprintf("id-%04d", n), nil
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if err := state.Start(); err != nil {
		t.Fatalf("start match: %v", err)
	}
	state.Events.Append(domain.EventRecord{
		ID:         "evt-1",
		MatchID:    state.Match.ID,
		TemplateID: "ambush",
		TurnNumber: 1,
		Type:       domain.EventTypeCombat,
		Source:     domain.EventSourceNatural,
		Phase:      domain.CyclePhaseBloodbath,
		CreatedAt:  time.Date(2026, 3, 14, 12, 1, 0, 0, time.UTC),
	})
	return state
}

// TestCaptureRestoreRoundTrip ensures an exported match resumes intact.
func TestCaptureRestoreRoundTrip(t *testing.T) {
	state := snapshotFixture(t)

	env, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if env.SnapshotVersion != Version {
		t.Fatalf("expected version %d, got %d", Version, env.SnapshotVersion)
	}
	if env.Checksum == "" {
		t.Fatal("expected a checksum")
	}

	restored, err := Restore(env)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if restored.Match.ID != state.Match.ID || restored.Match.Seed != state.Match.Seed {
		t.Fatalf("match identity lost: %+v", restored.Match)
	}
	if restored.Match.Phase != domain.MatchPhaseRunning || restored.Match.CyclePhase != domain.CyclePhaseBloodbath {
		t.Fatalf("phase lost: %s/%s", restored.Match.Phase, restored.Match.CyclePhase)
	}
	if len(restored.Participants) != len(state.Participants) {
		t.Fatalf("expected %d participants, got %d", len(state.Participants), len(restored.Participants))
	}
	if restored.Participants[0].Location != state.Participants[0].Location {
		t.Fatalf("location lost: %s", restored.Participants[0].Location)
	}
	if len(restored.Events.Records) != 1 || restored.Events.Records[0].TemplateID != "ambush" {
		t.Fatalf("events lost: %+v", restored.Events.Records)
	}
}

// TestCaptureChecksumIsStable ensures repeated captures of the same state
// hash identically and that a changed payload hashes differently.
func TestCaptureChecksumIsStable(t *testing.T) {
	state := snapshotFixture(t)
	first, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	second, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if first.Checksum != second.Checksum {
		t.Fatal("checksum not stable across captures")
	}

	state.Participants[0].CurrentHealth = 42
	changed, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if changed.Checksum == first.Checksum {
		t.Fatal("checksum did not change with the payload")
	}
}

// TestRestoreRejectsVersionMismatch ensures version is checked before the
// checksum.
func TestRestoreRejectsVersionMismatch(t *testing.T) {
	state := snapshotFixture(t)
	env, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	env.SnapshotVersion = Version + 1
	env.Checksum = "bogus"

	_, err = Restore(env)
	if !apperrors.IsCode(err, apperrors.CodeSnapshotVersionMismatch) {
		t.Fatalf("expected SNAPSHOT_VERSION_MISMATCH, got %v", err)
	}
}

// TestRestoreRejectsTamperedPayload ensures a mutated payload fails the
// checksum.
func TestRestoreRejectsTamperedPayload(t *testing.T) {
	state := snapshotFixture(t)
	env, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	env.Snapshot.Match.TurnNumber = 99

	_, err = Restore(env)
	if !apperrors.IsCode(err, apperrors.CodeSnapshotChecksumMismatch) {
		t.Fatalf("expected SNAPSHOT_CHECKSUM_MISMATCH, got %v", err)
	}
}

// TestRestoreRejectsUnknownEnums ensures bad wire values surface as
// validation errors rather than corrupt state.
func TestRestoreRejectsUnknownEnums(t *testing.T) {
	state := snapshotFixture(t)
	env, err := Capture(state)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	env.Snapshot.Participants[0].Status = "zombie"
	sum, err := checksum(env.Snapshot)
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	env.Checksum = sum

	_, err = Restore(env)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected VALIDATION, got %v", err)
	}
}
