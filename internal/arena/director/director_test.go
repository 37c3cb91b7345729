package director

import (
	"testing"

	"github.com/louisbranch/lastarena/internal/arena/domain"
)

// TestAdvanceAlternatesDayNightByParity ensures mid-game phase rhythm.
func TestAdvanceAlternatesDayNightByParity(t *testing.T) {
	state := State{TurnNumber: 0, CyclePhase: domain.CyclePhaseBloodbath}

	state = Advance(state, true, 20)
	if state.TurnNumber != 1 {
		t.Fatalf("expected turn 1, got %d", state.TurnNumber)
	}
	if state.CyclePhase != domain.CyclePhaseNight {
		t.Fatalf("expected night on odd turn, got %s", state.CyclePhase)
	}

	state = Advance(state, false, 20)
	if state.CyclePhase != domain.CyclePhaseDay {
		t.Fatalf("expected day on even turn, got %s", state.CyclePhase)
	}
}

// TestAdvanceEntersFinaleAtThreshold ensures finale entry at two alive.
func TestAdvanceEntersFinaleAtThreshold(t *testing.T) {
	state := State{TurnNumber: 7, CyclePhase: domain.CyclePhaseNight}
	state = Advance(state, true, 2)
	if state.CyclePhase != domain.CyclePhaseFinale {
		t.Fatalf("expected finale, got %s", state.CyclePhase)
	}

	// The finale never reverts while the threshold holds.
	state = Advance(state, false, 2)
	if state.CyclePhase != domain.CyclePhaseFinale {
		t.Fatalf("expected finale to persist, got %s", state.CyclePhase)
	}
}

// TestAdvanceTensionMoves ensures release on eliminations, rise otherwise.
func TestAdvanceTensionMoves(t *testing.T) {
	calm := Advance(State{TensionLevel: 50}, false, 20)
	if calm.TensionLevel != 57 {
		t.Fatalf("expected 57 after calm turn, got %v", calm.TensionLevel)
	}

	release := Advance(State{TensionLevel: 50}, true, 20)
	if release.TensionLevel != 42 {
		t.Fatalf("expected 42 after elimination, got %v", release.TensionLevel)
	}

	pressured := Advance(State{TensionLevel: 50}, false, 6)
	if pressured.TensionLevel != 62 {
		t.Fatalf("expected 62 with finale pressure, got %v", pressured.TensionLevel)
	}
}

// TestAdvanceTensionClamps ensures bounds hold through streaks.
func TestAdvanceTensionClamps(t *testing.T) {
	state := State{TensionLevel: 0}
	for i := 0; i < 30; i++ {
		state = Advance(state, true, 20)
		if state.TensionLevel < 0 || state.TensionLevel > 100 {
			t.Fatalf("tension out of bounds: %v", state.TensionLevel)
		}
	}
	if state.TensionLevel != 0 {
		t.Fatalf("expected floor at 0, got %v", state.TensionLevel)
	}

	state = State{TensionLevel: 100}
	for i := 0; i < 30; i++ {
		state = Advance(state, false, 4)
		if state.TensionLevel < 0 || state.TensionLevel > 100 {
			t.Fatalf("tension out of bounds: %v", state.TensionLevel)
		}
	}
	if state.TensionLevel != 100 {
		t.Fatalf("expected ceiling at 100, got %v", state.TensionLevel)
	}
}
