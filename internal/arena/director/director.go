// Package director drives the phase and tension progression of a match.
//
// The director is a pure state machine: it never draws randomness. Phases
// run bloodbath at turn zero, alternate day and night by turn parity, and
// enter the terminal finale once two or fewer participants remain. Tension
// falls after eliminations and rises during calm turns, with extra
// pressure applied near the endgame.
package director

import "github.com/louisbranch/lastarena/internal/arena/domain"

// Tension tuning constants.
const (
	// tensionRelease drops tension after a turn with an elimination.
	tensionRelease = 8.0
	// tensionRise grows tension after a calm turn.
	tensionRise = 7.0
	// finalePressure is added while six or fewer remain.
	finalePressure = 5.0
	// finaleThreshold is the alive count that locks the finale phase.
	finaleThreshold = 2
	// pressureThreshold is the alive count that triggers extra tension.
	pressureThreshold = 6
)

// State is the director's slice of match state.
type State struct {
	TurnNumber   int
	CyclePhase   domain.CyclePhase
	TensionLevel float64
}

// Advance computes the next director state after a resolved turn.
// TurnNumber always increments; the cycle phase is finale once the alive
// count reaches the threshold (and never reverts), otherwise day and
// night alternate by turn parity.
func Advance(state State, hadElimination bool, nextAliveCount int) State {
	next := State{TurnNumber: state.TurnNumber + 1}

	switch {
	case nextAliveCount <= finaleThreshold:
		next.CyclePhase = domain.CyclePhaseFinale
	case next.TurnNumber%2 == 0:
		next.CyclePhase = domain.CyclePhaseDay
	default:
		next.CyclePhase = domain.CyclePhaseNight
	}

	tension := state.TensionLevel
	if hadElimination {
		tension -= tensionRelease
	} else {
		tension += tensionRise
	}
	if nextAliveCount <= pressureThreshold {
		tension += finalePressure
	}
	next.TensionLevel = clamp(tension, 0, 100)

	return next
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
