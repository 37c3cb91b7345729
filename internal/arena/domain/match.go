package domain

import "time"

// RulesetVersion identifies the simulation rules baked into this build.
// It participates in replay signatures and snapshot envelopes.
const RulesetVersion = "1.0.0"

// MatchPhase describes the lifecycle state of a match.
type MatchPhase int

const (
	// MatchPhaseUnspecified represents an invalid match phase value.
	MatchPhaseUnspecified MatchPhase = iota
	// MatchPhaseSetup indicates the match has been created but not started.
	MatchPhaseSetup
	// MatchPhaseRunning indicates turns are being resolved.
	MatchPhaseRunning
	// MatchPhaseFinished indicates the match has resolved to a winner.
	MatchPhaseFinished
)

// String returns the wire representation of the match phase.
func (p MatchPhase) String() string {
	switch p {
	case MatchPhaseSetup:
		return "setup"
	case MatchPhaseRunning:
		return "running"
	case MatchPhaseFinished:
		return "finished"
	default:
		return "unspecified"
	}
}

// IsValid reports whether the match phase is a usable value.
func (p MatchPhase) IsValid() bool {
	switch p {
	case MatchPhaseSetup, MatchPhaseRunning, MatchPhaseFinished:
		return true
	default:
		return false
	}
}

// CyclePhase describes the narrative stage of a running match.
type CyclePhase int

const (
	// CyclePhaseUnspecified represents an invalid cycle phase value.
	CyclePhaseUnspecified CyclePhase = iota
	// CyclePhaseBloodbath is the opening phase at turn zero.
	CyclePhaseBloodbath
	// CyclePhaseDay is the daytime phase.
	CyclePhaseDay
	// CyclePhaseNight is the nighttime phase.
	CyclePhaseNight
	// CyclePhaseFinale is the terminal narrative phase once two or fewer
	// participants remain. A match never leaves the finale.
	CyclePhaseFinale
)

// GodModePhaseLabel is the operator-visible pseudo-phase reported for the
// god-mode control channel. It never appears as a match cycle phase.
const GodModePhaseLabel = "god_mode"

// String returns the wire representation of the cycle phase.
func (p CyclePhase) String() string {
	switch p {
	case CyclePhaseBloodbath:
		return "bloodbath"
	case CyclePhaseDay:
		return "day"
	case CyclePhaseNight:
		return "night"
	case CyclePhaseFinale:
		return "finale"
	default:
		return "unspecified"
	}
}

// IsValid reports whether the cycle phase is a usable value.
func (p CyclePhase) IsValid() bool {
	switch p {
	case CyclePhaseBloodbath, CyclePhaseDay, CyclePhaseNight, CyclePhaseFinale:
		return true
	default:
		return false
	}
}

// ParseMatchPhase maps a wire string to a MatchPhase.
func ParseMatchPhase(s string) (MatchPhase, bool) {
	for _, p := range []MatchPhase{MatchPhaseSetup, MatchPhaseRunning, MatchPhaseFinished} {
		if p.String() == s {
			return p, true
		}
	}
	return MatchPhaseUnspecified, false
}

// ParseCyclePhase maps a wire string to a CyclePhase.
func ParseCyclePhase(s string) (CyclePhase, bool) {
	for _, p := range []CyclePhase{CyclePhaseBloodbath, CyclePhaseDay, CyclePhaseNight, CyclePhaseFinale} {
		if p.String() == s {
			return p, true
		}
	}
	return CyclePhaseUnspecified, false
}

// Match represents the top-level record of one tournament.
type Match struct {
	ID             string
	Seed           string
	RulesetVersion string
	Phase          MatchPhase
	CyclePhase     CyclePhase
	TurnNumber     int
	TensionLevel   float64
	CreatedAt      time.Time
	EndedAt        *time.Time
}
