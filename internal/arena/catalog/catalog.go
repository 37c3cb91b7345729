// Package catalog defines the event-template catalog and the weighted
// template selector used by the turn pipeline.
package catalog

import "github.com/louisbranch/lastarena/internal/arena/domain"

// Special template ids recognized by the special-event resolver.
const (
	TemplateEarlyPedestalEscape = "early-pedestal-escape"
	TemplateCornucopiaRefill    = "cornucopia-refill"
	TemplateArenaEscapeAttempt  = "arena-escape-attempt"
)

// Template describes one event template. Templates are static data; some
// are only eligible past a turn or below an alive-count threshold.
type Template struct {
	ID         string
	Type       domain.EventType
	BaseWeight float64
	Phases     []domain.CyclePhase
	// MinTurn excludes the template before the given turn number.
	MinTurn int
	// MaxAlive excludes the template while more participants remain.
	// Zero means no bound.
	MaxAlive int
}

// EligibleFor reports whether the template can fire in the given phase.
func (t Template) EligibleFor(phase domain.CyclePhase) bool {
	for _, p := range t.Phases {
		if p == phase {
			return true
		}
	}
	return false
}

// allPhases lists every cycle phase for templates without phase limits.
var allPhases = []domain.CyclePhase{
	domain.CyclePhaseBloodbath,
	domain.CyclePhaseDay,
	domain.CyclePhaseNight,
	domain.CyclePhaseFinale,
}

// dayNight limits a template to the alternating mid-game phases.
var dayNight = []domain.CyclePhase{domain.CyclePhaseDay, domain.CyclePhaseNight}

// Builtin returns the full static template catalog.
func Builtin() []Template {
	return []Template{
		// Bloodbath openers.
		{ID: "cornucopia-scramble", Type: domain.EventTypeCombat, BaseWeight: 10, Phases: []domain.CyclePhase{domain.CyclePhaseBloodbath}},
		{ID: "supply-grab", Type: domain.EventTypeResource, BaseWeight: 8, Phases: []domain.CyclePhase{domain.CyclePhaseBloodbath}},
		{ID: TemplateEarlyPedestalEscape, Type: domain.EventTypeSurprise, BaseWeight: 2, Phases: []domain.CyclePhase{domain.CyclePhaseBloodbath}},

		// General combat and treachery.
		{ID: "ambush", Type: domain.EventTypeCombat, BaseWeight: 9, Phases: allPhases},
		{ID: "duel-at-the-river", Type: domain.EventTypeCombat, BaseWeight: 7, Phases: dayNight},
		{ID: "night-raid", Type: domain.EventTypeCombat, BaseWeight: 8, Phases: []domain.CyclePhase{domain.CyclePhaseNight}},
		{ID: "broken-alliance", Type: domain.EventTypeBetrayal, BaseWeight: 6, Phases: dayNight, MinTurn: 3},
		{ID: "poisoned-gift", Type: domain.EventTypeBetrayal, BaseWeight: 4, Phases: dayNight, MinTurn: 5},

		// Alliances and resources.
		{ID: "uneasy-truce", Type: domain.EventTypeAlliance, BaseWeight: 6, Phases: dayNight},
		{ID: "shared-campfire", Type: domain.EventTypeAlliance, BaseWeight: 5, Phases: []domain.CyclePhase{domain.CyclePhaseNight}},
		{ID: "forage-for-supplies", Type: domain.EventTypeResource, BaseWeight: 7, Phases: dayNight},
		{ID: "hidden-cache", Type: domain.EventTypeResource, BaseWeight: 4, Phases: dayNight},
		{ID: TemplateCornucopiaRefill, Type: domain.EventTypeResource, BaseWeight: 3, Phases: dayNight, MinTurn: 6},

		// Hazards.
		{ID: "flash-flood", Type: domain.EventTypeHazard, BaseWeight: 5, Phases: dayNight},
		{ID: "rockslide", Type: domain.EventTypeHazard, BaseWeight: 4, Phases: allPhases},
		{ID: "toxic-spores", Type: domain.EventTypeHazard, BaseWeight: 3, Phases: []domain.CyclePhase{domain.CyclePhaseNight}},

		// Surprises.
		{ID: "sponsor-drop", Type: domain.EventTypeSurprise, BaseWeight: 4, Phases: dayNight},
		{ID: TemplateArenaEscapeAttempt, Type: domain.EventTypeSurprise, BaseWeight: 2, Phases: dayNight, MinTurn: 8},

		// Endgame pressure.
		{ID: "final-stand", Type: domain.EventTypeCombat, BaseWeight: 10, Phases: []domain.CyclePhase{domain.CyclePhaseFinale}},
		{ID: "last-alliance-shatters", Type: domain.EventTypeBetrayal, BaseWeight: 6, Phases: []domain.CyclePhase{domain.CyclePhaseFinale}},
		{ID: "closing-ring", Type: domain.EventTypeHazard, BaseWeight: 5, Phases: []domain.CyclePhase{domain.CyclePhaseFinale}},
		{ID: "hunt-the-stragglers", Type: domain.EventTypeCombat, BaseWeight: 5, Phases: dayNight, MaxAlive: 6},
	}
}

// Contextual filters the catalog by turn number and alive count.
func Contextual(templates []Template, turnNumber, aliveCount int) []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		if t.MinTurn > 0 && turnNumber < t.MinTurn {
			continue
		}
		if t.MaxAlive > 0 && aliveCount > t.MaxAlive {
			continue
		}
		out = append(out, t)
	}
	return out
}
