package engine

import (
	"fmt"

	"github.com/louisbranch/lastarena/internal/arena/catalog"
	"github.com/louisbranch/lastarena/internal/arena/domain"
)

// pedestalExplosionChance is the odds that leaving the pedestal early
// triggers the mines.
const pedestalExplosionChance = 0.08

// cornucopiaRefillFloor is the minimum elimination chance on a refill
// turn: restocked supplies draw everyone into the open.
const cornucopiaRefillFloor = 0.55

// SpecialOutcome is the special-event resolver's verdict for one turn.
type SpecialOutcome struct {
	// Handled reports whether the template is a recognized special event.
	Handled bool
	// AllowDefaultElimination keeps the generic elimination roll in play.
	// When false the outcome's EliminatedIDs are final.
	AllowDefaultElimination bool
	// EliminatedIDs are eliminations the special event itself decided.
	EliminatedIDs []string
	// EliminationFloor raises the turn's minimum elimination chance.
	EliminationFloor float64
	// Narrative overrides the default event narrative when non-empty.
	Narrative string
}

// ResolveSpecial checks whether the template overrides default elimination
// logic. It must run before the generic elimination roll so its verdict
// can short-circuit or bias it.
func ResolveSpecial(phase domain.CyclePhase, templateID string, selected []*domain.Participant, r Rand) SpecialOutcome {
	switch templateID {
	case catalog.TemplateEarlyPedestalEscape:
		if phase != domain.CyclePhaseBloodbath || len(selected) == 0 {
			return SpecialOutcome{AllowDefaultElimination: true}
		}
		runner := selected[0]
		outcome := SpecialOutcome{Handled: true}
		if r.Float64() < pedestalExplosionChance {
			outcome.EliminatedIDs = []string{runner.ID}
			outcome.Narrative = fmt.Sprintf("%s steps off the pedestal before the gong and the mines detonate.", runner.DisplayName)
		} else {
			outcome.Narrative = fmt.Sprintf("%s steps off the pedestal early and sprints clear before the mines arm.", runner.DisplayName)
		}
		return outcome

	case catalog.TemplateCornucopiaRefill:
		return SpecialOutcome{
			Handled:                 true,
			AllowDefaultElimination: true,
			EliminationFloor:        cornucopiaRefillFloor,
		}

	case catalog.TemplateArenaEscapeAttempt:
		if len(selected) == 0 {
			return SpecialOutcome{AllowDefaultElimination: true}
		}
		runner := selected[0]
		return SpecialOutcome{
			Handled:       true,
			EliminatedIDs: []string{runner.ID},
			Narrative:     fmt.Sprintf("%s makes a break for the arena wall and does not come back.", runner.DisplayName),
		}

	default:
		return SpecialOutcome{AllowDefaultElimination: true}
	}
}
