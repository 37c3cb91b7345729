package domain

import apperrors "github.com/louisbranch/lastarena/internal/errors"

// MaxPendingActions bounds the god-mode action queue. Queue requests
// beyond the remaining capacity are truncated, never rejected.
const MaxPendingActions = 6

// ActionKind discriminates the god-mode action union.
type ActionKind string

const (
	ActionKindGlobalEvent        ActionKind = "global_event"
	ActionKindLocalizedFire      ActionKind = "localized_fire"
	ActionKindForceEncounter     ActionKind = "force_encounter"
	ActionKindSeparateTributes   ActionKind = "separate_tributes"
	ActionKindResourceAdjustment ActionKind = "resource_adjustment"
	ActionKindReviveTribute      ActionKind = "revive_tribute"
	ActionKindSetRelationship    ActionKind = "set_relationship"
)

// Action is the god-mode action union. Implementations are the only
// permitted variants; dispatch is an exhaustive type switch.
type Action interface {
	Kind() ActionKind
}

// GlobalEventKind names the arena-wide god-mode events.
type GlobalEventKind string

const (
	GlobalEventExtremeWeather     GlobalEventKind = "extreme_weather"
	GlobalEventToxicFog           GlobalEventKind = "toxic_fog"
	GlobalEventCornucopiaResupply GlobalEventKind = "cornucopia_resupply"
)

// IsValid reports whether the global event kind is supported.
func (k GlobalEventKind) IsValid() bool {
	switch k {
	case GlobalEventExtremeWeather, GlobalEventToxicFog, GlobalEventCornucopiaResupply:
		return true
	default:
		return false
	}
}

// GlobalEvent applies an arena-wide effect to every in-match participant.
type GlobalEvent struct {
	Event GlobalEventKind
}

// Kind implements Action.
func (GlobalEvent) Kind() ActionKind { return ActionKindGlobalEvent }

// LocalizedFire ignites a location for a number of turns and immediately
// resolves one round of fire outcomes for participants there.
type LocalizedFire struct {
	Location         Location
	PersistenceTurns int
}

// Kind implements Action.
func (LocalizedFire) Kind() ActionKind { return ActionKindLocalizedFire }

// ForceEncounter marks two participants as mutual enemies and optionally
// teleports both to a location.
type ForceEncounter struct {
	A        string
	B        string
	Location *Location
}

// Kind implements Action.
func (ForceEncounter) Kind() ActionKind { return ActionKindForceEncounter }

// SeparateTributes relocates each listed participant to an independently
// sampled random location.
type SeparateTributes struct {
	ParticipantIDs []string
}

// Kind implements Action.
func (SeparateTributes) Kind() ActionKind { return ActionKindSeparateTributes }

// ResourceAdjustment adds a health delta to one participant.
type ResourceAdjustment struct {
	Target string
	Delta  int
}

// Kind implements Action.
func (ResourceAdjustment) Kind() ActionKind { return ActionKindResourceAdjustment }

// ReviveMode selects the health a revived participant returns with.
type ReviveMode string

const (
	// ReviveModeFull restores the participant to full health.
	ReviveModeFull ReviveMode = "full"
	// ReviveModePartial restores the participant to half health.
	ReviveModePartial ReviveMode = "partial"
)

// ReviveTribute returns an eliminated participant to the match.
type ReviveTribute struct {
	Target string
	Mode   ReviveMode
}

// Kind implements Action.
func (ReviveTribute) Kind() ActionKind { return ActionKindReviveTribute }

// SetRelationship records a relationship edge. When Mutual is set the edge
// is written in both directions.
type SetRelationship struct {
	Source   string
	Target   string
	Relation Relation
	Mutual   bool
}

// Kind implements Action.
func (SetRelationship) Kind() ActionKind { return ActionKindSetRelationship }

// ValidateAction checks the shape of a queued action. Target ids are not
// resolved here: actions naming unknown participants are accepted and
// absorbed as no-ops at application time.
func ValidateAction(action Action) error {
	switch a := action.(type) {
	case GlobalEvent:
		if !a.Event.IsValid() {
			return apperrors.Newf(apperrors.CodeValidation, "unknown global event %q", a.Event)
		}
	case LocalizedFire:
		if !a.Location.IsValid() {
			return apperrors.Newf(apperrors.CodeValidation, "unknown location %q", a.Location)
		}
		if a.PersistenceTurns <= 0 {
			return apperrors.New(apperrors.CodeValidation, "fire persistence must be positive")
		}
	case ForceEncounter:
		if a.A == "" || a.B == "" || a.A == a.B {
			return apperrors.New(apperrors.CodeValidation, "force encounter requires two distinct participants")
		}
		if a.Location != nil && !a.Location.IsValid() {
			return apperrors.Newf(apperrors.CodeValidation, "unknown location %q", *a.Location)
		}
	case SeparateTributes:
		if len(a.ParticipantIDs) == 0 {
			return apperrors.New(apperrors.CodeValidation, "separate tributes requires at least one participant")
		}
	case ResourceAdjustment:
		if a.Target == "" {
			return apperrors.New(apperrors.CodeValidation, "resource adjustment requires a target")
		}
		if a.Delta == 0 {
			return apperrors.New(apperrors.CodeValidation, "resource adjustment delta must be non-zero")
		}
	case ReviveTribute:
		if a.Target == "" {
			return apperrors.New(apperrors.CodeValidation, "revive requires a target")
		}
		if a.Mode != ReviveModeFull && a.Mode != ReviveModePartial {
			return apperrors.Newf(apperrors.CodeValidation, "unknown revive mode %q", a.Mode)
		}
	case SetRelationship:
		if a.Source == "" || a.Target == "" || a.Source == a.Target {
			return apperrors.New(apperrors.CodeValidation, "set relationship requires two distinct participants")
		}
		if !a.Relation.IsValid() {
			return apperrors.Newf(apperrors.CodeValidation, "unknown relation %q", a.Relation)
		}
	default:
		return apperrors.New(apperrors.CodeValidation, "unknown action kind")
	}
	return nil
}

// cloneAction returns a defensive copy of an action's mutable payload.
func cloneAction(action Action) Action {
	switch a := action.(type) {
	case SeparateTributes:
		ids := append([]string(nil), a.ParticipantIDs...)
		return SeparateTributes{ParticipantIDs: ids}
	case ForceEncounter:
		if a.Location != nil {
			loc := *a.Location
			a.Location = &loc
		}
		return a
	default:
		return action
	}
}
