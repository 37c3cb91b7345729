package domain

import (
	"encoding/json"

	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// actionEnvelope is the JSON wire shape of a god-mode action. The type
// field discriminates the union; the remaining fields are per-kind.
type actionEnvelope struct {
	Type             ActionKind      `json:"type"`
	Event            GlobalEventKind `json:"event,omitempty"`
	Location         *Location       `json:"location,omitempty"`
	PersistenceTurns int             `json:"persistence_turns,omitempty"`
	A                string          `json:"a,omitempty"`
	B                string          `json:"b,omitempty"`
	ParticipantIDs   []string        `json:"participant_ids,omitempty"`
	Target           string          `json:"target,omitempty"`
	Delta            int             `json:"delta,omitempty"`
	Mode             ReviveMode      `json:"mode,omitempty"`
	Source           string          `json:"source,omitempty"`
	Relation         Relation        `json:"relation,omitempty"`
	Mutual           bool            `json:"mutual,omitempty"`
}

// MarshalAction encodes an action into its JSON envelope.
func MarshalAction(action Action) ([]byte, error) {
	env := actionEnvelope{Type: action.Kind()}
	switch a := action.(type) {
	case GlobalEvent:
		env.Event = a.Event
	case LocalizedFire:
		loc := a.Location
		env.Location = &loc
		env.PersistenceTurns = a.PersistenceTurns
	case ForceEncounter:
		env.A = a.A
		env.B = a.B
		env.Location = a.Location
	case SeparateTributes:
		env.ParticipantIDs = a.ParticipantIDs
	case ResourceAdjustment:
		env.Target = a.Target
		env.Delta = a.Delta
	case ReviveTribute:
		env.Target = a.Target
		env.Mode = a.Mode
	case SetRelationship:
		env.Source = a.Source
		env.Target = a.Target
		env.Relation = a.Relation
		env.Mutual = a.Mutual
	default:
		return nil, apperrors.New(apperrors.CodeValidation, "unknown action kind")
	}
	return json.Marshal(env)
}

// UnmarshalAction decodes a JSON envelope into a typed action. The result
// is shape-validated via ValidateAction.
func UnmarshalAction(data []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "malformed action", err)
	}

	var action Action
	switch env.Type {
	case ActionKindGlobalEvent:
		action = GlobalEvent{Event: env.Event}
	case ActionKindLocalizedFire:
		var loc Location
		if env.Location != nil {
			loc = *env.Location
		}
		action = LocalizedFire{Location: loc, PersistenceTurns: env.PersistenceTurns}
	case ActionKindForceEncounter:
		action = ForceEncounter{A: env.A, B: env.B, Location: env.Location}
	case ActionKindSeparateTributes:
		action = SeparateTributes{ParticipantIDs: env.ParticipantIDs}
	case ActionKindResourceAdjustment:
		action = ResourceAdjustment{Target: env.Target, Delta: env.Delta}
	case ActionKindReviveTribute:
		action = ReviveTribute{Target: env.Target, Mode: env.Mode}
	case ActionKindSetRelationship:
		action = SetRelationship{Source: env.Source, Target: env.Target, Relation: env.Relation, Mutual: env.Mutual}
	default:
		return nil, apperrors.Newf(apperrors.CodeValidation, "unknown action type %q", env.Type)
	}

	if err := ValidateAction(action); err != nil {
		return nil, err
	}
	return action, nil
}
