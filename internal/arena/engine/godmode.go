package engine

import (
	"fmt"
	"strings"

	"github.com/louisbranch/lastarena/internal/arena/domain"
)

// God-mode effect tuning.
const (
	extremeWeatherDamage = 5
	toxicFogDamage       = 12
	resupplyHeal         = 10
	partialReviveHealth  = 50

	// Fire outcome thresholds partition one draw into escape, severe
	// burn, minor burn, and instant elimination.
	fireEscapeThreshold = 0.25
	fireSevereThreshold = 0.50
	fireMinorThreshold  = 0.75
	fireSevereDamage    = 30
	fireMinorDamage     = 10
)

// godModeResult summarizes one turn's god-mode application phase.
type godModeResult struct {
	lastEvent  *domain.EventRecord
	eliminated []string
}

// applyGodMode runs the operator side channel for one turn: active fires
// burn first, then the pending queue is drained and applied in FIFO order.
// Actions naming unknown participants are absorbed as no-ops but still
// logged, so an operator acting on a stale snapshot cannot crash a match.
func (e *Engine) applyGodMode(state *domain.MatchState, turnNumber int, r Rand) (godModeResult, error) {
	var result godModeResult

	record := func(rec domain.EventRecord) {
		rec.MatchID = state.Match.ID
		rec.Phase = state.Match.CyclePhase
		state.Events.Append(rec)
		last := rec
		result.lastEvent = &last
		result.eliminated = append(result.eliminated, rec.EliminatedIDs...)
	}

	// Persistent fires burn before this turn's queued actions, in the
	// canonical location order so replays are stable.
	for _, location := range domain.Locations() {
		remaining, ok := state.ActiveFires[location]
		if !ok {
			continue
		}
		remaining--
		if remaining <= 0 {
			delete(state.ActiveFires, location)
			continue
		}
		state.ActiveFires[location] = remaining
		rec, err := e.resolveFireRound(state, turnNumber, location, r)
		if err != nil {
			return result, err
		}
		record(rec)
	}

	for _, action := range state.DrainActions() {
		rec, err := e.applyAction(state, turnNumber, action, r)
		if err != nil {
			return result, err
		}
		record(rec)
	}

	return result, nil
}

// applyAction applies one queued action and returns its event record.
func (e *Engine) applyAction(state *domain.MatchState, turnNumber int, action domain.Action, r Rand) (domain.EventRecord, error) {
	switch a := action.(type) {
	case domain.GlobalEvent:
		return e.applyGlobalEvent(state, turnNumber, a)

	case domain.LocalizedFire:
		if existing := state.ActiveFires[a.Location]; a.PersistenceTurns > existing {
			state.ActiveFires[a.Location] = a.PersistenceTurns
		}
		return e.resolveFireRound(state, turnNumber, a.Location, r)

	case domain.ForceEncounter:
		first, second := state.Find(a.A), state.Find(a.B)
		var participants []string
		narrative := "A forced encounter fizzles: the named tributes are not in this match."
		if first != nil && second != nil {
			state.Relationships.SetMutual(first.ID, second.ID, domain.RelationEnemy)
			if a.Location != nil {
				first.Location = *a.Location
				second.Location = *a.Location
			}
			participants = []string{first.ID, second.ID}
			narrative = fmt.Sprintf("The gamemakers drive %s and %s toward each other.", first.DisplayName, second.DisplayName)
		}
		return e.godEvent(turnNumber, "god-force-encounter", domain.EventTypeCombat, 40, participants, nil, narrative)

	case domain.SeparateTributes:
		locations := domain.Locations()
		var participants []string
		for _, participantID := range a.ParticipantIDs {
			p := state.Find(participantID)
			if p == nil || !p.InMatch() {
				continue
			}
			p.Location = locations[r.Intn(len(locations))]
			participants = append(participants, p.ID)
		}
		narrative := fmt.Sprintf("The arena shifts, scattering %d tributes apart.", len(participants))
		return e.godEvent(turnNumber, "god-separate-tributes", domain.EventTypeSurprise, 30, participants, nil, narrative)

	case domain.ResourceAdjustment:
		var participants, eliminated []string
		narrative := "A sponsor parcel drifts down over an empty clearing."
		if p := state.Find(a.Target); p != nil {
			wasIn := p.InMatch()
			p.AdjustHealth(a.Delta)
			participants = []string{p.ID}
			if wasIn && !p.InMatch() {
				eliminated = []string{p.ID}
				narrative = fmt.Sprintf("A tainted parcel finishes %s.", p.DisplayName)
			} else if a.Delta >= 0 {
				narrative = fmt.Sprintf("A sponsor parcel restores %s.", p.DisplayName)
			} else {
				narrative = fmt.Sprintf("Spoiled supplies weaken %s.", p.DisplayName)
			}
		}
		return e.godEvent(turnNumber, "god-resource-adjustment", domain.EventTypeResource, 25, participants, eliminated, narrative)

	case domain.ReviveTribute:
		var participants []string
		narrative := "A revival order names a tribute no one can find."
		if p := state.Find(a.Target); p != nil && p.Status == domain.ParticipantStatusEliminated {
			health := domain.MaxHealth
			if a.Mode == domain.ReviveModePartial {
				health = partialReviveHealth
			}
			p.Revive(health)
			if !p.Location.IsValid() {
				locations := domain.Locations()
				p.Location = locations[r.Intn(len(locations))]
			}
			participants = []string{p.ID}
			narrative = fmt.Sprintf("Against every rule, %s walks back into the arena.", p.DisplayName)
		}
		return e.godEvent(turnNumber, "god-revive-tribute", domain.EventTypeSurprise, 60, participants, nil, narrative)

	case domain.SetRelationship:
		source, target := state.Find(a.Source), state.Find(a.Target)
		var participants []string
		narrative := "A rivalry decree names tributes not in this match."
		if source != nil && target != nil {
			if a.Mutual {
				state.Relationships.SetMutual(source.ID, target.ID, a.Relation)
			} else {
				state.Relationships.Set(source.ID, target.ID, a.Relation)
			}
			participants = []string{source.ID, target.ID}
			narrative = fmt.Sprintf("Bad blood is seeded between %s and %s.", source.DisplayName, target.DisplayName)
		}
		return e.godEvent(turnNumber, "god-set-relationship", domain.EventTypeBetrayal, 20, participants, nil, narrative)

	default:
		// Unknown kinds cannot be queued past validation; log and absorb.
		return e.godEvent(turnNumber, "god-unknown-action", domain.EventTypeSurprise, 0, nil, nil, "An unrecognized directive dissipates harmlessly.")
	}
}

// applyGlobalEvent applies an arena-wide effect.
func (e *Engine) applyGlobalEvent(state *domain.MatchState, turnNumber int, a domain.GlobalEvent) (domain.EventRecord, error) {
	switch a.Event {
	case domain.GlobalEventExtremeWeather, domain.GlobalEventToxicFog:
		damage := extremeWeatherDamage
		templateID := "god-global-extreme-weather"
		narrative := "A freezing storm rakes the whole arena."
		if a.Event == domain.GlobalEventToxicFog {
			damage = toxicFogDamage
			templateID = "god-global-toxic-fog"
			narrative = "Toxic fog rolls across every sector of the arena."
		}
		var participants, eliminated []string
		for i := range state.Participants {
			p := &state.Participants[i]
			if !p.InMatch() {
				continue
			}
			participants = append(participants, p.ID)
			p.ApplyDamage(damage)
			if !p.InMatch() {
				eliminated = append(eliminated, p.ID)
			}
		}
		return e.godEvent(turnNumber, templateID, domain.EventTypeHazard, damage*4, participants, eliminated, narrative)

	case domain.GlobalEventCornucopiaResupply:
		var participants []string
		for _, p := range state.ParticipantsAt(domain.LocationCornucopia) {
			p.Heal(resupplyHeal)
			p.Status = domain.ParticipantStatusAlive
			participants = append(participants, p.ID)
		}
		narrative := "Fresh supplies rain down on the cornucopia."
		return e.godEvent(turnNumber, "god-global-cornucopia-resupply", domain.EventTypeResource, 15, participants, nil, narrative)

	default:
		return e.godEvent(turnNumber, "god-global-unknown", domain.EventTypeSurprise, 0, nil, nil, "An unrecognized arena directive dissipates harmlessly.")
	}
}

// resolveFireRound burns one round at a location. Each tribute there rolls
// a single outcome: escape to an adjacent location, a severe or minor
// burn, or instant elimination.
func (e *Engine) resolveFireRound(state *domain.MatchState, turnNumber int, location domain.Location, r Rand) (domain.EventRecord, error) {
	var participants, eliminated []string
	var escaped []string
	for _, p := range state.ParticipantsAt(location) {
		participants = append(participants, p.ID)
		roll := r.Float64()
		switch {
		case roll < fireEscapeThreshold:
			neighbors := location.Neighbors()
			p.Location = neighbors[r.Intn(len(neighbors))]
			escaped = append(escaped, p.DisplayName)
		case roll < fireSevereThreshold:
			p.ApplyDamage(fireSevereDamage)
		case roll < fireMinorThreshold:
			p.ApplyDamage(fireMinorDamage)
		default:
			p.Eliminate()
		}
		if !p.InMatch() {
			eliminated = append(eliminated, p.ID)
		}
	}

	narrative := fmt.Sprintf("Fire sweeps the %s.", location)
	if len(escaped) > 0 {
		narrative = fmt.Sprintf("Fire sweeps the %s; %s escape through the smoke.", location, strings.Join(escaped, ", "))
	}
	templateID := "god-localized-fire-" + string(location)
	return e.godEvent(turnNumber, templateID, domain.EventTypeHazard, 60, participants, eliminated, narrative)
}

// godEvent builds one god-mode-sourced event record.
func (e *Engine) godEvent(turnNumber int, templateID string, eventType domain.EventType, intensity int, participants, eliminated []string, narrative string) (domain.EventRecord, error) {
	eventID, err := e.idGenerator()
	if err != nil {
		return domain.EventRecord{}, fmt.Errorf("generate event id: %w", err)
	}
	return domain.EventRecord{
		ID:               eventID,
		TemplateID:       templateID,
		TurnNumber:       turnNumber,
		Type:             eventType,
		Source:           domain.EventSourceGodMode,
		ParticipantIDs:   participants,
		EliminatedIDs:    eliminated,
		ParticipantCount: len(participants),
		Intensity:        intensity,
		Narrative:        narrative,
		Lethal:           len(eliminated) > 0,
		CreatedAt:        e.now().UTC(),
	}, nil
}
