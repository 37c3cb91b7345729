package engine

import (
	"fmt"

	"github.com/louisbranch/lastarena/internal/arena/catalog"
	"github.com/louisbranch/lastarena/internal/arena/director"
	"github.com/louisbranch/lastarena/internal/arena/domain"
	"github.com/louisbranch/lastarena/internal/arena/rng"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// Elimination-chance tuning.
const (
	// tensionDivisor scales tension into an elimination-chance bonus.
	tensionDivisor = 300.0
	// endgameAcceleration is added once four or fewer remain.
	endgameAcceleration = 0.08
	// endgameThreshold is the alive count enabling the acceleration term.
	endgameThreshold = 4
	// maxEliminationChance caps the phase/tension sum.
	maxEliminationChance = 0.95
	// enemyPairBonus is added when the selected set contains an enemy pair.
	enemyPairBonus = 0.2
	// enemyOverrideChance substitutes a live enemy pair for the sampled
	// participants, letting scripted rivalries pay off in combat.
	enemyOverrideChance = 0.65
)

// phaseBaseChance is the per-phase elimination-chance baseline.
var phaseBaseChance = map[domain.CyclePhase]float64{
	domain.CyclePhaseBloodbath: 0.34,
	domain.CyclePhaseDay:       0.22,
	domain.CyclePhaseNight:     0.28,
	domain.CyclePhaseFinale:    0.72,
}

// TurnResult is the outcome of one resolved turn.
type TurnResult struct {
	TurnNumber     int
	CyclePhase     domain.CyclePhase
	TensionLevel   float64
	Event          domain.EventRecord
	SurvivorsCount int
	EliminatedIDs  []string
	Finished       bool
	WinnerID       string
	Signature      string
}

// AdvanceTurn resolves exactly one turn against the given state, mutating
// it in place. Callers own atomicity: resolve against a clone and commit
// on success.
//
// The pipeline order is load-bearing: god-mode actions apply before the
// natural event so operator effects are visible to this turn's selection,
// and the special-event resolver runs before the generic elimination roll
// so it can short-circuit or bias it.
func (e *Engine) AdvanceTurn(state *domain.MatchState) (TurnResult, error) {
	if state.Match.Phase != domain.MatchPhaseRunning {
		return TurnResult{}, apperrors.Newf(apperrors.CodeMatchStateConflict,
			"cannot advance match in phase %s", state.Match.Phase)
	}
	if state.AliveCount() <= 1 {
		return TurnResult{}, apperrors.New(apperrors.CodeMatchStateConflict,
			"match already resolved to a single survivor")
	}

	resolvedTurn := state.Match.TurnNumber + 1
	r := rng.ForTurn(state.Match.Seed, resolvedTurn)

	god, err := e.applyGodMode(state, resolvedTurn, r)
	if err != nil {
		return TurnResult{}, err
	}

	// God-mode alone can resolve the match; the natural event never fires.
	if state.AliveCount() <= 1 {
		return e.finishFromGodMode(state, resolvedTurn, god)
	}

	firingPhase := state.Match.CyclePhase
	aliveIDs := state.InMatchIDs()

	count := SampleCount(len(aliveIDs), r)
	selectedIDs := sampleWithoutReplacement(aliveIDs, count, r)

	if pairs := state.Relationships.EnemyPairs(aliveIDs); len(pairs) > 0 && r.Float64() < enemyOverrideChance {
		pair := pairs[r.Intn(len(pairs))]
		selectedIDs = []string{pair[0], pair[1]}
	}

	selected := make([]*domain.Participant, 0, len(selectedIDs))
	for _, participantID := range selectedIDs {
		selected = append(selected, state.Find(participantID))
	}

	templates := catalog.Contextual(e.templates, resolvedTurn, len(aliveIDs))
	template, err := catalog.Select(templates, firingPhase, state.Events.RecentTemplateIDs(catalog.HistoryWindow), r, catalog.DefaultRepeatCap)
	if err != nil {
		return TurnResult{}, err
	}

	chance := phaseBaseChance[firingPhase] + state.Match.TensionLevel/tensionDivisor
	if len(aliveIDs) <= endgameThreshold {
		chance += endgameAcceleration
	}
	if chance > maxEliminationChance {
		chance = maxEliminationChance
	}
	if chance < 0 {
		chance = 0
	}
	if containsEnemyPair(state.Relationships, selectedIDs) {
		chance += enemyPairBonus
	}

	outcome := ResolveSpecial(firingPhase, template.ID, selected, r)

	var eliminatedIDs []string
	if outcome.Handled && !outcome.AllowDefaultElimination {
		eliminatedIDs = append(eliminatedIDs, outcome.EliminatedIDs...)
	} else {
		if outcome.EliminationFloor > chance {
			chance = outcome.EliminationFloor
		}
		// The final duel always ends: with two alive the roll is skipped.
		forced := len(aliveIDs) == 2
		if forced || r.Float64() < chance {
			victim := selected[r.Intn(len(selected))]
			eliminatedIDs = []string{victim.ID}
		}
	}

	eliminatedSet := make(map[string]bool, len(eliminatedIDs))
	for _, participantID := range eliminatedIDs {
		eliminatedSet[participantID] = true
		if p := state.Find(participantID); p != nil {
			p.Eliminate()
		}
	}
	for _, p := range selected {
		if !eliminatedSet[p.ID] {
			p.StreakScore++
		}
	}

	next := director.Advance(director.State{
		TurnNumber:   state.Match.TurnNumber,
		CyclePhase:   state.Match.CyclePhase,
		TensionLevel: state.Match.TensionLevel,
	}, len(eliminatedIDs) > 0, state.AliveCount())
	state.Match.TurnNumber = next.TurnNumber
	state.Match.CyclePhase = next.CyclePhase
	state.Match.TensionLevel = next.TensionLevel

	narrative := outcome.Narrative
	if narrative == "" {
		narrative = describeEvent(template.ID, firingPhase, selected, eliminatedSet)
	}
	eventID, err := e.idGenerator()
	if err != nil {
		return TurnResult{}, fmt.Errorf("generate event id: %w", err)
	}
	event := domain.EventRecord{
		ID:               eventID,
		MatchID:          state.Match.ID,
		TemplateID:       template.ID,
		TurnNumber:       resolvedTurn,
		Type:             template.Type,
		Source:           domain.EventSourceNatural,
		Phase:            firingPhase,
		ParticipantIDs:   selectedIDs,
		EliminatedIDs:    eliminatedIDs,
		ParticipantCount: len(selectedIDs),
		Intensity:        intensityFromChance(chance),
		Narrative:        narrative,
		Lethal:           len(eliminatedIDs) > 0,
		CreatedAt:        e.now().UTC(),
	}
	state.Events.Append(event)

	result := TurnResult{
		TurnNumber:     state.Match.TurnNumber,
		CyclePhase:     state.Match.CyclePhase,
		TensionLevel:   state.Match.TensionLevel,
		Event:          event,
		SurvivorsCount: state.AliveCount(),
		EliminatedIDs:  eliminatedIDs,
	}
	if survivor := state.LastSurvivor(); survivor != nil {
		state.Finish(event.CreatedAt)
		result.Finished = true
		result.WinnerID = survivor.ID
	}
	result.Signature = ReplaySignature(
		state.Match.RulesetVersion,
		rng.Normalize(state.Match.Seed),
		resolvedTurn,
		state.Match.CyclePhase,
		event.TemplateID,
		state.CharacterIDs(event.ParticipantIDs),
		state.CharacterIDs(event.EliminatedIDs),
	)
	return result, nil
}

// finishFromGodMode terminates a match the operator channel resolved on
// its own. The reported event is the last god-mode record, or a hazard
// placeholder if the queue was empty.
func (e *Engine) finishFromGodMode(state *domain.MatchState, resolvedTurn int, god godModeResult) (TurnResult, error) {
	next := director.Advance(director.State{
		TurnNumber:   state.Match.TurnNumber,
		CyclePhase:   state.Match.CyclePhase,
		TensionLevel: state.Match.TensionLevel,
	}, len(god.eliminated) > 0, state.AliveCount())
	state.Match.TurnNumber = next.TurnNumber
	state.Match.CyclePhase = next.CyclePhase
	state.Match.TensionLevel = next.TensionLevel

	var event domain.EventRecord
	if god.lastEvent != nil {
		event = *god.lastEvent
	} else {
		placeholder, err := e.godEvent(resolvedTurn, "god-arena-hazard", domain.EventTypeHazard, 50, nil, nil,
			"The arena itself ends the contest.")
		if err != nil {
			return TurnResult{}, err
		}
		placeholder.MatchID = state.Match.ID
		placeholder.Phase = state.Match.CyclePhase
		event = placeholder
	}

	state.Finish(e.now().UTC())

	result := TurnResult{
		TurnNumber:     state.Match.TurnNumber,
		CyclePhase:     state.Match.CyclePhase,
		TensionLevel:   state.Match.TensionLevel,
		Event:          event,
		SurvivorsCount: state.AliveCount(),
		Finished:       true,
	}
	if survivor := state.LastSurvivor(); survivor != nil {
		result.WinnerID = survivor.ID
	}
	result.Signature = ReplaySignature(
		state.Match.RulesetVersion,
		rng.Normalize(state.Match.Seed),
		resolvedTurn,
		state.Match.CyclePhase,
		event.TemplateID,
		state.CharacterIDs(event.ParticipantIDs),
		state.CharacterIDs(event.EliminatedIDs),
	)
	return result, nil
}

// sampleWithoutReplacement draws count ids uniformly from ids.
func sampleWithoutReplacement(ids []string, count int, r Rand) []string {
	pool := make([]string, len(ids))
	copy(pool, ids)
	if count > len(pool) {
		count = len(pool)
	}
	selected := make([]string, 0, count)
	for i := 0; i < count; i++ {
		j := r.Intn(len(pool))
		selected = append(selected, pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
	}
	return selected
}

// containsEnemyPair reports whether any two selected ids are enemies.
func containsEnemyPair(graph domain.RelationshipGraph, ids []string) bool {
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if graph.AreEnemies(ids[i], ids[j]) {
				return true
			}
		}
	}
	return false
}

// intensityFromChance maps the turn's elimination chance onto the 0-100
// intensity scale.
func intensityFromChance(chance float64) int {
	if chance > 1 {
		chance = 1
	}
	if chance < 0 {
		chance = 0
	}
	return int(chance * 100)
}
