package domain

import (
	"fmt"
	"time"

	apperrors "github.com/louisbranch/lastarena/internal/errors"
	"github.com/louisbranch/lastarena/internal/id"
)

// Roster size bounds for match creation.
const (
	MinRosterSize = 10
	MaxRosterSize = 48
)

// MatchState is the full per-match aggregate: the match record plus every
// piece of mutable simulation state. It is the unit of storage and of
// atomic per-turn commits.
type MatchState struct {
	Match          Match
	Settings       Settings
	Participants   []Participant
	Relationships  RelationshipGraph
	ActiveFires    map[Location]int
	Events         EventLog
	PendingActions []Action
}

// CreateMatchInput describes the data needed to create a match.
type CreateMatchInput struct {
	CharacterIDs []string
	// DisplayNames optionally maps character ids to display names.
	// Characters without an entry get a generated name.
	DisplayNames map[string]string
	Settings     Settings
}

// NewMatchState creates a match in the setup phase with participants
// placed round-robin across the arena locations.
func NewMatchState(input CreateMatchInput, now func() time.Time, idGenerator func() (string, error)) (MatchState, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	if len(input.CharacterIDs) < MinRosterSize || len(input.CharacterIDs) > MaxRosterSize {
		return MatchState{}, apperrors.Newf(apperrors.CodeValidation,
			"roster size must be between %d and %d, got %d", MinRosterSize, MaxRosterSize, len(input.CharacterIDs))
	}
	seen := make(map[string]bool, len(input.CharacterIDs))
	for _, characterID := range input.CharacterIDs {
		if characterID == "" {
			return MatchState{}, apperrors.New(apperrors.CodeValidation, "character id is required")
		}
		if seen[characterID] {
			return MatchState{}, apperrors.Newf(apperrors.CodeValidation, "duplicate character id %q", characterID)
		}
		seen[characterID] = true
	}

	settings := input.Settings.Normalized()
	if err := settings.Validate(); err != nil {
		return MatchState{}, err
	}

	matchID, err := idGenerator()
	if err != nil {
		return MatchState{}, fmt.Errorf("generate match id: %w", err)
	}

	locations := Locations()
	participants := make([]Participant, 0, len(input.CharacterIDs))
	for i, characterID := range input.CharacterIDs {
		participantID, err := idGenerator()
		if err != nil {
			return MatchState{}, fmt.Errorf("generate participant id: %w", err)
		}
		displayName := input.DisplayNames[characterID]
		if displayName == "" {
			displayName = fmt.Sprintf("Tribute %d", i+1)
		}
		participants = append(participants, Participant{
			ID:            participantID,
			MatchID:       matchID,
			CharacterID:   characterID,
			DisplayName:   displayName,
			CurrentHealth: MaxHealth,
			Status:        ParticipantStatusAlive,
			Location:      locations[i%len(locations)],
		})
	}

	return MatchState{
		Match: Match{
			ID:             matchID,
			Seed:           settings.Seed,
			RulesetVersion: RulesetVersion,
			Phase:          MatchPhaseSetup,
			CyclePhase:     CyclePhaseBloodbath,
			TurnNumber:     0,
			TensionLevel:   0,
			CreatedAt:      now().UTC(),
		},
		Settings:      settings,
		Participants:  participants,
		Relationships: make(RelationshipGraph),
		ActiveFires:   make(map[Location]int),
	}, nil
}

// Start transitions the match from setup to running at turn zero.
func (s *MatchState) Start() error {
	if s.Match.Phase != MatchPhaseSetup {
		return apperrors.Newf(apperrors.CodeMatchStateConflict,
			"cannot start match in phase %s", s.Match.Phase)
	}
	s.Match.Phase = MatchPhaseRunning
	s.Match.CyclePhase = CyclePhaseBloodbath
	s.Match.TurnNumber = 0
	return nil
}

// Finish freezes the match with the given end time.
func (s *MatchState) Finish(endedAt time.Time) {
	endedAt = endedAt.UTC()
	s.Match.Phase = MatchPhaseFinished
	s.Match.EndedAt = &endedAt
}

// Find returns a pointer to the participant with the given id, or nil.
func (s *MatchState) Find(participantID string) *Participant {
	for i := range s.Participants {
		if s.Participants[i].ID == participantID {
			return &s.Participants[i]
		}
	}
	return nil
}

// InMatchIDs returns the ids of every non-eliminated participant in
// roster order.
func (s *MatchState) InMatchIDs() []string {
	ids := make([]string, 0, len(s.Participants))
	for i := range s.Participants {
		if s.Participants[i].InMatch() {
			ids = append(ids, s.Participants[i].ID)
		}
	}
	return ids
}

// CharacterIDs maps participant ids to their character ids, preserving
// order and skipping unknown ids.
func (s *MatchState) CharacterIDs(participantIDs []string) []string {
	out := make([]string, 0, len(participantIDs))
	for _, participantID := range participantIDs {
		if p := s.Find(participantID); p != nil {
			out = append(out, p.CharacterID)
		}
	}
	return out
}

// AliveCount returns the number of non-eliminated participants.
func (s *MatchState) AliveCount() int {
	count := 0
	for i := range s.Participants {
		if s.Participants[i].InMatch() {
			count++
		}
	}
	return count
}

// LastSurvivor returns the sole remaining participant when exactly one is
// left, or nil otherwise.
func (s *MatchState) LastSurvivor() *Participant {
	var survivor *Participant
	for i := range s.Participants {
		if s.Participants[i].InMatch() {
			if survivor != nil {
				return nil
			}
			survivor = &s.Participants[i]
		}
	}
	return survivor
}

// ParticipantsAt returns pointers to the in-match participants at the
// given location, in roster order.
func (s *MatchState) ParticipantsAt(location Location) []*Participant {
	var out []*Participant
	for i := range s.Participants {
		if s.Participants[i].InMatch() && s.Participants[i].Location == location {
			out = append(out, &s.Participants[i])
		}
	}
	return out
}

// QueueActions appends up to the remaining queue capacity and returns how
// many were accepted. Overflow is truncated silently.
func (s *MatchState) QueueActions(actions []Action) int {
	capacity := MaxPendingActions - len(s.PendingActions)
	if capacity <= 0 {
		return 0
	}
	if len(actions) > capacity {
		actions = actions[:capacity]
	}
	for _, action := range actions {
		s.PendingActions = append(s.PendingActions, cloneAction(action))
	}
	return len(actions)
}

// DrainActions empties the pending queue and returns its prior contents.
func (s *MatchState) DrainActions() []Action {
	drained := s.PendingActions
	s.PendingActions = nil
	return drained
}

// Clone returns a deep copy of the aggregate so a turn can be built in a
// local scope and committed atomically.
func (s MatchState) Clone() MatchState {
	clone := s
	if s.Match.EndedAt != nil {
		endedAt := *s.Match.EndedAt
		clone.Match.EndedAt = &endedAt
	}
	clone.Participants = make([]Participant, len(s.Participants))
	copy(clone.Participants, s.Participants)
	clone.Relationships = s.Relationships.Clone()
	clone.ActiveFires = make(map[Location]int, len(s.ActiveFires))
	for location, remaining := range s.ActiveFires {
		clone.ActiveFires[location] = remaining
	}
	clone.Events = s.Events.Clone()
	clone.PendingActions = make([]Action, 0, len(s.PendingActions))
	for _, action := range s.PendingActions {
		clone.PendingActions = append(clone.PendingActions, cloneAction(action))
	}
	return clone
}
