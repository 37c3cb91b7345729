// Package snapshot implements the versioned, checksummed match envelope
// used for cross-process export and resume.
//
// The checksum is computed over a canonical JSON rendering of the payload
// with object keys sorted, so semantically equal snapshots hash the same
// regardless of how the envelope was serialized in transit.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/lastarena/internal/arena/domain"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// Version is the envelope format this build reads and writes.
const Version = 1

// Envelope wraps a snapshot payload with its version and checksum.
type Envelope struct {
	SnapshotVersion int     `json:"snapshot_version"`
	Checksum        string  `json:"checksum"`
	Snapshot        Payload `json:"snapshot"`
}

// Payload is the exported slice of a match: enough to inspect or resume
// it elsewhere. Operational scratch state (pending actions, active fires,
// relationship edges) is deliberately not part of the envelope.
type Payload struct {
	Match        Match           `json:"match"`
	Settings     domain.Settings `json:"settings"`
	Participants []Participant   `json:"participants"`
	RecentEvents []Event         `json:"recent_events"`
}

// Match is the wire form of a match record.
type Match struct {
	ID             string     `json:"id"`
	Seed           string     `json:"seed"`
	RulesetVersion string     `json:"ruleset_version"`
	Phase          string     `json:"phase"`
	CyclePhase     string     `json:"cycle_phase"`
	TurnNumber     int        `json:"turn_number"`
	TensionLevel   float64    `json:"tension_level"`
	CreatedAt      time.Time  `json:"created_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}

// Participant is the wire form of a participant record.
type Participant struct {
	ID            string `json:"id"`
	MatchID       string `json:"match_id"`
	CharacterID   string `json:"character_id"`
	DisplayName   string `json:"display_name"`
	CurrentHealth int    `json:"current_health"`
	Status        string `json:"status"`
	StreakScore   int    `json:"streak_score"`
	Location      string `json:"location"`
}

// Event is the wire form of an event record.
type Event struct {
	ID               string    `json:"id"`
	MatchID          string    `json:"match_id"`
	TemplateID       string    `json:"template_id"`
	TurnNumber       int       `json:"turn_number"`
	Type             string    `json:"type"`
	Source           string    `json:"source_type"`
	Phase            string    `json:"phase"`
	ParticipantIDs   []string  `json:"participant_ids"`
	EliminatedIDs    []string  `json:"eliminated_ids"`
	ParticipantCount int       `json:"participant_count"`
	Intensity        int       `json:"intensity"`
	Narrative        string    `json:"narrative_text"`
	Lethal           bool      `json:"lethal"`
	CreatedAt        time.Time `json:"created_at"`
}

// EventFromRecord converts an event record to its wire form.
func EventFromRecord(record domain.EventRecord) Event {
	return Event{
		ID:               record.ID,
		MatchID:          record.MatchID,
		TemplateID:       record.TemplateID,
		TurnNumber:       record.TurnNumber,
		Type:             record.Type.String(),
		Source:           record.Source.String(),
		Phase:            record.Phase.String(),
		ParticipantIDs:   record.ParticipantIDs,
		EliminatedIDs:    record.EliminatedIDs,
		ParticipantCount: record.ParticipantCount,
		Intensity:        record.Intensity,
		Narrative:        record.Narrative,
		Lethal:           record.Lethal,
		CreatedAt:        record.CreatedAt,
	}
}

// Capture builds a checksummed envelope from match state.
func Capture(state domain.MatchState) (Envelope, error) {
	payload := Payload{
		Match: Match{
			ID:             state.Match.ID,
			Seed:           state.Match.Seed,
			RulesetVersion: state.Match.RulesetVersion,
			Phase:          state.Match.Phase.String(),
			CyclePhase:     state.Match.CyclePhase.String(),
			TurnNumber:     state.Match.TurnNumber,
			TensionLevel:   state.Match.TensionLevel,
			CreatedAt:      state.Match.CreatedAt,
			EndedAt:        state.Match.EndedAt,
		},
		Settings:     state.Settings,
		Participants: make([]Participant, 0, len(state.Participants)),
		RecentEvents: make([]Event, 0, len(state.Events.Records)),
	}
	for _, p := range state.Participants {
		payload.Participants = append(payload.Participants, Participant{
			ID:            p.ID,
			MatchID:       p.MatchID,
			CharacterID:   p.CharacterID,
			DisplayName:   p.DisplayName,
			CurrentHealth: p.CurrentHealth,
			Status:        p.Status.String(),
			StreakScore:   p.StreakScore,
			Location:      string(p.Location),
		})
	}
	for _, record := range state.Events.Recent() {
		payload.RecentEvents = append(payload.RecentEvents, EventFromRecord(record))
	}

	sum, err := checksum(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{SnapshotVersion: Version, Checksum: sum, Snapshot: payload}, nil
}

// Restore verifies an envelope and rebuilds match state from it. The
// version is checked before the checksum so a format mismatch is reported
// as such rather than as corruption.
func Restore(env Envelope) (domain.MatchState, error) {
	if env.SnapshotVersion != Version {
		return domain.MatchState{}, apperrors.Newf(apperrors.CodeSnapshotVersionMismatch,
			"snapshot version %d, this build reads %d", env.SnapshotVersion, Version)
	}
	sum, err := checksum(env.Snapshot)
	if err != nil {
		return domain.MatchState{}, err
	}
	if sum != env.Checksum {
		return domain.MatchState{}, apperrors.New(apperrors.CodeSnapshotChecksumMismatch,
			"snapshot checksum does not match payload")
	}

	phase, ok := domain.ParseMatchPhase(env.Snapshot.Match.Phase)
	if !ok {
		return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown match phase %q", env.Snapshot.Match.Phase)
	}
	cyclePhase, ok := domain.ParseCyclePhase(env.Snapshot.Match.CyclePhase)
	if !ok {
		return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown cycle phase %q", env.Snapshot.Match.CyclePhase)
	}

	state := domain.MatchState{
		Match: domain.Match{
			ID:             env.Snapshot.Match.ID,
			Seed:           env.Snapshot.Match.Seed,
			RulesetVersion: env.Snapshot.Match.RulesetVersion,
			Phase:          phase,
			CyclePhase:     cyclePhase,
			TurnNumber:     env.Snapshot.Match.TurnNumber,
			TensionLevel:   env.Snapshot.Match.TensionLevel,
			CreatedAt:      env.Snapshot.Match.CreatedAt,
			EndedAt:        env.Snapshot.Match.EndedAt,
		},
		Settings:      env.Snapshot.Settings,
		Relationships: make(domain.RelationshipGraph),
		ActiveFires:   make(map[domain.Location]int),
	}

	for _, p := range env.Snapshot.Participants {
		status, ok := domain.ParseParticipantStatus(p.Status)
		if !ok {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown participant status %q", p.Status)
		}
		location := domain.Location(p.Location)
		if !location.IsValid() {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown location %q", p.Location)
		}
		state.Participants = append(state.Participants, domain.Participant{
			ID:            p.ID,
			MatchID:       p.MatchID,
			CharacterID:   p.CharacterID,
			DisplayName:   p.DisplayName,
			CurrentHealth: p.CurrentHealth,
			Status:        status,
			StreakScore:   p.StreakScore,
			Location:      location,
		})
	}

	for _, record := range env.Snapshot.RecentEvents {
		eventType, ok := domain.ParseEventType(record.Type)
		if !ok {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown event type %q", record.Type)
		}
		source, ok := domain.ParseEventSource(record.Source)
		if !ok {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown event source %q", record.Source)
		}
		eventPhase, ok := domain.ParseCyclePhase(record.Phase)
		if !ok {
			return domain.MatchState{}, apperrors.Newf(apperrors.CodeValidation, "unknown event phase %q", record.Phase)
		}
		state.Events.Append(domain.EventRecord{
			ID:               record.ID,
			MatchID:          record.MatchID,
			TemplateID:       record.TemplateID,
			TurnNumber:       record.TurnNumber,
			Type:             eventType,
			Source:           source,
			Phase:            eventPhase,
			ParticipantIDs:   record.ParticipantIDs,
			EliminatedIDs:    record.EliminatedIDs,
			ParticipantCount: record.ParticipantCount,
			Intensity:        record.Intensity,
			Narrative:        record.Narrative,
			Lethal:           record.Lethal,
			CreatedAt:        record.CreatedAt,
		})
	}

	return state, nil
}

// checksum hashes the canonical sorted-key JSON rendering of the payload.
func checksum(payload Payload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot payload: %w", err)
	}
	// Round-tripping through an untyped value re-marshals objects with
	// their keys sorted, making the hash independent of field order.
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", fmt.Errorf("normalize snapshot payload: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return "", fmt.Errorf("canonicalize snapshot payload: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
