package domain

import "time"

// EventRetention caps how many event records a match keeps. Older records
// are evicted FIFO as new ones arrive.
const EventRetention = 12

// EventType classifies an event template or record.
type EventType int

const (
	// EventTypeUnspecified represents an invalid event type value.
	EventTypeUnspecified EventType = iota
	EventTypeCombat
	EventTypeAlliance
	EventTypeBetrayal
	EventTypeResource
	EventTypeHazard
	EventTypeSurprise
)

// String returns the wire representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventTypeCombat:
		return "combat"
	case EventTypeAlliance:
		return "alliance"
	case EventTypeBetrayal:
		return "betrayal"
	case EventTypeResource:
		return "resource"
	case EventTypeHazard:
		return "hazard"
	case EventTypeSurprise:
		return "surprise"
	default:
		return "unspecified"
	}
}

// IsValid reports whether the event type is a usable value.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypeCombat, EventTypeAlliance, EventTypeBetrayal,
		EventTypeResource, EventTypeHazard, EventTypeSurprise:
		return true
	default:
		return false
	}
}

// ParseEventType maps a wire string to an EventType.
func ParseEventType(s string) (EventType, bool) {
	for _, t := range []EventType{EventTypeCombat, EventTypeAlliance, EventTypeBetrayal,
		EventTypeResource, EventTypeHazard, EventTypeSurprise} {
		if t.String() == s {
			return t, true
		}
	}
	return EventTypeUnspecified, false
}

// EventSource distinguishes natural events from operator-injected ones.
type EventSource int

const (
	// EventSourceUnspecified represents an invalid event source value.
	EventSourceUnspecified EventSource = iota
	// EventSourceNatural marks an event produced by the turn pipeline.
	EventSourceNatural
	// EventSourceGodMode marks an event produced by an operator action.
	EventSourceGodMode
)

// String returns the wire representation of the event source.
func (s EventSource) String() string {
	switch s {
	case EventSourceNatural:
		return "natural"
	case EventSourceGodMode:
		return "god_mode"
	default:
		return "unspecified"
	}
}

// ParseEventSource maps a wire string to an EventSource.
func ParseEventSource(s string) (EventSource, bool) {
	for _, source := range []EventSource{EventSourceNatural, EventSourceGodMode} {
		if source.String() == s {
			return source, true
		}
	}
	return EventSourceUnspecified, false
}

// EventRecord captures one resolved event in a match's history.
type EventRecord struct {
	ID               string
	MatchID          string
	TemplateID       string
	TurnNumber       int
	Type             EventType
	Source           EventSource
	Phase            CyclePhase
	ParticipantIDs   []string
	EliminatedIDs    []string
	ParticipantCount int
	Intensity        int
	Narrative        string
	Lethal           bool
	CreatedAt        time.Time
}

// EventLog is a fixed-capacity FIFO of the most recent event records.
type EventLog struct {
	Records []EventRecord
}

// Append adds a record, evicting the oldest past EventRetention.
func (l *EventLog) Append(record EventRecord) {
	l.Records = append(l.Records, record)
	if overflow := len(l.Records) - EventRetention; overflow > 0 {
		l.Records = append([]EventRecord(nil), l.Records[overflow:]...)
	}
}

// Recent returns a copy of the retained records, oldest first.
func (l EventLog) Recent() []EventRecord {
	out := make([]EventRecord, len(l.Records))
	copy(out, l.Records)
	return out
}

// RecentTemplateIDs returns the template ids of the last n records,
// oldest first.
func (l EventLog) RecentTemplateIDs(n int) []string {
	records := l.Records
	if n < len(records) {
		records = records[len(records)-n:]
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.TemplateID)
	}
	return ids
}

// Last returns the most recent record, if any.
func (l EventLog) Last() (EventRecord, bool) {
	if len(l.Records) == 0 {
		return EventRecord{}, false
	}
	return l.Records[len(l.Records)-1], true
}

// Clone returns a deep copy of the log.
func (l EventLog) Clone() EventLog {
	records := make([]EventRecord, len(l.Records))
	copy(records, l.Records)
	for i := range records {
		records[i].ParticipantIDs = append([]string(nil), records[i].ParticipantIDs...)
		records[i].EliminatedIDs = append([]string(nil), records[i].EliminatedIDs...)
	}
	return EventLog{Records: records}
}
