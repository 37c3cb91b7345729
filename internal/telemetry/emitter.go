// Package telemetry records operational events emitted by the arena engine.
package telemetry

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Severity describes the telemetry severity level.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Event captures a single operational occurrence, such as a resolved turn
// with its replay signature, or a finished match.
type Event struct {
	Timestamp time.Time
	Severity  Severity
	Name      string
	MatchID   string
	Attrs     map[string]string
}

// Sink receives telemetry events.
type Sink interface {
	Append(ctx context.Context, evt Event) error
}

// Emitter records operational telemetry events.
type Emitter struct {
	sink  Sink
	clock func() time.Time
}

// NewEmitter creates a new telemetry emitter.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink, clock: time.Now}
}

// Emit records a telemetry event. It is a no-op when the sink is nil.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if e == nil || e.sink == nil {
		return nil
	}
	if evt.Timestamp.IsZero() {
		if e.clock == nil {
			evt.Timestamp = time.Now().UTC()
		} else {
			evt.Timestamp = e.clock().UTC()
		}
	}
	if evt.Severity == "" {
		evt.Severity = SeverityInfo
	}
	return e.sink.Append(ctx, evt)
}

// LogSink writes telemetry events to the process log.
type LogSink struct{}

// Append implements Sink.
func (LogSink) Append(_ context.Context, evt Event) error {
	keys := make([]string, 0, len(evt.Attrs))
	for k := range evt.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(evt.Attrs[k])
	}
	log.Printf("%s %s match=%s%s", evt.Severity, evt.Name, evt.MatchID, b.String())
	return nil
}

// MemorySink buffers telemetry events in memory for tests and inspection.
type MemorySink struct {
	mu     sync.Mutex
	events []Event
}

// Append implements Sink.
func (s *MemorySink) Append(_ context.Context, evt Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return nil
}

// Events returns a copy of the buffered events.
func (s *MemorySink) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
