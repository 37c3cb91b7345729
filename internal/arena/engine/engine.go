// Package engine implements turn resolution: the participant sampler, the
// special-event resolver, the god-mode action pipeline, and the turn
// orchestrator that composes them with the catalog selector and the
// director into one atomic state transition per advance.
package engine

import (
	"time"

	"github.com/louisbranch/lastarena/internal/arena/catalog"
	"github.com/louisbranch/lastarena/internal/id"
)

// Rand is the draw source a turn consumes. A rng.Source satisfies it; tests
// substitute scripted sequences.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Engine resolves match turns. It holds only static configuration and
// injected effects; all per-match state lives in the MatchState passed to
// AdvanceTurn.
type Engine struct {
	templates   []catalog.Template
	now         func() time.Time
	idGenerator func() (string, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides event id generation, for tests.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(e *Engine) { e.idGenerator = gen }
}

// WithCatalog overrides the builtin event-template catalog.
func WithCatalog(templates []catalog.Template) Option {
	return func(e *Engine) { e.templates = templates }
}

// New creates an Engine backed by the builtin catalog.
func New(opts ...Option) *Engine {
	e := &Engine{
		templates:   catalog.Builtin(),
		now:         time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
