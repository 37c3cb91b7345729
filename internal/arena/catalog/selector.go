package catalog

import (
	"github.com/louisbranch/lastarena/internal/arena/domain"
	apperrors "github.com/louisbranch/lastarena/internal/errors"
)

// DefaultRepeatCap is the repeat count at which a template's weight
// collapses to zero.
const DefaultRepeatCap = 2

// HistoryWindow is how many recent events feed the repeat-avoidance bias.
const HistoryWindow = 4

// Rand is the draw source the selector needs.
type Rand interface {
	Float64() float64
}

// Select picks a template eligible for the phase, biased away from
// recently fired ids and types.
//
// Each candidate's weight is its base weight damped by how often its id
// and its type appear in the recent history; hitting repeatCap for either
// collapses the weight to zero. When every candidate is capped (small
// catalogs under heavy repetition) the candidates with the fewest type
// repeats, then fewest id repeats, are roulette-sampled at base weight so
// selection still succeeds.
//
// Select fails only when no template at all is eligible for the phase,
// which is a catalog-configuration defect rather than a runtime condition.
func Select(templates []Template, phase domain.CyclePhase, recent []string, r Rand, repeatCap int) (Template, error) {
	if repeatCap <= 0 {
		repeatCap = DefaultRepeatCap
	}

	var eligible []Template
	for _, t := range templates {
		if t.EligibleFor(phase) {
			eligible = append(eligible, t)
		}
	}
	if len(eligible) == 0 {
		return Template{}, apperrors.Newf(apperrors.CodeCatalogConfiguration,
			"no event templates eligible for phase %s", phase)
	}

	typeByID := make(map[string]domain.EventType, len(templates))
	for _, t := range templates {
		typeByID[t.ID] = t.Type
	}

	idRepeats := make(map[string]int, len(recent))
	typeRepeats := make(map[domain.EventType]int)
	for _, recentID := range recent {
		idRepeats[recentID]++
		if eventType, ok := typeByID[recentID]; ok {
			typeRepeats[eventType]++
		}
	}

	weights := make([]float64, len(eligible))
	total := 0.0
	for i, t := range eligible {
		ids := idRepeats[t.ID]
		types := typeRepeats[t.Type]
		if ids >= repeatCap || types >= repeatCap {
			continue
		}
		w := t.BaseWeight / float64((1+ids*2)*(1+types*3))
		weights[i] = w
		total += w
	}

	if total > 0 {
		return roulette(eligible, weights, total, r), nil
	}

	// Every candidate hit the cap: fall back to the least-repeated subset.
	subset := minBy(eligible, func(t Template) int { return typeRepeats[t.Type] })
	subset = minBy(subset, func(t Template) int { return idRepeats[t.ID] })

	fallbackWeights := make([]float64, len(subset))
	fallbackTotal := 0.0
	for i, t := range subset {
		w := t.BaseWeight
		if w <= 0 {
			w = 1
		}
		fallbackWeights[i] = w
		fallbackTotal += w
	}
	return roulette(subset, fallbackWeights, fallbackTotal, r), nil
}

// roulette samples one template by cumulative weight.
func roulette(templates []Template, weights []float64, total float64, r Rand) Template {
	target := r.Float64() * total
	cumulative := 0.0
	for i, t := range templates {
		cumulative += weights[i]
		if target < cumulative {
			return t
		}
	}
	return templates[len(templates)-1]
}

// minBy returns the subset of templates minimizing the key function.
func minBy(templates []Template, key func(Template) int) []Template {
	best := key(templates[0])
	for _, t := range templates[1:] {
		if k := key(t); k < best {
			best = k
		}
	}
	var out []Template
	for _, t := range templates {
		if key(t) == best {
			out = append(out, t)
		}
	}
	return out
}
