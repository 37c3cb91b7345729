package engine

// Participant-count sampling constants. Multi-participant events are rare
// by design: the chance for k participants decays geometrically from
// baseMultiChance at k=3, and the total multi chance never exceeds
// maxMultiChance.
const (
	defaultEventSize = 2
	maxEventSize     = 6
	baseMultiChance  = 0.01
	maxMultiChance   = 0.02
)

// SampleCount picks how many participants engage in this turn's event.
// With two or fewer alive everyone left is included, forcing the final
// confrontation. Otherwise a single draw decides between the default duel
// size and a rare larger engagement.
func SampleCount(aliveCount int, r Rand) int {
	if aliveCount <= defaultEventSize {
		return aliveCount
	}

	limit := maxEventSize
	if aliveCount < limit {
		limit = aliveCount
	}

	roll := r.Float64()
	cumulative := 0.0
	chance := baseMultiChance
	for k := 3; k <= limit; k++ {
		if cumulative+chance > maxMultiChance {
			chance = maxMultiChance - cumulative
		}
		if chance <= 0 {
			break
		}
		cumulative += chance
		if roll < cumulative {
			return k
		}
		chance /= 2
	}
	return defaultEventSize
}
