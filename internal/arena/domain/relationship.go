package domain

import "sort"

// Relation labels a directed relationship edge between two participants.
type Relation string

// RelationEnemy marks an adversarial edge. An enemy edge in either
// direction counts as adversarial for event participant selection.
const RelationEnemy Relation = "enemy"

// IsValid reports whether the relation is a supported value.
func (r Relation) IsValid() bool {
	return r == RelationEnemy
}

// RelationshipGraph is a sparse directed participant-to-participant
// relation mapping. Mutual relations are stored as two independent edges.
type RelationshipGraph map[string]map[string]Relation

// Set records a one-directional relation edge.
func (g RelationshipGraph) Set(source, target string, rel Relation) {
	if source == "" || target == "" || source == target {
		return
	}
	edges, ok := g[source]
	if !ok {
		edges = make(map[string]Relation)
		g[source] = edges
	}
	edges[target] = rel
}

// SetMutual records the relation in both directions.
func (g RelationshipGraph) SetMutual(a, b string, rel Relation) {
	g.Set(a, b, rel)
	g.Set(b, a, rel)
}

// AreEnemies reports whether either direction between a and b carries an
// enemy edge.
func (g RelationshipGraph) AreEnemies(a, b string) bool {
	if edges, ok := g[a]; ok && edges[b] == RelationEnemy {
		return true
	}
	if edges, ok := g[b]; ok && edges[a] == RelationEnemy {
		return true
	}
	return false
}

// EnemyPairs returns every unordered enemy pair whose members both appear
// in ids. Pairs are returned in a deterministic order so seeded runs
// replay identically.
func (g RelationshipGraph) EnemyPairs(ids []string) [][2]string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	var pairs [][2]string
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if g.AreEnemies(sorted[i], sorted[j]) {
				pairs = append(pairs, [2]string{sorted[i], sorted[j]})
			}
		}
	}
	return pairs
}

// Clone returns a deep copy of the graph.
func (g RelationshipGraph) Clone() RelationshipGraph {
	out := make(RelationshipGraph, len(g))
	for source, edges := range g {
		cloned := make(map[string]Relation, len(edges))
		for target, rel := range edges {
			cloned[target] = rel
		}
		out[source] = cloned
	}
	return out
}
