package domain

// Location identifies one of the eight discrete arena locations.
type Location string

const (
	LocationCornucopia Location = "cornucopia"
	LocationForest     Location = "forest"
	LocationRiver      Location = "river"
	LocationLake       Location = "lake"
	LocationMeadow     Location = "meadow"
	LocationCaves      Location = "caves"
	LocationRuins      Location = "ruins"
	LocationCliffs     Location = "cliffs"
)

// Locations returns all arena locations in their canonical order. The order
// is load-bearing: participant starting positions are assigned round-robin
// over it, and adjacency follows it as a ring.
func Locations() []Location {
	return []Location{
		LocationCornucopia,
		LocationForest,
		LocationRiver,
		LocationLake,
		LocationMeadow,
		LocationCaves,
		LocationRuins,
		LocationCliffs,
	}
}

// IsValid reports whether the location is one of the eight arena locations.
func (l Location) IsValid() bool {
	for _, known := range Locations() {
		if l == known {
			return true
		}
	}
	return false
}

// Neighbors returns the two locations adjacent to l on the arena ring.
// Unknown locations have no neighbors.
func (l Location) Neighbors() []Location {
	all := Locations()
	for i, known := range all {
		if l == known {
			prev := all[(i+len(all)-1)%len(all)]
			next := all[(i+1)%len(all)]
			return []Location{prev, next}
		}
	}
	return nil
}
