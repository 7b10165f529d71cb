package commuting

// Tables bundles the base tables. They're loaded once and only read afterwards, so a
// single value can back any number of concurrent queries.
type Tables struct {
	Edges      []EdgeRecord
	Nodes      []NodeRecord
	Boundaries []Boundary
}

// Boundary returns the outline of r, if one was loaded.
func (t *Tables) Boundary(r Region) (Boundary, bool) {
	for _, b := range t.Boundaries {
		if b.Code == r {
			return b, true
		}
	}
	return Boundary{}, false
}

// Regions returns the codes present in the node table.
func (t *Tables) Regions() []Region {
	out := make([]Region, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		out = append(out, n.Code)
	}
	return out
}
