package commuting

// Predicate decides whether an edge row belongs to a selection.
type Predicate func(EdgeRecord) bool

func OriginIs(r Region) Predicate {
	return func(e EdgeRecord) bool { return e.Origin == r }
}

func DestinationIs(r Region) Predicate {
	return func(e EdgeRecord) bool { return e.Destination == r }
}

// PurposeIs matches rows of the given purpose. Total matches every row.
func PurposeIs(p Purpose) Predicate {
	if p == Total {
		return func(EdgeRecord) bool { return true }
	}
	return func(e EdgeRecord) bool { return e.Purpose == p }
}

func IsInternal(internal bool) Predicate {
	return func(e EdgeRecord) bool { return e.Internal == internal }
}

// And is true when every predicate is. An empty And matches everything.
func And(preds ...Predicate) Predicate {
	return func(e EdgeRecord) bool {
		for _, p := range preds {
			if !p(e) {
				return false
			}
		}
		return true
	}
}

// Or is true when any predicate is. An empty Or matches nothing.
func Or(preds ...Predicate) Predicate {
	return func(e EdgeRecord) bool {
		for _, p := range preds {
			if p(e) {
				return true
			}
		}
		return false
	}
}

func Not(p Predicate) Predicate {
	return func(e EdgeRecord) bool { return !p(e) }
}

// Filter returns the rows matching p in table order, in a new slice.
func Filter(edges []EdgeRecord, p Predicate) []EdgeRecord {
	out := []EdgeRecord{}
	for _, e := range edges {
		if p(e) {
			out = append(out, e)
		}
	}
	return out
}

// SumFlow adds up the flow of the rows matching p.
func SumFlow(edges []EdgeRecord, p Predicate) uint64 {
	var total uint64
	for _, e := range edges {
		if p(e) {
			total += uint64(e.Flow)
		}
	}
	return total
}
