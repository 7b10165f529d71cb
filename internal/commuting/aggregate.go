package commuting

import "sort"

// Aggregate merges the rows of each origin/destination pair when purpose is Total.
// The merged row carries the summed flow and every other field from the first row
// of the pair in table order; rows of the same pair only differ by purpose, so
// nothing observable is lost. Merged rows come out ordered by (origin, destination).
//
// For a specific purpose the rows are returned unchanged, in a new slice.
func Aggregate(selected []EdgeRecord, purpose Purpose) []EdgeRecord {
	if purpose != Total {
		return append([]EdgeRecord{}, selected...)
	}

	index := make(map[PairKey]int)
	out := []EdgeRecord{}
	for _, e := range selected {
		if i, ok := index[e.Key()]; ok {
			out[i].Flow += e.Flow
			continue
		}
		index[e.Key()] = len(out)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Key().Less(out[j].Key())
	})
	return out
}
