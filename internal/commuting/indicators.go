package commuting

import "sort"

// Indicators are the scalar commuter counts shown next to the flow map.
type Indicators struct {
	Incoming uint64 `json:"incoming"`
	Outgoing uint64 `json:"outgoing"`
	Internal uint64 `json:"internal"`
}

// ComputeIndicators sums the flows into, out of and within anchor for purpose.
func ComputeIndicators(edges []EdgeRecord, anchor Region, purpose Purpose) Indicators {
	byPurpose := PurposeIs(purpose)
	return Indicators{
		Incoming: SumFlow(edges, And(DestinationIs(anchor), IsInternal(false), byPurpose)),
		Outgoing: SumFlow(edges, And(OriginIs(anchor), IsInternal(false), byPurpose)),
		Internal: SumFlow(edges, And(OriginIs(anchor), IsInternal(true), byPurpose)),
	}
}

type Direction int

const (
	Incoming Direction = iota
	Outgoing
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// RegionFlow is the number of commuters exchanged with one counterpart region.
type RegionFlow struct {
	Region Region `json:"region"`
	Name   string `json:"name"`
	Flow   uint64 `json:"flow"`
}

// Breakdown lists, per counterpart region, the commuters entering anchor (Incoming,
// by region of origin) or leaving it (Outgoing, by region of destination). Largest
// flows come first.
func Breakdown(edges []EdgeRecord, anchor Region, purpose Purpose, dir Direction) []RegionFlow {
	var pred Predicate
	if dir == Incoming {
		pred = And(DestinationIs(anchor), IsInternal(false), PurposeIs(purpose))
	} else {
		pred = And(OriginIs(anchor), IsInternal(false), PurposeIs(purpose))
	}

	sums := make(map[Region]uint64)
	for _, e := range Filter(edges, pred) {
		other := e.Origin
		if dir == Outgoing {
			other = e.Destination
		}
		sums[other] += uint64(e.Flow)
	}

	out := make([]RegionFlow, 0, len(sums))
	for r, flow := range sums {
		out = append(out, RegionFlow{Region: r, Name: r.Name(), Flow: flow})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Flow != out[j].Flow {
			return out[i].Flow > out[j].Flow
		}
		return out[i].Region < out[j].Region
	})
	return out
}
