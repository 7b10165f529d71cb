package commuting

import (
	"github.com/psidex/flowmap/internal/lib"
)

// Node sizes and markers, the anchor region gets the larger square.
const (
	MinNodeSize = 7
	MaxNodeSize = 10

	MarkerSquare = "square"
	MarkerCircle = "circle"
)

// Node is a region drawn on the flow map for the current selection.
type Node struct {
	Code   Region  `json:"code"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   int     `json:"size"`
	Marker string  `json:"marker"`
}

func (n Node) IsAnchor() bool {
	return n.Marker == MarkerSquare
}

// SelectionPredicate matches the rows shown for anchor and purpose: flows touching
// the anchor region that aren't internal to a single region.
func SelectionPredicate(anchor Region, purpose Purpose) Predicate {
	return And(
		Or(OriginIs(anchor), DestinationIs(anchor)),
		IsInternal(false),
		PurposeIs(purpose),
	)
}

// Select filters the base edge table down to the rows relevant for anchor and
// purpose. For Total every purpose is kept, ready for Aggregate.
func Select(edges []EdgeRecord, anchor Region, purpose Purpose) []EdgeRecord {
	return Filter(edges, SelectionPredicate(anchor, purpose))
}

// DeriveNodes restricts the base node table to the regions appearing in selected,
// keeping table order.
func DeriveNodes(nodes []NodeRecord, selected []EdgeRecord, anchor Region) []Node {
	touched := lib.NewSet[Region]()
	for _, e := range selected {
		touched.Add(e.Origin)
		touched.Add(e.Destination)
	}

	out := []Node{}
	for _, n := range nodes {
		if !touched.Contains(n.Code) {
			continue
		}
		node := Node{Code: n.Code, X: n.X, Y: n.Y, Size: MinNodeSize, Marker: MarkerCircle}
		if n.Code == anchor {
			node.Size = MaxNodeSize
			node.Marker = MarkerSquare
		}
		out = append(out, node)
	}
	return out
}
