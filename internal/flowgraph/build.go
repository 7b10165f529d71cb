package flowgraph

import (
	"github.com/cockroachdb/errors"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/curves"
)

// View is everything the dashboard shows for one selection.
type View struct {
	Graph      *FlowGraph             `json:"graph"`
	Indicators commuting.Indicators   `json:"indicators"`
	IncomingBy []commuting.RegionFlow `json:"incomingBy"`
	OutgoingBy []commuting.RegionFlow `json:"outgoingBy"`
}

// Build runs the full pipeline for anchor and purpose over the base tables. Nothing
// is cached, every call recomputes from t. A selection with no flows yields an
// empty graph, not an error.
func Build(t *commuting.Tables, anchor commuting.Region, purpose commuting.Purpose) (*View, error) {
	if err := commuting.CheckRegion(anchor); err != nil {
		return nil, err
	}
	if !purpose.Valid() {
		return nil, errors.Wrapf(commuting.ErrUnknownPurpose, "%d", int(purpose))
	}

	selected := commuting.Select(t.Edges, anchor, purpose)
	nodes := commuting.DeriveNodes(t.Nodes, selected, anchor)
	aggregated := commuting.Aggregate(selected, purpose)
	edges, curveSet := Assemble(nodes, aggregated, anchor, curves.DefaultSteps)

	g := &FlowGraph{
		Anchor:  anchor,
		Purpose: purpose,
		Nodes:   nodes,
		Edges:   edges,
		Curves:  curveSet,
	}
	if b, ok := t.Boundary(anchor); ok {
		g.Boundary = &b
	}

	return &View{
		Graph:      g,
		Indicators: commuting.ComputeIndicators(t.Edges, anchor, purpose),
		IncomingBy: commuting.Breakdown(t.Edges, anchor, purpose, commuting.Incoming),
		OutgoingBy: commuting.Breakdown(t.Edges, anchor, purpose, commuting.Outgoing),
	}, nil
}
