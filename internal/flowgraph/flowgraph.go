// Package flowgraph assembles the renderable flow graph of a selection: the regions
// involved, one curved edge per flow, and the visual attributes of both.
package flowgraph

import (
	"sort"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/curves"
)

// Colors of the dashboard.
const (
	BlackColor    = "rgba(47, 79, 79, 1)"
	IncomingColor = "rgba(0, 108, 151, 0.75)"
	OutgoingColor = "rgba(199, 81, 51, 0.75)"
	InternalColor = "rgba(47, 79, 79, 0.55)"
)

// Edge is a flow between two regions with its drawing attributes attached.
type Edge struct {
	Origin          commuting.Region  `json:"origin"`
	Destination     commuting.Region  `json:"destination"`
	OriginName      string            `json:"originName"`
	DestinationName string            `json:"destinationName"`
	Purpose         commuting.Purpose `json:"purpose"`
	Internal        bool              `json:"internal"`
	Flow            uint32            `json:"flow"`
	XO              float64           `json:"xo"`
	YO              float64           `json:"yo"`
	XD              float64           `json:"xd"`
	YD              float64           `json:"yd"`
	Width           float64           `json:"width"`
	Color           string            `json:"color"`
}

// IsIncoming reports whether the edge was colored as a flow into the anchor.
func (e Edge) IsIncoming() bool {
	return e.Color == IncomingColor
}

// FlowGraph is the node set, edge set and curve set of one selection. Curves[i] is
// the curve of Edges[i].
type FlowGraph struct {
	Anchor   commuting.Region    `json:"anchor"`
	Purpose  commuting.Purpose   `json:"purpose"`
	Nodes    []commuting.Node    `json:"nodes"`
	Edges    []Edge              `json:"edges"`
	Curves   []curves.Curve      `json:"curves"`
	Boundary *commuting.Boundary `json:"-"`
}

func (g *FlowGraph) Empty() bool {
	return len(g.Edges) == 0
}

// Node looks up a node of the graph by region code.
func (g *FlowGraph) Node(code commuting.Region) (commuting.Node, bool) {
	for _, n := range g.Nodes {
		if n.Code == code {
			return n, true
		}
	}
	return commuting.Node{}, false
}

// Assemble joins edges with the coordinates of nodes and attaches names, curves,
// widths and colors. Edges whose endpoints aren't in nodes are dropped. The result
// is ordered by ascending flow so the largest flows are drawn last, on top.
func Assemble(nodes []commuting.Node, edges []commuting.EdgeRecord, anchor commuting.Region, steps int) ([]Edge, []curves.Curve) {
	byCode := make(map[commuting.Region]commuting.Node, len(nodes))
	for _, n := range nodes {
		byCode[n.Code] = n
	}

	out := []Edge{}
	for _, rec := range edges {
		o, ok := byCode[rec.Origin]
		if !ok {
			continue
		}
		d, ok := byCode[rec.Destination]
		if !ok {
			continue
		}
		e := Edge{
			Origin:          rec.Origin,
			Destination:     rec.Destination,
			OriginName:      rec.Origin.Name(),
			DestinationName: rec.Destination.Name(),
			Purpose:         rec.Purpose,
			Internal:        rec.Internal,
			Flow:            rec.Flow,
			XO:              o.X,
			YO:              o.Y,
			XD:              d.X,
			YD:              d.Y,
			Color:           OutgoingColor,
		}
		if rec.Destination == anchor {
			e.Color = IncomingColor
		}
		out = append(out, e)
	}

	if len(out) > 0 {
		minFlow, maxFlow := out[0].Flow, out[0].Flow
		for _, e := range out[1:] {
			minFlow = min(minFlow, e.Flow)
			maxFlow = max(maxFlow, e.Flow)
		}
		for i := range out {
			out[i].Width = curves.Width(float64(out[i].Flow), float64(minFlow), float64(maxFlow))
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Flow < out[j].Flow })

	curveSet := make([]curves.Curve, len(out))
	for i, e := range out {
		curveSet[i] = curves.Bezier(curves.Point{X: e.XO, Y: e.YO}, curves.Point{X: e.XD, Y: e.YD}, steps)
	}
	return out, curveSet
}
