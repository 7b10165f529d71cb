package graphology

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/graphs"
)

// Graphology defines a FileRenderer that serializes the flow graph in graphology's
// JSON format, ready for graph.import() on a sigma.js front end. Node keys are
// region codes, edge keys are "origin>destination".
type Graphology struct {
	style flowgraph.Style
}

var _ graphs.FileRenderer = (*Graphology)(nil)

func NewGraphology(style flowgraph.Style) *Graphology {
	return &Graphology{style: style}
}

func (g Graphology) Extension() string {
	return "json"
}

func (g Graphology) serialize(v *flowgraph.View) *SerializedGraph {
	fg := v.Graph
	out := &SerializedGraph{
		Attributes: GraphAttributes{Name: g.style.Title},
		// Each direction of a pair is its own edge, never more than one.
		Options: GraphOptions{Type: "directed", Multi: false, AllowSelfLoops: false},
		Nodes:   make([]Node, 0, len(fg.Nodes)),
		Edges:   make([]Edge, 0, len(fg.Edges)),
	}

	for _, n := range fg.Nodes {
		out.Nodes = append(out.Nodes, Node{
			Key: strconv.Itoa(int(n.Code)),
			Attributes: NodeAttributes{
				X: n.X, Y: n.Y, Size: float64(n.Size),
				Label: n.Code.Name(), Color: g.style.NodeColor,
				Type: n.Marker,
			},
		})
	}

	for i, e := range fg.Edges {
		source := strconv.Itoa(int(e.Origin))
		target := strconv.Itoa(int(e.Destination))
		curve := make([]Point, len(fg.Curves[i]))
		for j, p := range fg.Curves[i] {
			curve[j] = Point{X: p.X, Y: p.Y}
		}
		out.Edges = append(out.Edges, Edge{
			Key:    source + ">" + target,
			Source: source,
			Target: target,
			Attributes: EdgeAttributes{
				Size:  g.style.EdgeWidth(e),
				Color: g.style.EdgeColor(e),
				Label: strings.Join(g.style.Hover(e), "\n"),
				Flow:  e.Flow,
				Curve: curve,
			},
		})
	}

	return out
}

func (g Graphology) Render(w io.Writer, v *flowgraph.View) error {
	return json.NewEncoder(w).Encode(g.serialize(v))
}
