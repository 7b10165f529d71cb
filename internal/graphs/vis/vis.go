package vis

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/graphs"
)

// canvasWidth is the width, in vis.js units, that node positions are scaled to.
const canvasWidth = 1000.0

// Vis defines a FileRenderer that renders to a HTML file which "replays" the flow
// graph using vis.js: nodes first, then edges from the lightest flow to the heaviest.
// Edges are drawn as the sampled Bézier curves, scaled like the nodes, so they bow
// the same way as in the other renderers.
type Vis struct {
	style flowgraph.Style
}

var _ graphs.FileRenderer = (*Vis)(nil)

func NewVis(style flowgraph.Style) *Vis {
	return &Vis{style: style}
}

func (v Vis) Extension() string {
	return "html"
}

// scaler maps projected coordinates onto the vis.js canvas. Screen y grows
// downwards, so y is flipped.
type scaler struct {
	minX, maxY, factor float64
}

func newScaler(nodes []commuting.Node) scaler {
	if len(nodes) == 0 {
		return scaler{factor: 1}
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	maxY := math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	factor := 1.0
	if maxX > minX {
		factor = canvasWidth / (maxX - minX)
	}
	return scaler{minX: minX, maxY: maxY, factor: factor}
}

func (s scaler) scale(x, y float64) (float64, float64) {
	return (x - s.minX) * s.factor, (s.maxY - y) * s.factor
}

func (v Vis) items(view *flowgraph.View) ([]string, error) {
	g := view.Graph
	s := newScaler(g.Nodes)
	out := make([]string, 0, len(g.Nodes)+len(g.Edges))

	for _, n := range g.Nodes {
		item := newNode()
		x, y := s.scale(n.X, n.Y)
		shape := "dot"
		if n.IsAnchor() {
			shape = "square"
		}
		item.Data = nodeData{
			ID:    int(n.Code),
			Label: n.Code.Name(),
			X:     x,
			Y:     y,
			Shape: shape,
			Size:  n.Size,
			Color: color{Background: v.style.NodeColor, Border: v.style.NodeLineColor},
		}
		b, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}

	// Edges are already sorted by ascending flow.
	for i, e := range g.Edges {
		item := newEdge()
		item.Data = edgeData{
			ID:    strconv.Itoa(int(e.Origin)) + ">" + strconv.Itoa(int(e.Destination)),
			From:  int(e.Origin),
			To:    int(e.Destination),
			Width: v.style.EdgeWidth(e),
			Title: strings.Join(v.style.Hover(e), "\n"),
		}
		item.Color = v.style.EdgeColor(e)
		item.Curve = make([][2]float64, len(g.Curves[i]))
		for j, p := range g.Curves[i] {
			x, y := s.scale(p.X, p.Y)
			item.Curve[j] = [2]float64{x, y}
		}
		b, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, string(b))
	}
	return out, nil
}

func (v Vis) Render(w io.Writer, view *flowgraph.View) error {
	items, err := v.items(view)
	if err != nil {
		return err
	}
	body := "[]"
	if len(items) > 0 {
		body = "[\n" + strings.Join(items, ",\n") + "\n]"
	}
	_, err = fmt.Fprintf(w, page, html.EscapeString(v.style.Title), body)
	return err
}
