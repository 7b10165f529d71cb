package vis

type color struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

type nodeData struct {
	ID    int     `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shape string  `json:"shape"`
	Size  int     `json:"size"`
	Color color   `json:"color"`
}

type node struct {
	Type string   `json:"type"` // always "node"
	Data nodeData `json:"data"`
}

func newNode() node {
	return node{Type: "node"}
}

type edgeData struct {
	ID    string  `json:"id"`
	From  int     `json:"from"`
	To    int     `json:"to"`
	Width float64 `json:"width"`
	Title string  `json:"title"`
}

type edge struct {
	Type string   `json:"type"` // always "edge"
	Data edgeData `json:"data"`

	// Curve is the scaled Bézier polyline, as [x, y] pairs, drawn in Color.
	Curve [][2]float64 `json:"curve"`
	Color string       `json:"color"`
}

func newEdge() edge {
	return edge{Type: "edge"}
}
