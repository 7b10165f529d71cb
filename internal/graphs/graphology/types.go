package graphology

type NodeAttributes struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	// Type is the sigma.js node program, "square" or "circle".
	Type string `json:"type"`
}

type Node struct {
	Key        string         `json:"key"`
	Attributes NodeAttributes `json:"attributes"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type EdgeAttributes struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Label string  `json:"label"`
	Flow  uint32  `json:"flow"`
	// Curve holds the sampled Bézier points, for front ends that draw polylines.
	Curve []Point `json:"curve"`
}

type Edge struct {
	Key        string         `json:"key"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Attributes EdgeAttributes `json:"attributes"`
}

type GraphOptions struct {
	Type           string `json:"type"`
	Multi          bool   `json:"multi"`
	AllowSelfLoops bool   `json:"allowSelfLoops"`
}

type GraphAttributes struct {
	Name string `json:"name"`
}

type SerializedGraph struct {
	Attributes GraphAttributes `json:"attributes"`
	Options    GraphOptions    `json:"options"`
	Nodes      []Node          `json:"nodes"`
	Edges      []Edge          `json:"edges"`
}
