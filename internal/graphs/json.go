package graphs

import (
	"encoding/json"
	"io"

	"github.com/psidex/flowmap/internal/flowgraph"
)

// JSON defines a FileRenderer that writes the whole view, graph, indicators and
// breakdowns, as a JSON document.
type JSON struct {
	Indent bool
}

var _ FileRenderer = (*JSON)(nil)

func NewJSON(indent bool) JSON {
	return JSON{Indent: indent}
}

func (j JSON) Extension() string {
	return "json"
}

func (j JSON) Render(w io.Writer, v *flowgraph.View) error {
	encoder := json.NewEncoder(w)
	if j.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
