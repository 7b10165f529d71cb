package graphs

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/psidex/flowmap/internal/flowgraph"
)

// Renderer hands the flow graph of a selection to a drawing front end.
type Renderer interface {
	// Render must not modify v.
	Render(w io.Writer, v *flowgraph.View) error
}

// FileRenderer extends the Renderer interface to accommodate CLI functionality.
type FileRenderer interface {
	Renderer

	// Extension is the file extension of the output, without the dot.
	Extension() string
}

// RenderToFile renders v to filename plus the renderer's extension and returns the
// full path written.
func RenderToFile(r FileRenderer, v *flowgraph.View, filename string) (string, error) {
	filename = filename + "." + r.Extension()

	f, err := os.Create(filename)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", filename)
	}
	defer f.Close()

	if err := r.Render(f, v); err != nil {
		return "", errors.Wrapf(err, "rendering %s", filename)
	}
	return filename, f.Close()
}
