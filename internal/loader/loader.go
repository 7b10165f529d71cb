// Package loader reads the base commuting tables from local files or over HTTP.
package loader

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/corpix/uarand"

	"github.com/psidex/flowmap/internal/commuting"
)

// Sources names where each table is read from. Boundaries is optional.
type Sources struct {
	Edges      string
	Nodes      string
	Boundaries string
}

type Loader struct {
	client *http.Client
	logger *slog.Logger
}

func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load reads and validates every table named by src.
func (l *Loader) Load(ctx context.Context, src Sources) (*commuting.Tables, error) {
	t := &commuting.Tables{}

	b, err := l.read(ctx, src.Edges)
	if err != nil {
		return nil, err
	}
	if t.Edges, err = ParseEdges(b); err != nil {
		return nil, errors.Wrapf(err, "edges %s", src.Edges)
	}

	if b, err = l.read(ctx, src.Nodes); err != nil {
		return nil, err
	}
	if t.Nodes, err = ParseNodes(b); err != nil {
		return nil, errors.Wrapf(err, "nodes %s", src.Nodes)
	}

	if src.Boundaries != "" {
		if b, err = l.read(ctx, src.Boundaries); err != nil {
			return nil, err
		}
		if t.Boundaries, err = ParseBoundaries(b); err != nil {
			return nil, errors.Wrapf(err, "boundaries %s", src.Boundaries)
		}
	}

	l.logger.Info("loaded tables",
		"edges", len(t.Edges), "nodes", len(t.Nodes), "boundaries", len(t.Boundaries))
	return t, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, errors.New("empty table source")
	}
	if !isURL(src) {
		l.logger.Debug("reading table file", "path", src)
		b, err := os.ReadFile(src)
		return b, errors.Wrapf(err, "reading %s", src)
	}

	l.logger.Debug("fetching table", "url", src)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "building request for %s", src)
	}
	req.Header.Set("User-Agent", uarand.GetRandom())

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", src)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("fetching %s: got non-OK status code: %v", src, resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	return b, errors.Wrapf(err, "reading body of %s", src)
}

// ParseEdges decodes the edge table (motivo, interno, flussi, reg_o, reg_d, x_o, y_o,
// x_d, y_d) and checks every row.
func ParseEdges(b []byte) ([]commuting.EdgeRecord, error) {
	t, err := decodeSplit(b)
	if err != nil {
		return nil, err
	}
	cols, err := t.columns("motivo", "interno", "flussi", "reg_o", "reg_d", "x_o", "y_o", "x_d", "y_d")
	if err != nil {
		return nil, err
	}

	out := make([]commuting.EdgeRecord, 0, len(t.Data))
	for i, row := range t.Data {
		c := &cell{row: row, idx: i, cols: cols}
		motivo := c.readString("motivo")
		e := commuting.EdgeRecord{
			Internal:    c.readBool("interno"),
			Flow:        uint32(c.readUint("flussi", math.MaxUint32)),
			Origin:      commuting.Region(c.readUint("reg_o", math.MaxUint8)),
			Destination: commuting.Region(c.readUint("reg_d", math.MaxUint8)),
			XO:          c.readFloat("x_o"),
			YO:          c.readFloat("y_o"),
			XD:          c.readFloat("x_d"),
			YD:          c.readFloat("y_d"),
		}
		if c.err != nil {
			return nil, c.err
		}
		if err := checkEdge(&e, motivo); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "row %d", i), ErrMalformed)
		}
		out = append(out, e)
	}
	return out, nil
}

func checkEdge(e *commuting.EdgeRecord, motivo string) error {
	p, err := commuting.ParsePurpose(motivo)
	if err != nil {
		return err
	}
	if p == commuting.Total {
		return errors.Newf("purpose %q is an aggregate, not a row value", motivo)
	}
	e.Purpose = p
	if err := commuting.CheckRegion(e.Origin); err != nil {
		return err
	}
	if err := commuting.CheckRegion(e.Destination); err != nil {
		return err
	}
	if e.Internal != (e.Origin == e.Destination) {
		return errors.Newf("interno=%t for %d -> %d", e.Internal, e.Origin, e.Destination)
	}
	return nil
}

// ParseNodes decodes the node table (cod_reg, x, y).
func ParseNodes(b []byte) ([]commuting.NodeRecord, error) {
	t, err := decodeSplit(b)
	if err != nil {
		return nil, err
	}
	cols, err := t.columns("cod_reg", "x", "y")
	if err != nil {
		return nil, err
	}

	seen := make(map[commuting.Region]bool, len(t.Data))
	out := make([]commuting.NodeRecord, 0, len(t.Data))
	for i, row := range t.Data {
		c := &cell{row: row, idx: i, cols: cols}
		n := commuting.NodeRecord{
			Code: commuting.Region(c.readUint("cod_reg", math.MaxUint8)),
			X:    c.readFloat("x"),
			Y:    c.readFloat("y"),
		}
		if c.err != nil {
			return nil, c.err
		}
		if seen[n.Code] {
			return nil, errors.Wrapf(ErrMalformed, "row %d: duplicate region %d", i, n.Code)
		}
		seen[n.Code] = true
		out = append(out, n)
	}
	return out, nil
}

// ParseBoundaries decodes region outlines (cod_reg, den_reg, x, y) where x and y are
// coordinate arrays of equal length.
func ParseBoundaries(b []byte) ([]commuting.Boundary, error) {
	t, err := decodeSplit(b)
	if err != nil {
		return nil, err
	}
	cols, err := t.columns("cod_reg", "den_reg", "x", "y")
	if err != nil {
		return nil, err
	}

	out := make([]commuting.Boundary, 0, len(t.Data))
	for i, row := range t.Data {
		c := &cell{row: row, idx: i, cols: cols}
		bd := commuting.Boundary{
			Code: commuting.Region(c.readUint("cod_reg", math.MaxUint8)),
			Name: c.readString("den_reg"),
			X:    c.readFloats("x"),
			Y:    c.readFloats("y"),
		}
		if c.err != nil {
			return nil, c.err
		}
		if len(bd.X) != len(bd.Y) {
			return nil, errors.Wrapf(ErrMalformed, "row %d: %d x values, %d y values", i, len(bd.X), len(bd.Y))
		}
		out = append(out, bd)
	}
	return out, nil
}
