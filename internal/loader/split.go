package loader

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/cockroachdb/errors"
)

// ErrMalformed marks input that doesn't have the expected columns or types.
var ErrMalformed = errors.New("malformed table")

// splitTable is the "split" orientation of a serialized data frame:
//
//	{"columns": ["cod_reg", "x", "y"], "index": [0, 1], "data": [[1, 7.5, 45.1], ...]}
type splitTable struct {
	Columns []string            `json:"columns"`
	Data    [][]json.RawMessage `json:"data"`
}

func decodeSplit(b []byte) (*splitTable, error) {
	t := &splitTable{}
	if err := json.Unmarshal(b, t); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decoding split table"), ErrMalformed)
	}
	if len(t.Columns) == 0 {
		return nil, errors.Wrap(ErrMalformed, "no columns")
	}
	return t, nil
}

// columns resolves the positions of the wanted columns.
func (t *splitTable) columns(names ...string) (map[string]int, error) {
	pos := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		pos[c] = i
	}
	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := pos[n]
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "missing column %q", n)
		}
		out[n] = i
	}
	return out, nil
}

// cell is a typed accessor over one row, recording the first error it meets so that
// callers can read every column and check once.
type cell struct {
	row  []json.RawMessage
	idx  int
	cols map[string]int
	err  error
}

func (c *cell) raw(col string) json.RawMessage {
	if c.err != nil {
		return nil
	}
	i := c.cols[col]
	if i >= len(c.row) {
		c.err = errors.Wrapf(ErrMalformed, "row %d: missing value for %q", c.idx, col)
		return nil
	}
	// Unmarshalling null leaves the target untouched, so it must be caught here.
	if bytes.Equal(bytes.TrimSpace(c.row[i]), []byte("null")) {
		c.err = errors.Wrapf(ErrMalformed, "row %d: null value for %q", c.idx, col)
		return nil
	}
	return c.row[i]
}

func (c *cell) fail(col string, err error) {
	if c.err == nil {
		c.err = errors.Mark(errors.Wrapf(err, "row %d, column %q", c.idx, col), ErrMalformed)
	}
}

func (c *cell) readFloat(col string) float64 {
	raw := c.raw(col)
	if raw == nil {
		return 0
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		c.fail(col, err)
	}
	return v
}

// readUint reads a non-negative integer column. Integral floats ("12.0") are accepted
// since frames serialize integer columns with missing values that way.
func (c *cell) readUint(col string, limit uint64) uint64 {
	v := c.readFloat(col)
	if c.err != nil {
		return 0
	}
	if v < 0 || v != math.Trunc(v) || v > float64(limit) {
		c.fail(col, errors.Newf("%v is not an integer in [0, %d]", v, limit))
		return 0
	}
	return uint64(v)
}

// readBool reads a boolean column, also accepting 0/1.
func (c *cell) readBool(col string) bool {
	raw := c.raw(col)
	if raw == nil {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil || (n != 0 && n != 1) {
		c.fail(col, errors.Newf("%s is not a boolean", string(raw)))
		return false
	}
	return n == 1
}

func (c *cell) readString(col string) string {
	raw := c.raw(col)
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.fail(col, err)
	}
	return s
}

func (c *cell) readFloats(col string) []float64 {
	raw := c.raw(col)
	if raw == nil {
		return nil
	}
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil {
		c.fail(col, err)
	}
	return v
}
