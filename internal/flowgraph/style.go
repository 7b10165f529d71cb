package flowgraph

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/psidex/flowmap/internal/commuting"
)

// Attribute keys of an Edge, used by Style to pick what drives color, width and
// hover text.
const (
	FieldOriginName      = "origin_name"
	FieldDestinationName = "destination_name"
	FieldPurpose         = "purpose"
	FieldFlow            = "flow"
	FieldWidth           = "width"
	FieldColor           = "color"
)

var knownFields = map[string]bool{
	FieldOriginName:      true,
	FieldDestinationName: true,
	FieldPurpose:         true,
	FieldFlow:            true,
	FieldWidth:           true,
	FieldColor:           true,
}

var ErrUnknownField = errors.New("unknown edge attribute")

// Attr returns the attribute named field formatted for display, and whether the
// field exists.
func (e Edge) Attr(field string) (string, bool) {
	switch field {
	case FieldOriginName:
		return e.OriginName, true
	case FieldDestinationName:
		return e.DestinationName, true
	case FieldPurpose:
		return e.Purpose.Label(), true
	case FieldFlow:
		return strconv.FormatUint(uint64(e.Flow), 10), true
	case FieldWidth:
		return strconv.FormatFloat(e.Width, 'f', 2, 64), true
	case FieldColor:
		return e.Color, true
	}
	return "", false
}

type HoverField struct {
	Label string `mapstructure:"label" json:"label"`
	Field string `mapstructure:"field" json:"field"`
}

// Style configures how renderers draw a FlowGraph.
type Style struct {
	Title          string       `mapstructure:"title" json:"title"`
	NodeColor      string       `mapstructure:"node_color" json:"nodeColor"`
	NodeLineColor  string       `mapstructure:"node_line_color" json:"nodeLineColor"`
	EdgeColorField string       `mapstructure:"edge_color_field" json:"edgeColorField"`
	WidthField     string       `mapstructure:"width_field" json:"widthField"`
	HoverFields    []HoverField `mapstructure:"hover_fields" json:"hoverFields"`
}

func DefaultStyle() Style {
	return Style{
		Title:          "Incoming and outgoing commuting flows",
		NodeColor:      "white",
		NodeLineColor:  BlackColor,
		EdgeColorField: FieldColor,
		WidthField:     FieldWidth,
		HoverFields: []HoverField{
			{Label: "Origin", Field: FieldOriginName},
			{Label: "Destination", Field: FieldDestinationName},
			{Label: "Commuters", Field: FieldFlow},
		},
	}
}

func (s Style) Validate() error {
	if s.EdgeColorField != FieldColor && s.EdgeColorField != FieldPurpose {
		return errors.Wrapf(ErrUnknownField, "edge_color_field %q must be color or purpose", s.EdgeColorField)
	}
	// Raw flows are far too large to be line widths; only the mapped width is accepted.
	if s.WidthField != FieldWidth {
		return errors.Wrapf(ErrUnknownField, "width_field %q", s.WidthField)
	}
	for _, h := range s.HoverFields {
		if !knownFields[h.Field] {
			return errors.Wrapf(ErrUnknownField, "hover field %q", h.Field)
		}
	}
	return nil
}

// PurposeColors color edges when EdgeColorField is FieldPurpose.
var PurposeColors = map[commuting.Purpose]string{
	commuting.Work:  "rgba(46, 139, 87, 0.75)",
	commuting.Study: "rgba(120, 94, 166, 0.75)",
	commuting.Total: InternalColor,
}

// EdgeColor resolves the color of e through EdgeColorField.
func (s Style) EdgeColor(e Edge) string {
	if s.EdgeColorField == FieldPurpose {
		if c, ok := PurposeColors[e.Purpose]; ok {
			return c
		}
	}
	return e.Color
}

// EdgeWidth is the line width of e. WidthField only accepts FieldWidth, the
// width computed over the current edge set.
func (s Style) EdgeWidth(e Edge) float64 {
	return e.Width
}

// Hover returns the hover lines of e as "Label: value" pairs.
func (s Style) Hover(e Edge) []string {
	lines := make([]string, 0, len(s.HoverFields))
	for _, h := range s.HoverFields {
		v, _ := e.Attr(h.Field)
		lines = append(lines, h.Label+": "+v)
	}
	return lines
}
