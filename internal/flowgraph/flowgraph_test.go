package flowgraph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/curves"
)

func row(p commuting.Purpose, o, d commuting.Region, flow uint32) commuting.EdgeRecord {
	return commuting.EdgeRecord{Purpose: p, Internal: o == d, Flow: flow, Origin: o, Destination: d}
}

func sampleTables() *commuting.Tables {
	return &commuting.Tables{
		Edges: []commuting.EdgeRecord{
			row(commuting.Work, 12, 12, 1_500_000),
			row(commuting.Work, 12, 9, 3_000),
			row(commuting.Study, 12, 9, 800),
			row(commuting.Work, 9, 12, 2_500),
			row(commuting.Study, 9, 12, 1_200),
			row(commuting.Work, 10, 12, 9_000),
			row(commuting.Work, 12, 15, 4_000),
			row(commuting.Study, 15, 12, 6_000),
			row(commuting.Work, 9, 10, 7_000),
		},
		Nodes: []commuting.NodeRecord{
			{Code: 9, X: 0, Y: 10},
			{Code: 10, X: 10, Y: 10},
			{Code: 12, X: 10, Y: 0},
			{Code: 15, X: 20, Y: -10},
			{Code: 19, X: 20, Y: -30},
		},
		Boundaries: []commuting.Boundary{
			{Code: 12, Name: "Lazio", X: []float64{9, 11, 11, 9}, Y: []float64{-1, -1, 1, 1}},
		},
	}
}

func TestBuild_Work(t *testing.T) {
	v, err := Build(sampleTables(), 12, commuting.Work)
	require.NoError(t, err)
	g := v.Graph

	require.Len(t, g.Edges, 4)
	require.Len(t, g.Curves, len(g.Edges))
	assert.Len(t, g.Nodes, 4)
	require.NotNil(t, g.Boundary)
	assert.Equal(t, "Lazio", g.Boundary.Name)

	for i := 1; i < len(g.Edges); i++ {
		assert.LessOrEqual(t, g.Edges[i-1].Flow, g.Edges[i].Flow)
	}

	for i, e := range g.Edges {
		c := g.Curves[i]
		assert.Equal(t, curves.Point{X: e.XO, Y: e.YO}, c[0])
		assert.Equal(t, curves.Point{X: e.XD, Y: e.YD}, c[len(c)-1])

		if e.Destination == 12 {
			assert.Equal(t, IncomingColor, e.Color)
			assert.True(t, e.IsIncoming())
		} else {
			assert.Equal(t, 12, int(e.Origin))
			assert.Equal(t, OutgoingColor, e.Color)
		}
	}

	first, last := g.Edges[0], g.Edges[len(g.Edges)-1]
	assert.Equal(t, curves.MinWidth, first.Width)
	assert.InDelta(t, curves.MaxWidth, last.Width, 1e-9)
	assert.Equal(t, "Umbria", last.OriginName)
	assert.Equal(t, "Lazio", last.DestinationName)

	assert.Equal(t, uint64(11_500), v.Indicators.Incoming)
	assert.Equal(t, uint64(7_000), v.Indicators.Outgoing)
	assert.Equal(t, uint64(1_500_000), v.Indicators.Internal)
	require.NotEmpty(t, v.IncomingBy)
	assert.Equal(t, commuting.Region(10), v.IncomingBy[0].Region)
}

func TestBuild_Total(t *testing.T) {
	v, err := Build(sampleTables(), 12, commuting.Total)
	require.NoError(t, err)

	pairs := map[commuting.PairKey]uint32{}
	for _, e := range v.Graph.Edges {
		k := commuting.PairKey{Origin: e.Origin, Destination: e.Destination}
		_, dup := pairs[k]
		assert.False(t, dup)
		pairs[k] = e.Flow
	}
	assert.Equal(t, uint32(3_700), pairs[commuting.PairKey{Origin: 9, Destination: 12}])
	assert.Equal(t, uint32(3_800), pairs[commuting.PairKey{Origin: 12, Destination: 9}])
	assert.Equal(t, uint64(18_700), v.Indicators.Incoming)
}

func TestBuild_EmptySelection(t *testing.T) {
	v, err := Build(sampleTables(), 19, commuting.Study)
	require.NoError(t, err)
	assert.True(t, v.Graph.Empty())
	assert.Empty(t, v.Graph.Nodes)
	assert.Empty(t, v.Graph.Curves)
	assert.Nil(t, v.Graph.Boundary)
	assert.Zero(t, v.Indicators)
}

func TestBuild_InvalidSelection(t *testing.T) {
	_, err := Build(sampleTables(), 42, commuting.Work)
	assert.ErrorIs(t, err, commuting.ErrUnknownRegion)

	_, err = Build(sampleTables(), 12, commuting.Purpose(9))
	assert.ErrorIs(t, err, commuting.ErrUnknownPurpose)
}

func TestAssemble_EqualFlows(t *testing.T) {
	nodes := []commuting.Node{{Code: 1, X: 0, Y: 0}, {Code: 2, X: 10, Y: 0}, {Code: 3, X: 0, Y: 10}}
	edges := []commuting.EdgeRecord{row(commuting.Work, 1, 2, 500), row(commuting.Work, 3, 1, 500)}

	out, cs := Assemble(nodes, edges, 1, curves.DefaultSteps)
	require.Len(t, out, 2)
	require.Len(t, cs, 2)
	for _, e := range out {
		assert.Equal(t, curves.MinWidth, e.Width)
	}
	// Stable order for equal flows.
	assert.Equal(t, commuting.Region(2), out[0].Destination)
}

func TestAssemble_DropsUnknownEndpoints(t *testing.T) {
	nodes := []commuting.Node{{Code: 1}, {Code: 2, X: 1}}
	edges := []commuting.EdgeRecord{row(commuting.Work, 1, 2, 10), row(commuting.Work, 1, 7, 20)}

	out, cs := Assemble(nodes, edges, 1, curves.DefaultSteps)
	require.Len(t, out, 1)
	assert.Len(t, cs, 1)
	assert.Equal(t, commuting.Region(2), out[0].Destination)
}

func TestAssemble_Empty(t *testing.T) {
	out, cs := Assemble(nil, nil, 1, curves.DefaultSteps)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Empty(t, cs)
}

func TestFlowGraph_JSON(t *testing.T) {
	v, err := Build(sampleTables(), 12, commuting.Work)
	require.NoError(t, err)

	b, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded struct {
		Graph struct {
			Purpose string `json:"purpose"`
			Edges   []struct {
				Color string `json:"color"`
			} `json:"edges"`
			Curves [][]curves.Point `json:"curves"`
		} `json:"graph"`
	}
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "Work", decoded.Graph.Purpose)
	assert.Len(t, decoded.Graph.Curves, 4)
	assert.Len(t, decoded.Graph.Curves[0], curves.DefaultSteps+1)
}

func TestStyle(t *testing.T) {
	s := DefaultStyle()
	require.NoError(t, s.Validate())

	e := Edge{OriginName: "Toscana", DestinationName: "Lazio", Flow: 2500, Width: 3.5, Color: IncomingColor, Purpose: commuting.Study}
	assert.Equal(t, []string{"Origin: Toscana", "Destination: Lazio", "Commuters: 2500"}, s.Hover(e))
	assert.Equal(t, IncomingColor, s.EdgeColor(e))
	assert.Equal(t, 3.5, s.EdgeWidth(e))

	s.EdgeColorField = FieldPurpose
	require.NoError(t, s.Validate())
	assert.Equal(t, PurposeColors[commuting.Study], s.EdgeColor(e))
	e.Purpose = commuting.Work
	assert.Equal(t, PurposeColors[commuting.Work], s.EdgeColor(e))

	s.EdgeColorField = FieldFlow
	assert.ErrorIs(t, s.Validate(), ErrUnknownField)

	s = DefaultStyle()
	s.WidthField = FieldFlow
	assert.ErrorIs(t, s.Validate(), ErrUnknownField)

	s = DefaultStyle()
	s.HoverFields = append(s.HoverFields, HoverField{Label: "Mode", Field: "mode"})
	assert.ErrorIs(t, s.Validate(), ErrUnknownField)

	_, ok := e.Attr("mode")
	assert.False(t, ok)
}

func TestPurposeColors_Distinct(t *testing.T) {
	seen := map[string]bool{
		IncomingColor: true,
		OutgoingColor: true,
		BlackColor:    true,
	}
	for _, p := range []commuting.Purpose{commuting.Work, commuting.Study} {
		c := PurposeColors[p]
		assert.False(t, seen[c], "%s color %s already in use", p, c)
		seen[c] = true
	}
}
