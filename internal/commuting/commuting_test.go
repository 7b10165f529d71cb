package commuting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(p Purpose, o, d Region, flow uint32) EdgeRecord {
	return EdgeRecord{Purpose: p, Internal: o == d, Flow: flow, Origin: o, Destination: d}
}

// A small slice of central Italy: Lazio (12), Toscana (9), Umbria (10), Campania (15).
func sampleEdges() []EdgeRecord {
	return []EdgeRecord{
		row(Work, 12, 12, 1_500_000),
		row(Study, 12, 12, 600_000),
		row(Work, 12, 9, 3_000),
		row(Study, 12, 9, 800),
		row(Work, 9, 12, 2_500),
		row(Study, 9, 12, 1_200),
		row(Work, 10, 12, 9_000),
		row(Work, 12, 15, 4_000),
		row(Study, 15, 12, 6_000),
		row(Work, 9, 10, 7_000),
		row(Study, 10, 9, 1_000),
	}
}

func sampleNodes() []NodeRecord {
	return []NodeRecord{
		{Code: 9, X: 1_200_000, Y: 5_400_000},
		{Code: 10, X: 1_390_000, Y: 5_300_000},
		{Code: 12, X: 1_420_000, Y: 5_150_000},
		{Code: 15, X: 1_600_000, Y: 4_960_000},
		{Code: 19, X: 1_560_000, Y: 4_520_000},
	}
}

func TestParsePurpose(t *testing.T) {
	for in, want := range map[string]Purpose{
		"Work": Work, "lavoro": Work, " Study ": Study, "Studio": Study, "TOTAL": Total, "Totale": Total,
	} {
		got, err := ParsePurpose(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParsePurpose("Leisure")
	assert.ErrorIs(t, err, ErrUnknownPurpose)
}

func TestPurpose_Text(t *testing.T) {
	b, err := Study.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Study", string(b))

	var p Purpose
	require.NoError(t, p.UnmarshalText([]byte("Lavoro")))
	assert.Equal(t, Work, p)

	_, err = Purpose(0).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownPurpose)
}

func TestRegions(t *testing.T) {
	assert.Equal(t, "Lazio", Region(12).Name())
	assert.NoError(t, CheckRegion(20))
	assert.ErrorIs(t, CheckRegion(21), ErrUnknownRegion)

	byName := RegionsByName()
	require.Len(t, byName, 20)
	assert.Equal(t, Region(13), byName[0]) // Abruzzo
	assert.Equal(t, Region(5), byName[len(byName)-1]) // Veneto
}

func TestPredicates(t *testing.T) {
	e := row(Work, 12, 9, 10)
	assert.True(t, And()(e))
	assert.False(t, Or()(e))
	assert.True(t, Not(IsInternal(true))(e))
	assert.True(t, PurposeIs(Total)(e))
	assert.False(t, PurposeIs(Study)(e))
}

func TestSelect_Work(t *testing.T) {
	edges := sampleEdges()
	got := Select(edges, 12, Work)

	require.Len(t, got, 4)
	for _, e := range got {
		assert.True(t, e.Origin == 12 || e.Destination == 12)
		assert.Equal(t, Work, e.Purpose)
		assert.False(t, e.Internal)
	}

	// The base table is left alone.
	assert.Len(t, edges, 11)
}

func TestSelect_TotalKeepsAllPurposes(t *testing.T) {
	got := Select(sampleEdges(), 12, Total)
	assert.Len(t, got, 7)
}

func TestSelect_NoMatches(t *testing.T) {
	got := Select(sampleEdges(), 19, Work)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, DeriveNodes(sampleNodes(), got, 19))
}

func TestDeriveNodes(t *testing.T) {
	selected := Select(sampleEdges(), 12, Work)
	nodes := DeriveNodes(sampleNodes(), selected, 12)

	require.Len(t, nodes, 4)
	codes := []Region{}
	for _, n := range nodes {
		codes = append(codes, n.Code)
		if n.Code == 12 {
			assert.Equal(t, MaxNodeSize, n.Size)
			assert.Equal(t, MarkerSquare, n.Marker)
			assert.True(t, n.IsAnchor())
		} else {
			assert.Equal(t, MinNodeSize, n.Size)
			assert.Equal(t, MarkerCircle, n.Marker)
		}
	}
	assert.Equal(t, []Region{9, 10, 12, 15}, codes)
}

func TestAggregate_PassThrough(t *testing.T) {
	selected := Select(sampleEdges(), 12, Work)
	got := Aggregate(selected, Work)
	assert.Equal(t, selected, got)

	got[0].Flow = 0
	assert.NotZero(t, selected[0].Flow)
}

func TestAggregate_Total(t *testing.T) {
	edges := sampleEdges()
	got := Aggregate(Select(edges, 12, Total), Total)

	seen := map[PairKey]bool{}
	for _, e := range got {
		assert.False(t, seen[e.Key()], "pair %v repeated", e.Key())
		seen[e.Key()] = true

		want := SumFlow(edges, And(OriginIs(e.Origin), DestinationIs(e.Destination)))
		assert.Equal(t, want, uint64(e.Flow))
	}

	require.Len(t, got, 5)
	assert.Equal(t, PairKey{9, 12}, got[0].Key())
	assert.Equal(t, uint32(3_700), got[0].Flow)
	// The merged row keeps the first row's purpose.
	assert.Equal(t, Work, got[0].Purpose)
	assert.Equal(t, PairKey{15, 12}, got[len(got)-1].Key())
}

func TestIndicators(t *testing.T) {
	edges := sampleEdges()

	work := ComputeIndicators(edges, 12, Work)
	assert.Equal(t, Indicators{Incoming: 11_500, Outgoing: 7_000, Internal: 1_500_000}, work)

	total := ComputeIndicators(edges, 12, Total)
	assert.Equal(t, Indicators{Incoming: 18_700, Outgoing: 7_800, Internal: 2_100_000}, total)

	// Incoming equals the flow into the anchor over the selected edges.
	var incoming uint64
	for _, e := range Select(edges, 12, Work) {
		if e.Destination == 12 {
			incoming += uint64(e.Flow)
		}
	}
	assert.Equal(t, work.Incoming, incoming)
}

func TestBreakdown(t *testing.T) {
	edges := sampleEdges()

	in := Breakdown(edges, 12, Total, Incoming)
	assert.Equal(t, []RegionFlow{
		{Region: 10, Name: "Umbria", Flow: 9_000},
		{Region: 15, Name: "Campania", Flow: 6_000},
		{Region: 9, Name: "Toscana", Flow: 3_700},
	}, in)

	out := Breakdown(edges, 12, Work, Outgoing)
	assert.Equal(t, []RegionFlow{
		{Region: 15, Name: "Campania", Flow: 4_000},
		{Region: 9, Name: "Toscana", Flow: 3_000},
	}, out)

	assert.Empty(t, Breakdown(edges, 19, Total, Incoming))
	assert.Equal(t, "incoming", Incoming.String())
}
