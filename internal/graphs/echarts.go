package graphs

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
)

// ECharts defines a FileRenderer that renders a go-echarts HTML page: the flow map
// plus bar charts of the incoming and outgoing flows by region.
type ECharts struct {
	style flowgraph.Style
	// Network draws the flow map as an echarts graph series with native curved
	// links, instead of plotting the Bézier polylines.
	Network bool
}

var _ FileRenderer = (*ECharts)(nil)

func NewECharts(style flowgraph.Style) *ECharts {
	return &ECharts{style: style}
}

func (e ECharts) Extension() string {
	return "html"
}

func (e ECharts) Render(w io.Writer, v *flowgraph.View) error {
	page := components.NewPage()
	page.PageTitle = e.style.Title
	page.SetLayout(components.PageFlexLayout)

	if e.Network {
		page.AddCharts(e.networkMap(v))
	} else {
		page.AddCharts(e.flowMap(v))
	}
	page.AddCharts(
		breakdownBar("Incoming commuters by Region of origin", v.IncomingBy, flowgraph.IncomingColor),
		breakdownBar("Outgoing commuters by Region of destination", v.OutgoingBy, flowgraph.OutgoingColor),
	)

	return page.Render(w)
}

func indicatorsSubtitle(v *flowgraph.View) string {
	return fmt.Sprintf("%s, %s · Incoming %d · Outgoing %d · Internal mobility %d",
		v.Graph.Anchor.Name(), v.Graph.Purpose.Label(),
		v.Indicators.Incoming, v.Indicators.Outgoing, v.Indicators.Internal)
}

func (e ECharts) globalOpts(v *flowgraph.View) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: e.style.Title,
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    e.style.Title,
			Subtitle: indicatorsSubtitle(v),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{a}",
		}),
	}
}

// flowMap plots every curve as its own line series so that width, color and hover
// text can differ per edge. Series are added in edge order, lightest flow first.
func (e ECharts) flowMap(v *flowgraph.View) *charts.Line {
	g := v.Graph

	line := charts.NewLine()
	line.SetGlobalOptions(append(e.globalOpts(v),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Show: opts.Bool(false), Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Show: opts.Bool(false), Scale: opts.Bool(true)}),
	)...)

	if g.Boundary != nil {
		data := make([]opts.LineData, len(g.Boundary.X))
		for i := range g.Boundary.X {
			data[i] = opts.LineData{Value: []float64{g.Boundary.X[i], g.Boundary.Y[i]}}
		}
		line.AddSeries(g.Boundary.Name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: flowgraph.BlackColor, Width: 1.5}),
		)
	}

	for i, edge := range g.Edges {
		curve := g.Curves[i]
		data := make([]opts.LineData, len(curve))
		for j, p := range curve {
			data[j] = opts.LineData{Value: []float64{p.X, p.Y}}
		}
		line.AddSeries(strings.Join(e.style.Hover(edge), "<br/>"), data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: e.style.EdgeColor(edge),
				Width: float32(e.style.EdgeWidth(edge)),
			}),
		)
	}

	line.Overlap(e.nodeScatter(g))
	return line
}

// nodeScatter draws one series per region so the tooltip shows its name.
func (e ECharts) nodeScatter(g *flowgraph.FlowGraph) *charts.Scatter {
	scatter := charts.NewScatter()
	for _, n := range g.Nodes {
		scatter.AddSeries(n.Code.Name(), []opts.ScatterData{{
			Name:       n.Code.Name(),
			Value:      []float64{n.X, n.Y},
			Symbol:     echartsSymbol(n.Marker),
			SymbolSize: n.Size * 2,
		}},
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:       e.style.NodeColor,
				BorderColor: e.style.NodeLineColor,
			}),
		)
	}
	return scatter
}

func echartsSymbol(marker string) string {
	if marker == commuting.MarkerSquare {
		return "rect"
	}
	return "circle"
}

// networkMap is the graph-series rendition of the flow map. Screen y grows
// downwards, so projected y is negated.
func (e ECharts) networkMap(v *flowgraph.View) *charts.Graph {
	g := v.Graph

	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, opts.GraphNode{
			Name:       n.Code.Name(),
			X:          float32(n.X),
			Y:          float32(-n.Y),
			Symbol:     echartsSymbol(n.Marker),
			SymbolSize: n.Size * 2,
			ItemStyle: &opts.ItemStyle{
				Color:       e.style.NodeColor,
				BorderColor: e.style.NodeLineColor,
			},
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, edge := range g.Edges {
		links = append(links, opts.GraphLink{
			Source: edge.OriginName,
			Target: edge.DestinationName,
			Value:  float32(edge.Flow),
			LineStyle: &opts.LineStyle{
				Color:     e.style.EdgeColor(edge),
				Width:     float32(e.style.EdgeWidth(edge)),
				Curveness: 0.3,
			},
		})
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(e.globalOpts(v)...)
	graph.SetGlobalOptions(charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}))
	graph.AddSeries(
		"flows",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout: "none",
				Roam:   opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return graph
}

func breakdownBar(title string, flows []commuting.RegionFlow, color string) *charts.Bar {
	names := make([]string, len(flows))
	data := make([]opts.BarData, len(flows))
	for i, f := range flows {
		names[i] = f.Name
		data[i] = opts.BarData{Name: f.Name, Value: f.Flow}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "600px", Height: "340px"}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Commuters"}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(false)}}),
	)
	bar.SetXAxis(names).AddSeries("Commuters", data,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	)
	return bar
}
