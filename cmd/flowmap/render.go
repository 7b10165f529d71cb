package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/graphs"
	"github.com/psidex/flowmap/internal/graphs/graphology"
	"github.com/psidex/flowmap/internal/graphs/vis"
)

var formats = []string{"echarts", "echarts-network", "vis", "graphology", "json"}

func newRenderer(format string, style flowgraph.Style) (graphs.FileRenderer, error) {
	switch format {
	case "echarts":
		return graphs.NewECharts(style), nil
	case "echarts-network":
		e := graphs.NewECharts(style)
		e.Network = true
		return e, nil
	case "vis":
		return vis.NewVis(style), nil
	case "graphology":
		return graphology.NewGraphology(style), nil
	case "json":
		return graphs.NewJSON(true), nil
	}
	return nil, errors.Newf("unknown format %q, expected one of %s", format, strings.Join(formats, ", "))
}

var (
	renderSelection selectionFlags
	renderFormat    string
	renderOut       string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders the flow map of a region to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		renderer, err := newRenderer(renderFormat, e.cfg.Style)
		if err != nil {
			return err
		}
		region, purpose, err := renderSelection.resolve(e.cfg)
		if err != nil {
			return err
		}

		v, err := flowgraph.Build(e.tables, region, purpose)
		if err != nil {
			return err
		}
		if v.Graph.Empty() {
			e.logger.Warn("selection has no flows", "region", region.Name(), "purpose", purpose)
		}

		out := renderOut
		if out == "" {
			out = fmt.Sprintf("flowmap_%d_%s", int(region), strings.ToLower(purpose.Label()))
		}
		path, err := graphs.RenderToFile(renderer, v, out)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	renderSelection.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "echarts", "output format: "+strings.Join(formats, ", "))
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file name without extension")
}
