package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/flowmap/internal/flowgraph"
	"github.com/psidex/flowmap/internal/snapshot"
)

var (
	snapshotSelection selectionFlags
	snapshotFormat    string
	snapshotOut       string
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Saves a PNG of the flow map using headless Chrome",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		renderer, err := newRenderer(snapshotFormat, e.cfg.Style)
		if err != nil {
			return err
		}
		region, purpose, err := snapshotSelection.resolve(e.cfg)
		if err != nil {
			return err
		}
		v, err := flowgraph.Build(e.tables, region, purpose)
		if err != nil {
			return err
		}

		s := snapshot.NewSnapshotter(renderer, snapshot.Options{
			Width:   e.cfg.Snapshot.Width,
			Height:  e.cfg.Snapshot.Height,
			Timeout: e.cfg.Snapshot.Timeout,
		}, e.logger)

		out := snapshotOut
		if out == "" {
			out = fmt.Sprintf("flowmap_%d_%s", int(region), strings.ToLower(purpose.Label()))
		}
		path, err := s.CaptureToFile(cmd.Context(), v, out)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	snapshotSelection.register(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&snapshotFormat, "format", "f", "echarts", "page to capture: echarts, echarts-network or vis")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "output file name without extension")
}
