package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/psidex/flowmap/internal/commuting"
	"github.com/psidex/flowmap/internal/flowgraph"
)

var (
	querySelection selectionFlags
	queryJSON      bool
	queryTop       int
)

func printBreakdown(w io.Writer, title string, flows []commuting.RegionFlow, top int) {
	fmt.Fprintf(w, "\n%s\n", title)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, f := range flows {
		if top > 0 && i == top {
			break
		}
		fmt.Fprintf(tw, "  %d\t%s\t%d\n", int(f.Region), f.Name, f.Flow)
	}
	tw.Flush()
}

func printView(w io.Writer, v *flowgraph.View, top int) {
	fmt.Fprintf(w, "%s, %s\n", v.Graph.Anchor.Name(), v.Graph.Purpose.Label())
	fmt.Fprintf(w, "  Incoming commuters  %d\n", v.Indicators.Incoming)
	fmt.Fprintf(w, "  Outgoing commuters  %d\n", v.Indicators.Outgoing)
	fmt.Fprintf(w, "  Internal mobility   %d\n", v.Indicators.Internal)
	printBreakdown(w, "Incoming by region of origin", v.IncomingBy, top)
	printBreakdown(w, "Outgoing by region of destination", v.OutgoingBy, top)
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Prints the commuting indicators of a region",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		region, purpose, err := querySelection.resolve(e.cfg)
		if err != nil {
			return err
		}
		v, err := flowgraph.Build(e.tables, region, purpose)
		if err != nil {
			return err
		}

		if queryJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Region     commuting.Region       `json:"region"`
				Name       string                 `json:"name"`
				Purpose    commuting.Purpose      `json:"purpose"`
				Indicators commuting.Indicators   `json:"indicators"`
				IncomingBy []commuting.RegionFlow `json:"incomingBy"`
				OutgoingBy []commuting.RegionFlow `json:"outgoingBy"`
			}{region, region.Name(), purpose, v.Indicators, v.IncomingBy, v.OutgoingBy})
		}
		printView(cmd.OutOrStdout(), v, queryTop)
		return nil
	},
}

func init() {
	querySelection.register(queryCmd)
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print JSON instead of text")
	queryCmd.Flags().IntVarP(&queryTop, "top", "n", 0, "only list the n largest counterparts (0 for all)")
}
