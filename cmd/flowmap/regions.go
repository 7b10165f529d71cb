package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psidex/flowmap/internal/commuting"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Lists the region codes and names",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, r := range commuting.RegionsByName() {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", int(r), r.Name())
		}
	},
}
