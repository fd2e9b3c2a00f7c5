package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/restaurant-mcp/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "restaurant-mcp %s\n", config.GetFullVersion())
		},
	}
}
