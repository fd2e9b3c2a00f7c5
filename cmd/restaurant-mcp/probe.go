package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/restaurant-mcp/internal/client"
	"github.com/bobmcallan/restaurant-mcp/internal/common"
	"github.com/bobmcallan/restaurant-mcp/internal/restaurant"
)

func newProbeCmd(opts *rootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check that the restaurant API is reachable with the configured credentials",
		Long: "Issue every list call once, concurrently, and report the outcome of each.\n" +
			"Exits non-zero if any call fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd.ErrOrStderr(), 0, "", "")
			if err != nil {
				return err
			}
			logger := common.NewLoggerFromConfig(cfg.Logging)

			c := client.New(cfg.API.BaseURL, cfg.API.Username, cfg.API.Password, cfg.API.GetTimeout(), logger)
			svc := restaurant.NewService(c)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			results := svc.Probe(ctx)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "API\t%s\n", cfg.API.BaseURL)
			for _, r := range results {
				status := "ok"
				detail := fmt.Sprintf("%d items", r.Count)
				if !r.OK {
					status = "FAIL"
					detail = r.Error
				}
				fmt.Fprintf(tw, "%s\t%s\t%dms\t%s\n", r.Path, status, r.Duration.Milliseconds(), detail)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if !restaurant.Healthy(results) {
				return fmt.Errorf("restaurant API probe failed")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Overall probe timeout")
	return cmd
}
