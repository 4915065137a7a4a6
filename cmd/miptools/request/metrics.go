// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"context"
	"log/slog"
	"os"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/queuemetrics"
)

type metricsParams struct {
	cli.ConfigFlag
	Textfile string `json:"textfile" flag:"textfile" desc:"write to this file for the node exporter textfile collector instead of stdout"`
}

func metricsCommand() *cli.Command {
	var params metricsParams

	return &cli.Command{
		Name:    "metrics",
		Summary: "Export request queue gauges in Prometheus text format",
		Description: `Count the requests in each status directory of a group workspace and
print them in the Prometheus text exposition format. With --textfile
the output is written atomically to a file for the node exporter's
textfile collector, typically from cron.`,
		Usage:  "miptools request metrics <gws-path> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Publish queue depths for the node exporter",
				Command:     "miptools request metrics /gws/nopw/j04/cmip6_prep --textfile /var/lib/node_exporter/cmip6_prep.prom",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: miptools request metrics <gws-path>")
			}
			session, err := openSession(&params.ConfigFlag, args[0], logger)
			if err != nil {
				return err
			}
			stores, err := session.stores("")
			if err != nil {
				return err
			}

			collector := queuemetrics.New()
			for _, store := range stores {
				if err := collector.Observe(store); err != nil {
					return toolError(err)
				}
			}

			if params.Textfile != "" {
				if err := collector.WriteTextfile(params.Textfile); err != nil {
					return toolError(err)
				}
				session.logger.Info("metrics written", "path", params.Textfile)
				return nil
			}
			if err := collector.WriteText(os.Stdout); err != nil {
				return cli.Internal("writing metrics: %w", err)
			}
			return nil
		},
	}
}
