// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete miptools command tree.
package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	datasetcmd "github.com/cedadev/miptools/cmd/miptools/dataset"
	requestcmd "github.com/cedadev/miptools/cmd/miptools/request"
	"github.com/cedadev/miptools/lib/version"
)

// Root builds and returns the complete miptools command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "miptools",
		Description: `miptools: CMIP group workspace data management.

File migration requests that move a workspace directory to tape,
retrieval requests that bring it back, and check dataset directories
before they are submitted for ingestion.`,
		Subcommands: []*cli.Command{
			requestcmd.Command(),
			datasetcmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(_ context.Context, args []string, _ *slog.Logger) error {
					if len(args) > 0 {
						return cli.Validation("unexpected argument: %s", args[0])
					}
					fmt.Printf("miptools %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
