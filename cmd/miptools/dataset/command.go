// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset implements the "miptools dataset" subcommands, which
// check dataset directories before they are submitted for ingestion.
package dataset

import "github.com/cedadev/miptools/cmd/miptools/cli"

// Command returns the "dataset" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "dataset",
		Summary: "Check datasets before ingestion",
		Subcommands: []*cli.Command{
			checkCommand(),
		},
	}
}
