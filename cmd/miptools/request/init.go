// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cedadev/miptools/cmd/miptools/cli"
)

type initParams struct {
	cli.ConfigFlag
}

func initCommand() *cli.Command {
	var params initParams

	return &cli.Command{
		Name:    "init",
		Summary: "Create the request store of a group workspace",
		Description: `Create the migration and retrieval request directories and ID
counters in a group workspace. Run once by the workspace manager;
running it again leaves existing entries alone.`,
		Usage:  "miptools request init <gws-path> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Prepare a workspace for requests",
				Command:     "miptools request init /gws/nopw/j04/cmip6_prep",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: miptools request init <gws-path>")
			}
			session, err := openSession(&params.ConfigFlag, args[0], logger)
			if err != nil {
				return err
			}
			stores, err := session.stores("")
			if err != nil {
				return err
			}
			for _, store := range stores {
				if err := store.Initialise(); err != nil {
					return toolError(err)
				}
				fmt.Printf("initialised %s requests in %s\n", store.Kind(), store.BaseDir())
			}
			return nil
		},
	}
}
