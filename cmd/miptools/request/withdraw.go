// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/request"
)

type withdrawParams struct {
	cli.ConfigFlag
}

func withdrawCommand() *cli.Command {
	var params withdrawParams

	return &cli.Command{
		Name:    "withdraw",
		Summary: "Withdraw a request that has not started",
		Description: `Withdraw one of your own requests. Only a request that the migration
service has not yet started (status NOT_STARTED) can be withdrawn.`,
		Usage:  "miptools request withdraw <migration|retrieval> <gws-path> <id> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Withdraw migration request 12",
				Command:     "miptools request withdraw migration /gws/nopw/j04/cmip6_prep 12",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 3 {
				return cli.Validation("usage: miptools request withdraw <migration|retrieval> <gws-path> <id>")
			}
			kind, err := request.ParseKind(args[0])
			if err != nil {
				return cli.Validation("%w", err)
			}
			id, err := strconv.Atoi(args[2])
			if err != nil || id < 1 {
				return cli.Validation("request id must be a positive integer, got %q", args[2])
			}

			session, err := openSession(&params.ConfigFlag, args[1], logger)
			if err != nil {
				return err
			}
			store, err := session.store(kind)
			if err != nil {
				return err
			}
			if _, err := store.Withdraw(id); err != nil {
				return toolError(err)
			}
			fmt.Printf("withdrew request id=%d\n", id)
			return nil
		},
	}
}
