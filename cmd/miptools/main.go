// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// miptools is the command-line interface to the CMIP data migration
// and retrieval queues and the dataset ingestion checks.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cedadev/miptools/cmd/miptools/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own report (list, dataset check)
		// return an error carrying the exit code. Don't print a
		// redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return commands.Root().ExecuteContext(ctx, os.Args[1:], nil)
}
