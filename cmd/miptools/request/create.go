// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/request"
)

type migrateParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func migrateCommand() *cli.Command {
	var params migrateParams

	return &cli.Command{
		Name:    "migrate",
		Summary: "Request migration of a directory to near-line storage",
		Description: `File a request to migrate a directory in a group workspace to
near-line storage. The request is queued as NOT_STARTED until the
migration service picks it up, and can be withdrawn until then.`,
		Usage:  "miptools request migrate <directory> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Migrate a finished simulation",
				Command:     "miptools request migrate /gws/nopw/j04/cmip6_prep/output/r1i1p1f1",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: miptools request migrate <directory>")
			}
			directory, err := absolutePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(directory)
			if err != nil {
				return toolError(err)
			}
			if !info.IsDir() {
				return cli.Validation("%s is not a directory", directory)
			}

			session, err := openSession(&params.ConfigFlag, directory, logger)
			if err != nil {
				return err
			}
			return createRequest(session, request.Migration{Path: directory}, &params.JSONOutput)
		},
	}
}

type retrieveParams struct {
	cli.ConfigFlag
	cli.JSONOutput
}

func retrieveCommand() *cli.Command {
	var params retrieveParams

	return &cli.Command{
		Name:    "retrieve",
		Summary: "Request retrieval of migrated data",
		Description: `File a request to bring migrated data back from near-line storage.
By default the data is restored to the directory it was migrated
from. A destination directory may be given instead; it must be in the
same group workspace.`,
		Usage:  "miptools request retrieve <original-dir> [destination-dir] [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Restore to the original location",
				Command:     "miptools request retrieve /gws/nopw/j04/cmip6_prep/output/r1i1p1f1",
			},
			{
				Description: "Restore somewhere else in the same workspace",
				Command:     "miptools request retrieve /gws/nopw/j04/cmip6_prep/output/r1i1p1f1 /gws/nopw/j04/cmip6_prep/restored",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 || len(args) > 2 {
				return cli.Validation("usage: miptools request retrieve <original-dir> [destination-dir]")
			}
			original, err := absolutePath(args[0])
			if err != nil {
				return err
			}
			session, err := openSession(&params.ConfigFlag, original, logger)
			if err != nil {
				return err
			}

			payload := request.Retrieval{OriginalPath: original}
			if len(args) == 2 {
				destination, err := absolutePath(args[1])
				if err != nil {
					return err
				}
				same, err := session.config.Resolver().Same(original, destination)
				if err != nil {
					return toolError(err)
				}
				if !same {
					return cli.Validation("cannot restore to a different group workspace (%s is not in %s)",
						destination, session.root)
				}
				payload.DestinationPath = destination
			}
			return createRequest(session, payload, &params.JSONOutput)
		},
	}
}

// createRequest files payload in its store and reports the result.
func createRequest(session *workspaceSession, payload request.Payload, output *cli.JSONOutput) error {
	store, err := session.store(payload.Kind())
	if err != nil {
		return err
	}
	created, err := store.Create(payload)
	if err != nil {
		return toolError(err)
	}

	if done, err := output.EmitJSON(newRecord(created, payload)); done {
		return err
	}
	fmt.Println("created request")
	if err := created.Dump(os.Stdout); err != nil {
		return toolError(err)
	}
	return nil
}

// absolutePath returns path made absolute and cleaned.
func absolutePath(path string) (string, error) {
	if path == "" {
		return "", cli.Validation("path must not be empty")
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", cli.Internal("resolving %s: %w", path, err)
	}
	return absolute, nil
}
