// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"errors"
	"io/fs"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/permission"
	"github.com/cedadev/miptools/lib/request"
	"github.com/cedadev/miptools/lib/workspace"
)

// toolError classifies an error from the request libraries into a
// [cli.ToolError]. Errors that are already classified pass through.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	var classified *cli.ToolError
	if errors.As(err, &classified) {
		return err
	}

	switch {
	case errors.Is(err, workspace.ErrNotAWorkspace):
		return cli.Validation("%w", err)
	case errors.Is(err, workspace.ErrWorkspaceMissing),
		errors.Is(err, request.ErrNotFound):
		return cli.NotFound("%w", err)
	case errors.Is(err, request.ErrNotInitialised):
		return cli.NotFound("%w (ask the workspace manager to run 'miptools request init')", err)
	case errors.Is(err, request.ErrInvalidTransition):
		return cli.Conflict("%w", err)
	case errors.Is(err, request.ErrStaleStatus):
		return cli.Transient("%w", err)
	case errors.Is(err, permission.ErrDenied), errors.Is(err, fs.ErrPermission):
		return cli.Forbidden("%w", err)
	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)
	default:
		return cli.Internal("%w", err)
	}
}
