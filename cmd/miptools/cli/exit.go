// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. Commands return it after writing their own report,
// for example a listing that hit unreadable request files or a dataset
// check that found problems.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this method to tell
// a handled non-zero exit from an error it should print.
func (e *ExitError) ExitCode() int {
	return e.Code
}
