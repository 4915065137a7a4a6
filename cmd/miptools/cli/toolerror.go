// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ErrorCategory classifies command errors so that scripts driving the
// CLI can decide whether to fix input, retry or escalate without
// parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates invalid input: wrong argument count,
	// unparseable values, a path outside any workspace.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced request or directory
	// does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden indicates a permission problem on disk.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict indicates the operation conflicts with current
	// state, such as withdrawing a request that is already in progress.
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient indicates a failure that may succeed on retry,
	// such as a request moved by the worker mid-operation.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: corrupt store
	// contents, I/O failures.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by commands. It wraps the
// underlying error so errors.Is and errors.As still see the chain.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

// Error returns the underlying error message without the category.
func (e *ToolError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Forbidden creates a forbidden error.
func Forbidden(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: fmt.Errorf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error.
func Transient(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}
