// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"errors"
	"fmt"
)

var (
	// ErrBadFileName is wrapped by [NameError]. A status directory
	// holding a file that does not parse is corrupt; scans fail rather
	// than skip it.
	ErrBadFileName = errors.New("bad request file name")

	// ErrBadFileContent is wrapped by [ContentError].
	ErrBadFileContent = errors.New("bad request file content")

	// ErrInvalidTransition is wrapped by [TransitionError].
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound is returned by [Store.Get] when no request matches.
	ErrNotFound = errors.New("request not found")

	// ErrAmbiguous is returned by [Store.Get] when several requests
	// share the requested ID.
	ErrAmbiguous = errors.New("more than one request matches")

	// ErrStaleStatus means the request file was not in the directory
	// for its in-memory status, typically because the external worker
	// moved it after it was scanned.
	ErrStaleStatus = errors.New("request status is stale")

	// ErrNotInitialised means the store's counter file is missing.
	ErrNotInitialised = errors.New("request store not initialised")
)

// NameError reports a file name that does not match the request
// file name grammar.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("cannot parse request file name %q", e.Name)
	}
	return fmt.Sprintf("cannot parse request file name %q: %s", e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrBadFileName }

// ContentError reports a request file whose payload has the wrong
// number of non-blank lines for its kind.
type ContentError struct {
	Path  string
	Kind  Kind
	Lines int
}

func (e *ContentError) Error() string {
	return fmt.Sprintf("could not parse %s request file %s: %d non-blank lines", e.Kind, e.Path, e.Lines)
}

func (e *ContentError) Unwrap() error { return ErrBadFileContent }

// TransitionError reports a status change the state machine forbids.
// Current is the status the request actually had.
type TransitionError struct {
	ID      int
	Current Status
	Target  Status
}

func (e *TransitionError) Error() string {
	if e.Target == StatusWithdrawn {
		return fmt.Sprintf("request %d: withdraw only supported for status %s (current status = %s)",
			e.ID, StatusNotStarted, e.Current)
	}
	return fmt.Sprintf("request %d: cannot move from %s to %s", e.ID, e.Current, e.Target)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
