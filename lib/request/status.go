// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"fmt"
	"strings"
)

// Status is the lifecycle position of a request. It is derived from the
// directory holding the request file, never stored in it.
type Status int

const (
	// StatusCreating is the transient state while the payload is being
	// written. Requests in this state live in a hidden directory and
	// are not returned by a default scan.
	StatusCreating Status = iota
	StatusNotStarted
	StatusDoing
	StatusDone
	StatusFailed
	StatusWithdrawn
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusCreating,
	StatusNotStarted,
	StatusDoing,
	StatusDone,
	StatusFailed,
	StatusWithdrawn,
}

// VisibleStatuses is the default scan set: everything except the
// transient creation area.
var VisibleStatuses = []Status{
	StatusNotStarted,
	StatusDoing,
	StatusDone,
	StatusFailed,
	StatusWithdrawn,
}

var statusNames = map[Status]string{
	StatusCreating:   "CREATING",
	StatusNotStarted: "NOT_STARTED",
	StatusDoing:      "DOING",
	StatusDone:       "DONE",
	StatusFailed:     "FAILED",
	StatusWithdrawn:  "WITHDRAWN",
}

// String returns the upper-case status name, e.g. "NOT_STARTED".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed || s == StatusWithdrawn
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// MarshalText encodes the status as its name so JSON and CBOR output
// carry "NOT_STARTED" rather than an integer.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus parses a status name. Matching is case-insensitive and
// accepts "-" in place of "_" so "not-started" works on the command line.
func ParseStatus(name string) (Status, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	for status, statusName := range statusNames {
		if statusName == normalized {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown request status %q", name)
}

// transitions is the state machine. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusCreating:   {StatusNotStarted},
	StatusNotStarted: {StatusWithdrawn, StatusDoing},
	StatusDoing:      {StatusDone, StatusFailed},
}

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
