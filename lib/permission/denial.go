// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrDenied matches every [Denial] and the cached-failure error.
var ErrDenied = errors.New("permission denied")

// Denial records one path the subject cannot access as required,
// together with the metadata that decided it.
type Denial struct {
	Subject  string
	Path     string
	Required Access
	Actual   Access
	Class    Class

	// Owner, group and permission bits of Path at check time.
	UID  uint32
	GID  uint32
	Mode fs.FileMode
}

func (d *Denial) Error() string {
	return fmt.Sprintf("missing permissions on %s: user %q does not have %q permission (current permissions for %s are %q)",
		d.Path, d.Subject, d.Required.String(), d.Class, d.Actual.describe())
}

// Is makes errors.Is(err, ErrDenied) hold for any Denial.
func (d *Denial) Is(target error) bool {
	return target == ErrDenied
}

// RootOwned reports whether the denied path belongs to root, which
// usually means only an administrator can fix it.
func (d *Denial) RootOwned() bool {
	return d.UID == 0
}

// Report collects denials across one or more checks.
type Report struct {
	Denials []*Denial
}

func (r *Report) add(denial *Denial) {
	if r != nil {
		r.Denials = append(r.Denials, denial)
	}
}

// Len returns the number of denials collected.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Denials)
}

// Messages returns one message per denial in discovery order.
func (r *Report) Messages() []string {
	if r == nil {
		return nil
	}
	messages := make([]string, 0, r.Len())
	for _, denial := range r.Denials {
		messages = append(messages, denial.Error())
	}
	return messages
}

// RootOwned returns the denials on root-owned paths.
func (r *Report) RootOwned() []*Denial {
	if r == nil {
		return nil
	}
	var result []*Denial
	for _, denial := range r.Denials {
		if denial.RootOwned() {
			result = append(result, denial)
		}
	}
	return result
}

// Err joins every denial into one error, or returns nil when there
// are none.
func (r *Report) Err() error {
	if r.Len() == 0 {
		return nil
	}
	errs := make([]error, len(r.Denials))
	for i, denial := range r.Denials {
		errs[i] = denial
	}
	return errors.Join(errs...)
}
