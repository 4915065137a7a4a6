// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAccess reports a malformed access specification. It is a
// usage error, never a denial.
var ErrInvalidAccess = errors.New("invalid access specification")

// Access is a set of permission bits in rwx order: read 4, write 2,
// execute/search 1.
type Access uint8

const (
	Execute Access = 1 << iota
	Write
	Read

	// None requires nothing; every check of the path itself succeeds.
	None Access = 0
)

var accessLetters = [...]struct {
	letter byte
	bit    Access
}{
	{'r', Read},
	{'w', Write},
	{'x', Execute},
}

// ParseAccess parses a string of the letters r, w and x in any order,
// such as "r", "rx" or "xr". An unknown or repeated letter wraps
// ErrInvalidAccess. The empty string is [None].
func ParseAccess(spec string) (Access, error) {
	var access Access
	for i := 0; i < len(spec); i++ {
		bit, ok := letterBit(spec[i])
		if !ok {
			return 0, fmt.Errorf("%w: unknown letter %q in %q", ErrInvalidAccess, spec[i], spec)
		}
		if access&bit != 0 {
			return 0, fmt.Errorf("%w: repeated letter %q in %q", ErrInvalidAccess, spec[i], spec)
		}
		access |= bit
	}
	return access, nil
}

func letterBit(letter byte) (Access, bool) {
	for _, entry := range accessLetters {
		if entry.letter == letter {
			return entry.bit, true
		}
	}
	return 0, false
}

// AccessFromInt converts an octal digit (0..7) to an Access.
func AccessFromInt(value int) (Access, error) {
	if value < 0 || value > 7 {
		return 0, fmt.Errorf("%w: %d is outside 0..7", ErrInvalidAccess, value)
	}
	return Access(value), nil
}

// String renders the set in canonical rwx order, e.g. "rx". The empty
// set renders as "".
func (a Access) String() string {
	var builder strings.Builder
	for _, entry := range accessLetters {
		if a&entry.bit != 0 {
			builder.WriteByte(entry.letter)
		}
	}
	return builder.String()
}

// Covers reports whether a grants everything in required.
func (a Access) Covers(required Access) bool {
	return a&required == required
}

// describe is String with "(none)" for the empty set, for messages.
func (a Access) describe() string {
	if a == None {
		return "(none)"
	}
	return a.String()
}
