// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with no time-of-day or zone, as embedded in
// request file names.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes the date as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD.
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("invalid request date %q: %w", text, err)
	}
	*d = DateOf(parsed)
	return nil
}

// valid reports whether the date exists on the calendar.
func (d Date) valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	normalized := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return normalized.Day() == d.Day && normalized.Month() == d.Month
}

// Name is the identity of a request as carried by its file name.
type Name struct {
	Owner string
	ID    int
	Date  Date
}

// String formats the canonical file name <owner>-<id>-<YYYY>-<MM>-<DD>.
func (n Name) String() string {
	return fmt.Sprintf("%s-%d-%s", n.Owner, n.ID, n.Date)
}

var namePattern = regexp.MustCompile(
	`^([^-]+)-([0-9]+)-([0-9]{4})-([0-9]{2})-([0-9]{2})$`)

// ParseName parses a request file name. The owner may not contain "-".
// Any name that does not match, or whose date does not exist, is a
// [NameError]. An ID with leading zeros is accepted, but [Name.String]
// writes it without them, so only canonical names round-trip exactly.
func ParseName(filename string) (Name, error) {
	match := namePattern.FindStringSubmatch(filename)
	if match == nil {
		return Name{}, &NameError{Name: filename}
	}

	id, err := strconv.Atoi(match[2])
	if err != nil {
		return Name{}, &NameError{Name: filename, Reason: "request ID out of range"}
	}
	// The pattern guarantees these are digit runs of fixed width.
	year, _ := strconv.Atoi(match[3])
	month, _ := strconv.Atoi(match[4])
	day, _ := strconv.Atoi(match[5])

	date := Date{Year: year, Month: time.Month(month), Day: day}
	if !date.valid() {
		return Name{}, &NameError{Name: filename, Reason: "no such date " + date.String()}
	}

	return Name{Owner: match[1], ID: id, Date: date}, nil
}

// validOwner reports whether owner can appear in a file name.
func validOwner(owner string) bool {
	return owner != "" && !strings.ContainsAny(owner, "-/\x00\n")
}
