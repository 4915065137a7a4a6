// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package permission

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Options tunes one [Checker.Check] call.
type Options struct {
	// SkipParents checks only the path itself, not the search
	// permission on its ancestors or the link target's ancestors.
	SkipParents bool

	// ContinueOnError keeps scanning after a denial. Check then
	// returns (false, nil) if anything was denied, and the denials are
	// only visible through Report.
	ContinueOnError bool

	// Report, when non-nil, receives every denial found.
	Report *Report
}

type cacheKey struct {
	path        string
	access      Access
	skipParents bool
}

// Checker evaluates access for one subject and memoizes results per
// absolute path and required access. A Checker is not safe for
// concurrent use.
type Checker struct {
	subject Subject
	cache   map[cacheKey]bool
}

// NewChecker returns a checker for subject with an empty cache.
func NewChecker(subject Subject) *Checker {
	return &Checker{subject: subject, cache: make(map[cacheKey]bool)}
}

// Subject returns the user the checker evaluates for.
func (c *Checker) Subject() Subject { return c.subject }

// ClearCache forgets every memoized result.
func (c *Checker) ClearCache() {
	clear(c.cache)
}

// Check reports whether the subject has access to path, and unless
// options.SkipParents, search permission on every ancestor of path and
// of its link target. Relative paths resolve against the working
// directory.
//
// A denial in fail-fast mode returns (false, *Denial). A path already
// known to fail returns an error wrapping ErrDenied in fail-fast mode;
// its denials were reported by the call that first found them. stat
// and readlink failures are returned as they are and never cached.
func (c *Checker) Check(path string, access Access, options Options) (bool, error) {
	if access > Read|Write|Execute {
		return false, fmt.Errorf("%w: %d is outside 0..7", ErrInvalidAccess, int(access))
	}
	absolute, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("resolving %s: %w", path, err)
	}

	key := cacheKey{path: absolute, access: access, skipParents: options.SkipParents}
	if allowed, ok := c.cache[key]; ok {
		if !allowed && !options.ContinueOnError {
			return false, fmt.Errorf("%w: %s needs %q (cached result, see the earlier report for details)",
				ErrDenied, absolute, access.String())
		}
		return allowed, nil
	}

	allowed, err := c.check(absolute, access, options)
	if err != nil {
		return false, err
	}
	c.cache[key] = allowed
	return allowed, nil
}

func (c *Checker) check(path string, access Access, options Options) (bool, error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return false, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	allowed := true
	mode := uint32(stat.Mode)
	actual, class := SelectTriplet(c.subject, stat.Uid, stat.Gid, mode)
	if !actual.Covers(access) {
		denial := &Denial{
			Subject:  c.subject.Name,
			Path:     path,
			Required: access,
			Actual:   actual,
			Class:    class,
			UID:      stat.Uid,
			GID:      stat.Gid,
			Mode:     fs.FileMode(mode & 0o777),
		}
		options.Report.add(denial)
		if !options.ContinueOnError {
			return false, denial
		}
		allowed = false
	}

	if options.SkipParents || path == "/" {
		return allowed, nil
	}

	ancestors, err := searchTargets(path)
	if err != nil {
		return false, err
	}
	parentOptions := Options{ContinueOnError: options.ContinueOnError, Report: options.Report}
	for _, directory := range ancestors {
		ok, err := c.Check(directory, Execute, parentOptions)
		if err != nil {
			return false, err
		}
		if !ok {
			allowed = false
		}
	}
	return allowed, nil
}

// searchTargets returns the directories that need search permission
// for path to be reachable: its parent and, when path is a symbolic
// link, the parent of the link target.
func searchTargets(path string) ([]string, error) {
	parent := filepath.Dir(path)
	targets := []string{parent}

	var lstat unix.Stat_t
	if err := unix.Lstat(path, &lstat); err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}
	if lstat.Mode&unix.S_IFMT != unix.S_IFLNK {
		return targets, nil
	}

	target, err := os.Readlink(path)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(parent, target)
	}
	if targetParent := filepath.Dir(filepath.Clean(target)); targetParent != parent {
		targets = append(targets, targetParent)
	}
	return targets, nil
}
