// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace maps a path to the root of the managed group
// workspace (GWS) that contains it.
//
// Workspaces live at a fixed depth below a small set of prefixes: a
// root under /gws is /gws/<volume>/<tier>/<name>, one under
// /group_workspaces is /group_workspaces/<volume>/<name>. A
// [Convention] records each prefix and how many path components below
// it form the root; a [Resolver] tries its conventions in order.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotAWorkspace means the path is not under any workspace
	// prefix, or is too shallow to name a workspace.
	ErrNotAWorkspace = errors.New("not in a group workspace")

	// ErrWorkspaceMissing means the path names a workspace root that
	// does not exist as a directory.
	ErrWorkspaceMissing = errors.New("group workspace does not exist")
)

// Convention is one workspace prefix and the number of path components
// below it that make up a workspace root.
type Convention struct {
	Prefix string `yaml:"prefix" json:"prefix"`
	Depth  int    `yaml:"depth" json:"depth"`
}

// DefaultConventions are the production workspace layouts.
var DefaultConventions = []Convention{
	{Prefix: "/gws", Depth: 3},
	{Prefix: "/group_workspaces", Depth: 2},
}

// Validate checks that the prefix is an absolute clean path other than
// "/" and the depth is positive.
func (c Convention) Validate() error {
	if !filepath.IsAbs(c.Prefix) || filepath.Clean(c.Prefix) != c.Prefix || c.Prefix == "/" {
		return fmt.Errorf("workspace prefix %q must be a clean absolute path below /", c.Prefix)
	}
	if c.Depth < 1 {
		return fmt.Errorf("workspace prefix %s: depth must be at least 1, got %d", c.Prefix, c.Depth)
	}
	return nil
}

// Resolver maps paths to workspace roots.
type Resolver struct {
	Conventions []Convention
}

// NewResolver returns a resolver over conventions, or over
// DefaultConventions when none are given.
func NewResolver(conventions ...Convention) *Resolver {
	if len(conventions) == 0 {
		conventions = DefaultConventions
	}
	return &Resolver{Conventions: conventions}
}

// Resolve returns the workspace root containing path. The path is made
// absolute and cleaned first and need not exist; the root must exist
// as a directory. Errors wrap ErrNotAWorkspace or ErrWorkspaceMissing.
func (r *Resolver) Resolve(path string) (string, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	for _, convention := range r.Conventions {
		relative, ok := strings.CutPrefix(absolute, convention.Prefix+"/")
		if !ok {
			continue
		}
		components := strings.Split(relative, "/")
		if len(components) < convention.Depth {
			return "", fmt.Errorf("%s: %w (a workspace under %s is %d levels deep)",
				absolute, ErrNotAWorkspace, convention.Prefix, convention.Depth)
		}
		root := filepath.Join(append([]string{convention.Prefix}, components[:convention.Depth]...)...)

		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("%s: %w: %s", absolute, ErrWorkspaceMissing, root)
		}
		return root, nil
	}
	return "", fmt.Errorf("%s: %w", absolute, ErrNotAWorkspace)
}

// Same reports whether a and b resolve to the same workspace root. It
// returns the first resolution error.
func (r *Resolver) Same(a, b string) (bool, error) {
	rootA, err := r.Resolve(a)
	if err != nil {
		return false, err
	}
	rootB, err := r.Resolve(b)
	if err != nil {
		return false, err
	}
	return rootA == rootB, nil
}
