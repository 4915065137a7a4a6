// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for miptools packages.
//
// [MkdirMode], [WriteFile] and [Symlink] build small directory trees
// with exact permission bits. Modes are applied with an explicit chmod
// after creation so the test process umask does not leak into what
// the permission checker sees.
//
// [SkipIfRoot] skips tests whose expectations depend on the kernel
// enforcing permission bits against the running user; root bypasses
// them.
//
// [TraversableTempDir] returns a temporary directory whose ancestors
// are all world searchable.
//
// [Workspace] creates a throwaway workspace root under t.TempDir()
// along with a prefix/depth pair that resolves to it.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no miptools-internal dependencies.
package testutil
