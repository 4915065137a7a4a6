// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package permission answers whether a named Unix user (the subject)
// could access a path, judged from the permission bits alone.
//
// The check mirrors what the kernel does for an unprivileged process:
// the owner triplet applies when the subject owns the file, otherwise
// the group triplet when any of the subject's groups matches, otherwise
// the world triplet. Access control lists and capabilities are not
// consulted.
//
// [Checker.Check] also requires search (x) permission on every
// ancestor directory, and for a symbolic link on the ancestors of the
// link target, so a report names the directory that actually blocks
// access rather than just the leaf. Results are memoized per checker;
// call [Checker.ClearCache] after changing permissions on disk.
//
// Misses are [Denial] values. With [Options.ContinueOnError] the
// checker keeps scanning and collects every denial in a [Report];
// otherwise the first denial is returned as the error.
//
// The checker only reads metadata (stat, lstat, readlink) and never
// modifies the filesystem.
package permission
