// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MkdirMode creates path (and parents) and sets its mode exactly.
func MkdirMode(t *testing.T, path string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("creating directory %s: %v", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	// Restore traversal so t.TempDir cleanup can remove the tree.
	t.Cleanup(func() { _ = os.Chmod(path, 0o755) })
	return path
}

// WriteFile writes content to path, creating parent directories, and
// sets its mode exactly.
func WriteFile(t *testing.T, path, content string, mode os.FileMode) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

// Symlink creates link pointing at target. target is stored verbatim,
// so a relative target resolves against the link's directory.
func Symlink(t *testing.T, target, link string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(link), 0o755); err != nil {
		t.Fatalf("creating parent of %s: %v", link, err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink %s -> %s: %v", link, target, err)
	}
	return link
}

// SkipIfRoot skips the test when running as uid 0.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
}

// Workspace creates a workspace root named name under a fresh temporary
// directory. It returns the root and the prefix under which the root
// sits at depth 1, ready for a workspace.Convention.
func Workspace(t *testing.T, name string) (root, prefix string) {
	t.Helper()
	prefix, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temporary directory: %v", err)
	}
	root = filepath.Join(prefix, name)
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("creating workspace %s: %v", root, err)
	}
	return root, prefix
}

// TraversableTempDir returns a fresh temporary directory that any user
// can search, so tests can check access for a subject other than the
// running user. It makes the directories testing created world
// searchable and skips the test if a higher ancestor is not.
func TraversableTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolving temporary directory: %v", err)
	}
	// t.TempDir creates a per-test parent and a numbered child, both 0700.
	for _, path := range []string{filepath.Dir(dir), dir} {
		if err := os.Chmod(path, 0o755); err != nil {
			t.Fatalf("chmod %s: %v", path, err)
		}
	}
	for ancestor := filepath.Dir(filepath.Dir(dir)); ; ancestor = filepath.Dir(ancestor) {
		info, err := os.Stat(ancestor)
		if err != nil {
			t.Fatalf("stat %s: %v", ancestor, err)
		}
		if info.Mode().Perm()&0o001 == 0 {
			t.Skipf("temporary directory ancestor %s is not world searchable", ancestor)
		}
		if ancestor == "/" {
			break
		}
	}
	return dir
}
