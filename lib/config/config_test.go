// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cedadev/miptools/lib/workspace"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Production {
		t.Errorf("expected environment=production, got %s", cfg.Environment)
	}
	if len(cfg.Workspaces.Conventions) != 2 || cfg.Workspaces.Conventions[0].Prefix != "/gws" {
		t.Errorf("expected /gws and /group_workspaces conventions, got %v", cfg.Workspaces.Conventions)
	}
	if cfg.Workspaces.ManagementDir != "mngr" {
		t.Errorf("expected management_dir=mngr, got %s", cfg.Workspaces.ManagementDir)
	}
	if cfg.Ingestion.User != "badc" {
		t.Errorf("expected ingestion user badc, got %s", cfg.Ingestion.User)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	// Default must not alias the package-level conventions.
	cfg.Workspaces.Conventions[0].Prefix = "/changed"
	if workspace.DefaultConventions[0].Prefix != "/gws" {
		t.Error("Default() shares its conventions slice with workspace.DefaultConventions")
	}
}

func TestLoad_WithoutEnvironmentVariable(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Ingestion.User != "badc" {
		t.Errorf("expected defaults, got ingestion user %s", cfg.Ingestion.User)
	}
}

func TestLoad_WithEnvironmentVariable(t *testing.T) {
	path := writeConfig(t, "miptools.yaml", `
ingestion:
  user: ingest
logging:
  level: debug
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Ingestion.User != "ingest" {
		t.Errorf("expected user=ingest, got %s", cfg.Ingestion.User)
	}
	// Unset fields keep their defaults.
	if cfg.Ingestion.DatasetSuffix != ".nc" {
		t.Errorf("expected default suffix .nc, got %s", cfg.Ingestion.DatasetSuffix)
	}
	level, err := cfg.LogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v, %v; want debug", level, err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestLoadFile_YAMLConventions(t *testing.T) {
	path := writeConfig(t, "miptools.yaml", `
workspaces:
  conventions:
    - prefix: /data/gws
      depth: 2
  management_dir: requests
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	conventions := cfg.AllConventions()
	if len(conventions) != 1 || conventions[0] != (workspace.Convention{Prefix: "/data/gws", Depth: 2}) {
		t.Errorf("conventions replaced incorrectly: %v", conventions)
	}
	if cfg.Workspaces.ManagementDir != "requests" {
		t.Errorf("expected management_dir=requests, got %s", cfg.Workspaces.ManagementDir)
	}
}

func TestLoadFile_JSONC(t *testing.T) {
	path := writeConfig(t, "miptools.jsonc", `{
  // Scratch setup.
  "environment": "development",
  "ingestion": {
    "user": "tester",
    "support_contact": "", // no escalation
  },
}`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}
	if cfg.Ingestion.User != "tester" {
		t.Errorf("expected user=tester, got %s", cfg.Ingestion.User)
	}
	if cfg.Ingestion.SupportContact != "" {
		t.Errorf("expected empty support contact, got %s", cfg.Ingestion.SupportContact)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "miptools.yaml", `
environment: development
development:
  workspaces:
    extra_conventions:
      - prefix: ${SCRATCH:-/tmp}
        depth: 1
  logging:
    level: info
production:
  ingestion:
    user: never-applied
`)
	t.Setenv("SCRATCH", "")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	conventions := cfg.AllConventions()
	if len(conventions) != 3 {
		t.Fatalf("expected production conventions plus scratch, got %v", conventions)
	}
	if conventions[2] != (workspace.Convention{Prefix: "/tmp", Depth: 1}) {
		t.Errorf("expected /tmp depth 1 last, got %v", conventions[2])
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level from development section, got %s", cfg.Logging.Level)
	}
	if cfg.Ingestion.User != "badc" {
		t.Errorf("production section applied in development: user=%s", cfg.Ingestion.User)
	}
}

func TestResolver(t *testing.T) {
	base, _ := filepath.EvalSymlinks(t.TempDir())
	root := filepath.Join(base, "ws")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.Workspaces.ExtraConventions = []workspace.Convention{{Prefix: base, Depth: 1}}

	got, err := cfg.Resolver().Resolve(filepath.Join(root, "a", "b"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != root {
		t.Errorf("Resolve = %s, want %s", got, root)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/gws",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/gws",
		},
		{
			input:    "${MISSING_MIPTOOLS_VAR:-/tmp}",
			vars:     map[string]string{},
			expected: "/tmp",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "/gws",
			vars:     map[string]string{},
			expected: "/gws",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "bad environment",
			modify:  func(c *Config) { c.Environment = "test" },
			wantErr: "invalid environment",
		},
		{
			name:    "no conventions",
			modify:  func(c *Config) { c.Workspaces.Conventions = nil },
			wantErr: "at least one prefix",
		},
		{
			name:    "relative prefix",
			modify:  func(c *Config) { c.Workspaces.Conventions[0].Prefix = "gws" },
			wantErr: "clean absolute path",
		},
		{
			name:    "nested management dir",
			modify:  func(c *Config) { c.Workspaces.ManagementDir = "a/b" },
			wantErr: "single directory name",
		},
		{
			name:    "no ingestion user",
			modify:  func(c *Config) { c.Ingestion.User = "" },
			wantErr: "ingestion.user is required",
		},
		{
			name:    "bad log level",
			modify:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Ingestion.User = ""
	cfg.Ingestion.DatasetSuffix = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{"ingestion.user", "ingestion.dataset_suffix"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err)
		}
	}
}
