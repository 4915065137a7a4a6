// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/config"
	"github.com/cedadev/miptools/lib/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvVar, "")
	var err error
	output := captureStdout(t, func() {
		err = Command().ExecuteContext(context.Background(), args, slog.New(slog.DiscardHandler))
	})
	return output, err
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = writer

	fn()

	writer.Close()
	os.Stdout = original

	var buffer bytes.Buffer
	io.Copy(&buffer, reader)
	reader.Close()

	return buffer.String()
}

func currentUser(t *testing.T) string {
	t.Helper()
	current, err := user.Current()
	if err != nil {
		t.Fatalf("user.Current: %v", err)
	}
	return current.Username
}

func TestCheckGoodDataset(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	directory := filepath.Join(base, "tas")
	testutil.WriteFile(t, filepath.Join(directory, "tas_day_r1i1p1f1.nc"), "netcdf", 0o644)
	testutil.WriteFile(t, filepath.Join(directory, "v20261018", "tas_mon_r1i1p1f1.nc"), "netcdf", 0o644)

	output, err := run(t, "check", "--user", currentUser(t), directory)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, output)
	}
	if !strings.Contains(output, "ok "+directory+" (2 files)") {
		t.Errorf("output:\n%s", output)
	}
	if !strings.Contains(output, "1 of 1 datasets can be ingested") {
		t.Errorf("summary missing:\n%s", output)
	}
}

func TestCheckReportsEveryProblem(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	good := filepath.Join(base, "tas")
	testutil.WriteFile(t, filepath.Join(good, "tas.nc"), "netcdf", 0o644)
	bad := filepath.Join(base, "pr")
	testutil.WriteFile(t, filepath.Join(bad, "README.txt"), "notes", 0o644)

	output, err := run(t, "check", "--user", currentUser(t), good, bad)
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("error = %v, want exit code 1", err)
	}
	for _, want := range []string{
		"ok " + good + " (1 files)",
		"dataset " + bad + " cannot be ingested",
		"   invalid file name (not *.nc): " + filepath.Join(bad, "README.txt"),
		"   does not contain any valid files",
		"1 of 2 datasets can be ingested",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestCheckPermissionDenied(t *testing.T) {
	testutil.SkipIfRoot(t)
	base := testutil.TraversableTempDir(t)
	directory := filepath.Join(base, "tas")
	locked := testutil.WriteFile(t, filepath.Join(directory, "locked.nc"), "netcdf", 0o000)

	output, err := run(t, "check", "--user", currentUser(t), directory)
	if err == nil {
		t.Fatalf("expected failure:\n%s", output)
	}
	if !strings.Contains(output, "missing permissions on "+locked) {
		t.Errorf("denial not reported:\n%s", output)
	}
}

func TestCheckJSON(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	directory := filepath.Join(base, "empty")
	if err := os.Mkdir(directory, 0o755); err != nil {
		t.Fatal(err)
	}

	output, err := run(t, "check", "--json", "--user", currentUser(t), directory)
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want exit error", err)
	}
	var results []checkResult
	if err := json.Unmarshal([]byte(output), &results); err != nil {
		t.Fatalf("decoding JSON: %v\n%s", err, output)
	}
	if len(results) != 1 || results[0].OK || results[0].Files != 0 {
		t.Fatalf("results = %+v", results)
	}
	if len(results[0].Problems) != 1 || results[0].Problems[0] != "does not contain any valid files" {
		t.Errorf("problems = %v", results[0].Problems)
	}
}

func TestCheckErrors(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	file := testutil.WriteFile(t, filepath.Join(base, "tas.nc"), "netcdf", 0o644)

	tests := []struct {
		name string
		args []string
		want cli.ErrorCategory
	}{
		{"no directories", []string{"check"}, cli.CategoryValidation},
		{"missing directory", []string{"check", "--user", currentUser(t), filepath.Join(base, "absent")}, cli.CategoryNotFound},
		{"not a directory", []string{"check", "--user", currentUser(t), file}, cli.CategoryValidation},
		{"unknown user", []string{"check", "--user", "no-such-user-miptools", base}, cli.CategoryNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := run(t, test.args...)
			var toolErr *cli.ToolError
			if !errors.As(err, &toolErr) || toolErr.Category != test.want {
				t.Errorf("error = %v, want category %s", err, test.want)
			}
		})
	}
}
