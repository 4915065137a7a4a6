// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cedadev/miptools/lib/permission"
	"github.com/cedadev/miptools/lib/testutil"
)

var ingestion = permission.Subject{Name: "badc", UID: 4000000002, GIDs: []uint32{4000000002}}

func newValidator(t *testing.T) *Validator {
	t.Helper()
	validator, err := NewValidator(Config{
		Checker:        permission.NewChecker(ingestion),
		SupportContact: "support@example.org",
	})
	if err != nil {
		t.Fatalf("NewValidator error: %v", err)
	}
	return validator
}

func TestValidate_Ingestable(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "v20190101"), 0o755)
	testutil.WriteFile(t, filepath.Join(dataset, "tas_1.nc"), "x", 0o644)
	testutil.MkdirMode(t, filepath.Join(dataset, "extra"), 0o755)
	testutil.WriteFile(t, filepath.Join(dataset, "extra", "tas_2.nc"), "x", 0o644)

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("report not OK: %v", report.Problems())
	}
	if report.Files != 2 {
		t.Errorf("Files = %d, want 2", report.Files)
	}

	var output bytes.Buffer
	if err := report.Write(&output); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if output.Len() != 0 {
		t.Errorf("OK report wrote %q", output.String())
	}
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "v1"), 0o755)
	unreadable := testutil.WriteFile(t, filepath.Join(dataset, "a.nc"), "x", 0o600)
	testutil.WriteFile(t, filepath.Join(dataset, "b.nc"), "x", 0o644)
	stray := testutil.WriteFile(t, filepath.Join(dataset, "notes.txt"), "x", 0o644)
	closed := testutil.MkdirMode(t, filepath.Join(dataset, "closed"), 0o711)

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if report.OK() {
		t.Fatal("report OK, want problems")
	}
	if report.Empty {
		t.Error("Empty set although dataset files exist")
	}
	if len(report.InvalidNames) != 1 || report.InvalidNames[0] != stray {
		t.Errorf("InvalidNames = %v, want [%s]", report.InvalidNames, stray)
	}

	denied := map[string]bool{}
	for _, denial := range report.Permissions.Denials {
		denied[denial.Path] = true
	}
	if !denied[unreadable] || !denied[closed] || len(denied) != 2 {
		t.Errorf("denied paths = %v, want %s and %s", denied, unreadable, closed)
	}

	var output bytes.Buffer
	if err := report.Write(&output); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	text := output.String()
	if !strings.HasPrefix(text, "dataset "+dataset+" cannot be ingested\n") {
		t.Errorf("report heading wrong:\n%s", text)
	}
	if !strings.Contains(text, "invalid file name (not *.nc): "+stray) {
		t.Errorf("report lacks the invalid name:\n%s", text)
	}
	// The files belong to the test user, not root: no escalation.
	if strings.Contains(text, "support@example.org") {
		t.Errorf("report escalates a user-owned path:\n%s", text)
	}
}

func TestValidate_Empty(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "empty"), 0o755)
	testutil.MkdirMode(t, filepath.Join(dataset, "sub"), 0o755)

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !report.Empty || report.OK() {
		t.Fatalf("Empty = %v, OK = %v; want an empty, failing report", report.Empty, report.OK())
	}
	problems := report.Problems()
	if len(problems) != 1 || problems[0] != "does not contain any valid files" {
		t.Errorf("Problems = %q", problems)
	}
}

func TestValidate_DirectoryItselfUnreadable(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "private"), 0o700)
	testutil.WriteFile(t, filepath.Join(dataset, "a.nc"), "x", 0o644)

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if report.Permissions.Len() == 0 {
		t.Fatal("no denials for a 0700 dataset directory")
	}
	first := report.Permissions.Denials[0]
	if first.Path != dataset || first.Required != permission.Read|permission.Execute {
		t.Errorf("first denial = %s needs %q, want the dataset needing rx", first.Path, first.Required)
	}
}

func TestValidate_CustomSuffix(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "grib"), 0o755)
	testutil.WriteFile(t, filepath.Join(dataset, "a.grb"), "x", 0o644)

	validator, err := NewValidator(Config{Checker: permission.NewChecker(ingestion), Suffix: ".grb"})
	if err != nil {
		t.Fatalf("NewValidator error: %v", err)
	}
	report, err := validator.Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !report.OK() {
		t.Errorf("report not OK: %v", report.Problems())
	}
}

func TestValidate_NotADirectory(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	file := testutil.WriteFile(t, filepath.Join(base, "file.nc"), "x", 0o644)

	if _, err := newValidator(t).Validate(file); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Validate(file) error = %v, want ErrNotDirectory", err)
	}
}

func TestReport_Escalations(t *testing.T) {
	report := &Report{
		Directory:      "/gws/a/b/c/ds",
		subject:        "badc",
		supportContact: "support@example.org",
		suffix:         ".nc",
	}
	report.Permissions.Denials = []*permission.Denial{
		{Subject: "badc", Path: "/gws/a/b", Required: permission.Execute, Class: permission.ClassWorld, UID: 0},
		{Subject: "badc", Path: "/gws/a/b/c/ds/x.nc", Required: permission.Read, Class: permission.ClassWorld, UID: 1000},
	}

	notes := report.Escalations()
	if len(notes) != 1 {
		t.Fatalf("Escalations = %q, want one note", notes)
	}
	want := `please email support@example.org to ask for user "badc" to be given access to /gws/a/b`
	if notes[0] != want {
		t.Errorf("note = %q, want %q", notes[0], want)
	}

	var output bytes.Buffer
	if err := report.Write(&output); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if !strings.Contains(output.String(), strings.Repeat("=", 80)+"\n"+want+"\n") {
		t.Errorf("Write output lacks the ruled note:\n%s", output.String())
	}

	report.supportContact = ""
	if notes := report.Escalations(); notes != nil {
		t.Errorf("Escalations without a contact = %q", notes)
	}
}

func TestNewValidator_RequiresChecker(t *testing.T) {
	if _, err := NewValidator(Config{}); err == nil {
		t.Error("NewValidator without checker succeeded")
	}
}

func TestValidate_SharedAncestorDeniedForEveryDataset(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	shared := testutil.MkdirMode(t, filepath.Join(base, "shared"), 0o750)
	first := filepath.Join(shared, "ds1")
	second := filepath.Join(shared, "ds2")
	testutil.WriteFile(t, filepath.Join(first, "a.nc"), "x", 0o644)
	testutil.WriteFile(t, filepath.Join(second, "b.nc"), "x", 0o644)

	validator := newValidator(t)
	for _, dataset := range []string{first, second} {
		report, err := validator.Validate(dataset)
		if err != nil {
			t.Fatalf("Validate(%s) error: %v", dataset, err)
		}
		if report.OK() {
			t.Errorf("%s reported OK under a shared ancestor the ingestion user cannot search", dataset)
		}
		found := false
		for _, denial := range report.Permissions.Denials {
			if denial.Path == shared && denial.Required == permission.Execute {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: denials %v do not name %s", dataset, report.Permissions.Messages(), shared)
		}
	}
}

func TestValidate_SymbolicLinks(t *testing.T) {
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "ds"), 0o755)
	testutil.WriteFile(t, filepath.Join(dataset, "a.nc"), "x", 0o644)
	target := testutil.MkdirMode(t, filepath.Join(base, "real"), 0o755)
	testutil.WriteFile(t, filepath.Join(target, "README.txt"), "x", 0o644)
	testutil.Symlink(t, "../real", filepath.Join(dataset, "extra"))

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if !report.OK() {
		t.Fatalf("link to a readable directory rejected: %v", report.Problems())
	}
	if report.Files != 1 {
		t.Errorf("Files = %d, want 1 (links are not followed)", report.Files)
	}

	// The ingestion user may search hidden but not list it.
	testutil.MkdirMode(t, filepath.Join(base, "hidden"), 0o711)
	link := testutil.Symlink(t, "../hidden", filepath.Join(dataset, "more"))
	broken := testutil.Symlink(t, "../missing", filepath.Join(dataset, "gone.nc"))

	report, err = newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if len(report.InvalidNames) != 0 {
		t.Errorf("InvalidNames = %v, want none", report.InvalidNames)
	}
	if report.Permissions.Len() != 1 || report.Permissions.Denials[0].Path != link {
		t.Errorf("denials = %v, want read denied on %s", report.Permissions.Messages(), link)
	}
	if len(report.Unlisted) != 1 || !strings.HasPrefix(report.Unlisted[0], broken+": ") {
		t.Errorf("Unlisted = %v, want the broken link %s", report.Unlisted, broken)
	}
}

func TestValidate_UnlistableSubdirectoryIsReported(t *testing.T) {
	testutil.SkipIfRoot(t)
	base := testutil.TraversableTempDir(t)
	dataset := testutil.MkdirMode(t, filepath.Join(base, "ds"), 0o755)
	testutil.WriteFile(t, filepath.Join(dataset, "a.nc"), "x", 0o644)
	locked := testutil.MkdirMode(t, filepath.Join(dataset, "locked"), 0o000)

	report, err := newValidator(t).Validate(dataset)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if report.OK() {
		t.Fatal("report OK although a subdirectory could not be listed")
	}
	if len(report.Unlisted) != 1 || !strings.HasPrefix(report.Unlisted[0], locked+": ") {
		t.Errorf("Unlisted = %v, want %s", report.Unlisted, locked)
	}
	if report.Files != 1 {
		t.Errorf("Files = %d, want 1", report.Files)
	}
	if !strings.Contains(strings.Join(report.Problems(), "\n"), "could not be checked: "+locked) {
		t.Errorf("Problems = %q", report.Problems())
	}
}
