// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package dataset checks that a dataset directory can be ingested: the
// ingestion user must be able to reach and read every dataset file,
// and the tree must hold nothing but dataset files.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cedadev/miptools/lib/permission"
)

// DefaultSuffix is the file name suffix of a dataset file.
const DefaultSuffix = ".nc"

// ErrNotDirectory means the dataset path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Config configures a [Validator].
type Config struct {
	// Checker evaluates access for the ingestion user.
	Checker *permission.Checker

	// Suffix every regular file must carry. Default: DefaultSuffix.
	Suffix string

	// SupportContact is named in the escalation note for root-owned
	// paths. Empty omits the note.
	SupportContact string

	// Logger receives per-directory progress. Default: discard.
	Logger *slog.Logger
}

// Validator checks dataset directories for one ingestion user.
type Validator struct {
	checker        *permission.Checker
	suffix         string
	supportContact string
	logger         *slog.Logger
}

// NewValidator returns a Validator for config.
func NewValidator(config Config) (*Validator, error) {
	if config.Checker == nil {
		return nil, fmt.Errorf("dataset validator: permission checker is required")
	}
	suffix := config.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{
		checker:        config.Checker,
		suffix:         suffix,
		supportContact: config.SupportContact,
		logger:         logger,
	}, nil
}

// Report is the outcome of validating one dataset directory.
type Report struct {
	// Directory is the absolute dataset directory.
	Directory string

	// Files counts the dataset files found.
	Files int

	// InvalidNames lists regular files without the dataset suffix.
	InvalidNames []string

	// Permissions holds every access denial for the ingestion user.
	Permissions permission.Report

	// Empty is set when the tree holds no dataset files.
	Empty bool

	// Unlisted records directories and links the walk itself could not
	// read, each as "path: error". Their contents were not checked.
	Unlisted []string

	// denied is set when any access check failed, including checks
	// answered from the checker's cache that add no new denial.
	denied bool

	subject        string
	supportContact string
	suffix         string
}

// OK reports whether the dataset can be ingested.
func (r *Report) OK() bool {
	return len(r.InvalidNames) == 0 && r.Permissions.Len() == 0 && len(r.Unlisted) == 0 &&
		!r.Empty && !r.denied
}

// Problems returns one line per problem found, in discovery order:
// permission denials first, then invalid names, then emptiness.
func (r *Report) Problems() []string {
	var problems []string
	problems = append(problems, r.Permissions.Messages()...)
	for _, name := range r.InvalidNames {
		problems = append(problems, "invalid file name (not *"+r.suffix+"): "+name)
	}
	if r.denied && r.Permissions.Len() == 0 {
		problems = append(problems, "access denied on a path reported by an earlier check")
	}
	for _, unlisted := range r.Unlisted {
		problems = append(problems, "could not be checked: "+unlisted)
	}
	if r.Empty {
		problems = append(problems, "does not contain any valid files")
	}
	return problems
}

// Escalations returns one note per root-owned denied path, asking
// support to grant the ingestion user access. Root-owned paths cannot
// be fixed by the dataset's owner.
func (r *Report) Escalations() []string {
	if r.supportContact == "" {
		return nil
	}
	var notes []string
	for _, denial := range r.Permissions.RootOwned() {
		notes = append(notes, fmt.Sprintf("please email %s to ask for user %q to be given access to %s",
			r.supportContact, r.subject, denial.Path))
	}
	return notes
}

// Write renders the report as text: nothing when OK, otherwise a
// heading, one indented line per problem, and any escalation notes.
func (r *Report) Write(w io.Writer) error {
	if r.OK() {
		return nil
	}
	if _, err := fmt.Fprintf(w, "dataset %s cannot be ingested\n", r.Directory); err != nil {
		return err
	}
	for _, problem := range r.Problems() {
		if _, err := fmt.Fprintf(w, "   %s\n", problem); err != nil {
			return err
		}
	}
	for _, note := range r.Escalations() {
		if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", rule, note, rule); err != nil {
			return err
		}
	}
	return nil
}

var rule = strings.Repeat("=", 80)

// Validate walks directory and returns what prevents ingestion. The
// error is non-nil only when directory cannot be examined at all or is
// not a directory; ingestion problems, including subdirectories the
// caller cannot list, are in the report. Symbolic links to directories
// are checked for read access but not followed. The checker's cache is
// cleared first, so every report is complete on its own.
func (v *Validator) Validate(directory string) (*Report, error) {
	absolute, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", directory, err)
	}
	info, err := os.Stat(absolute)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", absolute, ErrNotDirectory)
	}

	report := &Report{
		Directory:      absolute,
		subject:        v.checker.Subject().Name,
		supportContact: v.supportContact,
		suffix:         v.suffix,
	}
	// Each report lists every denial on its own paths, including
	// ancestors shared with a dataset checked earlier.
	v.checker.ClearCache()

	continueOptions := permission.Options{ContinueOnError: true, Report: &report.Permissions}
	check := func(path string, access permission.Access) error {
		ok, err := v.checker.Check(path, access, continueOptions)
		if err != nil {
			return err
		}
		if !ok {
			report.denied = true
		}
		return nil
	}

	if err := check(absolute, permission.Read|permission.Execute); err != nil {
		return nil, err
	}

	err = filepath.WalkDir(absolute, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// The operator cannot list this directory; report it and
			// keep checking the rest of the tree.
			if entry != nil && entry.IsDir() {
				report.Unlisted = append(report.Unlisted, fmt.Sprintf("%s: %v", path, err))
				return fs.SkipDir
			}
			return err
		}
		if path == absolute {
			return nil
		}

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				report.Unlisted = append(report.Unlisted, fmt.Sprintf("%s: %v", path, err))
				return nil
			}
			// A link to a directory is checked like one but not
			// followed.
			isDir = target.IsDir()
		}

		switch {
		case isDir:
			// Search permission is covered by the checks on the files
			// below; listing needs read.
			v.logger.Debug("checking directory", "path", path)
			return check(path, permission.Read)
		case strings.HasSuffix(entry.Name(), v.suffix):
			report.Files++
			return check(path, permission.Read)
		default:
			report.InvalidNames = append(report.InvalidNames, path)
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absolute, err)
	}

	report.Empty = report.Files == 0
	if err := report.Permissions.Err(); err != nil {
		v.logger.Debug("ingestion user denied access", "directory", absolute, "error", err)
	}
	v.logger.Info("dataset checked",
		"directory", absolute,
		"files", report.Files,
		"problems", len(report.Problems()),
	)
	return report, nil
}
