// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/dataset"
	"github.com/cedadev/miptools/lib/permission"
)

type checkParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	cli.ColorFlag
	User string `json:"user" flag:"user,u" desc:"account that will ingest the data (default: ingestion.user from the config)"`
}

// checkResult is the JSON form of one dataset report.
type checkResult struct {
	Directory   string   `json:"directory"`
	OK          bool     `json:"ok"`
	Files       int      `json:"files"`
	Problems    []string `json:"problems,omitempty"`
	Escalations []string `json:"escalations,omitempty"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Check that datasets can be ingested",
		Description: `Check that each dataset directory can be read by the ingestion
account and holds only dataset files.

Every directory in the tree must be readable, every directory on the
way to it must be searchable, and every file must be a readable
dataset file. All problems are reported, not just the first. Paths
owned by root cannot be fixed by the dataset owner; for those a note
names the support contact to email.`,
		Usage:  "miptools dataset check <directory>... [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Check two datasets for the default ingestion account",
				Command:     "miptools dataset check /gws/nopw/j04/cmip6_prep/CMIP6/tas /gws/nopw/j04/cmip6_prep/CMIP6/pr",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("usage: miptools dataset check <directory>...")
			}
			cfg, logger, err := params.Load(logger)
			if err != nil {
				return err
			}

			userName := params.User
			if userName == "" {
				userName = cfg.Ingestion.User
			}
			subject, err := permission.LookupSubject(userName)
			if err != nil {
				return cli.NotFound("ingestion account: %w", err)
			}

			validator, err := dataset.NewValidator(dataset.Config{
				Checker:        permission.NewChecker(subject),
				Suffix:         cfg.Ingestion.DatasetSuffix,
				SupportContact: cfg.Ingestion.SupportContact,
				Logger:         logger,
			})
			if err != nil {
				return cli.Internal("%w", err)
			}

			reports := make([]*dataset.Report, 0, len(args))
			for _, directory := range args {
				report, err := validator.Validate(directory)
				if err != nil {
					return checkError(directory, err)
				}
				reports = append(reports, report)
			}

			failed := 0
			for _, report := range reports {
				if !report.OK() {
					failed++
				}
			}

			if params.OutputJSON {
				results := make([]checkResult, 0, len(reports))
				for _, report := range reports {
					results = append(results, checkResult{
						Directory:   report.Directory,
						OK:          report.OK(),
						Files:       report.Files,
						Problems:    report.Problems(),
						Escalations: report.Escalations(),
					})
				}
				if err := cli.WriteJSON(results); err != nil {
					return cli.Internal("writing JSON: %w", err)
				}
			} else if err := writeReports(params.Styles(os.Stdout), subject.Name, reports, failed); err != nil {
				return cli.Internal("writing report: %w", err)
			}

			if failed > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func writeReports(styles cli.Styles, subject string, reports []*dataset.Report, failed int) error {
	for _, report := range reports {
		if report.OK() {
			if _, err := fmt.Printf("%s %s (%d files)\n", styles.Good.Render("ok"), report.Directory, report.Files); err != nil {
				return err
			}
			continue
		}
		if err := report.Write(os.Stdout); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d of %d datasets can be ingested by %s", len(reports)-failed, len(reports), subject)
	if failed > 0 {
		summary = styles.Bad.Render(summary)
	} else {
		summary = styles.Heading.Render(summary)
	}
	_, err := fmt.Println(summary)
	return err
}

// checkError classifies an error that stopped a dataset from being
// checked at all.
func checkError(directory string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("dataset %s: %w", directory, err)
	case errors.Is(err, dataset.ErrNotDirectory):
		return cli.Validation("dataset %s: %w", directory, err)
	case errors.Is(err, fs.ErrPermission):
		return cli.Forbidden("dataset %s: %w", directory, err)
	default:
		return cli.Internal("dataset %s: %w", directory, err)
	}
}
