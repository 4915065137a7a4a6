// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/codec"
	"github.com/cedadev/miptools/lib/request"
)

type listParams struct {
	cli.ConfigFlag
	cli.JSONOutput
	cli.ColorFlag
	AllUsers   bool   `json:"all_users" flag:"all-users,a" desc:"show requests for all users"`
	Current    bool   `json:"current" flag:"current,c" desc:"only show requests with status NOT_STARTED or DOING"`
	Kind       string `json:"kind" flag:"kind" desc:"only show requests of this kind (migration or retrieval)"`
	OutputCBOR bool   `json:"-" flag:"cbor" desc:"output as CBOR"`
}

// requestRecord is the JSON and CBOR form of a listed request.
type requestRecord struct {
	Kind    request.Kind    `json:"kind"`
	Owner   string          `json:"owner"`
	ID      int             `json:"id"`
	Date    request.Date    `json:"date"`
	Status  request.Status  `json:"status"`
	File    string          `json:"file"`
	Payload request.Payload `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func newRecord(req *request.Request, payload request.Payload) requestRecord {
	return requestRecord{
		Kind:    req.Kind,
		Owner:   req.Owner,
		ID:      req.ID,
		Date:    req.Date,
		Status:  req.Status,
		File:    req.Path(),
		Payload: payload,
	}
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List migration and retrieval requests",
		Description: `List the requests in a group workspace, migrations first, each sorted
by ID. By default only your own requests are shown.

A request file that cannot be read is reported in place and the
listing continues; the command then exits non-zero.`,
		Usage:  "miptools request list <gws-path> [flags]",
		Params: func() any { return &params },
		Examples: []cli.Example{
			{
				Description: "Show every user's pending and running requests",
				Command:     "miptools request list /gws/nopw/j04/cmip6_prep --all-users --current",
			},
			{
				Description: "Export retrievals for a script",
				Command:     "miptools request list /gws/nopw/j04/cmip6_prep --kind retrieval --json",
			},
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if len(args) != 1 {
				return cli.Validation("usage: miptools request list <gws-path>")
			}
			if params.OutputJSON && params.OutputCBOR {
				return cli.Validation("--json and --cbor cannot be combined")
			}
			var kind request.Kind
			if params.Kind != "" {
				parsed, err := request.ParseKind(params.Kind)
				if err != nil {
					return cli.Validation("%w", err)
				}
				kind = parsed
			}

			session, err := openSession(&params.ConfigFlag, args[0], logger)
			if err != nil {
				return err
			}
			stores, err := session.stores(kind)
			if err != nil {
				return err
			}

			options := request.ScanOptions{AllUsers: params.AllUsers}
			if params.Current {
				options.Statuses = []request.Status{request.StatusNotStarted, request.StatusDoing}
			}

			var records []requestRecord
			unreadable := 0
			for _, store := range stores {
				requests, err := store.Scan(options)
				if err != nil {
					return toolError(err)
				}
				for _, req := range requests {
					payload, err := req.Read()
					record := newRecord(req, payload)
					if err != nil {
						unreadable++
						record.Error = err.Error()
						session.logger.Warn("unreadable request file",
							"kind", string(req.Kind),
							"id", req.ID,
							"error", err,
						)
					}
					records = append(records, record)
				}
			}

			switch {
			case params.OutputCBOR:
				data, err := codec.Marshal(records)
				if err != nil {
					return cli.Internal("encoding CBOR: %w", err)
				}
				if _, err := os.Stdout.Write(data); err != nil {
					return cli.Internal("writing CBOR: %w", err)
				}
			case params.OutputJSON:
				if _, err := params.EmitJSON(records); err != nil {
					return cli.Internal("writing JSON: %w", err)
				}
			default:
				styles := params.Styles(os.Stdout)
				for _, record := range records {
					if err := writeRecord(os.Stdout, styles, record); err != nil {
						return cli.Internal("writing listing: %w", err)
					}
				}
			}

			if unreadable > 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// writeRecord prints a record in the request dump format: the summary
// line, the payload description indented by one space, and a blank
// line. The status is coloured when styles allow it.
func writeRecord(w io.Writer, styles cli.Styles, record requestRecord) error {
	_, err := fmt.Fprintf(w, "<%s request: user=%s id=%d date=%s status=%s>\n",
		record.Kind, record.Owner, record.ID, record.Date, statusStyle(styles, record.Status).Render(record.Status.String()))
	if err != nil {
		return err
	}
	if record.Error != "" {
		if _, err := fmt.Fprintf(w, " %s\n\n", styles.Bad.Render("error: "+record.Error)); err != nil {
			return err
		}
		return nil
	}
	for _, line := range record.Payload.Describe() {
		if _, err := fmt.Fprintf(w, " %s\n", line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}

func statusStyle(styles cli.Styles, status request.Status) lipgloss.Style {
	switch status {
	case request.StatusNotStarted:
		return styles.Pending
	case request.StatusDoing:
		return styles.Active
	case request.StatusDone:
		return styles.Good
	case request.StatusFailed:
		return styles.Bad
	default:
		return styles.Muted
	}
}
