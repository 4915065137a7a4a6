// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Request is one migration or retrieval request. The identity fields
// come from the file name; Status reflects the directory the file was
// in when the request was scanned or last moved by this process.
type Request struct {
	Kind   Kind
	Owner  string
	ID     int
	Date   Date
	Status Status

	filename string
	store    *Store
}

// FileName returns the on-disk file name.
func (r *Request) FileName() string { return r.filename }

// Path returns the file's location for the current in-memory status.
func (r *Request) Path() string {
	return filepath.Join(r.store.StatusDir(r.Status), r.filename)
}

// create writes payload and moves the request to NOT_STARTED. It is
// only legal while the request is CREATING. If writing fails the
// partial file is removed; if the final move fails the file stays in
// the hidden creation area, invisible to default scans.
func (r *Request) create(payload Payload) error {
	if r.Status != StatusCreating {
		return fmt.Errorf("request %d: payload may only be written in status %s (current status = %s)",
			r.ID, StatusCreating, r.Status)
	}

	path := r.Path()
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, requestFileMode)
	if err != nil {
		return fmt.Errorf("creating %s request file: %w", r.Kind, err)
	}
	if err := writeRequestFile(file, payload.Encode()); err != nil {
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return r.SetStatus(StatusNotStarted)
}

// writeRequestFile is replaced in tests to simulate a failed write.
var writeRequestFile = writeAndClose

func writeAndClose(file *os.File, content []byte) error {
	if _, err := file.Write(content); err != nil {
		file.Close()
		return err
	}
	if err := file.Chmod(requestFileMode); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Read loads and decodes the payload. A wrong line count is a
// [ContentError] carrying the file path.
func (r *Request) Read() (Payload, error) {
	path := r.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s request %d: %w", r.Kind, r.ID, err)
	}
	payload, err := DecodePayload(r.Kind, data)
	if err != nil {
		var contentError *ContentError
		if errors.As(err, &contentError) {
			contentError.Path = path
		}
		return nil, err
	}
	return payload, nil
}

// SetStatus moves the request to status via [Store.Transition].
func (r *Request) SetStatus(status Status) error {
	return r.store.Transition(r, status)
}

// String renders the one-line summary, e.g.
// <migration request: user=alice id=3 date=2026-10-18 status=NOT_STARTED>.
func (r *Request) String() string {
	return fmt.Sprintf("<%s request: user=%s id=%d date=%s status=%s>",
		r.Kind, r.Owner, r.ID, r.Date, r.Status)
}

// Dump writes the summary line, the payload description indented by
// one space, and a blank separator line. A payload that cannot be read
// is returned as an error after the summary line has been written.
func (r *Request) Dump(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.String()); err != nil {
		return err
	}
	payload, err := r.Read()
	if err != nil {
		return err
	}
	for _, line := range payload.Describe() {
		if _, err := fmt.Fprintf(w, " %s\n", line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
