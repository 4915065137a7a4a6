// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// allocateID returns the next request ID. The counter file is locked
// with flock(LOCK_EX) for the whole read-increment-write, so two
// allocators (in this process or any other) never see the same value.
// flock locks belong to the open file description, which is why each
// call opens the file afresh.
func (s *Store) allocateID() (int, error) {
	path := s.counterPath()
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s is missing", ErrNotInitialised, path)
		}
		return 0, fmt.Errorf("opening ID counter: %w", err)
	}
	defer file.Close()

	if err := flock(file, unix.LOCK_EX); err != nil {
		return 0, fmt.Errorf("locking ID counter %s: %w", path, err)
	}
	defer flock(file, unix.LOCK_UN)

	last, err := readCounter(file)
	if err != nil {
		return 0, fmt.Errorf("reading ID counter %s: %w", path, err)
	}
	next := last + 1
	if err := writeCounter(file, next); err != nil {
		return 0, fmt.Errorf("writing ID counter %s: %w", path, err)
	}
	return next, nil
}

// LastID returns the most recently allocated ID (0 for a fresh store).
func (s *Store) LastID() (int, error) {
	path := s.counterPath()
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s is missing", ErrNotInitialised, path)
		}
		return 0, fmt.Errorf("opening ID counter: %w", err)
	}
	defer file.Close()

	if err := flock(file, unix.LOCK_SH); err != nil {
		return 0, fmt.Errorf("locking ID counter %s: %w", path, err)
	}
	defer flock(file, unix.LOCK_UN)

	last, err := readCounter(file)
	if err != nil {
		return 0, fmt.Errorf("reading ID counter %s: %w", path, err)
	}
	return last, nil
}

func flock(file *os.File, how int) error {
	for {
		err := unix.Flock(int(file.Fd()), how)
		if err != unix.EINTR {
			return err
		}
	}
}

// readCounter parses the first line of the counter file.
func readCounter(file *os.File) (int, error) {
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return 0, err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("counter holds %q: %w", line, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("counter holds negative value %d", value)
	}
	return value, nil
}

// writeCounter overwrites the counter in place and truncates whatever
// followed the old value.
func writeCounter(file *os.File, value int) error {
	content := []byte(strconv.Itoa(value) + "\n")
	if _, err := file.WriteAt(content, 0); err != nil {
		return err
	}
	if err := file.Truncate(int64(len(content))); err != nil {
		return err
	}
	return file.Sync()
}

// seedCounter creates the counter file holding 0 if it does not exist.
// Exclusive create keeps two concurrent initialisers from resetting a
// counter that is already in use.
func seedCounter(path string) (created bool, err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, sharedFileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := file.Write([]byte("0\n")); err != nil {
		file.Close()
		return true, err
	}
	if err := file.Close(); err != nil {
		return true, err
	}
	// The umask usually strips the group/world write bits.
	return true, os.Chmod(path, sharedFileMode)
}
