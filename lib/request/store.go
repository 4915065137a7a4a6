// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"slices"

	"github.com/cedadev/miptools/lib/clock"
)

const (
	// sharedDirMode lets every workspace member create request files
	// while the sticky bit stops them removing each other's.
	sharedDirMode = 0o777 | os.ModeSticky

	// sharedFileMode is the counter file mode: anyone may allocate.
	sharedFileMode = 0o666

	// requestFileMode is world-readable so the worker can read it.
	requestFileMode = 0o644
)

// StoreConfig configures a [Store].
type StoreConfig struct {
	// Root is the workspace root, usually from workspace.Resolver.
	Root string

	// Kind selects migration or retrieval.
	Kind Kind

	// ManagementDir is the subdirectory of Root holding the store.
	// Default: DefaultManagementDir.
	ManagementDir string

	// Owner is the login name recorded on new requests and used to
	// filter scans. Default: the current user.
	Owner string

	// Clock supplies the creation date. Default: clock.Real().
	Clock clock.Clock

	// Logger receives state-change records. Default: discard.
	Logger *slog.Logger
}

// Store is the directory-backed collection of requests of one kind in
// one workspace.
type Store struct {
	root    string
	baseDir string
	kind    Kind
	owner   string
	clock   clock.Clock
	logger  *slog.Logger
}

// NewStore validates config and returns a Store. It does not touch the
// filesystem; call [Store.Initialise] to create the layout.
func NewStore(config StoreConfig) (*Store, error) {
	if config.Root == "" {
		return nil, fmt.Errorf("request store: workspace root is required")
	}
	if _, ok := layouts[config.Kind]; !ok {
		return nil, fmt.Errorf("request store: unknown kind %q", config.Kind)
	}

	managementDir := config.ManagementDir
	if managementDir == "" {
		managementDir = DefaultManagementDir
	}

	owner := config.Owner
	if owner == "" {
		current, err := user.Current()
		if err != nil {
			return nil, fmt.Errorf("request store: resolving login name: %w", err)
		}
		owner = current.Username
	}
	if !validOwner(owner) {
		return nil, fmt.Errorf("request store: login name %q cannot be used in request file names", owner)
	}

	storeClock := config.Clock
	if storeClock == nil {
		storeClock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Store{
		root:    config.Root,
		baseDir: filepath.Join(config.Root, managementDir),
		kind:    config.Kind,
		owner:   owner,
		clock:   storeClock,
		logger:  logger.With("kind", string(config.Kind), "workspace", config.Root),
	}, nil
}

// Kind returns the store's request kind.
func (s *Store) Kind() Kind { return s.kind }

// Root returns the workspace root.
func (s *Store) Root() string { return s.root }

// Owner returns the login name used for new requests and scan filtering.
func (s *Store) Owner() string { return s.owner }

// BaseDir returns the management directory holding the store.
func (s *Store) BaseDir() string { return s.baseDir }

// StatusDir returns the directory holding requests in status.
func (s *Store) StatusDir(status Status) string {
	return filepath.Join(s.baseDir, DirectoryName(s.kind, status))
}

func (s *Store) counterPath() string {
	return filepath.Join(s.baseDir, CounterFileName(s.kind))
}

// Initialise creates any missing status directories (mode 01777) and
// seeds the counter file with 0 (mode 0666). Existing entries are left
// alone, so running it again, or as a different user, is harmless.
func (s *Store) Initialise() error {
	for _, status := range AllStatuses {
		created, err := ensureSharedDir(s.StatusDir(status))
		if err != nil {
			return fmt.Errorf("initialising %s store: %w", s.kind, err)
		}
		if created {
			s.logger.Info("created status directory", "status", status.String(), "path", s.StatusDir(status))
		}
	}

	created, err := seedCounter(s.counterPath())
	if err != nil {
		return fmt.Errorf("initialising %s ID counter: %w", s.kind, err)
	}
	if created {
		s.logger.Info("created ID counter", "path", s.counterPath())
	}
	return nil
}

func ensureSharedDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", path)
		}
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return false, err
	}
	if err := os.Mkdir(path, 0o777); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}
	// Mkdir honours the umask and ignores the sticky bit.
	if err := os.Chmod(path, sharedDirMode); err != nil {
		return true, err
	}
	return true, nil
}

// Create allocates an ID, writes payload into the creation area and
// moves the request to NOT_STARTED. The returned request is visible to
// scans exactly once, in NOT_STARTED.
func (s *Store) Create(payload Payload) (*Request, error) {
	if err := validatePayload(payload); err != nil {
		return nil, err
	}
	if payload.Kind() != s.kind {
		return nil, fmt.Errorf("cannot file a %s payload in the %s store", payload.Kind(), s.kind)
	}

	id, err := s.allocateID()
	if err != nil {
		return nil, err
	}

	name := Name{Owner: s.owner, ID: id, Date: DateOf(s.clock.Now())}
	request := &Request{
		Kind:     s.kind,
		Owner:    name.Owner,
		ID:       name.ID,
		Date:     name.Date,
		Status:   StatusCreating,
		filename: name.String(),
		store:    s,
	}
	if err := request.create(payload); err != nil {
		return nil, err
	}

	s.logger.Info("request created", "id", id, "owner", s.owner)
	return request, nil
}

// ScanOptions filters [Store.Scan].
type ScanOptions struct {
	// Statuses to scan. Nil means VisibleStatuses.
	Statuses []Status

	// ID restricts the result to one request ID. Zero matches all.
	ID int

	// AllUsers includes every owner's requests instead of only the
	// store owner's.
	AllUsers bool
}

// Scan lists requests in the selected status directories, sorted by
// ascending ID. A file name that does not parse fails the whole scan.
func (s *Store) Scan(options ScanOptions) ([]*Request, error) {
	statuses := options.Statuses
	if statuses == nil {
		statuses = VisibleStatuses
	}

	var requests []*Request
	for _, status := range statuses {
		if !status.Valid() {
			return nil, fmt.Errorf("scanning %s requests: invalid status %d", s.kind, int(status))
		}
		directory := s.StatusDir(status)
		entries, err := os.ReadDir(directory)
		if err != nil {
			return nil, fmt.Errorf("scanning %s requests: %w", s.kind, err)
		}
		for _, entry := range entries {
			name, err := ParseName(entry.Name())
			if err != nil {
				return nil, fmt.Errorf("scanning %s: %w", directory, err)
			}
			if options.ID != 0 && name.ID != options.ID {
				continue
			}
			if !options.AllUsers && name.Owner != s.owner {
				continue
			}
			requests = append(requests, &Request{
				Kind:     s.kind,
				Owner:    name.Owner,
				ID:       name.ID,
				Date:     name.Date,
				Status:   status,
				filename: entry.Name(),
				store:    s,
			})
		}
	}

	slices.SortStableFunc(requests, func(a, b *Request) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return requests, nil
}

// Get returns the single request with id among those options selects.
// Zero matches wraps ErrNotFound; several wraps ErrAmbiguous.
func (s *Store) Get(id int, options ScanOptions) (*Request, error) {
	options.ID = id
	requests, err := s.Scan(options)
	if err != nil {
		return nil, err
	}
	switch len(requests) {
	case 0:
		return nil, fmt.Errorf("%s request %d: %w", s.kind, id, ErrNotFound)
	case 1:
		return requests[0], nil
	default:
		return nil, fmt.Errorf("%s request %d: %w (%d found)", s.kind, id, ErrAmbiguous, len(requests))
	}
}

// Withdraw moves the owner's request id from NOT_STARTED to WITHDRAWN.
// Any other current status is a [TransitionError] naming it, and the
// request is left where it is.
func (s *Store) Withdraw(id int) (*Request, error) {
	request, err := s.Get(id, ScanOptions{})
	if err != nil {
		return nil, err
	}
	if request.Status != StatusNotStarted {
		return nil, &TransitionError{ID: id, Current: request.Status, Target: StatusWithdrawn}
	}
	if err := s.Transition(request, StatusWithdrawn); err != nil {
		return nil, err
	}
	return request, nil
}

// Transition moves request to status to with a single rename between
// status directories, then updates request.Status. It is the only
// mutation of request state. The move must be allowed by the state
// machine, and request.Status must be where the file actually is.
func (s *Store) Transition(request *Request, to Status) error {
	if request.Kind != s.kind {
		return fmt.Errorf("cannot move a %s request through the %s store", request.Kind, s.kind)
	}
	from := request.Status
	if !CanTransition(from, to) {
		return &TransitionError{ID: request.ID, Current: from, Target: to}
	}
	if err := s.move(request.filename, from, to); err != nil {
		return fmt.Errorf("%s request %d: %w", s.kind, request.ID, err)
	}
	request.Status = to

	s.logger.Info("request status changed",
		"id", request.ID,
		"owner", request.Owner,
		"from", from.String(),
		"to", to.String(),
	)
	return nil
}

// move renames filename from one status directory to another.
func (s *Store) move(filename string, from, to Status) error {
	oldPath := filepath.Join(s.StatusDir(from), filename)
	newPath := filepath.Join(s.StatusDir(to), filename)

	err := os.Rename(oldPath, newPath)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		if _, statErr := os.Lstat(oldPath); errors.Is(statErr, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s is no longer in %s", ErrStaleStatus, filename, s.StatusDir(from))
		}
	}
	return fmt.Errorf("moving %s from %s to %s: %w", filename, from, to, err)
}
