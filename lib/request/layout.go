// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package request

// DefaultManagementDir is the workspace subdirectory holding every
// request store.
const DefaultManagementDir = "mngr"

// layout names the on-disk entries of one store kind. The external
// migration worker discovers work by these names.
type layout struct {
	directories map[Status]string
	counterFile string
}

var layouts = map[Kind]layout{
	KindMigration: {
		directories: map[Status]string{
			StatusCreating:   ".creating_migrate",
			StatusNotStarted: "to-migrate",
			StatusDoing:      "migrating",
			StatusDone:       "migrated",
			StatusFailed:     "failed-migrations",
			StatusWithdrawn:  "withdrawn-migrations",
		},
		counterFile: ".last_migration_id",
	},
	KindRetrieval: {
		directories: map[Status]string{
			StatusCreating:   ".creating_retrieve",
			StatusNotStarted: "to-retrieve",
			StatusDoing:      "retrieving",
			StatusDone:       "retrieved",
			StatusFailed:     "failed-retrievals",
			StatusWithdrawn:  "withdrawn-retrievals",
		},
		counterFile: ".last_retrieval_id",
	},
}

// DirectoryName returns the status directory name for kind, relative to
// the management directory. Returns "" for an unknown kind or status.
func DirectoryName(kind Kind, status Status) string {
	return layouts[kind].directories[status]
}

// CounterFileName returns the last-ID counter file name for kind.
func CounterFileName(kind Kind) string {
	return layouts[kind].counterFile
}
