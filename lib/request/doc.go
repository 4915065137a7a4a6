// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package request tracks migration and retrieval requests for a group
// workspace using directory-as-queue semantics.
//
// Each request is one small text file. Its identity (owner, ID,
// creation date) is the file name:
//
//	<owner>-<id>-<YYYY>-<MM>-<DD>
//
// and its status is the directory the file currently sits in. Status
// is never written into the file. A [Store] owns one directory per
// [Status] under <workspace>/mngr/ for its [Kind], plus a shared
// counter file holding the last allocated ID:
//
//	mngr/.creating_migrate/      CREATING (hidden, transient)
//	mngr/to-migrate/             NOT_STARTED
//	mngr/migrating/              DOING
//	mngr/migrated/               DONE
//	mngr/failed-migrations/      FAILED
//	mngr/withdrawn-migrations/   WITHDRAWN
//	mngr/.last_migration_id
//
// Retrieval stores use the same shape with their own names. These
// names are read by the external migration worker and must not change.
//
// The only mutation of request state is [Store.Transition], a single
// rename(2) between two status directories. A scanner therefore sees a
// request in exactly one directory at any instant. Directories are
// created world-writable with the sticky bit so every workspace member
// can file requests but cannot remove anyone else's.
//
// IDs come from the counter file, read-incremented-written while an
// exclusive flock is held, so concurrent [Store.Create] calls from
// separate processes never hand out the same ID.
//
// State machine:
//
//	CREATING --create--> NOT_STARTED --withdraw--> WITHDRAWN
//	NOT_STARTED --worker starts--> DOING --ok--> DONE
//	                                     --error--> FAILED
//
// DONE, FAILED and WITHDRAWN are terminal. Only Create and Withdraw are
// driven by the CLI; the DOING/DONE/FAILED moves belong to the external
// worker, which uses the same Transition primitive.
package request
