// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// Request file names embed the creation date, so anything that builds
// them takes a Clock instead of calling time.Now directly. Production
// code passes Real(); tests pass Fake() pinned to a known instant:
//
//	c := clock.Fake(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
//	store, _ := request.NewStore(request.StoreConfig{Clock: c, ...})
//	c.Advance(24 * time.Hour) // tomorrow's requests
package clock
