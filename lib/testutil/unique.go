// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"
)

var uniqueCounter atomic.Uint64

// UniqueID returns a string of the form "prefixN" where N is a
// monotonically increasing integer. The result contains no "-", so it
// is usable as a request owner name.
//
//	owner := testutil.UniqueID("user") // "user1", "user2", ...
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, uniqueCounter.Add(1))
}
