// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build information for the miptools binary.
//
// [GitCommit], [GitDirty], [BuildTime] and [Version] are injected with
// -ldflags -X, for example:
//
//	go build -ldflags "-X github.com/cedadev/miptools/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/miptools
//
// Unset, they read "unknown" and "0.1.0-dev".
package version
