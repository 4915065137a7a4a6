// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for miptools.
//
// Configuration comes from a single file named by the --config flag
// (via [LoadFile]) or the MIPTOOLS_CONFIG environment variable (via
// [Load]). Without either, [Load] returns [Default]: the production
// workspace conventions and ingestion settings. There is no automatic
// file discovery.
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas allowed; anything else is YAML.
//
// The file may contain environment-specific sections (development,
// staging, production) that override base values when
// [Config].Environment matches. A development section typically adds
// a workspace convention under /tmp for trying the tools out.
//
// ${VAR} and ${VAR:-default} patterns are expanded in workspace
// prefixes after loading. No other environment variables override
// config values.
//
// Key exports:
//
//   - [Config] -- master struct with Workspaces, Ingestion, Logging
//   - [Default] -- returns a Config with production defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
