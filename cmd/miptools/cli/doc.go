// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework for the miptools binary.
//
// A [Command] is a node in the command tree. Leaf commands declare a
// parameter struct through Params; [FlagsFromParams] turns its tagged
// fields into pflag flags, so the struct is the single description of
// what a command accepts:
//
//	type listParams struct {
//	    cli.ConfigFlag
//	    cli.JSONOutput
//	    AllUsers bool `json:"all_users" flag:"all-users,a" desc:"show requests for all users"`
//	}
//
// Run receives a context cancelled on SIGINT/SIGTERM, the positional
// arguments left after flag parsing, and a logger. Commands narrow the
// logger to the configured level with [ConfigFlag.Load].
//
// Errors returned from Run are either a [ToolError] carrying a
// category (validation, not_found, forbidden, conflict, transient,
// internal), or an [ExitError] when the command has already printed
// its own report and only needs a non-zero exit status.
//
// Unknown subcommands and flags produce a "did you mean" suggestion
// based on edit distance.
package cli
