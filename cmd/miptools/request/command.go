// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

// Package request implements the "miptools request" subcommands, which
// file, withdraw and list migration and retrieval requests in a group
// workspace's request store.
package request

import (
	"log/slog"

	"github.com/cedadev/miptools/cmd/miptools/cli"
	"github.com/cedadev/miptools/lib/config"
	"github.com/cedadev/miptools/lib/request"
)

// Command returns the "request" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "request",
		Summary: "Manage migration and retrieval requests",
		Description: `Manage migration and retrieval requests for a group workspace.

A migration request asks for a workspace directory to be moved to
near-line storage; a retrieval request asks for migrated data to be
brought back. Requests are files under the workspace's management
directory and are picked up by the migration service.`,
		Subcommands: []*cli.Command{
			initCommand(),
			migrateCommand(),
			retrieveCommand(),
			withdrawCommand(),
			listCommand(),
			metricsCommand(),
		},
	}
}

// workspaceSession bundles what every request subcommand needs once
// its configuration has been loaded and its workspace resolved.
type workspaceSession struct {
	config *config.Config
	root   string
	logger *slog.Logger
}

// openSession loads configuration and resolves path to its workspace
// root.
func openSession(configFlag *cli.ConfigFlag, path string, logger *slog.Logger) (*workspaceSession, error) {
	cfg, logger, err := configFlag.Load(logger)
	if err != nil {
		return nil, err
	}
	root, err := cfg.Resolver().Resolve(path)
	if err != nil {
		return nil, toolError(err)
	}
	logger.Debug("workspace resolved", "path", path, "root", root)
	return &workspaceSession{
		config: cfg,
		root:   root,
		logger: logger.With("workspace", root),
	}, nil
}

// store opens the request store of kind in the session's workspace.
func (s *workspaceSession) store(kind request.Kind) (*request.Store, error) {
	store, err := request.NewStore(request.StoreConfig{
		Root:          s.root,
		Kind:          kind,
		ManagementDir: s.config.Workspaces.ManagementDir,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, cli.Internal("%w", err)
	}
	return store, nil
}

// stores opens the store of every kind, or only of kind when it is set.
func (s *workspaceSession) stores(kind request.Kind) ([]*request.Store, error) {
	kinds := request.Kinds
	if kind != "" {
		kinds = []request.Kind{kind}
	}
	stores := make([]*request.Store, 0, len(kinds))
	for _, kind := range kinds {
		store, err := s.store(kind)
		if err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	return stores, nil
}
