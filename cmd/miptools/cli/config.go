// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"

	"github.com/cedadev/miptools/lib/config"
)

// ConfigFlag is an embeddable struct that adds --config to a command's
// parameter struct. Without the flag, the file named by MIPTOOLS_CONFIG
// is used, and without that the built-in defaults.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to a miptools config file (default: $MIPTOOLS_CONFIG)"`
}

// Load reads and validates the configuration and returns it together
// with logger narrowed to the configured log level. Configuration
// problems are validation errors.
func (f *ConfigFlag) Load(logger *slog.Logger) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = config.LoadFile(f.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, Validation("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, Validation("invalid configuration: %w", err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, Validation("invalid configuration: %w", err)
	}

	leveled := WithLevel(logger, level)
	leveled.Debug("configuration loaded",
		"environment", string(cfg.Environment),
		"path", f.ConfigPath,
	)
	return cfg, leveled, nil
}
