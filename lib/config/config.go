// Copyright 2026 The MIP Tools Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/cedadev/miptools/lib/dataset"
	"github.com/cedadev/miptools/lib/request"
	"github.com/cedadev/miptools/lib/workspace"
)

// EnvVar names the environment variable [Load] reads.
const EnvVar = "MIPTOOLS_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for trying the tools on scratch workspaces.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is the default.
	Production Environment = "production"
)

// Config is the master configuration for miptools.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment" json:"environment"`

	// Workspaces configures workspace resolution and request storage.
	Workspaces WorkspacesConfig `yaml:"workspaces" json:"workspaces"`

	// Ingestion configures dataset checks.
	Ingestion IngestionConfig `yaml:"ingestion" json:"ingestion"`

	// Logging configures the command logger.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty" json:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty" json:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty" json:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Workspaces *WorkspacesConfig `yaml:"workspaces,omitempty" json:"workspaces,omitempty"`
	Ingestion  *IngestionConfig  `yaml:"ingestion,omitempty" json:"ingestion,omitempty"`
	Logging    *LoggingConfig    `yaml:"logging,omitempty" json:"logging,omitempty"`
}

// WorkspacesConfig configures workspace resolution.
type WorkspacesConfig struct {
	// Conventions are the workspace prefixes, tried in order.
	// Default: workspace.DefaultConventions.
	Conventions []workspace.Convention `yaml:"conventions" json:"conventions"`

	// ExtraConventions are tried after Conventions. Overrides use this
	// to add a scratch prefix without repeating the production ones.
	ExtraConventions []workspace.Convention `yaml:"extra_conventions,omitempty" json:"extra_conventions,omitempty"`

	// ManagementDir is the request store directory inside a workspace.
	// Default: mngr
	ManagementDir string `yaml:"management_dir" json:"management_dir"`
}

// IngestionConfig configures dataset checks.
type IngestionConfig struct {
	// User is the account that ingests datasets.
	// Default: badc
	User string `yaml:"user" json:"user"`

	// DatasetSuffix is the file name suffix of a dataset file.
	// Default: .nc
	DatasetSuffix string `yaml:"dataset_suffix" json:"dataset_suffix"`

	// SupportContact is named when only an administrator can fix
	// access to a root-owned path. Empty disables the note.
	SupportContact string `yaml:"support_contact" json:"support_contact"`
}

// LoggingConfig configures the command logger.
type LoggingConfig struct {
	// Level is debug, info, warn or error. Default: warn
	Level string `yaml:"level" json:"level"`
}

// Default returns the default configuration. Values from a loaded file
// are merged over it.
func Default() *Config {
	return &Config{
		Environment: Production,
		Workspaces: WorkspacesConfig{
			Conventions:   append([]workspace.Convention(nil), workspace.DefaultConventions...),
			ManagementDir: request.DefaultManagementDir,
		},
		Ingestion: IngestionConfig{
			User:           "badc",
			DatasetSuffix:  dataset.DefaultSuffix,
			SupportContact: "support@jasmin.ac.uk",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the file named by MIPTOOLS_CONFIG, or
// returns Default when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, applies the
// matching environment overrides and expands variables.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Workspaces != nil {
		if len(overrides.Workspaces.Conventions) > 0 {
			c.Workspaces.Conventions = overrides.Workspaces.Conventions
		}
		c.Workspaces.ExtraConventions = append(c.Workspaces.ExtraConventions, overrides.Workspaces.ExtraConventions...)
		if overrides.Workspaces.ManagementDir != "" {
			c.Workspaces.ManagementDir = overrides.Workspaces.ManagementDir
		}
	}

	if overrides.Ingestion != nil {
		if overrides.Ingestion.User != "" {
			c.Ingestion.User = overrides.Ingestion.User
		}
		if overrides.Ingestion.DatasetSuffix != "" {
			c.Ingestion.DatasetSuffix = overrides.Ingestion.DatasetSuffix
		}
		if overrides.Ingestion.SupportContact != "" {
			c.Ingestion.SupportContact = overrides.Ingestion.SupportContact
		}
	}

	if overrides.Logging != nil && overrides.Logging.Level != "" {
		c.Logging.Level = overrides.Logging.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} in workspace
// prefixes.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	for i := range c.Workspaces.Conventions {
		c.Workspaces.Conventions[i].Prefix = expandVars(c.Workspaces.Conventions[i].Prefix, vars)
	}
	for i := range c.Workspaces.ExtraConventions {
		c.Workspaces.ExtraConventions[i].Prefix = expandVars(c.Workspaces.ExtraConventions[i].Prefix, vars)
	}
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// AllConventions returns Conventions followed by ExtraConventions.
func (c *Config) AllConventions() []workspace.Convention {
	all := make([]workspace.Convention, 0, len(c.Workspaces.Conventions)+len(c.Workspaces.ExtraConventions))
	all = append(all, c.Workspaces.Conventions...)
	return append(all, c.Workspaces.ExtraConventions...)
}

// Resolver returns a workspace resolver over AllConventions.
func (c *Config) Resolver() *workspace.Resolver {
	return workspace.NewResolver(c.AllConventions()...)
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	conventions := c.AllConventions()
	if len(conventions) == 0 {
		errs = append(errs, fmt.Errorf("workspaces.conventions must list at least one prefix"))
	}
	for _, convention := range conventions {
		if err := convention.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("workspaces.conventions: %w", err))
		}
	}

	managementDir := c.Workspaces.ManagementDir
	if managementDir == "" || strings.Contains(managementDir, "/") || managementDir == "." || managementDir == ".." {
		errs = append(errs, fmt.Errorf("workspaces.management_dir must be a single directory name, got %q", managementDir))
	}

	if c.Ingestion.User == "" {
		errs = append(errs, fmt.Errorf("ingestion.user is required"))
	}
	if c.Ingestion.DatasetSuffix == "" {
		errs = append(errs, fmt.Errorf("ingestion.dataset_suffix is required"))
	}

	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
