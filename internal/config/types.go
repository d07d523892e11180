// Package config provides configuration loading for mapbind. Settings are
// layered from defaults, an optional mapbind.yaml project file, MAPBIND_*
// environment variables, and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/mapbind-labs/mapbind/pkg/dialect"
	"github.com/mapbind-labs/mapbind/pkg/naming"
)

// Config holds the full mapbind configuration.
type Config struct {
	// MappingsDir is the directory scanned for entity mapping files.
	MappingsDir string `koanf:"mappings_dir"`

	// ProjectRoot is the resolved project root directory. It is inferred,
	// never read from the config file.
	ProjectRoot string `koanf:"-"`

	Verbose bool   `koanf:"verbose"`
	Output  string `koanf:"output"`

	Target *TargetConfig `koanf:"target"`
	Naming *NamingConfig `koanf:"naming"`
}

// TargetConfig selects the dialect the compiled metadata is rendered for.
type TargetConfig struct {
	Dialect string `koanf:"dialect"`
	Schema  string `koanf:"schema"`

	// Params holds dialect-specific overrides (quoting characters,
	// normalization mode).
	Params map[string]any `koanf:"params"`
}

// NamingConfig selects the physical naming strategy.
type NamingConfig struct {
	Strategy string `koanf:"strategy"`
}

// IdentifierParams are the dialect identifier overrides decodable from
// TargetConfig.Params.
type IdentifierParams struct {
	Quote         string `mapstructure:"quote"`
	QuoteEnd      string `mapstructure:"quote_end"`
	Escape        string `mapstructure:"escape"`
	Normalization string `mapstructure:"normalization"`
}

// IdentifierParams decodes the identifier overrides from the target params.
// Unknown keys are ignored; they may belong to other tooling.
func (t *TargetConfig) IdentifierParams() (*IdentifierParams, error) {
	if t == nil || len(t.Params) == 0 {
		return nil, nil
	}
	var p IdentifierParams
	if err := mapstructure.Decode(t.Params, &p); err != nil {
		return nil, fmt.Errorf("invalid target params: %w", err)
	}
	if p == (IdentifierParams{}) {
		return nil, nil
	}
	return &p, nil
}

// Validate checks that the configured dialect and naming strategy exist.
func (c *Config) Validate() error {
	if c.Target != nil && c.Target.Dialect != "" {
		if _, ok := dialect.Get(strings.ToLower(c.Target.Dialect)); !ok {
			return fmt.Errorf("unknown dialect %q (available: %s)",
				c.Target.Dialect, strings.Join(dialect.List(), ", "))
		}
	}
	if c.Naming != nil && c.Naming.Strategy != "" {
		if _, ok := naming.Get(strings.ToLower(c.Naming.Strategy)); !ok {
			return fmt.Errorf("unknown naming strategy %q (available: %s)",
				c.Naming.Strategy, strings.Join(naming.List(), ", "))
		}
	}
	return nil
}

// DialectName returns the configured dialect name, or the default.
func (c *Config) DialectName() string {
	if c.Target != nil && c.Target.Dialect != "" {
		return strings.ToLower(c.Target.Dialect)
	}
	return DefaultDialect
}

// NamingStrategyName returns the configured naming strategy, or the default.
func (c *Config) NamingStrategyName() string {
	if c.Naming != nil && c.Naming.Strategy != "" {
		return strings.ToLower(c.Naming.Strategy)
	}
	return DefaultNamingStrategy
}
