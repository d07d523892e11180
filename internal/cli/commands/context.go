// Package commands implements the mapbind subcommands.
package commands

import (
	"github.com/mapbind-labs/mapbind/internal/config"
	"github.com/mapbind-labs/mapbind/internal/engine"
	"github.com/spf13/cobra"
)

// buildEngine constructs an engine from the config carried in the command
// context.
func buildEngine(cmd *cobra.Command) (*engine.Engine, *config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	engineCfg := engine.Config{
		MappingsDir:    cfg.MappingsDir,
		Dialect:        cfg.DialectName(),
		NamingStrategy: cfg.NamingStrategyName(),
		Logger:         logger,
	}
	if cfg.Target != nil {
		engineCfg.DefaultSchema = cfg.Target.Schema
		params, err := cfg.Target.IdentifierParams()
		if err != nil {
			return nil, nil, err
		}
		if params != nil {
			engineCfg.Identifier = &engine.IdentifierOverrides{
				Quote:         params.Quote,
				QuoteEnd:      params.QuoteEnd,
				Escape:        params.Escape,
				Normalization: params.Normalization,
			}
		}
	}

	eng, err := engine.New(engineCfg)
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}
