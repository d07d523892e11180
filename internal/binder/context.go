// Package binder builds the relational mapping model from parsed entity
// declarations. The primary pass creates entities and registers second passes
// for bindings that depend on other entities; RunSecondPasses completes them
// once the entity graph is full.
package binder

import (
	"io"
	"log/slog"

	"github.com/mapbind-labs/mapbind/pkg/dialect"
	"github.com/mapbind-labs/mapbind/pkg/naming"
)

// BuildContext carries the build-time collaborators consulted by binding
// passes: the target dialect, the physical naming strategy, and the logger.
// It is injected rather than looked up so tests can supply deterministic
// stubs.
type BuildContext struct {
	Dialect *dialect.Dialect
	Naming  naming.PhysicalNamingStrategy
	Logger  *slog.Logger
}

func (c *BuildContext) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c *BuildContext) namingEnv() *naming.Environment {
	return &naming.Environment{Dialect: c.Dialect}
}
