// Package engine orchestrates metadata builds. A build discovers mapping
// files, parses them, runs the primary bind, and then resolves the queued
// deferred passes against the completed entity graph.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mapbind-labs/mapbind/internal/binder"
	"github.com/mapbind-labs/mapbind/internal/dag"
	"github.com/mapbind-labs/mapbind/internal/parser"
	"github.com/mapbind-labs/mapbind/pkg/dialect"
	"github.com/mapbind-labs/mapbind/pkg/naming"
)

// IdentifierOverrides adjusts the target dialect's identifier handling.
type IdentifierOverrides struct {
	Quote         string
	QuoteEnd      string
	Escape        string
	Normalization string
}

// Config holds engine configuration.
type Config struct {
	// MappingsDir is the directory scanned for entity mapping files.
	MappingsDir string
	// Dialect names the target dialect (defaults to ansi).
	Dialect string
	// NamingStrategy names the physical naming strategy (defaults to
	// identity).
	NamingStrategy string
	// DefaultSchema overrides the dialect's default schema.
	DefaultSchema string
	// Identifier adjusts the dialect's identifier handling.
	Identifier *IdentifierOverrides
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// Engine compiles mapping files into resolved metadata.
type Engine struct {
	cfg      Config
	logger   *slog.Logger
	dialect  *dialect.Dialect
	strategy naming.PhysicalNamingStrategy
}

// CompileResult is the outcome of one metadata build.
type CompileResult struct {
	// RunID uniquely identifies the build.
	RunID string
	// Metadata is the fully resolved entity graph.
	Metadata *binder.Metadata
	// Graph records entity identifier dependencies, for reporting.
	Graph *dag.Graph
	// Files lists the mapping files that were compiled, in parse order.
	Files []string
	// Duration is the wall-clock build time.
	Duration time.Duration
}

// New creates an engine. The dialect and naming strategy are resolved from
// their registries up front so misconfiguration fails before any parse.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dialectName := cfg.Dialect
	if dialectName == "" {
		dialectName = "ansi"
	}
	d, ok := dialect.Get(strings.ToLower(dialectName))
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)",
			dialectName, strings.Join(dialect.List(), ", "))
	}
	d, err := applyOverrides(d, cfg.DefaultSchema, cfg.Identifier)
	if err != nil {
		return nil, err
	}

	strategyName := cfg.NamingStrategy
	if strategyName == "" {
		strategyName = "identity"
	}
	strategy, ok := naming.Get(strings.ToLower(strategyName))
	if !ok {
		return nil, fmt.Errorf("unknown naming strategy %q (available: %s)",
			strategyName, strings.Join(naming.List(), ", "))
	}

	logger.Debug("initializing engine",
		"mappings_dir", cfg.MappingsDir, "dialect", d.Name, "naming", strategyName)

	return &Engine{cfg: cfg, logger: logger, dialect: d, strategy: strategy}, nil
}

// Dialect returns the resolved target dialect.
func (e *Engine) Dialect() *dialect.Dialect { return e.dialect }

// applyOverrides returns a copy of the dialect with config overrides applied.
// The registered dialect is shared and must not be mutated.
func applyOverrides(d *dialect.Dialect, schema string, id *IdentifierOverrides) (*dialect.Dialect, error) {
	if schema == "" && id == nil {
		return d, nil
	}
	dd := *d
	if schema != "" {
		dd.DefaultSchema = schema
	}
	if id != nil {
		if id.Quote != "" {
			dd.Identifiers.Quote = id.Quote
			dd.Identifiers.QuoteEnd = id.Quote
		}
		if id.QuoteEnd != "" {
			dd.Identifiers.QuoteEnd = id.QuoteEnd
		}
		if id.Escape != "" {
			dd.Identifiers.Escape = id.Escape
		}
		if id.Normalization != "" {
			norm, ok := dialect.ParseNormalization(id.Normalization)
			if !ok {
				return nil, fmt.Errorf("unknown identifier normalization %q", id.Normalization)
			}
			dd.Identifiers.Normalization = norm
		}
	}
	return &dd, nil
}

// Compile runs one full metadata build.
func (e *Engine) Compile(ctx context.Context) (*CompileResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	e.logger.Info("starting build", "run_id", runID, "mappings_dir", e.cfg.MappingsDir)

	files, err := e.discoverMappingFiles()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no mapping files found in %s", e.cfg.MappingsDir)
	}

	var decls []*parser.EntityDecl
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileDecls, err := parser.ParseFile(f)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fileDecls...)
	}
	e.logger.Debug("parsed mapping files", "files", len(files), "entities", len(decls))

	buildCtx := &binder.BuildContext{
		Dialect: e.dialect,
		Naming:  e.strategy,
		Logger:  e.logger,
	}
	b := binder.New(buildCtx)
	if err := b.Bind(decls); err != nil {
		return nil, err
	}
	md := b.Metadata()

	graph := e.buildGraph(md)
	if hasCycle, path := graph.HasCycle(); hasCycle {
		// Cyclic identifier copies still resolve when a referenced
		// identifier is complete before its copier runs; registration
		// order decides, so only warn here.
		e.logger.Warn("identifier dependency cycle", "path", strings.Join(path, " -> "))
	}

	e.logger.Debug("running deferred passes", "count", len(md.SecondPasses()))
	if err := md.RunSecondPasses(); err != nil {
		return nil, err
	}

	result := &CompileResult{
		RunID:    runID,
		Metadata: md,
		Graph:    graph,
		Files:    files,
		Duration: time.Since(start),
	}
	e.logger.Info("build completed",
		"run_id", runID, "entities", md.EntityCount(), "duration", result.Duration)
	return result, nil
}

// discoverMappingFiles walks the mappings directory for .yaml/.yml files,
// sorted for a deterministic registration order.
func (e *Engine) discoverMappingFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(e.cfg.MappingsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan mappings dir: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// buildGraph derives the entity dependency graph from the queued passes.
func (e *Engine) buildGraph(md *binder.Metadata) *dag.Graph {
	graph := dag.NewGraph()
	for _, entity := range md.Entities() {
		graph.AddNode(entity.Name, entity)
	}
	for _, pass := range md.SecondPasses() {
		copyPass, ok := pass.(*binder.CopyIdentifierPass)
		if !ok {
			continue
		}
		referenced := copyPass.ReferencedEntityName()
		dependent := copyPass.DependentEntityName()
		if _, ok := md.Entity(referenced); !ok {
			// The pass will fail with an unresolved reference; leave
			// the diagnosis to the scheduler.
			continue
		}
		if err := graph.AddEdge(referenced, dependent); err != nil {
			e.logger.Debug("skipping graph edge", "from", referenced, "to", dependent, "error", err)
		}
	}
	return graph
}
