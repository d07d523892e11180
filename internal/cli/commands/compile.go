package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mapbind-labs/mapbind/internal/config"
	"github.com/mapbind-labs/mapbind/internal/engine"
	"github.com/mapbind-labs/mapbind/pkg/mapping"
	"github.com/spf13/cobra"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile mapping files into resolved metadata",
		Long: `Compile all mapping files in the mappings directory.

Parsing and the primary bind run first; deferred identifier bindings are then
resolved against the completed entity graph. The result is reported per
entity with its physical table and columns.`,
		Example: `  # Compile the project mappings
  mapbind compile

  # Compile for a specific dialect as JSON
  mapbind compile --dialect postgres --output json

  # Recompile on every mapping file change
  mapbind compile --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, err := buildEngine(cmd)
			if err != nil {
				return err
			}

			if watch {
				return runWatch(cmd, eng, cfg)
			}

			result, err := eng.Compile(cmd.Context())
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), result, cfg.Output)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile when mapping files change")
	return cmd
}

func runWatch(cmd *cobra.Command, eng *engine.Engine, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := config.GetLogger(cmd.Context())
	return eng.Watch(ctx, func(result *engine.CompileResult, err error) {
		if err != nil {
			logger.Error("build failed", "error", err)
			return
		}
		if renderErr := renderResult(cmd.OutOrStdout(), result, cfg.Output); renderErr != nil {
			logger.Error("failed to render result", "error", renderErr)
		}
	})
}

// entityReport is the JSON shape of one compiled entity.
type entityReport struct {
	Entity     string   `json:"entity"`
	Table      string   `json:"table"`
	Identifier string   `json:"identifier"`
	Columns    []string `json:"columns"`
	Properties int      `json:"properties"`
}

type compileReport struct {
	RunID      string         `json:"run_id"`
	Files      []string       `json:"files"`
	DurationMS int64          `json:"duration_ms"`
	Entities   []entityReport `json:"entities"`
}

func renderResult(w io.Writer, result *engine.CompileResult, format string) error {
	report := compileReport{
		RunID:      result.RunID,
		Files:      result.Files,
		DurationMS: result.Duration.Milliseconds(),
	}
	for _, e := range result.Metadata.Entities() {
		report.Entities = append(report.Entities, entityReport{
			Entity:     e.Name,
			Table:      e.Table.QualifiedName(),
			Identifier: describeIdentifier(e),
			Columns:    identifierColumns(e),
			Properties: len(e.Properties()),
		})
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Entity", "Table", "Identifier", "Key Columns", "Properties"})
	for _, e := range report.Entities {
		cols := ""
		for i, c := range e.Columns {
			if i > 0 {
				cols += ", "
			}
			cols += c
		}
		t.AppendRow(table.Row{e.Entity, e.Table, e.Identifier, cols, e.Properties})
	}
	t.Render()
	fmt.Fprintf(w, "Compiled %d entities from %d files in %dms\n",
		len(report.Entities), len(report.Files), report.DurationMS)
	return nil
}

// describeIdentifier summarizes an entity's identifier shape.
func describeIdentifier(e *mapping.Entity) string {
	if e.Identifier == nil {
		return "none"
	}
	if comp, ok := e.Identifier.(*mapping.Component); ok {
		return fmt.Sprintf("composite (%d properties)", comp.PropertySpan())
	}
	if basic, ok := e.Identifier.(*mapping.BasicValue); ok && basic.TypeName != "" {
		return basic.TypeName
	}
	return "scalar"
}

// identifierColumns lists the physical column names backing the identifier.
func identifierColumns(e *mapping.Entity) []string {
	if e.Identifier == nil {
		return nil
	}
	var names []string
	for _, sel := range e.Identifier.Selectables() {
		if col, ok := sel.(*mapping.Column); ok {
			names = append(names, col.Name)
		}
	}
	return names
}
