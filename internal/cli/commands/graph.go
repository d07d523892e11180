package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "graph",
		Short: "Show entity identifier dependencies",
		Long: `Show which entities copy their identifier from another entity.

Edges run from the referenced entity to its dependents. A cycle is reported
but is not necessarily an error: a copy still resolves when the referenced
identifier is complete before its copier runs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, cfg, err := buildEngine(cmd)
			if err != nil {
				return err
			}
			result, err := eng.Compile(cmd.Context())
			if err != nil {
				return err
			}
			graph := result.Graph
			out := cmd.OutOrStdout()

			if cfg.Output == "json" {
				type edge struct {
					Referenced string `json:"referenced"`
					Dependent  string `json:"dependent"`
				}
				var edges []edge
				for _, e := range result.Metadata.Entities() {
					for _, dep := range graph.GetChildren(e.Name) {
						edges = append(edges, edge{Referenced: e.Name, Dependent: dep})
					}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"nodes": graph.NodeCount(),
					"edges": edges,
				})
			}

			fmt.Fprintf(out, "Entities: %d, identifier dependencies: %d\n\n", graph.NodeCount(), graph.EdgeCount())
			for _, e := range result.Metadata.Entities() {
				children := graph.GetChildren(e.Name)
				if len(children) == 0 {
					continue
				}
				for _, dep := range children {
					fmt.Fprintf(out, "  %s -> %s\n", e.Name, dep)
				}
			}
			if hasCycle, path := graph.HasCycle(); hasCycle {
				fmt.Fprintf(out, "\nWarning: dependency cycle: %v\n", path)
			}
			return nil
		},
	}
}
