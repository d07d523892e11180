package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mapbind-labs/mapbind/pkg/dialect"
	"github.com/mapbind-labs/mapbind/pkg/naming"
	"github.com/spf13/cobra"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialects and naming strategies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect", "Quote", "Normalization", "Default Schema"})
			for _, name := range dialect.List() {
				d, ok := dialect.Get(name)
				if !ok {
					continue
				}
				schema := d.DefaultSchema
				if schema == "" {
					schema = "-"
				}
				t.AppendRow(table.Row{
					d.Name,
					d.Identifiers.Quote + d.Identifiers.QuoteEnd,
					normalizationName(d.Identifiers.Normalization),
					schema,
				})
			}
			t.Render()

			fmt.Fprintln(out)
			fmt.Fprint(out, "Naming strategies:")
			for _, name := range naming.List() {
				fmt.Fprintf(out, " %s", name)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func normalizationName(n dialect.NormalizationStrategy) string {
	switch n {
	case dialect.NormLowercase:
		return "lowercase"
	case dialect.NormUppercase:
		return "uppercase"
	case dialect.NormCaseInsensitive:
		return "case_insensitive"
	default:
		return "case_sensitive"
	}
}
