package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/odontia/odontia/internal/policy"
)

func newOperationsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "List registered operations and their requirements",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := policy.DefaultRegistry()
			out := cmd.OutOrStdout()
			type row struct {
				Operation   string `json:"operation"`
				Requirement string `json:"requirement"`
			}
			var rows []row
			for _, op := range registry.Operations() {
				req, err := registry.Lookup(op)
				if err != nil {
					return err
				}
				rows = append(rows, row{Operation: op, Requirement: req.String()})
			}
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tREQUIREMENT")
			for _, r := range rows {
				fmt.Fprintf(w, "%s\t%s\n", r.Operation, r.Requirement)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
