package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odontia/odontia/internal/rbac"
)

func newAbilityCmd() *cobra.Command {
	var (
		flags      principalFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "ability",
		Short: "Print the effective grants of a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.principal()
			if err != nil {
				return err
			}
			grants := rbac.Build(p).Grants()
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(grants)
			}
			for _, g := range grants {
				fmt.Fprintln(out, g.String())
			}
			return nil
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
