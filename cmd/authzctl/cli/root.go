package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/rbac"
)

// Execute creates the root command tree and runs it.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authzctl",
		Short: "Inspect the clinic authorization policy",
		Long: `authzctl evaluates the role capability table and the operation registry
offline, and manages the decision audit queue.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newAbilityCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newOperationsCmd())
	cmd.AddCommand(newQueueCmd())

	return cmd
}

// principalFlags are shared by commands that evaluate a synthetic principal.
type principalFlags struct {
	role   string
	grants string
}

func (f *principalFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.role, "role", "", "role of the principal (required)")
	cmd.Flags().StringVar(&f.grants, "grants", "", `custom grants as JSON, e.g. '[{"action":"read","subject":"Invoice"}]'`)
	_ = cmd.MarkFlagRequired("role")
}

func (f *principalFlags) principal() (rbac.Principal, error) {
	role, ok := rbac.ParseRole(f.role)
	if !ok {
		return rbac.Principal{}, fmt.Errorf("unknown role %q (known: %s)", f.role, joinRoles())
	}
	var grants []rbac.Grant
	if strings.TrimSpace(f.grants) != "" {
		if !json.Valid([]byte(f.grants)) {
			return rbac.Principal{}, fmt.Errorf("--grants is not valid JSON")
		}
		grants = rbac.DecodeGrants([]byte(f.grants))
	}
	return rbac.Principal{ID: "authzctl", Role: role, TenantID: "authzctl", Grants: grants}, nil
}

func joinRoles() string {
	names := make([]string, 0, len(rbac.Roles()))
	for _, r := range rbac.Roles() {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func newGate(stderr io.Writer) *policy.Gate {
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return policy.NewGate(policy.DefaultRegistry(), policy.WithLogger(logger))
}
