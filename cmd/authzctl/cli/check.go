package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odontia/odontia/internal/policy"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// errDenied makes a denial visible in the exit status when --exit-code is set.
var errDenied = errors.New("denied")

func newCheckCmd() *cobra.Command {
	var (
		flags     principalFlags
		operation string
		action    string
		subject   string
		exitCode  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate one operation or action/subject pair for a role",
		Example: `  authzctl check --role patient --op patients.delete
  authzctl check --role staff_billing --action update --subject Invoice \
    --grants '[{"action":"update","subject":"Invoice"}]'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := flags.principal()
			if err != nil {
				return err
			}
			req, label, err := checkRequirement(operation, action, subject)
			if err != nil {
				return err
			}
			gate := newGate(cmd.ErrOrStderr())
			if operation != "" {
				err = gate.EnforceOperation(cmd.Context(), &p, operation)
			} else {
				err = gate.Enforce(cmd.Context(), &p, req)
			}
			out := cmd.OutOrStdout()
			switch {
			case err == nil:
				fmt.Fprintf(out, "allow %s\n", label)
				return nil
			case shared.IsDenial(err):
				fmt.Fprintf(out, "deny %s (%s)\n", label, shared.KindOf(err))
				if exitCode {
					return errDenied
				}
				return nil
			default:
				return err
			}
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&operation, "op", "", "registered operation name")
	cmd.Flags().StringVar(&action, "action", "", "action to check when --op is not given")
	cmd.Flags().StringVar(&subject, "subject", "", "subject to check when --op is not given")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "return a non-zero status on deny")
	cmd.MarkFlagsMutuallyExclusive("op", "action")
	cmd.MarkFlagsMutuallyExclusive("op", "subject")

	return cmd
}

func checkRequirement(operation, action, subject string) (policy.Requirement, string, error) {
	if operation != "" {
		if _, err := policy.DefaultRegistry().Lookup(operation); err != nil {
			return nil, "", err
		}
		return nil, operation, nil
	}
	if action == "" || subject == "" {
		return nil, "", errors.New("either --op or both --action and --subject are required")
	}
	a, ok := rbac.ParseAction(action)
	if !ok {
		return nil, "", fmt.Errorf("unknown action %q", action)
	}
	s, ok := rbac.ParseSubject(subject)
	if !ok {
		return nil, "", fmt.Errorf("unknown subject %q", subject)
	}
	return policy.Require(policy.Can(a, s)), string(a) + ":" + string(s), nil
}
