package commands

import (
	"github.com/spf13/cobra"

	"github.com/ostred/syncup/cmd/syncup/handlers"
)

// Doctor returns the command for diagnosing the local environment and
// the deployment state. It is read-only.
func Doctor() *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check local tools, authentication and deployment state",
		Long: `Doctor reports on everything provision depends on:

  - Whether the cloud CLI (and optionally ssh) is installed
  - Whether an account is authenticated
  - Which deployment resources currently exist in the project

Without --project only the local checks run. Nothing is created or
modified.

Example:
  syncup doctor --project my-project`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), projectID)
		},
	}

	cmd.Flags().StringVarP(&projectID, "project", "p", "", "Project ID to inspect (local checks only if omitted)")

	return cmd
}
