package commands

import (
	"github.com/spf13/cobra"

	"github.com/ostred/syncup/cmd/syncup/handlers"
)

// Destroy returns the destroy command.
//
// The destroy command removes every resource provision created. The
// deletions run best-effort: one failing resource does not stop the
// rest from being cleaned up, and all failures are reported together
// at the end.
func Destroy() *cobra.Command {
	var opts handlers.DestroyOptions

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the Syncthing node and all associated resources",
		Long: `Destroy removes all deployment resources from the project:

  - The instance (releasing its boot disk)
  - The reserved static address
  - The firewall rules
  - The public key pushed to project metadata

The instance is deleted first so the address can be released. Each
deletion is attempted even if an earlier one failed; failures are
collected and reported at the end so nothing is silently left behind.
Absent resources are skipped, so re-running completes a partial
teardown.

The local key pair on disk is never deleted.

Example:
  syncup destroy --project my-project

WARNING: This operation is irreversible. All data on the node is lost.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Project ID that owns the resources (prompted for if omitted)")
	cmd.Flags().StringVarP(&opts.Zone, "zone", "z", "", "Zone of the instance (default us-west1-b)")
	cmd.Flags().BoolVarP(&opts.AutoApprove, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&opts.KeepSSHKey, "keep-ssh-key", false, "Leave the public key in project metadata and print manual cleanup instructions")

	return cmd
}
