package commands

import (
	"github.com/spf13/cobra"

	"github.com/ostred/syncup/cmd/syncup/handlers"
)

// Provision returns the provision command.
//
// The provision command brings a project from nothing to a running
// Syncthing node: it checks prerequisites, enables the compute API,
// reserves a static address, creates the instance and firewall rules,
// and bootstraps Syncthing over SSH. Every step is idempotent, so
// re-running after a partial failure resumes where the previous run
// stopped.
func Provision() *cobra.Command {
	var opts handlers.ProvisionOptions

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision a Syncthing node with static address and firewall rules",
		Long: `Provision creates everything a single-node Syncthing deployment needs:

  - Compute API enablement
  - A reserved static external address
  - An e2-micro instance with a 30GB standard disk (free tier)
  - Firewall rules for SSH, the web UI, sync traffic and discovery
  - Syncthing running under Docker Compose, restarting on reboot

All steps are idempotent: resources that already exist are left in
place, so the command can be re-run safely after a partial failure.

Example:
  syncup provision --project my-project`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ProjectID, "project", "p", "", "Project ID that owns all resources (prompted for if omitted)")
	cmd.Flags().StringVarP(&opts.Zone, "zone", "z", "", "Zone for the instance (default us-west1-b)")
	cmd.Flags().StringVar(&opts.MachineType, "machine-type", "", "Machine type (default e2-micro)")
	cmd.Flags().BoolVarP(&opts.AutoApprove, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
