// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the syncup CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syncup",
		Short: "Provision a free-tier Syncthing node on Google Cloud",
	}

	cmd.AddCommand(Provision())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())

	return cmd
}
