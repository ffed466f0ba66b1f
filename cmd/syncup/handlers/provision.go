// Package handlers implements command execution for the syncup CLI.
// Commands parse flags and delegate here; handlers assemble the
// configuration and pipelines and run them.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/provisioning/bootstrap"
	"github.com/ostred/syncup/internal/provisioning/infrastructure"
	"github.com/ostred/syncup/internal/provisioning/preflight"
)

// Factory function variables - replaceable in tests.
var (
	newCloudClient = func() gcloud.Client {
		return gcloud.NewRealClient()
	}

	newToolsPhase = func() provisioning.Phase {
		return preflight.NewToolsPhase()
	}

	newBootstrapPhase = func() provisioning.Phase {
		return bootstrap.NewPhase()
	}
)

// ProvisionOptions are the provision command's flag values.
type ProvisionOptions struct {
	ProjectID   string
	Zone        string
	MachineType string
	AutoApprove bool
}

// Provision handles the provision command: it validates configuration,
// confirms with the operator, and runs the fail-fast provisioning
// pipeline from preflight checks through remote bootstrap.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	cfg, err := buildConfig(opts.ProjectID, opts.Zone, opts.AutoApprove)
	if err != nil {
		return err
	}
	if opts.MachineType != "" {
		cfg.MachineType = opts.MachineType
	}

	if !cfg.AutoApprove {
		approved, err := confirm(fmt.Sprintf(
			"Provision a %s instance with static address and firewall rules in project %s?",
			cfg.MachineType, cfg.ProjectID))
		if err != nil {
			return err
		}
		if !approved {
			log.Println("Provisioning cancelled")
			return nil
		}
	}

	pCtx := provisioning.NewContext(ctx, cfg, newCloudClient())

	pipeline := provisioning.NewPipeline(
		newToolsPhase(),
		preflight.NewAuthPhase(),
		preflight.NewProjectPhase(),
		infrastructure.NewServicesPhase(),
		infrastructure.NewSSHKeyPhase(),
		infrastructure.NewAddressPhase(),
		infrastructure.NewInstancePhase(),
		infrastructure.NewFirewallPhase(),
		newBootstrapPhase(),
	)

	if err := pipeline.Run(pCtx); err != nil {
		return fmt.Errorf("provisioning failed: %w", err)
	}

	log.Printf("Provisioning complete; web UI at http://%s:%d", pCtx.State.AddressIP, config.PortWebUI)
	return nil
}

// buildConfig assembles and validates the run configuration from flag
// values, prompting for the project ID when missing and interactive.
func buildConfig(projectID, zone string, autoApprove bool) (*config.Config, error) {
	cfg := config.Default()
	cfg.AutoApprove = autoApprove

	resolved, err := resolveProjectID(projectID)
	if err != nil {
		return nil, err
	}
	cfg.ProjectID = resolved

	if zone != "" {
		cfg.Zone = zone
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
