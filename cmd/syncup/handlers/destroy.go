package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/provisioning/destroy"
	"github.com/ostred/syncup/internal/provisioning/preflight"
)

// DestroyOptions are the destroy command's flag values.
type DestroyOptions struct {
	ProjectID   string
	Zone        string
	AutoApprove bool
	KeepSSHKey  bool
}

// Destroy handles the destroy command. Preflight checks run fail-fast;
// the deletions themselves run best-effort so one failing resource does
// not leave the rest behind.
func Destroy(ctx context.Context, opts DestroyOptions) error {
	cfg, err := buildConfig(opts.ProjectID, opts.Zone, opts.AutoApprove)
	if err != nil {
		return err
	}
	cfg.KeepSSHKey = opts.KeepSSHKey

	if !cfg.AutoApprove {
		approved, err := confirm(fmt.Sprintf(
			"Delete the instance, static address and firewall rules in project %s? This cannot be undone.",
			cfg.ProjectID))
		if err != nil {
			return err
		}
		if !approved {
			log.Println("Teardown cancelled")
			return nil
		}
	}

	pCtx := provisioning.NewContext(ctx, cfg, newCloudClient())

	checks := provisioning.NewPipeline(
		newToolsPhase(),
		preflight.NewAuthPhase(),
		preflight.NewProjectPhase(),
	)
	if err := checks.Run(pCtx); err != nil {
		return fmt.Errorf("teardown aborted: %w", err)
	}

	teardown := provisioning.NewBestEffortPipeline(destroy.Phases(cfg)...)
	if err := teardown.Run(pCtx); err != nil {
		return fmt.Errorf("teardown finished with errors: %w", err)
	}

	log.Println("Teardown complete")
	return nil
}
