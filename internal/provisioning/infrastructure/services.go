package infrastructure

import (
	"fmt"
	"slices"
	"time"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/util/retry"
)

// ServicesPhase ensures the compute API is enabled on the project.
// Enablement is asynchronous on the provider side, so after requesting
// it the phase polls the enabled-services listing until the API shows up.
type ServicesPhase struct {
	// PollInterval between visibility checks after requesting enablement.
	PollInterval time.Duration
	// PollAttempts bounds the visibility polling.
	PollAttempts int
}

// NewServicesPhase creates the API enablement phase.
func NewServicesPhase() *ServicesPhase {
	return &ServicesPhase{
		PollInterval: 5 * time.Second,
		PollAttempts: 12,
	}
}

func (p *ServicesPhase) Name() string { return "enable-apis" }

func (p *ServicesPhase) Provision(ctx *provisioning.Context) error {
	enabled, err := ctx.Cloud.Services().ListEnabled(ctx, ctx.Config.ProjectID)
	if err != nil {
		return err
	}

	if slices.Contains(enabled, config.ComputeAPI) {
		ctx.Observer.Printf("%s already enabled", config.ComputeAPI)
		return nil
	}

	ctx.Observer.Printf("enabling %s", config.ComputeAPI)
	if err := ctx.Cloud.Services().Enable(ctx, ctx.Config.ProjectID, config.ComputeAPI); err != nil {
		return err
	}

	// Fixed-interval poll until the listing reflects the enablement.
	err = retry.WithExponentialBackoff(ctx, func() error {
		enabled, err := ctx.Cloud.Services().ListEnabled(ctx, ctx.Config.ProjectID)
		if err != nil {
			return retry.Fatal(err)
		}
		if !slices.Contains(enabled, config.ComputeAPI) {
			return fmt.Errorf("%s not yet visible", config.ComputeAPI)
		}
		return nil
	},
		retry.WithMaxAttempts(p.PollAttempts),
		retry.WithInitialDelay(p.PollInterval),
		retry.WithMultiplier(1.0))
	if err != nil {
		return fmt.Errorf("compute API did not become visible: %w", err)
	}

	ctx.Observer.Printf("%s enabled", config.ComputeAPI)
	return nil
}
