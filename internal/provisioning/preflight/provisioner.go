package preflight

import (
	"fmt"

	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/util/prerequisites"
)

// ToolsPhase verifies the required client tools are installed.
type ToolsPhase struct {
	// Check is injectable for tests; defaults to the standard tool set.
	Check func() *prerequisites.CheckResults
}

// NewToolsPhase creates the tool check phase.
func NewToolsPhase() *ToolsPhase {
	return &ToolsPhase{Check: prerequisites.CheckDefault}
}

func (p *ToolsPhase) Name() string { return "preflight-tools" }

func (p *ToolsPhase) Provision(ctx *provisioning.Context) error {
	results := p.Check()
	for _, r := range results.Results {
		if r.Found {
			ctx.Observer.Printf("found %s at %s", r.Tool.Name, r.Path)
		}
	}
	if err := results.Error(); err != nil {
		return err
	}
	return nil
}

// AuthPhase verifies an account is logged in to the cloud CLI.
type AuthPhase struct{}

// NewAuthPhase creates the authentication check phase.
func NewAuthPhase() *AuthPhase {
	return &AuthPhase{}
}

func (p *AuthPhase) Name() string { return "preflight-auth" }

func (p *AuthPhase) Provision(ctx *provisioning.Context) error {
	account, err := ctx.Cloud.Auth().ActiveAccount(ctx)
	if err != nil {
		return fmt.Errorf("authentication check failed: %w", err)
	}
	ctx.State.ActiveAccount = account
	ctx.Observer.Printf("authenticated as %s", account)
	return nil
}

// ProjectPhase verifies the configured project exists and is accessible.
type ProjectPhase struct{}

// NewProjectPhase creates the project validation phase.
func NewProjectPhase() *ProjectPhase {
	return &ProjectPhase{}
}

func (p *ProjectPhase) Name() string { return "preflight-project" }

func (p *ProjectPhase) Provision(ctx *provisioning.Context) error {
	if err := ctx.Cloud.Projects().Describe(ctx, ctx.Config.ProjectID); err != nil {
		return fmt.Errorf("project validation failed: %w", err)
	}
	ctx.Observer.Printf("project %s is accessible", ctx.Config.ProjectID)
	return nil
}
