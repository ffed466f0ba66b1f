package destroy

import (
	"strings"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/provisioning"
)

// Phases returns the teardown phases in dependency order: the instance
// first (it holds the address), then the address, then each firewall
// rule, then the pushed SSH key. Run them under the best-effort policy.
func Phases(cfg *config.Config) []provisioning.Phase {
	phases := []provisioning.Phase{
		NewInstancePhase(),
		NewAddressPhase(),
	}
	for _, rule := range cfg.FirewallRules() {
		phases = append(phases, NewFirewallRulePhase(rule.Name))
	}
	phases = append(phases, NewSSHKeyPhase())
	return phases
}

// InstancePhase deletes the compute instance if present.
type InstancePhase struct{}

// NewInstancePhase creates the instance deletion phase.
func NewInstancePhase() *InstancePhase {
	return &InstancePhase{}
}

func (p *InstancePhase) Name() string { return "delete-instance" }

func (p *InstancePhase) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	_, err := ctx.Cloud.Instances().Describe(ctx, cfg.ProjectID, cfg.Zone, config.InstanceName)
	if gcloud.IsNotFound(err) {
		ctx.Observer.Printf("instance %s not found, nothing to delete", config.InstanceName)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Observer.Printf("deleting instance %s", config.InstanceName)
	return ctx.Cloud.Instances().Delete(ctx, cfg.ProjectID, cfg.Zone, config.InstanceName)
}

// AddressPhase deletes the static address if present.
type AddressPhase struct{}

// NewAddressPhase creates the address deletion phase.
func NewAddressPhase() *AddressPhase {
	return &AddressPhase{}
}

func (p *AddressPhase) Name() string { return "delete-address" }

func (p *AddressPhase) Provision(ctx *provisioning.Context) error {
	region := ctx.Config.Region()
	_, err := ctx.Cloud.Addresses().Describe(ctx, ctx.Config.ProjectID, region, config.AddressName)
	if gcloud.IsNotFound(err) {
		ctx.Observer.Printf("address %s not found, nothing to delete", config.AddressName)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Observer.Printf("deleting address %s", config.AddressName)
	return ctx.Cloud.Addresses().Delete(ctx, ctx.Config.ProjectID, region, config.AddressName)
}

// FirewallRulePhase deletes one firewall rule if present. Each rule is
// its own phase so a single failing rule cannot block the others under
// the best-effort policy.
type FirewallRulePhase struct {
	rule string
}

// NewFirewallRulePhase creates the deletion phase for one rule.
func NewFirewallRulePhase(rule string) *FirewallRulePhase {
	return &FirewallRulePhase{rule: rule}
}

func (p *FirewallRulePhase) Name() string { return "delete-" + p.rule }

func (p *FirewallRulePhase) Provision(ctx *provisioning.Context) error {
	err := ctx.Cloud.Firewalls().Describe(ctx, ctx.Config.ProjectID, p.rule)
	if gcloud.IsNotFound(err) {
		ctx.Observer.Printf("firewall rule %s not found, nothing to delete", p.rule)
		return nil
	}
	if err != nil {
		return err
	}

	ctx.Observer.Printf("deleting firewall rule %s", p.rule)
	return ctx.Cloud.Firewalls().Delete(ctx, ctx.Config.ProjectID, p.rule)
}

// SSHKeyPhase removes the pushed public key from project metadata by
// filtering out this tool's "user:key" entries and writing the rest
// back. With KeepSSHKey set it prints manual cleanup instructions
// instead. The local key pair is never deleted.
type SSHKeyPhase struct{}

// NewSSHKeyPhase creates the SSH key cleanup phase.
func NewSSHKeyPhase() *SSHKeyPhase {
	return &SSHKeyPhase{}
}

func (p *SSHKeyPhase) Name() string { return "remove-ssh-key" }

func (p *SSHKeyPhase) Provision(ctx *provisioning.Context) error {
	if ctx.Config.KeepSSHKey {
		ctx.Observer.Printf("leaving SSH key in project metadata; remove it manually with:")
		ctx.Observer.Printf("  gcloud compute project-info describe --project=%s", ctx.Config.ProjectID)
		ctx.Observer.Printf("  gcloud compute project-info add-metadata --metadata-from-file ssh-keys=<edited file>")
		return nil
	}

	existing, err := ctx.Cloud.Metadata().ProjectSSHKeys(ctx, ctx.Config.ProjectID)
	if err != nil {
		return err
	}

	var kept []string
	removed := 0
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, config.SSHUser+":") {
			removed++
			continue
		}
		kept = append(kept, trimmed)
	}

	if removed == 0 {
		ctx.Observer.Printf("no pushed SSH key found in project metadata")
		return nil
	}

	if err := ctx.Cloud.Metadata().SetProjectSSHKeys(ctx, ctx.Config.ProjectID, strings.Join(kept, "\n")); err != nil {
		return err
	}

	ctx.Observer.Printf("removed %d SSH key entry from project metadata", removed)
	ctx.Observer.Printf("local key pair in %s is kept; delete it manually if unwanted", ctx.Config.SSHKeyDir)
	return nil
}
