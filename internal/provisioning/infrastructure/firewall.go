package infrastructure

import (
	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/provisioning"
)

// FirewallPhase ensures one ingress rule per published port, each
// targeted at the instance tag.
type FirewallPhase struct{}

// NewFirewallPhase creates the firewall ensurer.
func NewFirewallPhase() *FirewallPhase {
	return &FirewallPhase{}
}

func (p *FirewallPhase) Name() string { return "firewall" }

func (p *FirewallPhase) Provision(ctx *provisioning.Context) error {
	for _, rule := range ctx.Config.FirewallRules() {
		err := ctx.Cloud.Firewalls().Describe(ctx, ctx.Config.ProjectID, rule.Name)
		if err == nil {
			ctx.Observer.Printf("firewall rule %s already exists", rule.Name)
			continue
		}
		if !gcloud.IsNotFound(err) {
			return err
		}

		ctx.Observer.Printf("creating firewall rule %s (%s:%d)", rule.Name, rule.Protocol, rule.Port)
		err = ctx.Cloud.Firewalls().Create(ctx, ctx.Config.ProjectID, gcloud.FirewallRuleSpec{
			Name:      rule.Name,
			Protocol:  rule.Protocol,
			Port:      rule.Port,
			TargetTag: config.NetworkTag,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
