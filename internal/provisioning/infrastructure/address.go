package infrastructure

import (
	"fmt"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/provisioning"
)

// AddressPhase ensures the static external address exists and records
// its allocated IP for the instance and bootstrap phases.
type AddressPhase struct{}

// NewAddressPhase creates the static address ensurer.
func NewAddressPhase() *AddressPhase {
	return &AddressPhase{}
}

func (p *AddressPhase) Name() string { return "static-address" }

func (p *AddressPhase) Provision(ctx *provisioning.Context) error {
	region := ctx.Config.Region()

	ip, err := ctx.Cloud.Addresses().Describe(ctx, ctx.Config.ProjectID, region, config.AddressName)
	if err == nil {
		ctx.State.AddressIP = ip
		ctx.Observer.Printf("address %s already exists (%s)", config.AddressName, ip)
		return nil
	}
	if !gcloud.IsNotFound(err) {
		return err
	}

	ctx.Observer.Printf("creating address %s in %s", config.AddressName, region)
	if err := ctx.Cloud.Addresses().Create(ctx, ctx.Config.ProjectID, region, config.AddressName); err != nil {
		return err
	}

	// Read back the allocation to verify creation and learn the IP.
	ip, err = ctx.Cloud.Addresses().Describe(ctx, ctx.Config.ProjectID, region, config.AddressName)
	if err != nil {
		return fmt.Errorf("address created but not describable: %w", err)
	}

	ctx.State.AddressIP = ip
	ctx.Observer.Printf("allocated %s", ip)
	return nil
}
