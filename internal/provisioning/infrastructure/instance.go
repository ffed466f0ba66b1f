package infrastructure

import (
	"fmt"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/util/keygen"
)

// InstancePhase ensures the compute instance exists. When the instance
// is already present the phase re-applies the current public key to its
// metadata so repeated runs stay credential-consistent even though
// creation is skipped.
type InstancePhase struct{}

// NewInstancePhase creates the instance ensurer.
func NewInstancePhase() *InstancePhase {
	return &InstancePhase{}
}

func (p *InstancePhase) Name() string { return "instance" }

func (p *InstancePhase) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	keys := sshKeysEntry(ctx.State.PublicKey)

	inst, err := ctx.Cloud.Instances().Describe(ctx, cfg.ProjectID, cfg.Zone, config.InstanceName)
	if err == nil {
		ctx.Observer.Printf("instance %s already exists (%s)", config.InstanceName, inst.Status)
		if keys != "" {
			if err := ctx.Cloud.Instances().SetSSHKeys(ctx, cfg.ProjectID, cfg.Zone, config.InstanceName, keys); err != nil {
				return err
			}
			ctx.Observer.Printf("re-applied SSH key to instance metadata")
		}
		return nil
	}
	if !gcloud.IsNotFound(err) {
		return err
	}

	ctx.Observer.Printf("creating instance %s in %s", config.InstanceName, cfg.Zone)
	err = ctx.Cloud.Instances().Create(ctx, cfg.ProjectID, gcloud.InstanceOpts{
		Name:         config.InstanceName,
		Zone:         cfg.Zone,
		MachineType:  cfg.MachineType,
		DiskSizeGB:   cfg.DiskSizeGB,
		DiskType:     cfg.DiskType,
		ImageFamily:  cfg.ImageFamily,
		ImageProject: cfg.ImageProject,
		Tag:          config.NetworkTag,
		Address:      ctx.State.AddressIP,
		SSHKeys:      keys,
	})
	if err != nil {
		return err
	}

	// Verify the registry observes the instance before moving on.
	if _, err := ctx.Cloud.Instances().Describe(ctx, cfg.ProjectID, cfg.Zone, config.InstanceName); err != nil {
		return fmt.Errorf("instance created but not describable: %w", err)
	}

	ctx.State.InstanceCreated = true
	ctx.Observer.Printf("instance %s created", config.InstanceName)
	return nil
}

// sshKeysEntry formats the metadata entry for the run's public key.
func sshKeysEntry(publicKey []byte) string {
	if len(publicKey) == 0 {
		return ""
	}
	pair := keygen.KeyPair{PublicKey: publicKey}
	return pair.AuthorizedLine(config.SSHUser)
}
