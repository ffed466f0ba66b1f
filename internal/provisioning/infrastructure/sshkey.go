package infrastructure

import (
	"strings"
	"time"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/util/keygen"
)

// SSHKeyPhase ensures a local key pair exists and its public half is
// registered in project metadata.
//
// This is a run-once step: when the private key file already exists the
// phase loads it and skips registration, assuming the public key was
// pushed on the run that generated it. The instance ensurer re-applies
// the key to instance metadata on every run, so an existing instance
// stays reachable either way.
type SSHKeyPhase struct {
	// PropagationWait is the settling time after pushing a new key
	// before it is usable for SSH.
	PropagationWait time.Duration
}

// NewSSHKeyPhase creates the SSH key ensurer.
func NewSSHKeyPhase() *SSHKeyPhase {
	return &SSHKeyPhase{PropagationWait: 10 * time.Second}
}

func (p *SSHKeyPhase) Name() string { return "ssh-key" }

func (p *SSHKeyPhase) Provision(ctx *provisioning.Context) error {
	pair, generated, err := keygen.LoadOrGenerate(ctx.Config.SSHKeyDir, config.PrivateKeyFile)
	if err != nil {
		return err
	}

	ctx.State.PrivateKey = pair.PrivateKey
	ctx.State.PublicKey = pair.PublicKey
	ctx.State.KeyGenerated = generated

	if !generated {
		ctx.Observer.Printf("using existing key pair in %s", ctx.Config.SSHKeyDir)
		return nil
	}

	ctx.Observer.Printf("generated new key pair in %s", ctx.Config.SSHKeyDir)

	entry := pair.AuthorizedLine(config.SSHUser)
	existing, err := ctx.Cloud.Metadata().ProjectSSHKeys(ctx, ctx.Config.ProjectID)
	if err != nil {
		return err
	}

	if !strings.Contains(existing, entry) {
		merged := entry
		if existing != "" {
			merged = strings.TrimRight(existing, "\n") + "\n" + entry
		}
		if err := ctx.Cloud.Metadata().SetProjectSSHKeys(ctx, ctx.Config.ProjectID, merged); err != nil {
			return err
		}
		ctx.Observer.Printf("registered public key in project metadata")
	}

	if p.PropagationWait > 0 {
		ctx.Observer.Printf("waiting %v for key propagation", p.PropagationWait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.PropagationWait):
		}
	}

	return nil
}
