package bootstrap

import (
	"fmt"
	"time"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/platform/syncthing"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/ssh"
	"github.com/ostred/syncup/internal/util/retry"
)

// Phase transfers the bootstrap script to the instance and executes it.
type Phase struct {
	// NewCommunicator builds the SSH transport; injectable for tests.
	NewCommunicator func(host, user string, privateKey []byte) ssh.Communicator

	// BootWait is the fixed wait after instance creation before the
	// first connection attempt.
	BootWait time.Duration

	// ProbeDelay is the initial backoff delay for the reachability probe.
	ProbeDelay time.Duration
}

// NewPhase creates the remote bootstrap phase.
func NewPhase() *Phase {
	return &Phase{
		NewCommunicator: func(host, user string, privateKey []byte) ssh.Communicator {
			return ssh.NewSSHCommunicator(host, user, privateKey)
		},
		BootWait:   30 * time.Second,
		ProbeDelay: 5 * time.Second,
	}
}

func (p *Phase) Name() string { return "remote-bootstrap" }

func (p *Phase) Provision(ctx *provisioning.Context) error {
	if ctx.State.AddressIP == "" {
		return fmt.Errorf("no address allocated; cannot reach instance")
	}
	if len(ctx.State.PrivateKey) == 0 {
		return fmt.Errorf("no private key loaded; cannot authenticate")
	}

	script, err := syncthing.RenderBootstrapScript(ctx.Config)
	if err != nil {
		return err
	}

	if ctx.State.InstanceCreated && p.BootWait > 0 {
		ctx.Observer.Printf("waiting %v for instance boot", p.BootWait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.BootWait):
		}
	}

	comm := p.NewCommunicator(ctx.State.AddressIP, config.SSHUser, ctx.State.PrivateKey)

	// Probe reachability with backoff before committing to the upload;
	// sshd comes up noticeably later than the instance reports RUNNING.
	err = retry.WithExponentialBackoff(ctx, func() error {
		_, err := comm.Execute(ctx, "true")
		return err
	}, retry.WithInitialDelay(p.ProbeDelay))
	if err != nil {
		return fmt.Errorf("instance not reachable over SSH: %w", err)
	}

	ctx.Observer.Printf("uploading bootstrap script to %s", syncthing.RemoteScriptPath)
	if err := comm.UploadFile(ctx, script, syncthing.RemoteScriptPath); err != nil {
		return fmt.Errorf("failed to upload bootstrap script: %w", err)
	}

	ctx.Observer.Printf("executing bootstrap script")
	output, err := comm.Execute(ctx, "sudo bash "+syncthing.RemoteScriptPath)
	if output != "" {
		ctx.Observer.Printf("bootstrap output:\n%s", output)
	}
	if err != nil {
		return fmt.Errorf("bootstrap script failed: %w", err)
	}

	ctx.Observer.Printf("sync service available at http://%s:%d", ctx.State.AddressIP, config.PortWebUI)
	return nil
}
