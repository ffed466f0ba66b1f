package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/provisioning"
	"github.com/ostred/syncup/internal/ssh"
)

func testContext() *provisioning.Context {
	cfg := config.Default()
	cfg.ProjectID = "test-project"
	return &provisioning.Context{
		Context: context.Background(),
		Config:  cfg,
		State: &provisioning.State{
			AddressIP:  "34.83.1.2",
			PrivateKey: []byte("fake-key"),
		},
		Observer: provisioning.NewMockObserver(),
	}
}

func testPhase(comm ssh.Communicator) *Phase {
	phase := NewPhase()
	phase.BootWait = 0
	phase.ProbeDelay = time.Millisecond
	phase.NewCommunicator = func(string, string, []byte) ssh.Communicator {
		return comm
	}
	return phase
}

func TestPhase_UploadsAndExecutes(t *testing.T) {
	t.Parallel()
	comm := &ssh.MockCommunicator{}

	err := testPhase(comm).Provision(testContext())
	require.NoError(t, err)

	require.Len(t, comm.Uploaded, 1)
	assert.Equal(t, "/tmp/syncup-bootstrap.sh", comm.Uploaded[0])

	// Reachability probe, then privileged execution of the script.
	require.Len(t, comm.Executed, 2)
	assert.Equal(t, "true", comm.Executed[0])
	assert.Equal(t, "sudo bash /tmp/syncup-bootstrap.sh", comm.Executed[1])
}

func TestPhase_RetriesReachabilityProbe(t *testing.T) {
	t.Parallel()
	probes := 0
	comm := &ssh.MockCommunicator{
		ExecuteFunc: func(_ context.Context, cmd string) (string, error) {
			if cmd == "true" {
				probes++
				if probes < 3 {
					return "", errors.New("connection refused")
				}
			}
			return "", nil
		},
	}

	err := testPhase(comm).Provision(testContext())
	require.NoError(t, err)
	assert.Equal(t, 3, probes)
}

func TestPhase_ScriptFailureIsFatal(t *testing.T) {
	t.Parallel()
	comm := &ssh.MockCommunicator{
		ExecuteFunc: func(_ context.Context, cmd string) (string, error) {
			if strings.HasPrefix(cmd, "sudo bash") {
				return "[bootstrap] service failed to start", errors.New("exit status 1")
			}
			return "", nil
		},
	}

	ctx := testContext()
	err := testPhase(comm).Provision(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bootstrap script failed")

	// The remote log dump is surfaced to the operator.
	observer := ctx.Observer.(*provisioning.MockObserver)
	var sawOutput bool
	for _, msg := range observer.Messages {
		if strings.Contains(msg, "service failed to start") {
			sawOutput = true
		}
	}
	assert.True(t, sawOutput, "script output must be reported on failure")
}

func TestPhase_NoAddress(t *testing.T) {
	t.Parallel()
	ctx := testContext()
	ctx.State.AddressIP = ""

	err := testPhase(&ssh.MockCommunicator{}).Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no address allocated")
}

func TestPhase_NoPrivateKey(t *testing.T) {
	t.Parallel()
	ctx := testContext()
	ctx.State.PrivateKey = nil

	err := testPhase(&ssh.MockCommunicator{}).Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no private key")
}
