package gcloud

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner returns canned output per invocation and records args.
type fakeRunner struct {
	calls   [][]string
	output  []byte
	err     error
	respond func(args []string) ([]byte, error)
}

func (f *fakeRunner) Output(_ context.Context, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	if f.respond != nil {
		return f.respond(args)
	}
	return f.output, f.err
}

func notFoundErr(args ...string) error {
	return &CommandError{
		Args:   args,
		Stderr: "ERROR: (gcloud.compute.addresses.describe) Could not fetch resource:\n - The resource 'syncthing-addr' was not found",
		Err:    errors.New("exit status 1"),
	}
}

func TestActiveAccount(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte("alice@example.com\n")}
	client := NewRealClientWithRunner(run)

	account, err := client.Auth().ActiveAccount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", account)

	require.Len(t, run.calls, 1)
	assert.Equal(t, []string{"auth", "list", "--filter=status:ACTIVE", "--format=value(account)"}, run.calls[0])
}

func TestActiveAccount_NoneActive(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte("\n")}
	client := NewRealClientWithRunner(run)

	_, err := client.Auth().ActiveAccount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no active account")
}

func TestAddressDescribe(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte("34.83.1.2\n")}
	client := NewRealClientWithRunner(run)

	ip, err := client.Addresses().Describe(context.Background(), "proj", "us-west1", "syncthing-addr")
	require.NoError(t, err)
	assert.Equal(t, "34.83.1.2", ip)

	require.Len(t, run.calls, 1)
	assert.Contains(t, run.calls[0], "--region=us-west1")
	assert.Contains(t, run.calls[0], "--project=proj")
}

func TestAddressDescribe_NotFound(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{err: notFoundErr("compute", "addresses", "describe")}
	client := NewRealClientWithRunner(run)

	_, err := client.Addresses().Describe(context.Background(), "proj", "us-west1", "syncthing-addr")
	require.Error(t, err)
	assert.True(t, IsNotFound(err), "describe of a missing address must map to not-found")
}

func TestAddressDescribe_OtherErrorNotMapped(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{err: &CommandError{
		Args:   []string{"compute", "addresses", "describe"},
		Stderr: "ERROR: quota exceeded",
		Err:    errors.New("exit status 1"),
	}}
	client := NewRealClientWithRunner(run)

	_, err := client.Addresses().Describe(context.Background(), "proj", "us-west1", "syncthing-addr")
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestInstanceDescribe(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte(`{
		"name": "syncthing-node",
		"status": "RUNNING",
		"networkInterfaces": [
			{"accessConfigs": [{"natIP": "34.83.1.2"}]}
		]
	}`)}
	client := NewRealClientWithRunner(run)

	inst, err := client.Instances().Describe(context.Background(), "proj", "us-west1-b", "syncthing-node")
	require.NoError(t, err)
	assert.Equal(t, "syncthing-node", inst.Name)
	assert.Equal(t, "RUNNING", inst.Status)
	assert.Equal(t, "34.83.1.2", inst.ExternalIP)
}

func TestInstanceDescribe_NotFound(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{err: notFoundErr("compute", "instances", "describe")}
	client := NewRealClientWithRunner(run)

	_, err := client.Instances().Describe(context.Background(), "proj", "us-west1-b", "syncthing-node")
	assert.True(t, IsNotFound(err))
}

func TestInstanceCreate_Args(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{}
	client := NewRealClientWithRunner(run)

	err := client.Instances().Create(context.Background(), "proj", InstanceOpts{
		Name:         "syncthing-node",
		Zone:         "us-west1-b",
		MachineType:  "e2-micro",
		DiskSizeGB:   30,
		DiskType:     "pd-standard",
		ImageFamily:  "debian-12",
		ImageProject: "debian-cloud",
		Tag:          "syncthing",
		Address:      "34.83.1.2",
		SSHKeys:      "syncup:ssh-rsa AAAA",
	})
	require.NoError(t, err)

	require.Len(t, run.calls, 1)
	joined := strings.Join(run.calls[0], " ")
	assert.Contains(t, joined, "compute instances create syncthing-node")
	assert.Contains(t, joined, "--machine-type=e2-micro")
	assert.Contains(t, joined, "--boot-disk-size=30GB")
	assert.Contains(t, joined, "--boot-disk-type=pd-standard")
	assert.Contains(t, joined, "--address=34.83.1.2")
	assert.Contains(t, joined, "--metadata=ssh-keys=syncup:ssh-rsa AAAA")
}

func TestFirewallCreate_Args(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{}
	client := NewRealClientWithRunner(run)

	err := client.Firewalls().Create(context.Background(), "proj", FirewallRuleSpec{
		Name:      "syncthing-allow-webui",
		Protocol:  "tcp",
		Port:      8384,
		TargetTag: "syncthing",
	})
	require.NoError(t, err)

	require.Len(t, run.calls, 1)
	joined := strings.Join(run.calls[0], " ")
	assert.Contains(t, joined, "--allow=tcp:8384")
	assert.Contains(t, joined, "--target-tags=syncthing")
	assert.Contains(t, joined, "--direction=INGRESS")
}

func TestDeleteCalls_UseQuiet(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{}
	client := NewRealClientWithRunner(run)
	ctx := context.Background()

	require.NoError(t, client.Instances().Delete(ctx, "proj", "us-west1-b", "syncthing-node"))
	require.NoError(t, client.Addresses().Delete(ctx, "proj", "us-west1", "syncthing-addr"))
	require.NoError(t, client.Firewalls().Delete(ctx, "proj", "syncthing-allow-webui"))

	for _, call := range run.calls {
		assert.Contains(t, call, "--quiet", "delete calls must be non-interactive")
	}
}

func TestServicesListEnabled(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte("compute.googleapis.com\nstorage.googleapis.com\n")}
	client := NewRealClientWithRunner(run)

	services, err := client.Services().ListEnabled(context.Background(), "proj")
	require.NoError(t, err)
	assert.Equal(t, []string{"compute.googleapis.com", "storage.googleapis.com"}, services)
}

func TestProjectSSHKeys(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte(`{
		"commonInstanceMetadata": {
			"items": [
				{"key": "enable-oslogin", "value": "false"},
				{"key": "ssh-keys", "value": "syncup:ssh-rsa AAAA"}
			]
		}
	}`)}
	client := NewRealClientWithRunner(run)

	keys, err := client.Metadata().ProjectSSHKeys(context.Background(), "proj")
	require.NoError(t, err)
	assert.Equal(t, "syncup:ssh-rsa AAAA", keys)
}

func TestProjectSSHKeys_Unset(t *testing.T) {
	t.Parallel()
	run := &fakeRunner{output: []byte(`{"commonInstanceMetadata": {}}`)}
	client := NewRealClientWithRunner(run)

	keys, err := client.Metadata().ProjectSSHKeys(context.Background(), "proj")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCommandError_Message(t *testing.T) {
	t.Parallel()
	err := &CommandError{
		Args:   []string{"compute", "instances", "create"},
		Stderr: "ERROR: something broke\n",
		Err:    errors.New("exit status 1"),
	}
	assert.Contains(t, err.Error(), "gcloud compute instances create")
	assert.Contains(t, err.Error(), "something broke")
}
