package gcloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// RealClient drives the gcloud binary.
type RealClient struct {
	run Runner
}

// NewRealClient creates a client backed by the gcloud binary from PATH.
func NewRealClient() *RealClient {
	return NewRealClientWithRunner(NewExecRunner())
}

// NewRealClientWithRunner creates a client with an injected runner.
func NewRealClientWithRunner(run Runner) *RealClient {
	return &RealClient{run: run}
}

func (c *RealClient) Auth() AuthClient          { return (*realAuth)(c) }
func (c *RealClient) Projects() ProjectClient   { return (*realProjects)(c) }
func (c *RealClient) Services() ServiceClient   { return (*realServices)(c) }
func (c *RealClient) Addresses() AddressClient  { return (*realAddresses)(c) }
func (c *RealClient) Instances() InstanceClient { return (*realInstances)(c) }
func (c *RealClient) Firewalls() FirewallClient { return (*realFirewalls)(c) }
func (c *RealClient) Metadata() MetadataClient  { return (*realMetadata)(c) }

// mapNotFound converts a describe failure on a missing resource into a
// NotFoundError, leaving all other errors untouched.
func mapNotFound(resource string, err error) error {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && notFoundStderr(cmdErr.Stderr) {
		return &NotFoundError{Resource: resource}
	}
	return err
}

// nonEmptyLines splits CLI value output into trimmed non-empty lines.
func nonEmptyLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// --- AuthClient ---

type realAuth RealClient

func (c *realAuth) ActiveAccount(ctx context.Context) (string, error) {
	out, err := c.run.Output(ctx,
		"auth", "list",
		"--filter=status:ACTIVE",
		"--format=value(account)")
	if err != nil {
		return "", fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := nonEmptyLines(out)
	if len(accounts) == 0 {
		return "", fmt.Errorf("no active account; run 'gcloud auth login' first")
	}
	return accounts[0], nil
}

// --- ProjectClient ---

type realProjects RealClient

func (c *realProjects) Describe(ctx context.Context, projectID string) error {
	_, err := c.run.Output(ctx,
		"projects", "describe", projectID,
		"--format=value(projectId)")
	if err != nil {
		return fmt.Errorf("failed to describe project %s: %w", projectID, mapNotFound("project "+projectID, err))
	}
	return nil
}

// --- ServiceClient ---

type realServices RealClient

func (c *realServices) ListEnabled(ctx context.Context, projectID string) ([]string, error) {
	out, err := c.run.Output(ctx,
		"services", "list", "--enabled",
		"--project="+projectID,
		"--format=value(config.name)")
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled services: %w", err)
	}
	return nonEmptyLines(out), nil
}

func (c *realServices) Enable(ctx context.Context, projectID, service string) error {
	_, err := c.run.Output(ctx,
		"services", "enable", service,
		"--project="+projectID)
	if err != nil {
		return fmt.Errorf("failed to enable %s: %w", service, err)
	}
	return nil
}

// --- AddressClient ---

type realAddresses RealClient

func (c *realAddresses) Describe(ctx context.Context, projectID, region, name string) (string, error) {
	out, err := c.run.Output(ctx,
		"compute", "addresses", "describe", name,
		"--project="+projectID,
		"--region="+region,
		"--format=value(address)")
	if err != nil {
		return "", mapNotFound("address "+name, err)
	}

	lines := nonEmptyLines(out)
	if len(lines) == 0 {
		return "", fmt.Errorf("address %s has no allocated IP", name)
	}
	return lines[0], nil
}

func (c *realAddresses) Create(ctx context.Context, projectID, region, name string) error {
	_, err := c.run.Output(ctx,
		"compute", "addresses", "create", name,
		"--project="+projectID,
		"--region="+region)
	if err != nil {
		return fmt.Errorf("failed to create address %s: %w", name, err)
	}
	return nil
}

func (c *realAddresses) Delete(ctx context.Context, projectID, region, name string) error {
	_, err := c.run.Output(ctx,
		"compute", "addresses", "delete", name,
		"--project="+projectID,
		"--region="+region,
		"--quiet")
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", name, err)
	}
	return nil
}

// --- InstanceClient ---

type realInstances RealClient

// instanceJSON mirrors the fields of interest in gcloud's JSON output.
type instanceJSON struct {
	Name              string `json:"name"`
	Status            string `json:"status"`
	NetworkInterfaces []struct {
		AccessConfigs []struct {
			NatIP string `json:"natIP"`
		} `json:"accessConfigs"`
	} `json:"networkInterfaces"`
}

func (c *realInstances) Describe(ctx context.Context, projectID, zone, name string) (*Instance, error) {
	out, err := c.run.Output(ctx,
		"compute", "instances", "describe", name,
		"--project="+projectID,
		"--zone="+zone,
		"--format=json")
	if err != nil {
		return nil, mapNotFound("instance "+name, err)
	}

	var parsed instanceJSON
	if err := json.Unmarshal(out, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse instance %s: %w", name, err)
	}

	inst := &Instance{Name: parsed.Name, Status: parsed.Status}
	if len(parsed.NetworkInterfaces) > 0 && len(parsed.NetworkInterfaces[0].AccessConfigs) > 0 {
		inst.ExternalIP = parsed.NetworkInterfaces[0].AccessConfigs[0].NatIP
	}
	return inst, nil
}

func (c *realInstances) Create(ctx context.Context, projectID string, opts InstanceOpts) error {
	args := []string{
		"compute", "instances", "create", opts.Name,
		"--project=" + projectID,
		"--zone=" + opts.Zone,
		"--machine-type=" + opts.MachineType,
		"--image-family=" + opts.ImageFamily,
		"--image-project=" + opts.ImageProject,
		fmt.Sprintf("--boot-disk-size=%dGB", opts.DiskSizeGB),
		"--boot-disk-type=" + opts.DiskType,
		"--tags=" + opts.Tag,
	}
	if opts.Address != "" {
		args = append(args, "--address="+opts.Address)
	}
	if opts.SSHKeys != "" {
		args = append(args, "--metadata=ssh-keys="+opts.SSHKeys)
	}

	_, err := c.run.Output(ctx, args...)
	if err != nil {
		return fmt.Errorf("failed to create instance %s: %w", opts.Name, err)
	}
	return nil
}

func (c *realInstances) Delete(ctx context.Context, projectID, zone, name string) error {
	_, err := c.run.Output(ctx,
		"compute", "instances", "delete", name,
		"--project="+projectID,
		"--zone="+zone,
		"--quiet")
	if err != nil {
		return fmt.Errorf("failed to delete instance %s: %w", name, err)
	}
	return nil
}

func (c *realInstances) SetSSHKeys(ctx context.Context, projectID, zone, name, keys string) error {
	_, err := c.run.Output(ctx,
		"compute", "instances", "add-metadata", name,
		"--project="+projectID,
		"--zone="+zone,
		"--metadata=ssh-keys="+keys)
	if err != nil {
		return fmt.Errorf("failed to set SSH keys on instance %s: %w", name, err)
	}
	return nil
}

// --- FirewallClient ---

type realFirewalls RealClient

func (c *realFirewalls) Describe(ctx context.Context, projectID, name string) error {
	_, err := c.run.Output(ctx,
		"compute", "firewall-rules", "describe", name,
		"--project="+projectID,
		"--format=value(name)")
	if err != nil {
		return mapNotFound("firewall rule "+name, err)
	}
	return nil
}

func (c *realFirewalls) Create(ctx context.Context, projectID string, rule FirewallRuleSpec) error {
	_, err := c.run.Output(ctx,
		"compute", "firewall-rules", "create", rule.Name,
		"--project="+projectID,
		"--direction=INGRESS",
		fmt.Sprintf("--allow=%s:%d", rule.Protocol, rule.Port),
		"--target-tags="+rule.TargetTag)
	if err != nil {
		return fmt.Errorf("failed to create firewall rule %s: %w", rule.Name, err)
	}
	return nil
}

func (c *realFirewalls) Delete(ctx context.Context, projectID, name string) error {
	_, err := c.run.Output(ctx,
		"compute", "firewall-rules", "delete", name,
		"--project="+projectID,
		"--quiet")
	if err != nil {
		return fmt.Errorf("failed to delete firewall rule %s: %w", name, err)
	}
	return nil
}

// --- MetadataClient ---

type realMetadata RealClient

type projectJSON struct {
	CommonInstanceMetadata struct {
		Items []struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"items"`
	} `json:"commonInstanceMetadata"`
}

func (c *realMetadata) ProjectSSHKeys(ctx context.Context, projectID string) (string, error) {
	out, err := c.run.Output(ctx,
		"compute", "project-info", "describe",
		"--project="+projectID,
		"--format=json")
	if err != nil {
		return "", fmt.Errorf("failed to describe project metadata: %w", err)
	}

	var parsed projectJSON
	if err := json.Unmarshal(out, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse project metadata: %w", err)
	}

	for _, item := range parsed.CommonInstanceMetadata.Items {
		if item.Key == "ssh-keys" {
			return item.Value, nil
		}
	}
	return "", nil
}

func (c *realMetadata) SetProjectSSHKeys(ctx context.Context, projectID, keys string) error {
	// The CLI only takes multi-line metadata from a file. The temp file
	// holds key material, so it is removed as soon as the call returns.
	tmp, err := os.CreateTemp("", "syncup-ssh-keys-*")
	if err != nil {
		return fmt.Errorf("failed to create temp metadata file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(keys); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp metadata file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp metadata file: %w", err)
	}

	_, err = c.run.Output(ctx,
		"compute", "project-info", "add-metadata",
		"--project="+projectID,
		"--metadata-from-file=ssh-keys="+tmp.Name())
	if err != nil {
		return fmt.Errorf("failed to set project SSH keys: %w", err)
	}
	return nil
}
