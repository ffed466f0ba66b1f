// Package config defines the configuration for a syncup deployment.
//
// Unlike multi-node tools there is no configuration file: a deployment
// is a single instance with fixed resource names, so the only operator
// inputs are the project ID and a handful of optional flag overrides.
// The populated Config is threaded through every provisioning phase;
// nothing reads process-global state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config holds everything the provision and destroy pipelines need.
type Config struct {
	// ProjectID is the cloud project that owns all resources. Required.
	ProjectID string

	// Zone the instance is created in, e.g. "us-west1-b". The region for
	// the static address is derived from it.
	Zone string

	// MachineType of the instance. Defaults to the free-tier e2-micro.
	MachineType string

	// Boot disk parameters. The free tier covers 30GB of pd-standard.
	DiskSizeGB int
	DiskType   string

	// Image selection for the boot disk.
	ImageFamily  string
	ImageProject string

	// SSHKeyDir is the local directory holding the generated keypair.
	SSHKeyDir string

	// GUIUser and GUIPassword are rendered into the service definition
	// environment. Both default to empty: the operator sets credentials
	// on first login through the web UI.
	GUIUser     string
	GUIPassword string

	// AutoApprove skips interactive confirmation prompts.
	AutoApprove bool

	// KeepSSHKey leaves the pushed public key in project metadata during
	// teardown and prints manual cleanup instructions instead.
	KeepSSHKey bool
}

var zoneRe = regexp.MustCompile(`^[a-z]+-[a-z]+[0-9]+-[a-z]$`)

// Default returns a Config populated with free-tier defaults. ProjectID
// is intentionally left empty; it must come from the operator.
func Default() *Config {
	return &Config{
		Zone:         "us-west1-b",
		MachineType:  "e2-micro",
		DiskSizeGB:   30,
		DiskType:     "pd-standard",
		ImageFamily:  "debian-12",
		ImageProject: "debian-cloud",
		SSHKeyDir:    defaultKeyDir(),
	}
}

// Validate checks that the configuration is usable before any remote
// call is made.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ProjectID) == "" {
		return fmt.Errorf("project ID must not be empty")
	}
	if !zoneRe.MatchString(c.Zone) {
		return fmt.Errorf("invalid zone %q (expected e.g. us-west1-b)", c.Zone)
	}
	if c.DiskSizeGB <= 0 {
		return fmt.Errorf("disk size must be positive, got %d", c.DiskSizeGB)
	}
	if c.SSHKeyDir == "" {
		return fmt.Errorf("SSH key directory must not be empty")
	}
	return nil
}

// Region derives the region from the configured zone by dropping the
// zone letter suffix ("us-west1-b" -> "us-west1").
func (c *Config) Region() string {
	if i := strings.LastIndex(c.Zone, "-"); i > 0 {
		return c.Zone[:i]
	}
	return c.Zone
}

// PrivateKeyPath returns the path of the local private key file.
func (c *Config) PrivateKeyPath() string {
	return filepath.Join(c.SSHKeyDir, PrivateKeyFile)
}

// FirewallRule describes one ingress rule of the deployment.
type FirewallRule struct {
	Name     string
	Protocol string // "tcp" or "udp"
	Port     int
}

// FirewallRules returns the full rule set, one rule per published port.
// Provision creates exactly these; destroy deletes exactly these.
func (c *Config) FirewallRules() []FirewallRule {
	return []FirewallRule{
		{Name: FirewallRuleSSH, Protocol: "tcp", Port: PortSSH},
		{Name: FirewallRuleWebUI, Protocol: "tcp", Port: PortWebUI},
		{Name: FirewallRuleSync, Protocol: "tcp", Port: PortSync},
		{Name: FirewallRuleDiscovery, Protocol: "udp", Port: PortDiscovery},
	}
}

func defaultKeyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to a relative directory; Validate still catches the
		// truly-empty case.
		return ".syncup/ssh"
	}
	return filepath.Join(home, ".config", "syncup", "ssh")
}
