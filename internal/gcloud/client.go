// Package gcloud wraps the gcloud CLI behind narrow, mockable interfaces.
//
// The cloud API is deliberately driven through the operator's installed
// CLI rather than an SDK: authentication, project selection and output
// formatting stay exactly as the operator configured them, and the
// wrapper only parses the values it needs (IPs, account names, resource
// presence). Every call is synchronous; a non-zero exit is an error.
package gcloud

import "context"

// Client bundles the per-resource clients used by the pipelines.
type Client interface {
	Auth() AuthClient
	Projects() ProjectClient
	Services() ServiceClient
	Addresses() AddressClient
	Instances() InstanceClient
	Firewalls() FirewallClient
	Metadata() MetadataClient
}

// AuthClient reports the local authentication state.
type AuthClient interface {
	// ActiveAccount returns the active account name, or an error if no
	// account is logged in.
	ActiveAccount(ctx context.Context) (string, error)
}

// ProjectClient validates project access.
type ProjectClient interface {
	// Describe fails if the project does not exist or is not accessible.
	Describe(ctx context.Context, projectID string) error
}

// ServiceClient manages API enablement on a project.
type ServiceClient interface {
	// ListEnabled returns the enabled service names.
	ListEnabled(ctx context.Context, projectID string) ([]string, error)

	// Enable turns on a service. Enablement is asynchronous on the
	// provider side; callers poll ListEnabled until the service shows up.
	Enable(ctx context.Context, projectID, service string) error
}

// AddressClient manages static external addresses.
type AddressClient interface {
	// Describe returns the allocated IP of the named address.
	// Returns an error satisfying IsNotFound if the address is absent.
	Describe(ctx context.Context, projectID, region, name string) (string, error)

	Create(ctx context.Context, projectID, region, name string) error
	Delete(ctx context.Context, projectID, region, name string) error
}

// Instance is the subset of instance state the workflows read.
type Instance struct {
	Name       string
	Status     string
	ExternalIP string
}

// InstanceOpts are the creation parameters for the compute instance.
type InstanceOpts struct {
	Name         string
	Zone         string
	MachineType  string
	DiskSizeGB   int
	DiskType     string
	ImageFamily  string
	ImageProject string
	Tag          string
	// Address is the pre-allocated static IP to attach.
	Address string
	// SSHKeys is the "user:key" metadata entry granting access.
	SSHKeys string
}

// InstanceClient manages compute instances.
type InstanceClient interface {
	// Describe returns instance state by name.
	// Returns an error satisfying IsNotFound if the instance is absent.
	Describe(ctx context.Context, projectID, zone, name string) (*Instance, error)

	Create(ctx context.Context, projectID string, opts InstanceOpts) error
	Delete(ctx context.Context, projectID, zone, name string) error

	// SetSSHKeys re-applies the "user:key" entry to instance metadata.
	SetSSHKeys(ctx context.Context, projectID, zone, name, keys string) error
}

// FirewallRuleSpec are the creation parameters for one ingress rule.
type FirewallRuleSpec struct {
	Name      string
	Protocol  string // "tcp" or "udp"
	Port      int
	TargetTag string
}

// FirewallClient manages firewall rules.
type FirewallClient interface {
	// Describe fails with an error satisfying IsNotFound if the rule is
	// absent.
	Describe(ctx context.Context, projectID, name string) error

	Create(ctx context.Context, projectID string, rule FirewallRuleSpec) error
	Delete(ctx context.Context, projectID, name string) error
}

// MetadataClient manages project-level common instance metadata.
type MetadataClient interface {
	// ProjectSSHKeys returns the current value of the ssh-keys metadata
	// entry, empty if unset.
	ProjectSSHKeys(ctx context.Context, projectID string) (string, error)

	// SetProjectSSHKeys replaces the ssh-keys metadata entry.
	SetProjectSSHKeys(ctx context.Context, projectID, keys string) error
}
