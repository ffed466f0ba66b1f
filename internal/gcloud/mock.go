package gcloud

import "context"

// MockClient is a mock implementation of Client.
type MockClient struct {
	AuthClient     *MockAuthClient
	ProjectClient  *MockProjectClient
	ServiceClient  *MockServiceClient
	AddressClient  *MockAddressClient
	InstanceClient *MockInstanceClient
	FirewallClient *MockFirewallClient
	MetadataClient *MockMetadataClient
}

func (m *MockClient) Auth() AuthClient          { return m.AuthClient }
func (m *MockClient) Projects() ProjectClient   { return m.ProjectClient }
func (m *MockClient) Services() ServiceClient   { return m.ServiceClient }
func (m *MockClient) Addresses() AddressClient  { return m.AddressClient }
func (m *MockClient) Instances() InstanceClient { return m.InstanceClient }
func (m *MockClient) Firewalls() FirewallClient { return m.FirewallClient }
func (m *MockClient) Metadata() MetadataClient  { return m.MetadataClient }

type MockAuthClient struct {
	ActiveAccountFunc func(ctx context.Context) (string, error)
}

func (m *MockAuthClient) ActiveAccount(ctx context.Context) (string, error) {
	return m.ActiveAccountFunc(ctx)
}

type MockProjectClient struct {
	DescribeFunc func(ctx context.Context, projectID string) error
}

func (m *MockProjectClient) Describe(ctx context.Context, projectID string) error {
	return m.DescribeFunc(ctx, projectID)
}

type MockServiceClient struct {
	ListEnabledFunc func(ctx context.Context, projectID string) ([]string, error)
	EnableFunc      func(ctx context.Context, projectID, service string) error
}

func (m *MockServiceClient) ListEnabled(ctx context.Context, projectID string) ([]string, error) {
	return m.ListEnabledFunc(ctx, projectID)
}

func (m *MockServiceClient) Enable(ctx context.Context, projectID, service string) error {
	return m.EnableFunc(ctx, projectID, service)
}

type MockAddressClient struct {
	DescribeFunc func(ctx context.Context, projectID, region, name string) (string, error)
	CreateFunc   func(ctx context.Context, projectID, region, name string) error
	DeleteFunc   func(ctx context.Context, projectID, region, name string) error
}

func (m *MockAddressClient) Describe(ctx context.Context, projectID, region, name string) (string, error) {
	return m.DescribeFunc(ctx, projectID, region, name)
}

func (m *MockAddressClient) Create(ctx context.Context, projectID, region, name string) error {
	return m.CreateFunc(ctx, projectID, region, name)
}

func (m *MockAddressClient) Delete(ctx context.Context, projectID, region, name string) error {
	return m.DeleteFunc(ctx, projectID, region, name)
}

type MockInstanceClient struct {
	DescribeFunc   func(ctx context.Context, projectID, zone, name string) (*Instance, error)
	CreateFunc     func(ctx context.Context, projectID string, opts InstanceOpts) error
	DeleteFunc     func(ctx context.Context, projectID, zone, name string) error
	SetSSHKeysFunc func(ctx context.Context, projectID, zone, name, keys string) error
}

func (m *MockInstanceClient) Describe(ctx context.Context, projectID, zone, name string) (*Instance, error) {
	return m.DescribeFunc(ctx, projectID, zone, name)
}

func (m *MockInstanceClient) Create(ctx context.Context, projectID string, opts InstanceOpts) error {
	return m.CreateFunc(ctx, projectID, opts)
}

func (m *MockInstanceClient) Delete(ctx context.Context, projectID, zone, name string) error {
	return m.DeleteFunc(ctx, projectID, zone, name)
}

func (m *MockInstanceClient) SetSSHKeys(ctx context.Context, projectID, zone, name, keys string) error {
	return m.SetSSHKeysFunc(ctx, projectID, zone, name, keys)
}

type MockFirewallClient struct {
	DescribeFunc func(ctx context.Context, projectID, name string) error
	CreateFunc   func(ctx context.Context, projectID string, rule FirewallRuleSpec) error
	DeleteFunc   func(ctx context.Context, projectID, name string) error
}

func (m *MockFirewallClient) Describe(ctx context.Context, projectID, name string) error {
	return m.DescribeFunc(ctx, projectID, name)
}

func (m *MockFirewallClient) Create(ctx context.Context, projectID string, rule FirewallRuleSpec) error {
	return m.CreateFunc(ctx, projectID, rule)
}

func (m *MockFirewallClient) Delete(ctx context.Context, projectID, name string) error {
	return m.DeleteFunc(ctx, projectID, name)
}

type MockMetadataClient struct {
	ProjectSSHKeysFunc    func(ctx context.Context, projectID string) (string, error)
	SetProjectSSHKeysFunc func(ctx context.Context, projectID, keys string) error
}

func (m *MockMetadataClient) ProjectSSHKeys(ctx context.Context, projectID string) (string, error) {
	return m.ProjectSSHKeysFunc(ctx, projectID)
}

func (m *MockMetadataClient) SetProjectSSHKeys(ctx context.Context, projectID, keys string) error {
	return m.SetProjectSSHKeysFunc(ctx, projectID, keys)
}
