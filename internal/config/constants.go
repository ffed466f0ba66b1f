package config

// Fixed resource names shared by the provision and destroy workflows.
// Teardown locates resources by these exact names, so they must never
// diverge between the two pipelines.
const (
	// InstanceName is the name of the compute instance running Syncthing.
	InstanceName = "syncthing-node"

	// AddressName is the name of the static external address reserved for
	// the instance. The address survives instance recreation so remote
	// devices keep a stable endpoint.
	AddressName = "syncthing-addr"

	// NetworkTag is the instance tag that firewall rules target.
	NetworkTag = "syncthing"
)

// Firewall rule names, one rule per published port.
const (
	FirewallRuleSSH       = "syncthing-allow-ssh"
	FirewallRuleWebUI     = "syncthing-allow-webui"
	FirewallRuleSync      = "syncthing-allow-sync"
	FirewallRuleDiscovery = "syncthing-allow-discovery"
)

// Ports published by the Syncthing container.
const (
	PortSSH       = 22    // TCP, remote bootstrap and operator access
	PortWebUI     = 8384  // TCP, browser GUI
	PortSync      = 22000 // TCP, device-to-device sync protocol
	PortDiscovery = 21027 // UDP, local discovery broadcasts
)

// ComputeAPI is the service that must be enabled on the project before
// any compute resource can be created.
const ComputeAPI = "compute.googleapis.com"

// SSHUser is the login account provisioned on the instance via the
// pushed public key. The bootstrap script runs under this account with
// sudo.
const SSHUser = "syncup"

// PrivateKeyFile is the file name of the generated private key inside
// the key directory. The matching public key lives alongside it with a
// ".pub" suffix.
const PrivateKeyFile = "id_rsa"
