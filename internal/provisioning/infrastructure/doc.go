// Package infrastructure contains the idempotent resource ensurers:
// API enablement, the SSH key pair, the static address, the compute
// instance and the firewall rules. Every ensurer queries by name first
// and short-circuits when the resource already exists.
package infrastructure
