// Package provisioning provides the shared types for the provision and
// destroy pipelines.
//
// The workflow domain is organized into focused subpackages:
//   - preflight/ — tool, authentication and project checks
//   - infrastructure/ — API enablement, SSH key, address, instance, firewall
//   - bootstrap/ — remote software installation over SSH
//   - destroy/ — best-effort teardown
//
// This root package contains the Phase interface, the Context threaded
// through every phase, and the two pipeline execution policies.
package provisioning
