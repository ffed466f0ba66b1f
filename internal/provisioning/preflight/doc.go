// Package preflight contains the read-only checks that run before any
// resource is touched: tool availability, authentication state, and
// project access.
package preflight
