// Package bootstrap executes the second-stage installation on the
// created instance: it uploads the rendered bootstrap script over SSH
// and runs it with elevated privileges.
package bootstrap
