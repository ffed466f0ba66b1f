// Package keygen generates and persists the SSH key pair used to reach
// the provisioned instance.
package keygen
