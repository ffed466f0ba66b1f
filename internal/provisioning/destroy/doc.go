// Package destroy handles teardown of the deployment's cloud resources.
// Deletion is best-effort: each resource is attempted independently and
// a failure does not stop the remaining deletions.
package destroy
