package gcloud

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates a describe call on a resource that does not
// exist. The ensurers treat it as the create-if-absent signal; every
// other error is fatal.
var ErrNotFound = errors.New("resource not found")

// NotFoundError wraps ErrNotFound with the resource name for diagnostics.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: resource not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// notFoundStderr recognizes the CLI's missing-resource diagnostics.
// gcloud prints "was not found" for compute resources and HTTP 404
// markers for API-level lookups.
func notFoundStderr(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "was not found") ||
		strings.Contains(s, "not found") ||
		strings.Contains(s, "httperror 404")
}
