package ssh

import (
	"context"
)

// Communicator defines the interface for executing commands on a remote
// instance.
type Communicator interface {
	// Execute runs a command on the remote instance and returns the
	// combined output. It handles connection establishment and retries.
	Execute(ctx context.Context, command string) (string, error)

	// UploadFile writes content to a file on the remote instance.
	UploadFile(ctx context.Context, content []byte, remotePath string) error
}
