package gcloud

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a gcloud invocation and returns its stdout.
// Injected so tests can run the client against canned output.
type Runner interface {
	Output(ctx context.Context, args ...string) ([]byte, error)
}

// CommandError carries the invocation and its stderr for diagnostics.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("gcloud %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

type execRunner struct {
	bin string
}

// NewExecRunner returns a Runner that invokes the gcloud binary from
// PATH.
func NewExecRunner() Runner {
	return &execRunner{bin: "gcloud"}
}

func (r *execRunner) Output(ctx context.Context, args ...string) ([]byte, error) {
	// #nosec G204 - args are assembled from fixed subcommands and
	// validated configuration, not raw user input
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return stdout.Bytes(), nil
}
