package provisioning

import (
	"context"

	"github.com/ostred/syncup/internal/config"
	"github.com/ostred/syncup/internal/gcloud"
)

// State holds the shared results of pipeline phases. It is progressively
// populated as phases complete and read by later phases; nothing in it
// survives the process.
type State struct {
	// ActiveAccount is the authenticated account (populated by preflight).
	ActiveAccount string

	// AddressIP is the allocated static IP (populated by the address
	// ensurer, consumed by instance creation and bootstrap).
	AddressIP string

	// Key material for the run (populated by the SSH key ensurer).
	PublicKey  []byte
	PrivateKey []byte

	// KeyGenerated reports whether this run created a fresh key pair,
	// in which case propagation needs a settling wait.
	KeyGenerated bool

	// InstanceCreated reports whether this run created the instance
	// (as opposed to finding it). A fresh instance needs a boot wait
	// before the first SSH connection.
	InstanceCreated bool
}

// Context wraps the dependencies and state shared by all phases of one
// pipeline run.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    gcloud.Client
	Observer Observer
}

// NewContext creates a new pipeline context.
func NewContext(ctx context.Context, cfg *config.Config, cloud gcloud.Client) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    &State{},
		Cloud:    cloud,
		Observer: NewConsoleObserver(),
	}
}
