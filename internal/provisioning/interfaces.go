package provisioning

// Phase defines the interface for one pipeline step.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the phase. Ensure-style phases are idempotent:
	// they query for the resource first and short-circuit when it
	// already exists.
	Provision(ctx *Context) error
}

// PhaseFunc adapts a function to the Phase interface.
type PhaseFunc struct {
	PhaseName string
	Fn        func(ctx *Context) error
}

func (p PhaseFunc) Name() string { return p.PhaseName }

func (p PhaseFunc) Provision(ctx *Context) error { return p.Fn(ctx) }
