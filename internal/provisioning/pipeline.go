package provisioning

import (
	"errors"
	"fmt"
	"time"
)

// Policy names how a pipeline treats phase failures.
type Policy int

const (
	// FailFast aborts the pipeline on the first phase error. Used by
	// provisioning, where later phases depend on earlier results.
	FailFast Policy = iota

	// BestEffort logs phase errors and continues with the remaining
	// phases. Used by teardown, where each deletion is independent and
	// a single failure must not leave the rest of the resources behind.
	BestEffort
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "fail-fast"
	case BestEffort:
		return "best-effort"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// Pipeline is an ordered sequence of phases executed under a policy.
type Pipeline struct {
	Phases []Phase
	Policy Policy
}

// NewPipeline creates a fail-fast pipeline of the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases, Policy: FailFast}
}

// NewBestEffortPipeline creates a best-effort pipeline of the given
// phases.
func NewBestEffortPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases, Policy: BestEffort}
}

// Run executes all phases sequentially under the pipeline's policy.
//
// Under FailFast the first phase error is returned immediately. Under
// BestEffort every phase runs; the joined errors (if any) are returned
// at the end.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()
	ctx.Observer.Printf("Running %d phases (%s)...", len(p.Phases), p.Policy)

	var failures []error

	for i, phase := range p.Phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(p.Phases))

		ctx.Observer.Printf("[%s] starting", name)

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Printf("[%s] failed: %v", name, err)
			if p.Policy == FailFast {
				return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
			}
			failures = append(failures, fmt.Errorf("%s: %w", phase.Name(), err))
			continue
		}

		ctx.Observer.Printf("[%s] completed in %v", name, time.Since(phaseStart).Round(time.Millisecond))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d phases failed: %w", len(failures), len(p.Phases), errors.Join(failures...))
	}

	ctx.Observer.Printf("All phases completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
