// Package pipeline executes a registry's checks in order and
// aggregates their outcomes.
package pipeline

import (
	"context"
	"fmt"

	"github.com/dtoniolo/cicheck/pkg/check"
	"github.com/dtoniolo/cicheck/pkg/invoke"
	"github.com/dtoniolo/cicheck/pkg/registry"
)

// Policy controls whether a failure stops the remaining checks.
type Policy int

const (
	// RunAll executes every check regardless of earlier failures,
	// surfacing the complete diagnostic picture in one pass.
	RunAll Policy = iota
	// FailFast stops after the first non-passed outcome; remaining
	// checks are recorded as skipped.
	FailFast
)

// Runner orchestrates one pipeline run. It holds no mutable state
// across runs and is safe to construct with a fake invoker for tests.
type Runner struct {
	Invoker invoke.Invoker
	Policy  Policy
}

// Run executes the registry's checks sequentially, in registry order.
// Checks run one at a time: they may mutate shared workspace state, so
// concurrent execution is unsafe.
//
// The result always has one outcome per registry check, in position.
// Cancellation of ctx between checks marks the remaining checks
// skipped; cancellation mid-check terminates the child and records a
// cancelled outcome for it. A panic while invoking one check is
// captured as that check's failed outcome and never corrupts
// already-collected outcomes.
func (r *Runner) Run(ctx context.Context, reg *registry.Registry) check.PipelineResult {
	defs := reg.Checks()
	outcomes := make([]check.Outcome, 0, len(defs))
	halted := false

	for _, def := range defs {
		if halted || ctx.Err() != nil {
			outcomes = append(outcomes, check.Skipped(def.Name))
			continue
		}

		out := r.invokeOne(ctx, def)
		outcomes = append(outcomes, out)

		if out.Status == check.StatusCancelled {
			// Mid-check cancellation skips the rest under either policy.
			halted = true
		} else if r.Policy == FailFast && out.Status != check.StatusPassed {
			halted = true
		}
	}

	return check.PipelineResult{Outcomes: outcomes}
}

// invokeOne runs a single check, applying its version gate first and
// converting panics into a failed outcome.
func (r *Runner) invokeOne(ctx context.Context, def registry.CheckDefinition) (out check.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = check.Outcome{
				CheckName: def.Name,
				Status:    check.StatusFailed,
				Kind:      check.KindInternal,
				Err:       fmt.Errorf("internal error running %s: %v", def.Name, p),
			}
		}
	}()

	if def.Gate != nil {
		if gateOut, ok := r.applyGate(ctx, def); !ok {
			return gateOut
		}
	}

	return r.Invoker.Invoke(ctx, def)
}
