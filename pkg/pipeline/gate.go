package pipeline

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/dtoniolo/cicheck/pkg/check"
	"github.com/dtoniolo/cicheck/pkg/registry"
)

// versionRegex matches version patterns like 1.2.3, v1.2, 18, etc.
var versionRegex = regexp.MustCompile(`v?(\d+(?:\.\d+)?(?:\.\d+)?)`)

// extractVersion finds and parses the first version number in tool output.
func extractVersion(s string) (*semver.Version, error) {
	matches := versionRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("no version found in %q", s)
	}
	return semver.NewVersion(matches[1])
}

// applyGate probes the tool's version and compares it against the
// definition's gate. Returns ok=true when the check command may run.
// An unusable tool (probe failed, unparseable or out-of-range version)
// is the check's failed outcome with a start-failure classification,
// and the check command itself is not run.
func (r *Runner) applyGate(ctx context.Context, def registry.CheckDefinition) (check.Outcome, bool) {
	gate := def.Gate

	args := gate.Args
	if len(args) == 0 {
		args = []string{"--version"}
	}
	probe := registry.CheckDefinition{
		Name:    def.Name,
		Command: def.Command,
		Args:    args,
		Dir:     def.Dir,
		Env:     def.Env,
	}

	out := r.Invoker.Invoke(ctx, probe)
	if out.Status == check.StatusCancelled {
		return out, false
	}
	if out.Status != check.StatusPassed {
		out.Kind = check.KindToolStart
		out.Err = fmt.Errorf("version probe of %s failed: %w", def.Command, out.Err)
		return out, false
	}

	versionOutput := out.Stdout
	if versionOutput == "" {
		versionOutput = out.Stderr
	}

	v, err := extractVersion(versionOutput)
	if err != nil {
		return gateFailure(out, err), false
	}

	if gate.Min != "" {
		min := semver.MustParse(gate.Min)
		if v.LessThan(min) {
			return gateFailure(out, fmt.Errorf("%s version %s below minimum %s", def.Command, v, min)), false
		}
	}
	if gate.Max != "" {
		max := semver.MustParse(gate.Max)
		if !v.LessThan(max) {
			return gateFailure(out, fmt.Errorf("%s version %s at or above maximum %s", def.Command, v, max)), false
		}
	}

	return out, true
}

// gateFailure turns a successful version probe into a failed outcome
// for an unsatisfied gate, keeping the probe's captured output.
func gateFailure(probe check.Outcome, err error) check.Outcome {
	probe.Status = check.StatusFailed
	probe.Kind = check.KindToolStart
	probe.ExitCode = nil
	probe.Err = err
	return probe
}
