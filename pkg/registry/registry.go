// Package registry defines the ordered set of checks a pipeline runs.
package registry

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SuccessPredicate decides how a completed command maps to pass/fail.
type SuccessPredicate string

const (
	// SuccessExitZero passes when the command exits 0. This is the default.
	SuccessExitZero SuccessPredicate = "exit-zero"
	// SuccessNoOutput passes when the command exits 0 and writes nothing
	// to stdout. Covers tools like gofmt -l that report violations as
	// output rather than exit status.
	SuccessNoOutput SuccessPredicate = "no-output"
)

// VersionGate constrains the version of the tool bound to a check.
// The gate is evaluated before the check command runs by invoking the
// tool with Args and extracting a semantic version from its output.
type VersionGate struct {
	Args []string // args that print the tool version (default: --version)
	Min  string   // minimum version required, inclusive
	Max  string   // maximum version allowed, exclusive
}

// CheckDefinition binds a named check to an external command.
// Definitions are constructed once at startup and never mutated.
type CheckDefinition struct {
	Name    string            // unique, stable identifier
	Command string            // executable path or name
	Args    []string          // command arguments, in order
	Dir     string            // working directory ("" = inherit)
	Env     map[string]string // environment additions
	Success SuccessPredicate  // "" behaves as SuccessExitZero
	Gate    *VersionGate      // optional tool version constraint
}

// Registry is an ordered list of check definitions. The order defines
// execution order and is part of the contract.
type Registry struct {
	defs []CheckDefinition
}

// New builds a Registry from definitions, validating that every check
// has a name and a command, names are unique, and version gates parse.
func New(defs ...CheckDefinition) (*Registry, error) {
	seen := make(map[string]bool, len(defs))
	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("check %d has no name", i)
		}
		if def.Command == "" {
			return nil, fmt.Errorf("check %q has no command", def.Name)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate check name %q", def.Name)
		}
		seen[def.Name] = true

		switch def.Success {
		case "", SuccessExitZero, SuccessNoOutput:
		default:
			return nil, fmt.Errorf("check %q has unknown success predicate %q", def.Name, def.Success)
		}

		if def.Gate != nil {
			if def.Gate.Min == "" && def.Gate.Max == "" {
				return nil, fmt.Errorf("check %q has a version gate with no constraint", def.Name)
			}
			for _, v := range []string{def.Gate.Min, def.Gate.Max} {
				if v == "" {
					continue
				}
				if _, err := semver.NewVersion(v); err != nil {
					return nil, fmt.Errorf("check %q has invalid gate version %q: %w", def.Name, v, err)
				}
			}
		}
	}
	return &Registry{defs: defs}, nil
}

// Checks returns the definitions in execution order.
func (r *Registry) Checks() []CheckDefinition {
	out := make([]CheckDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

// Len returns the number of checks.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Filter returns a Registry containing only the named checks, in
// registry relative order. Requested names that do not exist in the
// registry are an error.
func (r *Registry) Filter(names []string) (*Registry, error) {
	want := make(map[string]bool, len(names))
	for _, name := range names {
		want[name] = true
	}
	for name := range want {
		found := false
		for _, def := range r.defs {
			if def.Name == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown check %q", name)
		}
	}

	var kept []CheckDefinition
	for _, def := range r.defs {
		if want[def.Name] {
			kept = append(kept, def)
		}
	}
	return &Registry{defs: kept}, nil
}

// WithDir returns a Registry where checks without their own working
// directory run in dir.
func (r *Registry) WithDir(dir string) *Registry {
	defs := r.Checks()
	for i := range defs {
		if defs[i].Dir == "" {
			defs[i].Dir = dir
		}
	}
	return &Registry{defs: defs}
}

// Builtin returns the default pipeline: static analysis, documentation
// build, and verify-only formatting over the current package.
func Builtin() *Registry {
	r, err := New(
		CheckDefinition{
			Name:    "analysis",
			Command: "go",
			Args:    []string{"vet", "./..."},
		},
		CheckDefinition{
			Name:    "docs",
			Command: "go",
			Args:    []string{"doc", "-all", "."},
		},
		CheckDefinition{
			Name:    "format",
			Command: "gofmt",
			Args:    []string{"-l", "."},
			Success: SuccessNoOutput,
		},
	)
	if err != nil {
		panic(err) // static definitions
	}
	return r
}
