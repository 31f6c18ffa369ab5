// Package invoke runs one external checking tool and translates its
// exit status and output into a uniform Outcome.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dtoniolo/cicheck/pkg/check"
	"github.com/dtoniolo/cicheck/pkg/registry"
)

// Invoker abstracts check execution for testability.
type Invoker interface {
	// Invoke runs the check's command to termination and returns its
	// Outcome. It never returns an error: every failure mode is
	// captured in the Outcome itself.
	Invoke(ctx context.Context, def registry.CheckDefinition) check.Outcome
}

// ExecInvoker implements Invoker using real child processes.
type ExecInvoker struct{}

// Invoke executes the definition's command in its working directory,
// capturing stdout and stderr in full and recording wall-clock duration.
// Exit code 0 maps to StatusPassed (subject to the definition's success
// predicate), nonzero to StatusFailed. A command that cannot be started
// is reported distinctly from one that ran and failed.
func (e *ExecInvoker) Invoke(ctx context.Context, def registry.CheckDefinition) check.Outcome {
	outcome := check.Outcome{CheckName: def.Name}

	cmd := exec.CommandContext(ctx, def.Command, def.Args...)
	cmd.Dir = def.Dir
	if len(def.Env) > 0 {
		env := os.Environ()
		for k, v := range def.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	start := time.Now()
	err := cmd.Run()
	outcome.Duration = time.Since(start)
	outcome.Stdout = outBuf.String()
	outcome.Stderr = errBuf.String()

	if err != nil {
		if ctx.Err() != nil {
			outcome.Status = check.StatusCancelled
			outcome.Kind = check.KindCancelled
			outcome.Err = fmt.Errorf("%s cancelled: %w", def.Name, ctx.Err())
			return outcome
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			outcome.ExitCode = &code
			outcome.Status = check.StatusFailed
			outcome.Kind = check.KindToolFailure
			outcome.Err = fmt.Errorf("%s ran and failed: %w", def.Command, err)
			return outcome
		}

		// LookPath or Start failure: the tool never ran, so no exit code.
		outcome.Status = check.StatusFailed
		outcome.Kind = check.KindToolStart
		outcome.Err = fmt.Errorf("could not start %s: %w", def.Command, err)
		return outcome
	}

	zero := 0
	outcome.ExitCode = &zero

	if def.Success == registry.SuccessNoOutput && strings.TrimSpace(outcome.Stdout) != "" {
		outcome.Status = check.StatusFailed
		outcome.Kind = check.KindToolFailure
		outcome.Err = fmt.Errorf("%s exited 0 but reported findings on stdout", def.Command)
		return outcome
	}

	outcome.Status = check.StatusPassed
	return outcome
}

// FakeInvoker is a test double for Invoker.
type FakeInvoker struct {
	InvokeFunc func(ctx context.Context, def registry.CheckDefinition) check.Outcome
	Calls      []string // check names, in invocation order
}

// Invoke records the call and delegates to InvokeFunc.
func (f *FakeInvoker) Invoke(ctx context.Context, def registry.CheckDefinition) check.Outcome {
	f.Calls = append(f.Calls, def.Name)
	return f.InvokeFunc(ctx, def)
}
