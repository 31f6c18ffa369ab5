package check

import "time"

// Status represents the outcome of a check attempt.
type Status string

const (
	StatusPassed    Status = "PASS"
	StatusFailed    Status = "FAIL"
	StatusSkipped   Status = "SKIP"
	StatusCancelled Status = "CANCELLED"
)

// Kind classifies why a check did not pass.
type Kind string

const (
	// KindToolStart means the bound executable could not be launched,
	// or failed its tool version gate before the check command ran.
	KindToolStart Kind = "tool-start-failure"
	// KindToolFailure means the tool ran to completion and reported failure.
	KindToolFailure Kind = "tool-failure"
	// KindInternal means the runner itself hit an unexpected condition
	// while executing the check.
	KindInternal Kind = "runner-internal-error"
	// KindCancelled means an external cancellation signal interrupted the check.
	KindCancelled Kind = "cancelled"
)

// Outcome holds the recorded result of attempting one check.
// It is created once per attempt and never mutated afterwards.
type Outcome struct {
	CheckName string        // registry name of the check
	Status    Status        // PASS, FAIL, SKIP or CANCELLED
	Kind      Kind          // failure classification, empty for PASS/SKIP
	ExitCode  *int          // nil when the tool never ran to termination
	Stdout    string        // captured standard output
	Stderr    string        // captured standard error
	Duration  time.Duration // wall clock, invocation start to termination
	Err       error         // underlying error for non-passed outcomes
}

// Passed returns true if the check passed.
func (o Outcome) Passed() bool {
	return o.Status == StatusPassed
}

// Skipped returns an Outcome for a check that was never attempted.
func Skipped(name string) Outcome {
	return Outcome{CheckName: name, Status: StatusSkipped}
}
