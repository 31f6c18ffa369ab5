package report

import (
	"encoding/json"
	"io"

	"github.com/dtoniolo/cicheck/pkg/check"
)

type jsonOutcome struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Kind       string `json:"kind,omitempty"`
	ExitCode   *int   `json:"exit_code,omitempty"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

type jsonReport struct {
	Overall   string        `json:"overall"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Cancelled int           `json:"cancelled"`
	Checks    []jsonOutcome `json:"checks"`
}

// JSON renders the result as a machine-readable report with stable
// field names, outcomes in registry order.
func JSON(w io.Writer, result check.PipelineResult) error {
	passed, failed, skipped, cancelled := result.Counts()
	rep := jsonReport{
		Overall:   "PASSED",
		Passed:    passed,
		Failed:    failed,
		Skipped:   skipped,
		Cancelled: cancelled,
		Checks:    make([]jsonOutcome, 0, len(result.Outcomes)),
	}
	if !result.OverallPassed() {
		rep.Overall = "FAILED"
	}

	for _, o := range result.Outcomes {
		jo := jsonOutcome{
			Name:       o.CheckName,
			Status:     string(o.Status),
			Kind:       string(o.Kind),
			ExitCode:   o.ExitCode,
			Stdout:     o.Stdout,
			Stderr:     o.Stderr,
			DurationMs: o.Duration.Milliseconds(),
		}
		if o.Err != nil {
			jo.Error = o.Err.Error()
		}
		rep.Checks = append(rep.Checks, jo)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
