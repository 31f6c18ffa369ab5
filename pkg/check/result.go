package check

// PipelineResult aggregates the outcomes of one pipeline run.
// Outcomes appear in registry order, one per selected check, with
// unexecuted checks recorded as StatusSkipped in position.
type PipelineResult struct {
	Outcomes []Outcome
}

// OverallPassed reports whether every outcome passed. It is a pure
// function of the outcomes; a skipped or cancelled check counts as
// not passed.
func (p PipelineResult) OverallPassed() bool {
	for _, o := range p.Outcomes {
		if o.Status != StatusPassed {
			return false
		}
	}
	return true
}

// Counts returns the number of outcomes per status.
func (p PipelineResult) Counts() (passed, failed, skipped, cancelled int) {
	for _, o := range p.Outcomes {
		switch o.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		case StatusSkipped:
			skipped++
		case StatusCancelled:
			cancelled++
		}
	}
	return passed, failed, skipped, cancelled
}
