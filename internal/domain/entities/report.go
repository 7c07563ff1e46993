package entities

// SyncReport is the terminal artifact of one orchestrator run: one
// outcome per repository processed, in input order.
type SyncReport struct {
	Outcomes []OperationOutcome
}

// Append adds an outcome to the report.
func (r *SyncReport) Append(outcome OperationOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

// Counts returns the number of succeeded, skipped, and failed outcomes.
func (r *SyncReport) Counts() (succeeded, skipped, failed int) {
	for _, outcome := range r.Outcomes {
		switch outcome.Status {
		case StatusSucceeded:
			succeeded++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return succeeded, skipped, failed
}

// Failed returns the outcomes that failed, preserving report order.
func (r *SyncReport) Failed() []OperationOutcome {
	var failed []OperationOutcome
	for _, outcome := range r.Outcomes {
		if outcome.Status == StatusFailed {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// Summaries returns the available summaries, preserving report order.
func (r *SyncReport) Summaries() []OperationOutcome {
	var summarized []OperationOutcome
	for _, outcome := range r.Outcomes {
		if outcome.Summary != nil && outcome.Summary.Available {
			summarized = append(summarized, outcome)
		}
	}
	return summarized
}
