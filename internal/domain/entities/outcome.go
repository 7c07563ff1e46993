package entities

// OperationStatus classifies the result of one VCS operation.
type OperationStatus string

const (
	StatusSucceeded OperationStatus = "succeeded"
	StatusSkipped   OperationStatus = "skipped"
	StatusFailed    OperationStatus = "failed"
)

// OperationOutcome is the immutable result of one VCS operation on one
// repository. LogExcerpt carries the new-commit log used as summarizer
// input; Summary is attached by the orchestrator when summarization ran.
type OperationOutcome struct {
	Repository Repository
	Operation  string
	Status     OperationStatus
	Message    string
	LogExcerpt string
	Summary    *SummaryResult
}

// SummaryResult is the outcome of one summarizer-gateway call. Available
// is false when summarization was disabled, timed out, or exhausted its
// retry budget; the surrounding operation is unaffected either way.
type SummaryResult struct {
	Text      string
	Available bool
	Attempts  int
}

// UnavailableSummary marks a summary that could not be produced after the
// given number of attempts.
func UnavailableSummary(attempts int) SummaryResult {
	return SummaryResult{Available: false, Attempts: attempts}
}

// SucceededOutcome builds a succeeded outcome for the given operation.
func SucceededOutcome(repo Repository, operation, message, logExcerpt string) OperationOutcome {
	return OperationOutcome{
		Repository: repo,
		Operation:  operation,
		Status:     StatusSucceeded,
		Message:    message,
		LogExcerpt: logExcerpt,
	}
}

// SkippedOutcome builds a skipped outcome (nothing to do, or dry-run).
func SkippedOutcome(repo Repository, operation, message string) OperationOutcome {
	return OperationOutcome{
		Repository: repo,
		Operation:  operation,
		Status:     StatusSkipped,
		Message:    message,
	}
}

// FailedOutcome builds a failed outcome carrying a diagnostic message.
func FailedOutcome(repo Repository, operation, message string) OperationOutcome {
	return OperationOutcome{
		Repository: repo,
		Operation:  operation,
		Status:     StatusFailed,
		Message:    message,
	}
}

// WithSummary returns a copy of the outcome with the summary attached.
func (o OperationOutcome) WithSummary(summary SummaryResult) OperationOutcome {
	o.Summary = &summary
	return o
}
