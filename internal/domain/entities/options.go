package entities

import (
	"time"
)

// OperationOptions holds runtime options passed to VCS operations.
// With DryRun set, mutating operations decide what they would do and
// return a skipped outcome without touching the working tree.
type OperationOptions struct {
	DryRun     bool
	Submodules bool
}

// SummaryOptions holds runtime options for one summarizer call. Timeout
// bounds each attempt; MaxRetries is the number of additional attempts
// after the first.
type SummaryOptions struct {
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}
