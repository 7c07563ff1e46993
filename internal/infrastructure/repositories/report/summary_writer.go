package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

const separatorWidth = 50

// SummaryWriter persists the summaries of a run to a text artifact,
// newest run first.
type SummaryWriter struct{}

// NewSummaryWriter creates a summary artifact writer.
func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// Write prepends the available summaries of the report to the file at
// path, keeping earlier runs below a separator. Reports without any
// available summary leave the file untouched.
func (it *SummaryWriter) Write(path string, syncReport *entities.SyncReport) error {
	summarized := syncReport.Summaries()
	if len(summarized) == 0 {
		logger.Debug("No summaries to save")
		return nil
	}

	var existing string
	if data, readErr := os.ReadFile(path); readErr == nil {
		existing = string(data)
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	for _, outcome := range summarized {
		fmt.Fprintf(&builder, "Repository: %s\n", outcome.Repository.Target())
		if outcome.Repository.DefaultBranch != "" {
			fmt.Fprintf(&builder, "Branch: %s\n", outcome.Repository.DefaultBranch)
		}
		fmt.Fprintf(&builder, "%s\n\n", outcome.Summary.Text)
	}
	if existing != "" {
		builder.WriteString(strings.Repeat("-", separatorWidth) + "\n\n")
		builder.WriteString(existing)
	}

	if writeErr := os.WriteFile(path, []byte(builder.String()), 0o644); writeErr != nil {
		return fmt.Errorf("failed to write summary file %q: %w", path, writeErr)
	}

	logger.Infof("Saved %d summaries to %s", len(summarized), path)
	return nil
}
