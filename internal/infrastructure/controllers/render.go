package controllers

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/infrastructure/repositories/report"
)

// renderReport logs every outcome of a run and the final tally.
func renderReport(syncReport *entities.SyncReport) {
	for _, outcome := range syncReport.Outcomes {
		switch outcome.Status {
		case entities.StatusSucceeded:
			logger.Infof("[%s] %s: %s", outcome.Repository.Name, outcome.Operation, outcome.Message)
		case entities.StatusSkipped:
			logger.Infof("[%s] %s skipped: %s", outcome.Repository.Name, outcome.Operation, outcome.Message)
		case entities.StatusFailed:
			logger.Errorf("[%s] %s failed: %s", outcome.Repository.Name, outcome.Operation, outcome.Message)
		}

		if outcome.Summary != nil && outcome.Summary.Available {
			logger.Infof("[%s] summary: %s", outcome.Repository.Name, outcome.Summary.Text)
		}
	}

	succeeded, skipped, failed := syncReport.Counts()
	logger.Infof("Run complete: %d succeeded, %d skipped, %d failed", succeeded, skipped, failed)
}

// persistSummaries writes the collected summaries to the configured file.
func persistSummaries(writer *report.SummaryWriter, settings *entities.Settings, syncReport *entities.SyncReport) {
	if !settings.EnableSummary || settings.DryRun {
		return
	}
	if err := writer.Write(settings.SummaryFile, syncReport); err != nil {
		logger.Warnf("Could not persist summaries: %s", err)
	}
}
