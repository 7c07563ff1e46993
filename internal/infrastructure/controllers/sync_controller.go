package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/infrastructure/repositories/report"
)

// SyncController handles the "sync" subcommand (synchronize every
// repository found under a directory).
type SyncController struct {
	command commands.Sync
	writer  *report.SummaryWriter
}

// NewSyncController creates a new SyncController.
func NewSyncController(command commands.Sync, writer *report.SummaryWriter) *SyncController {
	return &SyncController{command: command, writer: writer}
}

// GetBind returns the Cobra command metadata for the sync controller.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync [directory]",
		Short: "Synchronize every repository under a directory",
		Long: `Scan the given directory (default ".") for Git repositories and
pull each of them on its current branch.

Failures in one repository never stop the others; a final report lists
what succeeded, what was skipped and what failed.`,
	}
}

// Execute runs the directory synchronization.
func (it *SyncController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Invalid configuration: %s", err)
		return
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	syncReport, err := it.command.Execute(ctx, settings, commands.SyncScope{Directory: dir})
	if err != nil {
		logger.Errorf("Sync failed: %s", err)
		return
	}

	renderReport(syncReport)
	persistSummaries(it.writer, settings, syncReport)
}
