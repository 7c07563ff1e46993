package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/infrastructure/repositories/report"
)

// CloneController handles the "clone" subcommand. The argument may be
// a single repository URL or a provider account URL, in which case
// every repository of the account is cloned.
type CloneController struct {
	command commands.Clone
	writer  *report.SummaryWriter
}

// NewCloneController creates a new CloneController.
func NewCloneController(command commands.Clone, writer *report.SummaryWriter) *CloneController {
	return &CloneController{command: command, writer: writer}
}

// GetBind returns the Cobra command metadata for the clone controller.
func (it *CloneController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "clone <url> [destination]",
		Short: "Clone a repository or a whole provider account",
		Long: `Clone a single repository, or every repository of a GitHub, GitLab
or Bitbucket account when the URL points at the account itself.

Account clones go into a directory named after the account; repositories
that already exist on disk are skipped.`,
	}
}

// Execute runs the clone.
func (it *CloneController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("A repository or account URL is required")
		return
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Invalid configuration: %s", err)
		return
	}

	destDir := ""
	if len(args) > 1 {
		destDir = args[1]
	}

	syncReport, err := it.command.Execute(ctx, settings, commands.CloneOptions{
		URL:     args[0],
		DestDir: destDir,
	})
	if err != nil {
		logger.Errorf("Clone failed: %s", err)
		return
	}

	renderReport(syncReport)
	persistSummaries(it.writer, settings, syncReport)
}
