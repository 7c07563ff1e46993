package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/infrastructure/repositories/report"
)

// PullController handles the "pull" subcommand for a single repository
// or, with --all, for every repository under a directory.
type PullController struct {
	command commands.Pull
	writer  *report.SummaryWriter
}

// NewPullController creates a new PullController.
func NewPullController(command commands.Pull, writer *report.SummaryWriter) *PullController {
	return &PullController{command: command, writer: writer}
}

// GetBind returns the Cobra command metadata for the pull controller.
func (it *PullController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "pull [repository]",
		Short: "Pull a repository on its current branch",
		Long: `Pull the given repository (a path, or a name under the current
directory) on its current branch. With --all, pull every repository
found under the directory instead.`,
	}
}

// AddFlags registers the pull-specific flags.
func (it *PullController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("all", false, "Pull every repository under the directory")
}

// Execute runs the pull.
func (it *PullController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Invalid configuration: %s", err)
		return
	}

	all, _ := cmd.Flags().GetBool("all")

	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	if target == "" && !all {
		logger.Error("A repository is required unless --all is set")
		return
	}

	syncReport, err := it.command.Execute(ctx, settings, commands.PullOptions{
		Target: target,
		All:    all,
		Dir:    ".",
	})
	if err != nil {
		logger.Errorf("Pull failed: %s", err)
		return
	}

	renderReport(syncReport)
	persistSummaries(it.writer, settings, syncReport)
}
