package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
)

const defaultLogEntries = 10

// LogController handles the "log" subcommand (recent commit history of
// a repository, oldest first).
type LogController struct {
	command commands.Log
}

// NewLogController creates a new LogController.
func NewLogController(command commands.Log) *LogController {
	return &LogController{command: command}
}

// GetBind returns the Cobra command metadata for the log controller.
func (it *LogController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "log <repository>",
		Short: "Show recent commits of a repository",
		Long: `Show the most recent commits of a repository, one line each,
newest first.`,
	}
}

// AddFlags registers the log-specific flags.
func (it *LogController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("max-entries", "n", defaultLogEntries, "Maximum number of commits to show")
}

// Execute prints the commit log.
func (it *LogController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("A repository is required")
		return
	}

	maxEntries, _ := cmd.Flags().GetInt("max-entries")
	if maxEntries <= 0 {
		maxEntries = defaultLogEntries
	}

	commits, err := it.command.Execute(ctx, args[0], maxEntries)
	if err != nil {
		logger.Errorf("Reading the log failed: %s", err)
		return
	}

	for _, commit := range commits {
		logger.Infof("%s %s (%s)", commit.ShortID(), commit.Subject(), commit.Author)
	}
}
