package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// BranchController handles the "branches" subcommand: list the branches
// of a repository, or switch to one when a name is given.
type BranchController struct {
	command commands.Branch
}

// NewBranchController creates a new BranchController.
func NewBranchController(command commands.Branch) *BranchController {
	return &BranchController{command: command}
}

// GetBind returns the Cobra command metadata for the branch controller.
func (it *BranchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branches <repository> [branch]",
		Short: "List or switch branches of a repository",
		Long: `List the local and remote branches of a repository. When a branch
name is given, switch to it instead; remote-only branches get a local
branch created on checkout.`,
	}
}

// Execute lists or switches branches.
func (it *BranchController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	if len(args) == 0 {
		logger.Error("A repository is required")
		return
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		logger.Errorf("Invalid configuration: %s", err)
		return
	}

	if len(args) > 1 {
		outcome, err := it.command.Switch(ctx, settings, args[0], args[1])
		if err != nil {
			logger.Errorf("Switch failed: %s", err)
			return
		}
		if outcome.Status == entities.StatusFailed {
			logger.Errorf("[%s] %s", outcome.Repository.Name, outcome.Message)
			return
		}
		logger.Infof("[%s] %s", outcome.Repository.Name, outcome.Message)
		return
	}

	branches, err := it.command.List(ctx, args[0])
	if err != nil {
		logger.Errorf("Listing branches failed: %s", err)
		return
	}
	for _, branch := range branches {
		logger.Info(branch)
	}
}
