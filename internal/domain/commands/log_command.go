package commands

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
	discoveryRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/discovery"
)

// Log is the interface for the commit-log command.
type Log interface {
	Execute(ctx context.Context, target string, maxEntries int) ([]entities.Commit, error)
}

// LogCommand reads the commit history of a repository.
type LogCommand struct {
	vcs repositories.VCSRepository
}

// NewLogCommand creates a new LogCommand.
func NewLogCommand(vcs repositories.VCSRepository) *LogCommand {
	return &LogCommand{vcs: vcs}
}

// Execute returns up to maxEntries commits of the target repository,
// most-recent first.
func (it *LogCommand) Execute(
	ctx context.Context,
	target string,
	maxEntries int,
) ([]entities.Commit, error) {
	repo, err := discoveryRepo.ResolveRepository(".", target)
	if err != nil {
		return nil, err
	}
	return it.vcs.Log(ctx, repo, maxEntries)
}
