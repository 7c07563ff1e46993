package commands

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
	discoveryRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/discovery"
)

// Branch is the interface for the branch command.
type Branch interface {
	List(ctx context.Context, target string) ([]string, error)
	Switch(
		ctx context.Context,
		settings *entities.Settings,
		target, name string,
	) (entities.OperationOutcome, error)
}

// BranchCommand lists the branches of a repository and switches between
// them.
type BranchCommand struct {
	vcs repositories.VCSRepository
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(vcs repositories.VCSRepository) *BranchCommand {
	return &BranchCommand{vcs: vcs}
}

// List returns the branch names of the target repository: local branches
// first, then remote-only ones.
func (it *BranchCommand) List(ctx context.Context, target string) ([]string, error) {
	repo, err := discoveryRepo.ResolveRepository(".", target)
	if err != nil {
		return nil, err
	}
	return it.vcs.ListBranches(ctx, repo)
}

// Switch checks out the named branch in the target repository.
func (it *BranchCommand) Switch(
	ctx context.Context,
	settings *entities.Settings,
	target, name string,
) (entities.OperationOutcome, error) {
	repo, err := discoveryRepo.ResolveRepository(".", target)
	if err != nil {
		return entities.OperationOutcome{}, err
	}
	return it.vcs.SwitchBranch(ctx, repo, name, settings.Operation()), nil
}
