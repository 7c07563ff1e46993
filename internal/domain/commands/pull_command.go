package commands

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	discoveryRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/discovery"
)

// Pull is the interface for the pull command.
type Pull interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts PullOptions,
	) (*entities.SyncReport, error)
}

// PullOptions holds runtime options for a pull.
type PullOptions struct {
	Target string // repository name or path (single-repository mode)
	All    bool   // pull every repository under Dir instead
	Dir    string
}

// PullCommand updates one local repository, or all repositories under a
// directory, by delegating the appropriate scope to the orchestrator.
type PullCommand struct {
	sync Sync
}

// NewPullCommand creates a new PullCommand.
func NewPullCommand(sync Sync) *PullCommand {
	return &PullCommand{sync: sync}
}

// Execute runs the pull for the selected scope.
func (it *PullCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts PullOptions,
) (*entities.SyncReport, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	if opts.All {
		return it.sync.Execute(ctx, settings, SyncScope{Directory: dir})
	}

	repo, err := discoveryRepo.ResolveRepository(dir, opts.Target)
	if err != nil {
		return nil, err
	}

	return it.sync.Execute(ctx, settings, SyncScope{Repository: &repo})
}
