package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

// Clone is the interface for the clone command.
type Clone interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		opts CloneOptions,
	) (*entities.SyncReport, error)
}

// CloneOptions holds runtime options for a clone.
type CloneOptions struct {
	URL     string // repository clone URL or provider account URL
	DestDir string
}

// CloneCommand clones a single repository, or every repository of a
// hosting-provider account when given an account URL.
type CloneCommand struct {
	vcs  repositories.VCSRepository
	sync Sync
}

// NewCloneCommand creates a new CloneCommand.
func NewCloneCommand(vcs repositories.VCSRepository, sync Sync) *CloneCommand {
	return &CloneCommand{vcs: vcs, sync: sync}
}

// Execute clones the target. Account URLs fan out to the orchestrator so
// every repository of the account lands under a directory named after it.
func (it *CloneCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts CloneOptions,
) (*entities.SyncReport, error) {
	if account, ok := entities.ParseAccountURL(opts.URL); ok {
		logger.Infof("Recognized %s account URL for %q", account.Provider, account.Name)
		return it.sync.Execute(ctx, settings, SyncScope{
			Account: &account,
			DestDir: opts.DestDir,
		})
	}

	repo := entities.NewRemoteRepository("", opts.URL)
	outcome := it.vcs.Clone(ctx, repo, opts.DestDir, settings.Operation())

	syncReport := &entities.SyncReport{}
	syncReport.Append(outcome)
	return syncReport, nil
}
