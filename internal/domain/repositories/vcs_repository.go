package repositories

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// VCSRepository performs version-control operations against one local
// repository or remote URL. Mutating operations never raise for
// per-repository problems; they report them through the outcome so the
// caller can keep processing other repositories.
type VCSRepository interface {
	// Clone creates a local copy of repo.RemoteURL at destDir. It fails
	// when destDir exists and is non-empty, or when the remote is
	// unreachable or unauthorized.
	Clone(
		ctx context.Context,
		repo entities.Repository,
		destDir string,
		opts entities.OperationOptions,
	) entities.OperationOutcome

	// Pull integrates remote history into repo.Path. Already up to date
	// yields a skipped outcome; local changes that collide with incoming
	// history yield a failed outcome and the working tree is left intact.
	Pull(
		ctx context.Context,
		repo entities.Repository,
		opts entities.OperationOptions,
	) entities.OperationOutcome

	// ListBranches returns branch names: local branches first, then
	// remote branches without a local counterpart.
	ListBranches(ctx context.Context, repo entities.Repository) ([]string, error)

	// SwitchBranch checks out the named branch, creating a local branch
	// for a remote-only one. It fails when the branch exists neither
	// locally nor on a remote.
	SwitchBranch(
		ctx context.Context,
		repo entities.Repository,
		name string,
		opts entities.OperationOptions,
	) entities.OperationOutcome

	// Log returns up to maxEntries commit records, most-recent first.
	Log(ctx context.Context, repo entities.Repository, maxEntries int) ([]entities.Commit, error)
}
