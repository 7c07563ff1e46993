package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const (
	operationClone  = "clone"
	operationPull   = "pull"
	operationSwitch = "switch-branch"

	// maxExcerptEntries bounds the commit excerpt recorded on clone/pull
	// outcomes; it feeds the summarizer, not the full history view.
	maxExcerptEntries = 20
)

// GitVCSRepository implements repositories.VCSRepository on top of go-git.
type GitVCSRepository struct{}

// NewGitVCSRepository creates the go-git backed VCS adapter.
func NewGitVCSRepository() repositories.VCSRepository {
	return &GitVCSRepository{}
}

// Clone creates a local copy of repo.RemoteURL at destDir.
func (it *GitVCSRepository) Clone(
	ctx context.Context,
	repo entities.Repository,
	destDir string,
	opts entities.OperationOptions,
) entities.OperationOutcome {
	if repo.RemoteURL == "" {
		return entities.FailedOutcome(repo, operationClone, "repository has no remote URL")
	}

	if destDir == "" {
		destDir = entities.RepositoryNameFromURL(repo.RemoteURL)
	}

	if dirExistsNonEmpty(destDir) {
		return entities.FailedOutcome(repo, operationClone, fmt.Sprintf(
			"destination %q already exists and is not empty", destDir,
		))
	}

	if opts.DryRun {
		return entities.SkippedOutcome(repo, operationClone, fmt.Sprintf(
			"dry-run: would clone %s into %q", repo.RemoteURL, destDir,
		))
	}

	cloneOpts := &gogit.CloneOptions{URL: repo.RemoteURL}
	if opts.Submodules {
		cloneOpts.RecurseSubmodules = gogit.DefaultSubmoduleRecursionDepth
	}

	cloned, err := gogit.PlainCloneContext(ctx, destDir, false, cloneOpts)
	if err != nil {
		return entities.FailedOutcome(repo, operationClone, fmt.Sprintf(
			"clone of %s failed: %v", repo.RemoteURL, err,
		))
	}

	repo.Path = destDir

	excerpt, _ := recentCommitExcerpt(cloned, maxExcerptEntries)
	return entities.SucceededOutcome(repo, operationClone, fmt.Sprintf(
		"cloned into %q", destDir,
	), excerpt)
}

// Pull integrates remote history into repo.Path without ever discarding
// local work.
func (it *GitVCSRepository) Pull(
	ctx context.Context,
	repo entities.Repository,
	opts entities.OperationOptions,
) entities.OperationOutcome {
	gitRepo, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"%q is not a git repository: %v", repo.Path, err,
		))
	}

	head, err := gitRepo.Head()
	if err != nil {
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"failed to resolve HEAD: %v", err,
		))
	}
	oldHead := head.Hash()

	if opts.DryRun {
		return entities.SkippedOutcome(repo, operationPull, fmt.Sprintf(
			"dry-run: would pull %q (branch %s)", repo.Path, head.Name().Short(),
		))
	}

	worktree, err := gitRepo.Worktree()
	if err != nil {
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"failed to open worktree: %v", err,
		))
	}

	pullOpts := &gogit.PullOptions{}
	if opts.Submodules {
		pullOpts.RecurseSubmodules = gogit.DefaultSubmoduleRecursionDepth
	}

	pullErr := worktree.PullContext(ctx, pullOpts)
	switch {
	case errors.Is(pullErr, gogit.NoErrAlreadyUpToDate):
		return entities.SkippedOutcome(repo, operationPull, "already up to date")
	case errors.Is(pullErr, gogit.ErrUnstagedChanges),
		errors.Is(pullErr, gogit.ErrNonFastForwardUpdate):
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"conflict: local changes collide with incoming history (%v); resolve them manually",
			pullErr,
		))
	case pullErr != nil:
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"pull failed: %v", pullErr,
		))
	}

	newHead, err := gitRepo.Head()
	if err != nil {
		return entities.FailedOutcome(repo, operationPull, fmt.Sprintf(
			"failed to resolve HEAD after pull: %v", err,
		))
	}

	if newHead.Hash() == oldHead {
		return entities.SkippedOutcome(repo, operationPull, "already up to date")
	}

	commits, err := commitsSince(gitRepo, newHead.Hash(), oldHead)
	if err != nil {
		// The pull itself succeeded; report it without an excerpt.
		return entities.SucceededOutcome(repo, operationPull, "pulled new commits", "")
	}

	return entities.SucceededOutcome(repo, operationPull, fmt.Sprintf(
		"pulled %d new commit(s)", len(commits),
	), entities.OnelineLog(commits))
}

// ListBranches returns local branch names first, then remote branches
// without a local counterpart, the way `git branch -a` output is usually
// de-duplicated.
func (it *GitVCSRepository) ListBranches(
	_ context.Context,
	repo entities.Repository,
) ([]string, error) {
	gitRepo, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return nil, fmt.Errorf("%q is not a git repository: %w", repo.Path, err)
	}

	var branches []string
	seen := make(map[string]bool)

	localIter, err := gitRepo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	if iterErr := localIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !seen[name] {
			seen[name] = true
			branches = append(branches, name)
		}
		return nil
	}); iterErr != nil {
		return nil, fmt.Errorf("failed to list branches: %w", iterErr)
	}

	refs, err := gitRepo.References()
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	if iterErr := refs.ForEach(func(ref *plumbing.Reference) error {
		if !ref.Name().IsRemote() || ref.Type() != plumbing.HashReference {
			return nil
		}
		// "origin/feature" -> "feature"
		_, name, found := strings.Cut(ref.Name().Short(), "/")
		if !found || name == "HEAD" {
			return nil
		}
		if !seen[name] {
			seen[name] = true
			branches = append(branches, name)
		}
		return nil
	}); iterErr != nil {
		return nil, fmt.Errorf("failed to list references: %w", iterErr)
	}

	return branches, nil
}

// SwitchBranch checks out the named branch, creating a local tracking
// branch for a remote-only one.
func (it *GitVCSRepository) SwitchBranch(
	_ context.Context,
	repo entities.Repository,
	name string,
	opts entities.OperationOptions,
) entities.OperationOutcome {
	gitRepo, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return entities.FailedOutcome(repo, operationSwitch, fmt.Sprintf(
			"%q is not a git repository: %v", repo.Path, err,
		))
	}

	if opts.DryRun {
		return entities.SkippedOutcome(repo, operationSwitch, fmt.Sprintf(
			"dry-run: would switch %q to branch %q", repo.Path, name,
		))
	}

	worktree, err := gitRepo.Worktree()
	if err != nil {
		return entities.FailedOutcome(repo, operationSwitch, fmt.Sprintf(
			"failed to open worktree: %v", err,
		))
	}

	branchRef := plumbing.NewBranchReferenceName(name)

	if _, refErr := gitRepo.Reference(branchRef, true); refErr == nil {
		if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{
			Branch: branchRef,
		}); checkoutErr != nil {
			return entities.FailedOutcome(repo, operationSwitch, fmt.Sprintf(
				"failed to switch to branch %q: %v", name, checkoutErr,
			))
		}
		return entities.SucceededOutcome(repo, operationSwitch, fmt.Sprintf(
			"switched to branch %q", name,
		), "")
	}

	// Not a local branch: look for it on a remote and create a local
	// branch pointing at the same commit.
	remoteRef, refErr := gitRepo.Reference(
		plumbing.NewRemoteReferenceName(gogit.DefaultRemoteName, name), true,
	)
	if refErr != nil {
		return entities.FailedOutcome(repo, operationSwitch, fmt.Sprintf(
			"branch %q not found locally or on a remote", name,
		))
	}

	if checkoutErr := worktree.Checkout(&gogit.CheckoutOptions{
		Branch: branchRef,
		Hash:   remoteRef.Hash(),
		Create: true,
	}); checkoutErr != nil {
		return entities.FailedOutcome(repo, operationSwitch, fmt.Sprintf(
			"failed to switch to branch %q: %v", name, checkoutErr,
		))
	}

	return entities.SucceededOutcome(repo, operationSwitch, fmt.Sprintf(
		"switched to new local branch %q tracking %s/%s",
		name, gogit.DefaultRemoteName, name,
	), "")
}

// Log returns up to maxEntries commits from HEAD, most-recent first.
func (it *GitVCSRepository) Log(
	_ context.Context,
	repo entities.Repository,
	maxEntries int,
) ([]entities.Commit, error) {
	gitRepo, err := gogit.PlainOpen(repo.Path)
	if err != nil {
		return nil, fmt.Errorf("%q is not a git repository: %w", repo.Path, err)
	}

	iter, err := gitRepo.Log(&gogit.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	var commits []entities.Commit
	if iterErr := iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, toCommit(c))
		if maxEntries > 0 && len(commits) >= maxEntries {
			return storer.ErrStop
		}
		return nil
	}); iterErr != nil {
		return nil, fmt.Errorf("failed to read history: %w", iterErr)
	}

	return commits, nil
}

// commitsSince collects commits reachable from "from" down to (but not
// including) "until", bounded by maxExcerptEntries.
func commitsSince(
	gitRepo *gogit.Repository,
	from, until plumbing.Hash,
) ([]entities.Commit, error) {
	iter, err := gitRepo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	var commits []entities.Commit
	if iterErr := iter.ForEach(func(c *object.Commit) error {
		if c.Hash == until || len(commits) >= maxExcerptEntries {
			return storer.ErrStop
		}
		commits = append(commits, toCommit(c))
		return nil
	}); iterErr != nil {
		return nil, fmt.Errorf("failed to read history: %w", iterErr)
	}

	return commits, nil
}

func recentCommitExcerpt(gitRepo *gogit.Repository, limit int) (string, error) {
	iter, err := gitRepo.Log(&gogit.LogOptions{})
	if err != nil {
		return "", err
	}
	defer iter.Close()

	var commits []entities.Commit
	if iterErr := iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, toCommit(c))
		if len(commits) >= limit {
			return storer.ErrStop
		}
		return nil
	}); iterErr != nil {
		return "", iterErr
	}

	return entities.OnelineLog(commits), nil
}

func toCommit(c *object.Commit) entities.Commit {
	return entities.Commit{
		ID:        c.Hash.String(),
		Author:    c.Author.Name,
		Timestamp: c.Author.When,
		Message:   c.Message,
	}
}

func dirExistsNonEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
