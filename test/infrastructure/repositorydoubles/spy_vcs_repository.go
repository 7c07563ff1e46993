//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
// Per-repository outcomes are keyed by repository name; the Default* fields
// answer for any repository without an entry. Call tracking is safe for
// concurrent use so parallel runs can share one instance.
type SpyVCSRepository struct {
	mu sync.Mutex

	// --- Clone ---
	CloneOutcomes map[string]entities.OperationOutcome
	DefaultClone  func(repo entities.Repository) entities.OperationOutcome
	// spy: repos and destinations received
	ClonedRepos   []entities.Repository
	CloneDestDirs []string

	// --- Pull ---
	PullOutcomes map[string]entities.OperationOutcome
	DefaultPull  func(repo entities.Repository) entities.OperationOutcome
	// spy: repos received
	PulledRepos []entities.Repository

	// --- ListBranches ---
	Branches        []string
	ListBranchesErr error

	// --- SwitchBranch ---
	SwitchOutcome entities.OperationOutcome
	// spy: branch names requested
	SwitchedTo []string

	// --- Log ---
	Commits []entities.Commit
	LogErr  error
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (v *SpyVCSRepository) Clone(
	_ context.Context, repo entities.Repository, destDir string, _ entities.OperationOptions,
) entities.OperationOutcome {
	v.mu.Lock()
	v.ClonedRepos = append(v.ClonedRepos, repo)
	v.CloneDestDirs = append(v.CloneDestDirs, destDir)
	v.mu.Unlock()
	if outcome, ok := v.CloneOutcomes[repo.Name]; ok {
		return outcome
	}
	if v.DefaultClone != nil {
		return v.DefaultClone(repo)
	}
	return entities.SucceededOutcome(repo, "clone", "cloned", "")
}

func (v *SpyVCSRepository) Pull(
	_ context.Context, repo entities.Repository, _ entities.OperationOptions,
) entities.OperationOutcome {
	v.mu.Lock()
	v.PulledRepos = append(v.PulledRepos, repo)
	v.mu.Unlock()
	if outcome, ok := v.PullOutcomes[repo.Name]; ok {
		return outcome
	}
	if v.DefaultPull != nil {
		return v.DefaultPull(repo)
	}
	return entities.SucceededOutcome(repo, "pull", "pulled", "")
}

func (v *SpyVCSRepository) ListBranches(
	_ context.Context, _ entities.Repository,
) ([]string, error) {
	return v.Branches, v.ListBranchesErr
}

func (v *SpyVCSRepository) SwitchBranch(
	_ context.Context, _ entities.Repository, name string, _ entities.OperationOptions,
) entities.OperationOutcome {
	v.SwitchedTo = append(v.SwitchedTo, name)
	return v.SwitchOutcome
}

func (v *SpyVCSRepository) Log(
	_ context.Context, _ entities.Repository, _ int,
) ([]entities.Commit, error) {
	return v.Commits, v.LogErr
}
