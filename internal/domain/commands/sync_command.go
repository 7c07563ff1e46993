package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/unigit/internal/infrastructure/repositories"
)

// maxSummaryFailures disables summarization for the rest of a run after
// this many gateway failures.
const maxSummaryFailures = 3

var errEmptyScope = errors.New("sync scope selects nothing: set a repository, directory, or account")

// Sync is the interface for the synchronization orchestrator.
type Sync interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		scope SyncScope,
	) (*entities.SyncReport, error)
}

// SyncScope selects what one run operates on. Exactly one of Repository,
// Directory, and Account is set.
type SyncScope struct {
	Repository *entities.Repository
	Directory  string
	Account    *entities.Account
	DestDir    string // clone destination for account scope
}

// SyncCommand sequences discovery or listing, dispatches one VCS
// operation per repository with failure isolation, optionally summarizes
// new commits, and assembles the report in input order.
type SyncCommand struct {
	discovery        repositories.DiscoveryRepository
	vcs              repositories.VCSRepository
	summarizer       repositories.SummarizerRepository
	providerRegistry *infraRepos.ProviderRegistry
}

// NewSyncCommand creates a new SyncCommand with the given collaborators.
func NewSyncCommand(
	discovery repositories.DiscoveryRepository,
	vcs repositories.VCSRepository,
	summarizer repositories.SummarizerRepository,
	providerRegistry *infraRepos.ProviderRegistry,
) *SyncCommand {
	return &SyncCommand{
		discovery:        discovery,
		vcs:              vcs,
		summarizer:       summarizer,
		providerRegistry: providerRegistry,
	}
}

// Execute runs one synchronization pass. Scope-resolution failures
// (discovery or listing) are fatal; per-repository failures are recorded
// in the report and never stop the run. On cancellation the partial
// report is returned together with the context error.
func (it *SyncCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	scope SyncScope,
) (*entities.SyncReport, error) {
	repos, destDir, err := it.resolveScope(ctx, settings, scope)
	if err != nil {
		return nil, err
	}

	logger.Infof("Processing %d repositories", len(repos))

	var summaryFailures atomic.Int32
	process := func(repo entities.Repository) entities.OperationOutcome {
		outcome := it.processRepository(ctx, settings, repo, destDir)

		if outcome.Status == entities.StatusFailed {
			logger.Errorf("[%s] %s", repo.Name, outcome.Message)
			return outcome
		}

		if !settings.EnableSummary || settings.DryRun ||
			outcome.Status != entities.StatusSucceeded || outcome.LogExcerpt == "" {
			return outcome
		}
		if summaryFailures.Load() >= maxSummaryFailures {
			return outcome
		}

		result := it.summarizer.Summarize(ctx, outcome.LogExcerpt, settings.Summary())
		if !result.Available {
			if summaryFailures.Add(1) == maxSummaryFailures {
				logger.Warn("Multiple summary failures detected. Disabling summaries for this run.")
			}
		}
		return outcome.WithSummary(result)
	}

	// Parallel execution, ordered reassembly: outcomes land in a
	// pre-sized slice indexed by input position.
	outcomes := make([]entities.OperationOutcome, len(repos))
	launched := 0

	if settings.Workers <= 1 {
		for i, repo := range repos {
			if ctx.Err() != nil {
				break
			}
			outcomes[i] = process(repo)
			launched++
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(settings.Workers)
		for i, repo := range repos {
			if groupCtx.Err() != nil {
				break
			}
			group.Go(func() error {
				outcomes[i] = process(repo)
				return nil
			})
			launched++
		}
		_ = group.Wait()
	}

	syncReport := &entities.SyncReport{}
	for _, outcome := range outcomes[:launched] {
		syncReport.Append(outcome)
	}

	succeeded, skipped, failed := syncReport.Counts()
	logger.Infof(
		"Run complete: %d succeeded, %d skipped, %d failed", succeeded, skipped, failed,
	)

	if ctx.Err() != nil {
		return syncReport, ctx.Err()
	}
	return syncReport, nil
}

// resolveScope turns the scope into the ordered repository sequence and
// the clone destination directory for account scope.
func (it *SyncCommand) resolveScope(
	ctx context.Context,
	settings *entities.Settings,
	scope SyncScope,
) ([]entities.Repository, string, error) {
	switch {
	case scope.Repository != nil:
		return []entities.Repository{*scope.Repository}, "", nil

	case scope.Directory != "":
		repos, err := it.discovery.FindRepositories(scope.Directory)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("Found %d repositories under %q", len(repos), scope.Directory)
		return repos, "", nil

	case scope.Account != nil:
		account := *scope.Account
		provider, err := it.providerRegistry.Get(
			account.Provider, settings.TokenFor(account.Provider),
		)
		if err != nil {
			return nil, "", err
		}

		logger.Infof("Discovering repositories for %s...", account)
		repos, discoverErr := provider.DiscoverRepositories(ctx, account.Name)
		if discoverErr != nil {
			return nil, "", discoverErr
		}
		logger.Infof("Found %d repositories for %s", len(repos), account)

		destDir := scope.DestDir
		if destDir == "" {
			destDir = account.Name
		}
		return repos, destDir, nil

	default:
		return nil, "", errEmptyScope
	}
}

// processRepository runs the per-repository operation: pull for local
// repositories, clone into destDir for listed remote ones.
func (it *SyncCommand) processRepository(
	ctx context.Context,
	settings *entities.Settings,
	repo entities.Repository,
	destDir string,
) entities.OperationOutcome {
	if repo.IsLocal() {
		logger.Debugf("Pulling %s...", repo.Path)
		return it.vcs.Pull(ctx, repo, settings.Operation())
	}

	target := filepath.Join(destDir, repo.Name)
	if _, statErr := os.Stat(target); statErr == nil {
		return entities.SkippedOutcome(repo, "clone", "already exists at "+target)
	}

	logger.Debugf("Cloning %s...", repo.RemoteURL)
	return it.vcs.Clone(ctx, repo, target, settings.Operation())
}
