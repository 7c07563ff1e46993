//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
	domainRepos "github.com/rios0rios0/unigit/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/unigit/internal/infrastructure/repositories"
	"github.com/rios0rios0/unigit/test/domain/entitybuilders"
	"github.com/rios0rios0/unigit/test/infrastructure/repositorydoubles"
)

func localRepos(names ...string) []entities.Repository {
	repos := make([]entities.Repository, 0, len(names))
	for _, name := range names {
		repos = append(repos, entitybuilders.NewRepositoryBuilder().
			WithName(name).
			WithPath("/tmp/"+name).
			BuildRepository())
	}
	return repos
}

func TestSyncCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should report one outcome per repository in input order", func(t *testing.T) {
		t.Parallel()

		// given
		discovery := &repositorydoubles.SpyDiscoveryRepository{
			Repositories: localRepos("alpha", "beta", "gamma"),
		}
		vcs := &repositorydoubles.SpyVCSRepository{}
		command := commands.NewSyncCommand(
			discovery, vcs, &repositorydoubles.SpySummarizerRepository{}, infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(
			context.Background(), entities.DefaultSettings(), commands.SyncScope{Directory: "projects"},
		)

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 3)
		assert.Equal(t, "alpha", report.Outcomes[0].Repository.Name)
		assert.Equal(t, "beta", report.Outcomes[1].Repository.Name)
		assert.Equal(t, "gamma", report.Outcomes[2].Repository.Name)
		assert.Equal(t, []string{"projects"}, discovery.ScannedRoots)
	})

	t.Run("should keep processing after one repository fails", func(t *testing.T) {
		t.Parallel()

		// given
		repos := localRepos("alpha", "broken", "gamma")
		vcs := &repositorydoubles.SpyVCSRepository{
			PullOutcomes: map[string]entities.OperationOutcome{
				"broken": entities.FailedOutcome(repos[1], "pull", "conflict"),
			},
		}
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: repos},
			vcs,
			&repositorydoubles.SpySummarizerRepository{},
			infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(
			context.Background(), entities.DefaultSettings(), commands.SyncScope{Directory: "."},
		)

		// then
		require.NoError(t, err)
		assert.Len(t, vcs.PulledRepos, 3)
		succeeded, _, failed := report.Counts()
		assert.Equal(t, 2, succeeded)
		assert.Equal(t, 1, failed)
		assert.Equal(t, entities.StatusFailed, report.Outcomes[1].Status)
	})

	t.Run("should surface a discovery failure as fatal", func(t *testing.T) {
		t.Parallel()

		// given
		discoveryErr := &entities.DiscoveryError{Root: "nowhere", Err: errors.New("permission denied")}
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{FindErr: discoveryErr},
			&repositorydoubles.SpyVCSRepository{},
			&repositorydoubles.SpySummarizerRepository{},
			infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(
			context.Background(), entities.DefaultSettings(), commands.SyncScope{Directory: "nowhere"},
		)

		// then
		require.Error(t, err)
		assert.Nil(t, report)
		var asDiscovery *entities.DiscoveryError
		assert.ErrorAs(t, err, &asDiscovery)
	})

	t.Run("should clone listed repositories for an account scope", func(t *testing.T) {
		t.Parallel()

		// given
		provider := &repositorydoubles.SpyProviderRepository{
			ProviderName: "github",
			Repositories: []entities.Repository{
				entities.NewRemoteRepository("widget", "https://github.com/acme/widget.git"),
				entities.NewRemoteRepository("gadget", "https://github.com/acme/gadget.git"),
			},
		}
		registry := infraRepos.NewProviderRegistry()
		registry.Register("github", func(_ string) domainRepos.ProviderRepository { return provider })

		vcs := &repositorydoubles.SpyVCSRepository{}
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{}, vcs,
			&repositorydoubles.SpySummarizerRepository{}, registry,
		)

		// when
		report, err := command.Execute(
			context.Background(), entities.DefaultSettings(),
			commands.SyncScope{Account: &entities.Account{Provider: "github", Name: "acme"}},
		)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"acme"}, provider.DiscoveredAccounts)
		require.Len(t, report.Outcomes, 2)
		assert.Equal(t, []string{"acme/widget", "acme/gadget"}, vcs.CloneDestDirs)
	})

	t.Run("should attach summaries to succeeded pulls with new commits", func(t *testing.T) {
		t.Parallel()

		// given
		repos := localRepos("alpha")
		vcs := &repositorydoubles.SpyVCSRepository{
			PullOutcomes: map[string]entities.OperationOutcome{
				"alpha": entities.SucceededOutcome(repos[0], "pull", "pulled", "abc1234 Fix widget"),
			},
		}
		summarizer := &repositorydoubles.SpySummarizerRepository{
			Result: entities.SummaryResult{Text: "widget was fixed", Available: true, Attempts: 1},
		}
		settings := entities.DefaultSettings()
		settings.EnableSummary = true
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: repos},
			vcs, summarizer, infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(context.Background(), settings, commands.SyncScope{Directory: "."})

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 1)
		require.NotNil(t, report.Outcomes[0].Summary)
		assert.Equal(t, "widget was fixed", report.Outcomes[0].Summary.Text)
		assert.Equal(t, []string{"abc1234 Fix widget"}, summarizer.Excerpts)
	})

	t.Run("should not summarize when there are no new commits", func(t *testing.T) {
		t.Parallel()

		// given
		repos := localRepos("alpha")
		vcs := &repositorydoubles.SpyVCSRepository{
			PullOutcomes: map[string]entities.OperationOutcome{
				"alpha": entities.SkippedOutcome(repos[0], "pull", "already up to date"),
			},
		}
		summarizer := &repositorydoubles.SpySummarizerRepository{}
		settings := entities.DefaultSettings()
		settings.EnableSummary = true
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: repos},
			vcs, summarizer, infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(context.Background(), settings, commands.SyncScope{Directory: "."})

		// then
		require.NoError(t, err)
		assert.Nil(t, report.Outcomes[0].Summary)
		assert.Equal(t, 0, summarizer.Calls())
	})

	t.Run("should disable summaries after repeated failures", func(t *testing.T) {
		t.Parallel()

		// given
		repos := localRepos("a", "b", "c", "d", "e")
		vcs := &repositorydoubles.SpyVCSRepository{
			DefaultPull: func(repo entities.Repository) entities.OperationOutcome {
				return entities.SucceededOutcome(repo, "pull", "pulled", "abc1234 Change")
			},
		}
		summarizer := &repositorydoubles.SpySummarizerRepository{FailFirst: 100}
		settings := entities.DefaultSettings()
		settings.EnableSummary = true
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: repos},
			vcs, summarizer, infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(context.Background(), settings, commands.SyncScope{Directory: "."})

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, summarizer.Calls())
		assert.Len(t, report.Outcomes, 5)
		// pulls themselves are unaffected by summary failures
		succeeded, _, failed := report.Counts()
		assert.Equal(t, 5, succeeded)
		assert.Equal(t, 0, failed)
	})

	t.Run("should return the partial report on cancellation", func(t *testing.T) {
		t.Parallel()

		// given
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: localRepos("alpha", "beta")},
			&repositorydoubles.SpyVCSRepository{},
			&repositorydoubles.SpySummarizerRepository{},
			infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(ctx, entities.DefaultSettings(), commands.SyncScope{Directory: "."})

		// then
		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, report)
		assert.Empty(t, report.Outcomes)
	})

	t.Run("should process in parallel and keep input order", func(t *testing.T) {
		t.Parallel()

		// given
		repos := localRepos("alpha", "beta", "gamma", "delta")
		settings := entities.DefaultSettings()
		settings.Workers = 4
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{Repositories: repos},
			&repositorydoubles.SpyVCSRepository{},
			&repositorydoubles.SpySummarizerRepository{},
			infraRepos.NewProviderRegistry(),
		)

		// when
		report, err := command.Execute(context.Background(), settings, commands.SyncScope{Directory: "."})

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 4)
		for i, name := range []string{"alpha", "beta", "gamma", "delta"} {
			assert.Equal(t, name, report.Outcomes[i].Repository.Name)
		}
	})

	t.Run("should reject an empty scope", func(t *testing.T) {
		t.Parallel()

		// given
		command := commands.NewSyncCommand(
			&repositorydoubles.SpyDiscoveryRepository{},
			&repositorydoubles.SpyVCSRepository{},
			&repositorydoubles.SpySummarizerRepository{},
			infraRepos.NewProviderRegistry(),
		)

		// when
		_, err := command.Execute(context.Background(), entities.DefaultSettings(), commands.SyncScope{})

		// then
		require.Error(t, err)
	})
}
