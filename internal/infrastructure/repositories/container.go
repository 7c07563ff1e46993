package repositories

import (
	"go.uber.org/dig"

	bbRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/bitbucket"
	discoveryRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/discovery"
	gitRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/gitlab"
	ollamaRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/ollama"
	reportRepo "github.com/rios0rios0/unigit/internal/infrastructure/repositories/report"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		reg.Register("gitlab", glRepo.NewGitLabProviderRepository)
		reg.Register("bitbucket", bbRepo.NewBitbucketProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	if err := container.Provide(gitRepo.NewGitVCSRepository); err != nil {
		return err
	}
	if err := container.Provide(discoveryRepo.NewFilesystemDiscoveryRepository); err != nil {
		return err
	}
	if err := container.Provide(ollamaRepo.NewOllamaSummarizerRepository); err != nil {
		return err
	}
	if err := container.Provide(reportRepo.NewSummaryWriter); err != nil {
		return err
	}

	return nil
}
