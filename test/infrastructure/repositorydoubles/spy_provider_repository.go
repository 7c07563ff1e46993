//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string
	URLMatches   bool

	// --- DiscoverRepositories ---
	Repositories []entities.Repository
	DiscoverErr  error
	// spy: accounts that were requested
	DiscoveredAccounts []string
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) MatchesURL(_ string) bool { return p.URLMatches }

func (p *SpyProviderRepository) DiscoverRepositories(
	_ context.Context, account string,
) ([]entities.Repository, error) {
	p.DiscoveredAccounts = append(p.DiscoveredAccounts, account)
	return p.Repositories, p.DiscoverErr
}
