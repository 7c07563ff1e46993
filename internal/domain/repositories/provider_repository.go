package repositories

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service (GitHub, GitLab,
// Bitbucket) offering a paginated repository listing for an account.
// Implementations paginate internally, consume pages strictly in order,
// and return repositories in provider response order.
type ProviderRepository interface {
	// Name returns the provider type name, e.g. "github".
	Name() string

	// MatchesURL reports whether the given URL belongs to this provider.
	MatchesURL(rawURL string) bool

	// DiscoverRepositories lists all repositories of an account or
	// organization. Auth/not-found failures and exhausted transient
	// retries surface as *entities.ListingError.
	DiscoverRepositories(ctx context.Context, account string) ([]entities.Repository, error)
}
