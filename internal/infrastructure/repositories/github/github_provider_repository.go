package github

import (
	"context"
	"strings"

	gh "github.com/google/go-github/v66/github"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100

	// listingRetries is the number of additional attempts after the
	// first for transient (5xx/network) listing failures.
	listingRetries = 2
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewGitHubProviderRepository creates a new GitHub provider with the given
// token. An empty token lists public repositories only.
func NewGitHubProviderRepository(token string) repositories.ProviderRepository {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = listingRetries
	retryClient.Logger = nil

	client := gh.NewClient(retryClient.StandardClient())
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return newGitHubProviderRepository(client)
}

func newGitHubProviderRepository(client *gh.Client) *GitHubProviderRepository {
	return &GitHubProviderRepository{client: client}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

func (p *GitHubProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "github.com")
}

// DiscoverRepositories lists all repositories of a GitHub organization or
// user account, paginating until exhausted.
func (p *GitHubProviderRepository) DiscoverRepositories(
	ctx context.Context,
	account string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByOrgOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		repos, resp, err := p.client.Repositories.ListByOrg(ctx, account, opts)
		if err != nil {
			// Fall back to listing user repos if org listing fails
			return p.discoverUserRepos(ctx, account)
		}

		for _, r := range repos {
			allRepos = append(allRepos, toRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitHubProviderRepository) discoverUserRepos(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gh.RepositoryListByUserOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
		Type:        "owner",
	}

	for {
		repos, resp, err := p.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, &entities.ListingError{
				Provider: providerName,
				Account:  user,
				Err:      err,
			}
		}

		for _, r := range repos {
			allRepos = append(allRepos, toRepository(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func toRepository(r *gh.Repository) entities.Repository {
	defaultBranch := "main"
	if r.DefaultBranch != nil {
		defaultBranch = *r.DefaultBranch
	}
	return entities.Repository{
		Name:          r.GetName(),
		RemoteURL:     r.GetCloneURL(),
		DefaultBranch: defaultBranch,
		ProviderName:  providerName,
	}
}
