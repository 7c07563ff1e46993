package gitlab

import (
	"context"
	"errors"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
type GitLabProviderRepository struct {
	client *gl.Client
}

// NewGitLabProviderRepository creates a new GitLab provider with the given token.
func NewGitLabProviderRepository(token string) repositories.ProviderRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &GitLabProviderRepository{client: nil}
	}
	return &GitLabProviderRepository{client: client}
}

func (p *GitLabProviderRepository) Name() string { return providerName }

func (p *GitLabProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "gitlab.com")
}

// DiscoverRepositories lists all projects of a GitLab group, falling back
// to the projects of a user account with the same name.
func (p *GitLabProviderRepository) DiscoverRepositories(
	ctx context.Context,
	account string,
) ([]entities.Repository, error) {
	if p.client == nil {
		return nil, &entities.ListingError{
			Provider: providerName,
			Account:  account,
			Err:      errClientNotInitialized,
		}
	}

	var allRepos []entities.Repository
	opts := &gl.ListGroupProjectsOptions{
		ListOptions:      gl.ListOptions{PerPage: perPage},
		IncludeSubGroups: gl.Ptr(true),
	}

	for {
		projects, resp, err := p.client.Groups.ListGroupProjects(
			account, opts, gl.WithContext(ctx),
		)
		if err != nil {
			// Fall back to listing user projects
			return p.discoverUserProjects(ctx, account)
		}

		for _, proj := range projects {
			allRepos = append(allRepos, toRepository(proj))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func (p *GitLabProviderRepository) discoverUserProjects(
	ctx context.Context,
	user string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository
	opts := &gl.ListProjectsOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}

	for {
		projects, resp, err := p.client.Projects.ListUserProjects(
			user, opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, &entities.ListingError{
				Provider: providerName,
				Account:  user,
				Err:      err,
			}
		}

		for _, proj := range projects {
			allRepos = append(allRepos, toRepository(proj))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allRepos, nil
}

func toRepository(proj *gl.Project) entities.Repository {
	defaultBranch := "main"
	if proj.DefaultBranch != "" {
		defaultBranch = proj.DefaultBranch
	}
	return entities.Repository{
		Name:          proj.Path,
		RemoteURL:     proj.HTTPURLToRepo,
		DefaultBranch: defaultBranch,
		ProviderName:  providerName,
	}
}
