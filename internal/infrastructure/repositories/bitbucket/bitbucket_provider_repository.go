package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const (
	providerName   = "bitbucket"
	defaultBaseURL = "https://api.bitbucket.org/2.0"
	pageLength     = 100

	// listingRetries is the number of additional attempts after the
	// first for transient (5xx/network) listing failures.
	listingRetries = 2
)

// BitbucketProviderRepository implements repositories.ProviderRepository
// for Bitbucket Cloud. Pagination is cursor-based: every page carries the
// absolute URL of the next one.
type BitbucketProviderRepository struct {
	token   string
	baseURL string
	client  *retryablehttp.Client
}

// NewBitbucketProviderRepository creates a new Bitbucket provider with the
// given token. An empty token lists public repositories only.
func NewBitbucketProviderRepository(token string) repositories.ProviderRepository {
	return newBitbucketProviderRepository(token, defaultBaseURL)
}

func newBitbucketProviderRepository(token, baseURL string) *BitbucketProviderRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = listingRetries
	client.Logger = nil

	return &BitbucketProviderRepository{
		token:   token,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *BitbucketProviderRepository) Name() string { return providerName }

func (p *BitbucketProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "bitbucket.org")
}

// repositoriesPage is one page of the Bitbucket repository listing.
type repositoriesPage struct {
	Values []struct {
		Slug       string `json:"slug"`
		Name       string `json:"name"`
		MainBranch struct {
			Name string `json:"name"`
		} `json:"mainbranch"`
		Links struct {
			Clone []struct {
				Name string `json:"name"`
				Href string `json:"href"`
			} `json:"clone"`
		} `json:"links"`
	} `json:"values"`
	Next string `json:"next"`
}

// DiscoverRepositories lists all repositories of a Bitbucket workspace,
// following the "next" cursor until the provider reports no more pages.
func (p *BitbucketProviderRepository) DiscoverRepositories(
	ctx context.Context,
	account string,
) ([]entities.Repository, error) {
	var allRepos []entities.Repository

	pageURL := fmt.Sprintf(
		"%s/repositories/%s?pagelen=%d", p.baseURL, account, pageLength,
	)

	for pageURL != "" {
		page, err := p.fetchPage(ctx, pageURL)
		if err != nil {
			return nil, &entities.ListingError{
				Provider: providerName,
				Account:  account,
				Err:      err,
			}
		}

		for _, value := range page.Values {
			name := value.Slug
			if name == "" {
				name = value.Name
			}

			cloneURL := ""
			for _, link := range value.Links.Clone {
				if link.Name == "https" {
					cloneURL = link.Href
					break
				}
			}
			if cloneURL == "" {
				continue
			}

			allRepos = append(allRepos, entities.Repository{
				Name:          name,
				RemoteURL:     cloneURL,
				DefaultBranch: value.MainBranch.Name,
				ProviderName:  providerName,
			})
		}

		pageURL = page.Next
	}

	return allRepos, nil
}

func (p *BitbucketProviderRepository) fetchPage(
	ctx context.Context,
	pageURL string,
) (*repositoriesPage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf(
			"unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)),
		)
	}

	var page repositoriesPage
	if decodeErr := json.NewDecoder(resp.Body).Decode(&page); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode page: %w", decodeErr)
	}

	return &page, nil
}
