//go:build unit

package github //nolint:testpackage // White-box access to the client wiring

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	gh "github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

func newTestProvider(t *testing.T, handler http.Handler) *GitHubProviderRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := gh.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	return newGitHubProviderRepository(client)
}

func TestGitHubProviderRepository_DiscoverRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should paginate an organization listing in order", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/orgs/acme/repos", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				if r.URL.Query().Get("page") == "2" {
					_, _ = fmt.Fprint(w, `[
						{"name": "gamma", "clone_url": "https://github.com/acme/gamma.git", "default_branch": "develop"}
					]`)
					return
				}
				w.Header().Set(
					"Link", fmt.Sprintf(`<%s?page=2>; rel="next"`, "https://example.test/orgs/acme/repos"),
				)
				_, _ = fmt.Fprint(w, `[
					{"name": "alpha", "clone_url": "https://github.com/acme/alpha.git", "default_branch": "main"},
					{"name": "beta", "clone_url": "https://github.com/acme/beta.git"}
				]`)
			},
		))

		// when
		repos, err := provider.DiscoverRepositories(context.Background(), "acme")

		// then
		require.NoError(t, err)
		require.Len(t, repos, 3)
		assert.Equal(t, "alpha", repos[0].Name)
		assert.Equal(t, "beta", repos[1].Name)
		assert.Equal(t, "gamma", repos[2].Name)
		assert.Equal(t, "https://github.com/acme/alpha.git", repos[0].RemoteURL)
		assert.Equal(t, "main", repos[0].DefaultBranch)
		assert.Equal(t, "main", repos[1].DefaultBranch) // provider default
		assert.Equal(t, "develop", repos[2].DefaultBranch)
	})

	t.Run("should fall back to the user listing when the org is unknown", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/orgs/someone/repos":
					http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
				case "/users/someone/repos":
					w.Header().Set("Content-Type", "application/json")
					_, _ = fmt.Fprint(w, `[
						{"name": "dotfiles", "clone_url": "https://github.com/someone/dotfiles.git"}
					]`)
				default:
					http.NotFound(w, r)
				}
			},
		))

		// when
		repos, err := provider.DiscoverRepositories(context.Background(), "someone")

		// then
		require.NoError(t, err)
		require.Len(t, repos, 1)
		assert.Equal(t, "dotfiles", repos[0].Name)
	})

	t.Run("should wrap a failed fallback in a listing error", func(t *testing.T) {
		t.Parallel()

		// given
		provider := newTestProvider(t, http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
			},
		))

		// when
		_, err := provider.DiscoverRepositories(context.Background(), "ghost")

		// then
		require.Error(t, err)
		var listingErr *entities.ListingError
		require.ErrorAs(t, err, &listingErr)
		assert.Equal(t, "github", listingErr.Provider)
		assert.Equal(t, "ghost", listingErr.Account)
	})
}

func TestGitHubProviderRepository_MatchesURL(t *testing.T) {
	t.Parallel()

	t.Run("should match github URLs only", func(t *testing.T) {
		t.Parallel()

		// given
		provider := NewGitHubProviderRepository("")

		// when / then
		assert.True(t, provider.MatchesURL("https://github.com/acme/widget.git"))
		assert.False(t, provider.MatchesURL("https://gitlab.com/acme/widget.git"))
	})
}
