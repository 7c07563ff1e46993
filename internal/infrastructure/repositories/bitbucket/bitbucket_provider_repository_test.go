//go:build unit

package bitbucket //nolint:testpackage // White-box access to the page-following internals

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

func repositoryPageBody(serverURL string, page, totalPages int) string {
	next := ""
	if page < totalPages {
		next = fmt.Sprintf(`"next": "%s/repositories/acme?page=%d",`, serverURL, page+1)
	}
	return fmt.Sprintf(`{
		%s
		"values": [
			{
				"slug": "repo-%d-a",
				"mainbranch": {"name": "main"},
				"links": {"clone": [
					{"name": "ssh", "href": "git@bitbucket.org:acme/repo-%d-a.git"},
					{"name": "https", "href": "https://bitbucket.org/acme/repo-%d-a.git"}
				]}
			},
			{
				"slug": "repo-%d-b",
				"mainbranch": {"name": "main"},
				"links": {"clone": [
					{"name": "https", "href": "https://bitbucket.org/acme/repo-%d-b.git"}
				]}
			}
		]
	}`, next, page, page, page, page, page)
}

func newTestProvider(baseURL string) *BitbucketProviderRepository {
	provider := newBitbucketProviderRepository("test-token", baseURL)
	provider.client.RetryWaitMin = time.Millisecond
	provider.client.RetryWaitMax = 5 * time.Millisecond
	return provider
}

func TestBitbucketProviderRepository_DiscoverRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should follow the next cursor across all pages in order", func(t *testing.T) {
		t.Parallel()

		// given
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				page := 1
				if p := r.URL.Query().Get("page"); p != "" {
					_, _ = fmt.Sscanf(p, "%d", &page)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = fmt.Fprint(w, repositoryPageBody(server.URL, page, 3))
			},
		))
		defer server.Close()
		provider := newTestProvider(server.URL)

		// when
		repos, err := provider.DiscoverRepositories(context.Background(), "acme")

		// then
		require.NoError(t, err)
		require.Len(t, repos, 6)
		names := make([]string, 0, len(repos))
		for _, repo := range repos {
			names = append(names, repo.Name)
		}
		assert.Equal(t, []string{
			"repo-1-a", "repo-1-b", "repo-2-a", "repo-2-b", "repo-3-a", "repo-3-b",
		}, names)
		assert.Equal(t, "https://bitbucket.org/acme/repo-1-a.git", repos[0].RemoteURL)
		assert.Equal(t, "main", repos[0].DefaultBranch)
	})

	t.Run("should send the bearer token", func(t *testing.T) {
		t.Parallel()

		// given
		var authHeader string
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				authHeader = r.Header.Get("Authorization")
				_, _ = fmt.Fprint(w, `{"values": []}`)
			},
		))
		defer server.Close()
		provider := newTestProvider(server.URL)

		// when
		_, err := provider.DiscoverRepositories(context.Background(), "acme")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Bearer test-token", authHeader)
	})

	t.Run("should retry transient failures before succeeding", func(t *testing.T) {
		t.Parallel()

		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if calls.Add(1) <= 2 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				_, _ = fmt.Fprint(w, `{"values": [
					{"slug": "survivor", "links": {"clone": [
						{"name": "https", "href": "https://bitbucket.org/acme/survivor.git"}
					]}}
				]}`)
			},
		))
		defer server.Close()
		provider := newTestProvider(server.URL)

		// when
		repos, err := provider.DiscoverRepositories(context.Background(), "acme")

		// then
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
		require.Len(t, repos, 1)
		assert.Equal(t, "survivor", repos[0].Name)
	})

	t.Run("should wrap a definite failure in a listing error", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "no such workspace", http.StatusNotFound)
			},
		))
		defer server.Close()
		provider := newTestProvider(server.URL)

		// when
		_, err := provider.DiscoverRepositories(context.Background(), "ghost")

		// then
		require.Error(t, err)
		var listingErr *entities.ListingError
		require.ErrorAs(t, err, &listingErr)
		assert.Equal(t, "bitbucket", listingErr.Provider)
		assert.Equal(t, "ghost", listingErr.Account)
	})
}

func TestBitbucketProviderRepository_MatchesURL(t *testing.T) {
	t.Parallel()

	t.Run("should match bitbucket URLs only", func(t *testing.T) {
		t.Parallel()

		// given
		provider := NewBitbucketProviderRepository("")

		// when / then
		assert.True(t, provider.MatchesURL("https://bitbucket.org/acme/widget.git"))
		assert.False(t, provider.MatchesURL("https://github.com/acme/widget.git"))
	})
}
