//go:build unit

package ollama //nolint:testpackage // White-box access to the HTTP client wiring

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

func summaryOptions(baseURL string) entities.SummaryOptions {
	return entities.SummaryOptions{
		BaseURL:    baseURL,
		Model:      "llama3.2",
		Timeout:    2 * time.Second,
		MaxRetries: 2,
	}
}

func TestOllamaSummarizerRepository_Summarize(t *testing.T) {
	t.Parallel()

	t.Run("should return the generated summary on the first attempt", func(t *testing.T) {
		t.Parallel()

		// given
		var prompt string
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/api/generate", r.URL.Path)
				var req map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				prompt, _ = req["prompt"].(string)
				assert.Equal(t, "llama3.2", req["model"])
				assert.Equal(t, false, req["stream"])
				_, _ = fmt.Fprint(w, `{"response": "The widget rendering bug was fixed."}`)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget rendering", summaryOptions(server.URL),
		)

		// then
		assert.True(t, result.Available)
		assert.Equal(t, "The widget rendering bug was fixed.", result.Text)
		assert.Equal(t, 1, result.Attempts)
		assert.Contains(t, prompt, "abc1234 Fix widget rendering")
	})

	t.Run("should retry failed attempts until one succeeds", func(t *testing.T) {
		t.Parallel()

		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) <= 2 {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				_, _ = fmt.Fprint(w, `{"response": "Third attempt summarized the changes."}`)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget", summaryOptions(server.URL),
		)

		// then
		assert.True(t, result.Available)
		assert.Equal(t, 3, result.Attempts)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("should give up after exhausting the retry budget", func(t *testing.T) {
		t.Parallel()

		// given
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusInternalServerError)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget", summaryOptions(server.URL),
		)

		// then
		assert.False(t, result.Available)
		assert.Equal(t, 3, result.Attempts)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("should not call the service for an empty excerpt", func(t *testing.T) {
		t.Parallel()

		// given
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "   \n", summaryOptions("http://localhost:0"),
		)

		// then
		assert.False(t, result.Available)
		assert.Equal(t, 0, result.Attempts)
	})

	t.Run("should treat a uselessly short reply as a failed attempt", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprint(w, `{"response": "ok"}`)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget", summaryOptions(server.URL),
		)

		// then
		assert.False(t, result.Available)
		assert.Equal(t, 3, result.Attempts)
	})

	t.Run("should truncate a multi-byte reply on a rune boundary", func(t *testing.T) {
		t.Parallel()

		// given
		long := strings.Repeat("é", 800) // 1600 bytes; a byte cut would split a rune
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprintf(w, `{"response": %q}`, long)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget", summaryOptions(server.URL),
		)

		// then
		assert.True(t, result.Available)
		assert.True(t, utf8.ValidString(result.Text))
		assert.LessOrEqual(t, len(result.Text), 1000)
		assert.True(t, strings.HasSuffix(result.Text, "..."))
	})

	t.Run("should truncate a runaway reply", func(t *testing.T) {
		t.Parallel()

		// given
		long := strings.Repeat("a", 2000)
		server := httptest.NewServer(http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = fmt.Fprintf(w, `{"response": %q}`, long)
			},
		))
		defer server.Close()
		summarizer := NewOllamaSummarizerRepository()

		// when
		result := summarizer.Summarize(
			context.Background(), "abc1234 Fix widget", summaryOptions(server.URL),
		)

		// then
		assert.True(t, result.Available)
		assert.Len(t, result.Text, 1000)
		assert.True(t, strings.HasSuffix(result.Text, "..."))
	})
}
