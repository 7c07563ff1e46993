//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

// SpySummarizerRepository implements repositories.SummarizerRepository as a
// configurable spy. It is safe for concurrent use so parallel runs can
// share one instance.
type SpySummarizerRepository struct {
	mu sync.Mutex

	// --- Summarize ---
	Result entities.SummaryResult
	// FailFirst makes the first N calls return an unavailable result.
	FailFirst int
	// spy: excerpts received
	Excerpts []string
}

var _ repositories.SummarizerRepository = (*SpySummarizerRepository)(nil)

func (s *SpySummarizerRepository) Summarize(
	_ context.Context, logExcerpt string, opts entities.SummaryOptions,
) entities.SummaryResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Excerpts = append(s.Excerpts, logExcerpt)
	if len(s.Excerpts) <= s.FailFirst {
		return entities.UnavailableSummary(opts.MaxRetries + 1)
	}
	return s.Result
}

// Calls returns how many times Summarize was invoked.
func (s *SpySummarizerRepository) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Excerpts)
}
