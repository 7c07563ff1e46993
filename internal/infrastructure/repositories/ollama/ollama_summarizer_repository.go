package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const (
	generatePath = "/api/generate"

	// minSummaryLength guards against the model answering with a
	// useless fragment; such replies count as a failed attempt.
	minSummaryLength = 10

	// maxSummaryLength truncates runaway replies.
	maxSummaryLength = 1000
)

// OllamaSummarizerRepository implements repositories.SummarizerRepository
// against a local Ollama HTTP endpoint. The service is local, so failed
// attempts are retried without backoff.
type OllamaSummarizerRepository struct {
	client *http.Client
}

// NewOllamaSummarizerRepository creates the Ollama-backed summarizer
// gateway. Per-attempt deadlines come from the call options, not the
// client.
func NewOllamaSummarizerRepository() repositories.SummarizerRepository {
	return &OllamaSummarizerRepository{client: &http.Client{}}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Summarize sends the commit-log excerpt to the text-generation service.
// Each attempt is bounded by opts.Timeout; after opts.MaxRetries
// additional failed attempts the result is marked unavailable. It never
// returns an error to the caller.
func (it *OllamaSummarizerRepository) Summarize(
	ctx context.Context,
	logExcerpt string,
	opts entities.SummaryOptions,
) entities.SummaryResult {
	if strings.TrimSpace(logExcerpt) == "" {
		return entities.UnavailableSummary(0)
	}

	prompt := fmt.Sprintf(
		"Summarize these git commits:\n%s\nProvide a concise summary of the changes.",
		logExcerpt,
	)

	attempts := opts.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return entities.UnavailableSummary(attempt - 1)
		}

		summary, err := it.generate(ctx, prompt, opts)
		if err != nil {
			logger.Warnf(
				"Summary attempt %d/%d failed: %v", attempt, attempts, err,
			)
			continue
		}

		if len(summary) > maxSummaryLength {
			logger.Warnf("Truncating long summary (length: %d)", len(summary))
			// The byte cut may land inside a multi-byte rune.
			summary = strings.ToValidUTF8(summary[:maxSummaryLength-3], "") + "..."
		}

		return entities.SummaryResult{
			Text:      summary,
			Available: true,
			Attempts:  attempt,
		}
	}

	return entities.UnavailableSummary(attempts)
}

func (it *OllamaSummarizerRepository) generate(
	ctx context.Context,
	prompt string,
	opts entities.SummaryOptions,
) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	payload, err := json.Marshal(generateRequest{
		Model:  opts.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimRight(opts.BaseURL, "/") + generatePath
	req, err := http.NewRequestWithContext(
		attemptCtx, http.MethodPost, url, bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := it.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&decoded); decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	summary := strings.TrimSpace(decoded.Response)
	if len(summary) < minSummaryLength {
		return "", fmt.Errorf("reply too short (%d chars)", len(summary))
	}

	return summary, nil
}
