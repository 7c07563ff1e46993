package repositories

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// SummarizerRepository turns a commit-log excerpt into a short
// natural-language summary via an external text-generation service.
// It never returns an error: when every attempt fails the result is
// marked unavailable and the surrounding operation proceeds.
type SummarizerRepository interface {
	Summarize(
		ctx context.Context,
		logExcerpt string,
		opts entities.SummaryOptions,
	) entities.SummaryResult
}
