//go:build integration || unit || test

// Package commanddoubles provides test doubles for command interfaces.
package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// StubSyncCommand implements commands.Sync with a canned report.
type StubSyncCommand struct {
	Report *entities.SyncReport
	Err    error
	// spy: scopes received
	Scopes []commands.SyncScope
}

var _ commands.Sync = (*StubSyncCommand)(nil)

func (s *StubSyncCommand) Execute(
	_ context.Context, _ *entities.Settings, scope commands.SyncScope,
) (*entities.SyncReport, error) {
	s.Scopes = append(s.Scopes, scope)
	if s.Report == nil && s.Err == nil {
		return &entities.SyncReport{}, nil
	}
	return s.Report, s.Err
}
