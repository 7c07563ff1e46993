//go:build unit

package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/unigit/internal/domain/commands"
	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/test/domain/commanddoubles"
)

func TestPullCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should pass a directory scope when pulling all", func(t *testing.T) {
		t.Parallel()

		// given
		sync := &commanddoubles.StubSyncCommand{}
		command := commands.NewPullCommand(sync)

		// when
		_, err := command.Execute(
			context.Background(), entities.DefaultSettings(),
			commands.PullOptions{All: true, Dir: "projects"},
		)

		// then
		require.NoError(t, err)
		require.Len(t, sync.Scopes, 1)
		assert.Equal(t, "projects", sync.Scopes[0].Directory)
		assert.Nil(t, sync.Scopes[0].Repository)
	})

	t.Run("should resolve a repository name under the directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		repoPath := filepath.Join(dir, "widget")
		require.NoError(t, os.MkdirAll(filepath.Join(repoPath, ".git"), 0o750))

		sync := &commanddoubles.StubSyncCommand{}
		command := commands.NewPullCommand(sync)

		// when
		_, err := command.Execute(
			context.Background(), entities.DefaultSettings(),
			commands.PullOptions{Target: "widget", Dir: dir},
		)

		// then
		require.NoError(t, err)
		require.Len(t, sync.Scopes, 1)
		require.NotNil(t, sync.Scopes[0].Repository)
		assert.Equal(t, "widget", sync.Scopes[0].Repository.Name)
		assert.Equal(t, repoPath, sync.Scopes[0].Repository.Path)
	})

	t.Run("should fail for an unknown repository", func(t *testing.T) {
		t.Parallel()

		// given
		sync := &commanddoubles.StubSyncCommand{}
		command := commands.NewPullCommand(sync)

		// when
		_, err := command.Execute(
			context.Background(), entities.DefaultSettings(),
			commands.PullOptions{Target: "nope", Dir: t.TempDir()},
		)

		// then
		require.Error(t, err)
		assert.Empty(t, sync.Scopes)
	})
}
