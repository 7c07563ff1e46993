package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewSyncCommand); err != nil {
		return err
	}
	if err := container.Provide(NewCloneCommand); err != nil {
		return err
	}
	if err := container.Provide(NewPullCommand); err != nil {
		return err
	}
	if err := container.Provide(NewBranchCommand); err != nil {
		return err
	}
	if err := container.Provide(NewLogCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *SyncCommand) Sync {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *CloneCommand) Clone {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *PullCommand) Pull {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BranchCommand) Branch {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *LogCommand) Log {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
