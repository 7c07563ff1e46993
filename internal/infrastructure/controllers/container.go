package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewSyncController); err != nil {
		return err
	}
	if err := container.Provide(NewCloneController); err != nil {
		return err
	}
	if err := container.Provide(NewPullController); err != nil {
		return err
	}
	if err := container.Provide(NewBranchController); err != nil {
		return err
	}
	if err := container.Provide(NewLogController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	syncController *SyncController,
	cloneController *CloneController,
	pullController *PullController,
	branchController *BranchController,
	logController *LogController,
) *[]entities.Controller {
	return &[]entities.Controller{
		syncController,
		cloneController,
		pullController,
		branchController,
		logController,
	}
}
