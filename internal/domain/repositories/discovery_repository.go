package repositories

import (
	"github.com/rios0rios0/unigit/internal/domain/entities"
)

// DiscoveryRepository finds git repositories on the local filesystem.
type DiscoveryRepository interface {
	// FindRepositories returns one Repository per direct child of root
	// that is a git working tree, in directory listing order. An
	// unusable root surfaces as *entities.DiscoveryError; unreadable
	// children are skipped with a warning.
	FindRepositories(root string) ([]entities.Repository, error)
}
