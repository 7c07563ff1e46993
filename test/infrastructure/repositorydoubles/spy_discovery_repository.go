//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

// SpyDiscoveryRepository implements repositories.DiscoveryRepository as a
// configurable spy.
type SpyDiscoveryRepository struct {
	// --- FindRepositories ---
	Repositories []entities.Repository
	FindErr      error
	// spy: roots that were scanned
	ScannedRoots []string
}

var _ repositories.DiscoveryRepository = (*SpyDiscoveryRepository)(nil)

func (d *SpyDiscoveryRepository) FindRepositories(root string) ([]entities.Repository, error) {
	d.ScannedRoots = append(d.ScannedRoots, root)
	if d.FindErr != nil {
		return nil, d.FindErr
	}
	return d.Repositories, nil
}
