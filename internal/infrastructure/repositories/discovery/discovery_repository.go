package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/unigit/internal/domain/entities"
	"github.com/rios0rios0/unigit/internal/domain/repositories"
)

const gitMetadataDir = ".git"

// FilesystemDiscoveryRepository finds git repositories among the direct
// children of a root directory.
type FilesystemDiscoveryRepository struct{}

// NewFilesystemDiscoveryRepository creates the filesystem-backed
// discovery adapter.
func NewFilesystemDiscoveryRepository() repositories.DiscoveryRepository {
	return &FilesystemDiscoveryRepository{}
}

// FindRepositories scans the direct children of root. Hidden directories
// and non-repository children are skipped silently; unreadable children
// are skipped with a warning. Only an unusable root is fatal.
func (it *FilesystemDiscoveryRepository) FindRepositories(
	root string,
) ([]entities.Repository, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &entities.DiscoveryError{Root: root, Err: err}
	}

	var repos []entities.Repository
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		childPath := filepath.Join(root, entry.Name())
		metadataPath := filepath.Join(childPath, gitMetadataDir)

		info, statErr := os.Stat(metadataPath)
		if statErr != nil {
			if !os.IsNotExist(statErr) {
				logger.Warnf("Skipping unreadable directory %q: %v", childPath, statErr)
			}
			continue
		}
		if !info.IsDir() {
			continue
		}

		logger.Debugf("Found git repository: %s", childPath)
		repos = append(repos, entities.Repository{
			Name: entry.Name(),
			Path: childPath,
		})
	}

	return repos, nil
}

// IsRepository reports whether path is a git working tree root.
func IsRepository(path string) bool {
	info, err := os.Stat(filepath.Join(path, gitMetadataDir))
	return err == nil && info.IsDir()
}

// ResolveRepository locates a repository by name or path: a direct path
// wins, then a repository with a matching name among the children of
// baseDir.
func ResolveRepository(baseDir, nameOrPath string) (entities.Repository, error) {
	name := entities.RepositoryNameFromURL(nameOrPath)

	if IsRepository(nameOrPath) {
		return entities.NewLocalRepository(nameOrPath), nil
	}

	candidate := filepath.Join(baseDir, name)
	if IsRepository(candidate) {
		return entities.Repository{Name: name, Path: candidate}, nil
	}

	return entities.Repository{}, fmt.Errorf(
		"repository %q not found under %q", name, baseDir,
	)
}
