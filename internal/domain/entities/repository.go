package entities

import (
	"strings"
)

// Repository identifies one git repository. At least one of Path and
// RemoteURL is always set: Path once the repository exists on disk,
// RemoteURL when it was sourced from a hosting-provider listing.
type Repository struct {
	Name          string
	Path          string
	RemoteURL     string
	DefaultBranch string
	ProviderName  string
}

// NewLocalRepository builds a Repository for an existing working tree.
func NewLocalRepository(path string) Repository {
	return Repository{
		Name: RepositoryNameFromURL(path),
		Path: path,
	}
}

// NewRemoteRepository builds a Repository known only by its clone URL.
func NewRemoteRepository(name, remoteURL string) Repository {
	if name == "" {
		name = RepositoryNameFromURL(remoteURL)
	}
	return Repository{
		Name:      name,
		RemoteURL: remoteURL,
	}
}

// Target returns the most specific identifier available for display:
// the local path once the repository is on disk, the clone URL otherwise.
func (r Repository) Target() string {
	if r.Path != "" {
		return r.Path
	}
	return r.RemoteURL
}

// IsLocal reports whether the repository exists on disk.
func (r Repository) IsLocal() bool {
	return r.Path != ""
}

// RepositoryNameFromURL extracts the repository name from a clone URL or
// path, dropping a trailing slash and the ".git" suffix.
func RepositoryNameFromURL(rawURL string) string {
	trimmed := strings.TrimRight(rawURL, "/")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	if idx := strings.LastIndexAny(trimmed, "/:"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
