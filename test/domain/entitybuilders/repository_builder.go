//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/unigit/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RepositoryBuilder helps create test repositories with a fluent interface.
type RepositoryBuilder struct {
	*testkit.BaseBuilder
	name          string
	path          string
	remoteURL     string
	defaultBranch string
	providerName  string
}

// NewRepositoryBuilder creates a new repository builder with sensible defaults.
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		name:          "test-repo",
		path:          "",
		remoteURL:     "https://example.com/acme/test-repo.git",
		defaultBranch: "main",
		providerName:  "github",
	}
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithPath sets the local working tree path (making the repository local).
func (b *RepositoryBuilder) WithPath(path string) *RepositoryBuilder {
	b.path = path
	return b
}

// WithRemoteURL sets the clone URL.
func (b *RepositoryBuilder) WithRemoteURL(url string) *RepositoryBuilder {
	b.remoteURL = url
	return b
}

// WithDefaultBranch sets the default branch.
func (b *RepositoryBuilder) WithDefaultBranch(branch string) *RepositoryBuilder {
	b.defaultBranch = branch
	return b
}

// WithProviderName sets the hosting provider name.
func (b *RepositoryBuilder) WithProviderName(provider string) *RepositoryBuilder {
	b.providerName = provider
	return b
}

// Build creates the repository (satisfies testkit.Builder interface).
func (b *RepositoryBuilder) Build() interface{} {
	return b.BuildRepository()
}

// BuildRepository creates the repository with a concrete return type.
func (b *RepositoryBuilder) BuildRepository() entities.Repository {
	return entities.Repository{
		Name:          b.name,
		Path:          b.path,
		RemoteURL:     b.remoteURL,
		DefaultBranch: b.defaultBranch,
		ProviderName:  b.providerName,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RepositoryBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-repo"
	b.path = ""
	b.remoteURL = "https://example.com/acme/test-repo.git"
	b.defaultBranch = "main"
	b.providerName = "github"
	return b
}

// Clone creates a deep copy of the RepositoryBuilder.
func (b *RepositoryBuilder) Clone() testkit.Builder {
	return &RepositoryBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:          b.name,
		path:          b.path,
		remoteURL:     b.remoteURL,
		defaultBranch: b.defaultBranch,
		providerName:  b.providerName,
	}
}
