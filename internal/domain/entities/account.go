package entities

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	ProviderGitHub    = "github"
	ProviderGitLab    = "gitlab"
	ProviderBitbucket = "bitbucket"
)

// Account names a hosting-provider account whose repositories can be
// listed in bulk. It is an input key only; nothing persists it.
type Account struct {
	Provider string // "github", "gitlab", "bitbucket"
	Name     string
}

// accountURLPatterns match provider user/organization URLs, i.e. URLs
// that name an account rather than a single repository.
var accountURLPatterns = map[string]*regexp.Regexp{
	ProviderGitHub:    regexp.MustCompile(`^https?://(www\.)?github\.com/([^/]+)/?$`),
	ProviderGitLab:    regexp.MustCompile(`^https?://(www\.)?gitlab\.com/([^/]+)/?$`),
	ProviderBitbucket: regexp.MustCompile(`^https?://(www\.)?bitbucket\.org/([^/]+)/?$`),
}

// ParseAccountURL recognizes a provider account URL such as
// https://github.com/someuser and returns the corresponding Account.
// URLs with further path segments (single repositories) do not match.
func ParseAccountURL(rawURL string) (Account, bool) {
	cleaned := strings.TrimRight(rawURL, "/")
	for provider, pattern := range accountURLPatterns {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			return Account{Provider: provider, Name: m[2]}, true
		}
	}
	return Account{}, false
}

func (a Account) String() string {
	return fmt.Sprintf("%s/%s", a.Provider, a.Name)
}
