package entities

import (
	"fmt"
	"strings"
	"time"
)

const shortHashLength = 7

// Commit is one record from a repository's history, most-recent first
// when returned in a slice.
type Commit struct {
	ID        string
	Author    string
	Timestamp time.Time
	Message   string
}

// ShortID returns the abbreviated commit hash.
func (c Commit) ShortID() string {
	if len(c.ID) <= shortHashLength {
		return c.ID
	}
	return c.ID[:shortHashLength]
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// OnelineLog renders commits in the "<short-hash> <subject>" form used as
// summarizer input and for dry-run previews.
func OnelineLog(commits []Commit) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("%s %s", c.ShortID(), c.Subject()))
	}
	return strings.Join(lines, "\n")
}
