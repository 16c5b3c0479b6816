package github

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dhodgson615/gitripper/internal/domain"
)

// RepoInfo contains parsed repository information
type RepoInfo struct {
	Owner string
	Repo  string
	URL   string // Original URL
}

// githubURLPattern is compiled at most once, on first use, and is safe for
// concurrent readers.
var githubURLPattern = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(
		`(?i)^(?:https?://github\.com/|git@github\.com:|ssh://git@github\.com/)([^/]+)/([^/]+?)(?:\.git)?(?:/|$)`)
})

// ParseURL extracts owner and repository name from a GitHub URL.
//
// Accepted forms:
//   - https://github.com/owner/repo
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - ssh://git@github.com/owner/repo.git
func ParseURL(rawURL string) (*RepoInfo, error) {
	trimmed := strings.TrimSpace(rawURL)
	trimmed = strings.TrimSuffix(trimmed, ".git")

	matches := githubURLPattern().FindStringSubmatch(trimmed)
	if len(matches) != 3 {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidURL, rawURL)
	}

	return &RepoInfo{
		Owner: matches[1],
		Repo:  matches[2],
		URL:   rawURL,
	}, nil
}
