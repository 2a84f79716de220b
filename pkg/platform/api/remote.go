package api

import (
	"fmt"
	"regexp"
	"strings"
)

var remotePatterns = []*regexp.Regexp{
	// https://github.com/owner/name(.git)
	regexp.MustCompile(`^https?://[^/]+/([^/]+)/([^/]+?)(?:\.git)?/?$`),
	// git@github.com:owner/name(.git)
	regexp.MustCompile(`^[^@]+@[^:]+:([^/]+)/([^/]+?)(?:\.git)?$`),
	// ssh://git@github.com/owner/name(.git)
	regexp.MustCompile(`^ssh://[^/]+/([^/]+)/([^/]+?)(?:\.git)?$`),
}

// ParseOwnerRepo extracts owner/name from a git remote URL in https, scp
// or ssh form.
func ParseOwnerRepo(remoteURL string) (string, error) {
	remoteURL = strings.TrimSpace(remoteURL)

	for _, pattern := range remotePatterns {
		if matches := pattern.FindStringSubmatch(remoteURL); matches != nil {
			return matches[1] + "/" + matches[2], nil
		}
	}

	return "", fmt.Errorf("could not determine owner/name from remote URL %q", remoteURL)
}
