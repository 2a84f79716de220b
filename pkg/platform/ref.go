package platform

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Full PR URL: https://github.com/<owner>/<repo>/pull/<n>
	pullURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/(\d+)$`)
	// Short form: <owner>/<repo>#<n>
	shortRefPattern = regexp.MustCompile(`^([^/#]+)/([^/#]+)#(\d+)$`)

	numberPattern = regexp.MustCompile(`^\d+$`)
	repoPattern   = regexp.MustCompile(`^[^/\s]+/[^/\s]+$`)
)

// ValidNumber reports whether s is a bare non-negative integer literal,
// the only accepted pull request number format.
func ValidNumber(s string) bool {
	return numberPattern.MatchString(s)
}

// ValidRepo reports whether s is in owner/name form.
func ValidRepo(s string) bool {
	return repoPattern.MatchString(s)
}

// Target is a parsed pull request argument. Repo is empty for bare numbers.
type Target struct {
	Number string
	Repo   string
}

// ParseTarget parses the positional pull request argument. Supported forms:
//   - <n> (bare number; repository resolved separately)
//   - https://github.com/<owner>/<repo>/pull/<n>
//   - <owner>/<repo>#<n>
//
// A bare number is returned verbatim, valid or not: the strict format check
// runs after resolution so explicit and auto-detected numbers fail the
// same way.
func ParseTarget(arg string) Target {
	arg = strings.TrimSpace(arg)

	if matches := pullURLPattern.FindStringSubmatch(arg); matches != nil {
		return Target{Number: matches[3], Repo: matches[1] + "/" + matches[2]}
	}

	if matches := shortRefPattern.FindStringSubmatch(arg); matches != nil {
		return Target{Number: matches[3], Repo: matches[1] + "/" + matches[2]}
	}

	return Target{Number: strings.TrimPrefix(arg, "#")}
}

// NewRef builds a Ref from a resolved number and repository, enforcing the
// format invariants on both.
func NewRef(number, repo string) (Ref, error) {
	if !ValidNumber(number) {
		return Ref{}, fmt.Errorf("invalid pull request number %q: must be a bare integer", number)
	}
	if !ValidRepo(repo) {
		return Ref{}, fmt.Errorf("invalid repository %q: must be in owner/name form", repo)
	}
	return Ref{Number: number, Repo: repo}, nil
}
