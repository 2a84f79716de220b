// Package platform defines the narrow slice of the code-review platform
// that undraft depends on: pull request metadata, check results, and the
// Client interface both backends (gh CLI and direct API) implement.
package platform

import "fmt"

// CheckState is the reported state of a single verification check.
// The set is open on the platform side; values outside the constants below
// are carried through verbatim and classified by the monitor.
type CheckState string

// CheckState values reported by the platform.
const (
	StatePending    CheckState = "PENDING"
	StateQueued     CheckState = "QUEUED"
	StateInProgress CheckState = "IN_PROGRESS"
	StateFailure    CheckState = "FAILURE"
	StateCancelled  CheckState = "CANCELLED"
	StateTimedOut   CheckState = "TIMED_OUT"
	StateSuccess    CheckState = "SUCCESS"
)

// Check is a single named verification task run against a pull request.
type Check struct {
	Name  string
	State CheckState
}

// PullState is the lifecycle state of a pull request.
type PullState string

// PullState values.
const (
	PullOpen   PullState = "OPEN"
	PullClosed PullState = "CLOSED"
	PullMerged PullState = "MERGED"
)

// PullRequest is the metadata snapshot fetched once for validation.
type PullRequest struct {
	Title   string
	State   PullState
	IsDraft bool
	URL     string
}

// Ref identifies a pull request within a repository. It is resolved once
// before the monitoring loop starts and is immutable for the run.
type Ref struct {
	// Number is the pull request number as a decimal string.
	Number string

	// Repo is the repository in owner/name form.
	Repo string
}

func (r Ref) String() string {
	return fmt.Sprintf("%s#%s", r.Repo, r.Number)
}
