// Package monitor implements the control loop: resolve the target pull
// request, validate it, poll its checks until everything passes, then
// mark it ready for review.
package monitor

import "github.com/undraft-sh/undraft/pkg/platform"

// Buckets is the per-iteration partition of a check sequence. The three
// buckets are disjoint; classification is stateless across iterations.
type Buckets struct {
	// Failed holds checks in a terminal non-success state.
	Failed []platform.Check

	// Pending holds checks still queued or running.
	Pending []platform.Check

	// Passed holds everything else, including the success state and any
	// state outside the known vocabulary.
	Passed []platform.Check

	// Unrecognized lists the subset of Passed whose state is not in the
	// known vocabulary. Counted as passed, but surfaced so a new platform
	// state cannot go unnoticed.
	Unrecognized []platform.Check
}

// Classify partitions checks by state.
func Classify(checks []platform.Check) Buckets {
	var b Buckets
	for _, check := range checks {
		switch {
		case isFailed(check.State):
			b.Failed = append(b.Failed, check)
		case isPending(check.State):
			b.Pending = append(b.Pending, check)
		default:
			b.Passed = append(b.Passed, check)
			if check.State != platform.StateSuccess {
				b.Unrecognized = append(b.Unrecognized, check)
			}
		}
	}
	return b
}

func isFailed(s platform.CheckState) bool {
	switch s {
	case platform.StateFailure, platform.StateCancelled, platform.StateTimedOut:
		return true
	}
	return false
}

func isPending(s platform.CheckState) bool {
	switch s {
	case platform.StateInProgress, platform.StateQueued, platform.StatePending:
		return true
	}
	return false
}
