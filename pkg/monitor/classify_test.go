package monitor

import (
	"testing"

	"github.com/undraft-sh/undraft/pkg/platform"
)

func TestClassify(t *testing.T) {
	checks := []platform.Check{
		{Name: "build", State: platform.StateSuccess},
		{Name: "lint", State: platform.StateFailure},
		{Name: "test", State: platform.StateInProgress},
		{Name: "e2e", State: platform.StateTimedOut},
		{Name: "deploy-preview", State: platform.StateQueued},
		{Name: "license", State: platform.StatePending},
		{Name: "release", State: platform.StateCancelled},
		{Name: "optional", State: platform.CheckState("SKIPPED")},
	}

	b := Classify(checks)

	if got := names(b.Failed); !equal(got, []string{"lint", "e2e", "release"}) {
		t.Errorf("Failed = %v", got)
	}
	if got := names(b.Pending); !equal(got, []string{"test", "deploy-preview", "license"}) {
		t.Errorf("Pending = %v", got)
	}
	if got := names(b.Passed); !equal(got, []string{"build", "optional"}) {
		t.Errorf("Passed = %v", got)
	}
	if got := names(b.Unrecognized); !equal(got, []string{"optional"}) {
		t.Errorf("Unrecognized = %v", got)
	}
}

func TestClassifyEmpty(t *testing.T) {
	b := Classify(nil)
	if len(b.Failed) != 0 || len(b.Pending) != 0 || len(b.Passed) != 0 {
		t.Errorf("Classify(nil) = %+v, want all buckets empty", b)
	}
}

func TestClassifyBucketsAreDisjoint(t *testing.T) {
	checks := []platform.Check{
		{Name: "a", State: platform.StateFailure},
		{Name: "b", State: platform.StateQueued},
		{Name: "c", State: platform.StateSuccess},
	}
	b := Classify(checks)
	if total := len(b.Failed) + len(b.Pending) + len(b.Passed); total != len(checks) {
		t.Errorf("buckets cover %d checks, want %d", total, len(checks))
	}
}

func names(checks []platform.Check) []string {
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = c.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
