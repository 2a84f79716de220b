package monitor

import (
	"context"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// fakeClient implements platform.Client for tests, serving canned
// responses and recording the order of operations invoked.
type fakeClient struct {
	repo    string
	repoErr error

	number    string
	numberErr error

	pr    *platform.PullRequest
	prErr error

	// checkSeqs is consumed one sequence per Checks call; the last entry
	// repeats once exhausted.
	checkSeqs [][]platform.Check
	checksErr error

	markErr error

	ops         []string
	checksCalls int
	markCalls   int
}

func (f *fakeClient) Name() string { return "fake" }

func (f *fakeClient) CurrentRepo(ctx context.Context) (string, error) {
	f.ops = append(f.ops, "CurrentRepo")
	return f.repo, f.repoErr
}

func (f *fakeClient) CurrentPullNumber(ctx context.Context) (string, error) {
	f.ops = append(f.ops, "CurrentPullNumber")
	return f.number, f.numberErr
}

func (f *fakeClient) PullRequest(ctx context.Context, ref platform.Ref) (*platform.PullRequest, error) {
	f.ops = append(f.ops, "PullRequest")
	return f.pr, f.prErr
}

func (f *fakeClient) Checks(ctx context.Context, ref platform.Ref) ([]platform.Check, error) {
	f.ops = append(f.ops, "Checks")
	if f.checksErr != nil {
		return nil, f.checksErr
	}

	idx := f.checksCalls
	f.checksCalls++
	if idx >= len(f.checkSeqs) {
		idx = len(f.checkSeqs) - 1
	}
	if idx < 0 {
		return nil, nil
	}
	return f.checkSeqs[idx], nil
}

func (f *fakeClient) MarkReady(ctx context.Context, ref platform.Ref) error {
	f.ops = append(f.ops, "MarkReady")
	f.markCalls++
	return f.markErr
}
