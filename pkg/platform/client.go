package platform

import (
	"context"
	"errors"
)

// ErrNoCurrentPull is returned by CurrentPullNumber when the current branch
// has no associated pull request.
var ErrNoCurrentPull = errors.New("no pull request associated with the current branch")

// Client is the platform surface undraft needs. Every operation is a single
// blocking call; implementations do not retry.
type Client interface {
	// Name identifies the backend ("gh" or "api") for operator output.
	Name() string

	// CurrentRepo resolves the repository (owner/name) associated with the
	// current working directory.
	CurrentRepo(ctx context.Context) (string, error)

	// CurrentPullNumber resolves the pull request number associated with the
	// current branch. Returns ErrNoCurrentPull when there is none.
	CurrentPullNumber(ctx context.Context) (string, error)

	// PullRequest fetches the metadata snapshot for a pull request.
	PullRequest(ctx context.Context, ref Ref) (*PullRequest, error)

	// Checks fetches the current ordered sequence of verification checks.
	Checks(ctx context.Context, ref Ref) ([]Check, error)

	// MarkReady transitions the pull request out of draft state. Repeating
	// the call on an already-ready pull request is the platform's concern.
	MarkReady(ctx context.Context, ref Ref) error
}
