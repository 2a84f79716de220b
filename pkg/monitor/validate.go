package monitor

import (
	"context"
	"fmt"
	"io"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// Validate confirms the pull request exists and is open before any
// polling starts, surfacing the title once as confirmation. A query
// failure and a non-open state are reported distinctly; both are fatal.
func Validate(ctx context.Context, client platform.Client, ref platform.Ref, out io.Writer) error {
	pr, err := client.PullRequest(ctx, ref)
	if err != nil {
		return fmt.Errorf("could not find PR #%s in repository %s: %w", ref.Number, ref.Repo, err)
	}

	if pr.State != platform.PullOpen {
		return fmt.Errorf("PR #%s is not open (current state: %s)", ref.Number, pr.State)
	}

	fmt.Fprintf(out, "PR #%s: %s\n", ref.Number, pr.Title)
	if !pr.IsDraft {
		// Already out of draft; still worth watching and confirming, the
		// ready call is idempotent on the platform side.
		fmt.Fprintf(out, "note: PR #%s is already marked ready for review\n", ref.Number)
	}

	return nil
}
