package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// Outcome is the decision of a single poll iteration. The driver owns
// sleeping and process exit; an iteration only reports what it decided.
type Outcome int

const (
	// OutcomeWait means checks are failed or still pending; poll again
	// after the interval.
	OutcomeWait Outcome = iota

	// OutcomeReady means every check passed and the pull request was
	// marked ready for review.
	OutcomeReady

	// OutcomeFailed means the iteration hit a fatal error (fetch or
	// mark-ready failure); the run terminates without retrying.
	OutcomeFailed
)

// Monitor polls a pull request's checks at a fixed interval.
type Monitor struct {
	client   platform.Client
	interval time.Duration
	out      io.Writer

	// sleep is the suspension seam, replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a monitor polling through client every interval, writing
// progress to out.
func New(client platform.Client, interval time.Duration, out io.Writer) *Monitor {
	return &Monitor{
		client:   client,
		interval: interval,
		out:      out,
		sleep:    sleepContext,
	}
}

// Run polls until every check passes and the pull request is marked
// ready (nil), or a fatal error occurs. There is no iteration limit and
// no overall timeout; cancellation comes from ctx.
func (m *Monitor) Run(ctx context.Context, ref platform.Ref) error {
	for {
		outcome, err := m.PollOnce(ctx, ref)
		switch outcome {
		case OutcomeReady:
			return nil
		case OutcomeFailed:
			return err
		}

		fmt.Fprintf(m.out, "waiting %s before the next poll\n", m.interval)
		if err := m.sleep(ctx, m.interval); err != nil {
			return err
		}
	}
}

// PollOnce performs one fetch/classify/decide iteration. Decision
// priority, first match wins: any failed check defers the run (failures
// are expected to be fixed and re-run, so the monitor keeps watching);
// then any pending check defers; otherwise — including the zero-checks
// case — the pull request is marked ready.
func (m *Monitor) PollOnce(ctx context.Context, ref platform.Ref) (Outcome, error) {
	checks, err := m.client.Checks(ctx, ref)
	if err != nil {
		return OutcomeFailed, fmt.Errorf("failed to fetch checks for %s: %w", ref, err)
	}

	buckets := Classify(checks)

	for _, check := range buckets.Unrecognized {
		fmt.Fprintf(m.out, "note: treating unrecognized state %s of check %q as passed\n", check.State, check.Name)
	}

	switch {
	case len(buckets.Failed) > 0:
		fmt.Fprintf(m.out, "%d of %d checks failed:\n", len(buckets.Failed), len(checks))
		for _, check := range buckets.Failed {
			fmt.Fprintf(m.out, "  - %s (%s)\n", check.Name, check.State)
		}
		if n := len(buckets.Pending); n > 0 {
			fmt.Fprintf(m.out, "%d checks still pending\n", n)
		}
		return OutcomeWait, nil

	case len(buckets.Pending) > 0:
		fmt.Fprintf(m.out, "waiting on %d of %d checks:\n", len(buckets.Pending), len(checks))
		for _, check := range buckets.Pending {
			fmt.Fprintf(m.out, "  - %s (%s)\n", check.Name, check.State)
		}
		return OutcomeWait, nil

	default:
		if len(checks) == 0 {
			fmt.Fprintf(m.out, "no checks reported; treating as passed\n")
		} else {
			fmt.Fprintf(m.out, "all %d checks passed\n", len(checks))
		}

		if err := m.client.MarkReady(ctx, ref); err != nil {
			return OutcomeFailed, fmt.Errorf("failed to mark %s ready for review: %w", ref, err)
		}

		fmt.Fprintf(m.out, "PR %s is ready for review\n", ref)
		return OutcomeReady, nil
	}
}

// sleepContext suspends for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
