package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// Resolve produces the immutable pull request reference for the run.
// The number is settled first (explicit argument, else the current
// branch's pull request), then the repository, so repository errors can
// name the pull request. Repository precedence: explicit argument, then
// the repository bound by a URL or owner/repo#n target, then the project
// config default, then the working directory's repository. The strict
// number format check applies to whichever number is in hand, explicit
// or auto-detected.
func Resolve(ctx context.Context, client platform.Client, prArg, repoArg, configRepo string, out io.Writer) (platform.Ref, error) {
	var number string
	repo := repoArg

	if prArg != "" {
		target := platform.ParseTarget(prArg)
		number = target.Number
		if repo == "" {
			repo = target.Repo
		}
	} else {
		detected, err := client.CurrentPullNumber(ctx)
		if err != nil {
			if errors.Is(err, platform.ErrNoCurrentPull) {
				return platform.Ref{}, err
			}
			return platform.Ref{}, fmt.Errorf("could not auto-detect pull request: %w", err)
		}
		number = detected
		fmt.Fprintf(out, "Using PR #%s from the current branch\n", number)
	}

	if !platform.ValidNumber(number) {
		return platform.Ref{}, fmt.Errorf("invalid pull request number %q: must be a bare integer", number)
	}

	if repo == "" && configRepo != "" {
		repo = configRepo
		fmt.Fprintf(out, "Using repository %s from project config\n", repo)
	}

	if repo == "" {
		detected, err := client.CurrentRepo(ctx)
		if err != nil {
			return platform.Ref{}, fmt.Errorf("could not auto-detect repository for PR #%s: %w", number, err)
		}
		repo = detected
		fmt.Fprintf(out, "Using repository %s\n", repo)
	}

	return platform.NewRef(number, repo)
}
