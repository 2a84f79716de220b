package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// CurrentRepo implements platform.Client. The repository is read from the
// origin remote of the working directory.
func (c *Client) CurrentRepo(ctx context.Context) (string, error) {
	if !c.git.IsRepo(ctx) {
		return "", fmt.Errorf("%s is not a git repository", c.git.Dir)
	}

	remoteURL, err := c.git.RemoteURL(ctx, DefaultRemote)
	if err != nil {
		return "", err
	}

	repo, err := ParseOwnerRepo(remoteURL)
	if err != nil {
		return "", err
	}

	return repo, nil
}

// CurrentPullNumber implements platform.Client. It lists open pull
// requests whose head is the current branch.
func (c *Client) CurrentPullNumber(ctx context.Context) (string, error) {
	branch, err := c.git.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	repo, err := c.CurrentRepo(ctx)
	if err != nil {
		return "", err
	}
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}

	prs, _, err := c.github().PullRequests.List(ctx, owner, name, &gogithub.PullRequestListOptions{
		State: "open",
		Head:  owner + ":" + branch,
		ListOptions: gogithub.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to list pull requests for branch %s: %w", branch, err)
	}

	if len(prs) == 0 {
		return "", platform.ErrNoCurrentPull
	}

	return strconv.Itoa(prs[0].GetNumber()), nil
}

// PullRequest implements platform.Client.
func (c *Client) PullRequest(ctx context.Context, ref platform.Ref) (*platform.PullRequest, error) {
	pr, err := c.fetchPull(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &platform.PullRequest{
		Title:   pr.GetTitle(),
		State:   convertPullState(pr),
		IsDraft: pr.GetDraft(),
		URL:     pr.GetHTMLURL(),
	}, nil
}

// Checks implements platform.Client. Check runs and legacy commit statuses
// for the head commit are flattened into one ordered sequence.
func (c *Client) Checks(ctx context.Context, ref platform.Ref) ([]platform.Check, error) {
	pr, err := c.fetchPull(ctx, ref)
	if err != nil {
		return nil, err
	}

	headSHA := pr.GetHead().GetSHA()
	if headSHA == "" {
		return nil, fmt.Errorf("pull request %s has no head commit", ref)
	}

	owner, name, err := splitRepo(ref.Repo)
	if err != nil {
		return nil, err
	}

	var checks []platform.Check

	opts := &gogithub.ListCheckRunsOptions{
		ListOptions: gogithub.ListOptions{PerPage: 100},
	}
	for {
		result, resp, err := c.github().Checks.ListCheckRunsForRef(ctx, owner, name, headSHA, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch check runs: %w", err)
		}
		if result == nil {
			break
		}

		for _, run := range result.CheckRuns {
			if run == nil {
				continue
			}
			checks = append(checks, convertCheckRun(run))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	combined, _, err := c.github().Repositories.GetCombinedStatus(ctx, owner, name, headSHA,
		&gogithub.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch combined status: %w", err)
	}
	for _, status := range combined.Statuses {
		checks = append(checks, convertStatus(status))
	}

	return checks, nil
}

// MarkReady implements platform.Client. The REST API cannot clear the
// draft flag, so this issues the markPullRequestReadyForReview GraphQL
// mutation against the pull request's node ID.
func (c *Client) MarkReady(ctx context.Context, ref platform.Ref) error {
	pr, err := c.fetchPull(ctx, ref)
	if err != nil {
		return err
	}

	nodeID := pr.GetNodeID()
	if nodeID == "" {
		return fmt.Errorf("pull request %s has no node ID", ref)
	}

	return c.markReadyByNodeID(ctx, nodeID)
}

// fetchPull fetches the raw go-github pull request for a ref.
func (c *Client) fetchPull(ctx context.Context, ref platform.Ref) (*gogithub.PullRequest, error) {
	owner, name, err := splitRepo(ref.Repo)
	if err != nil {
		return nil, err
	}

	number, err := strconv.Atoi(ref.Number)
	if err != nil {
		return nil, fmt.Errorf("invalid pull request number %q: %w", ref.Number, err)
	}

	pr, _, err := c.github().PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", err)
	}

	return pr, nil
}

// convertPullState normalizes go-github's state ("open"/"closed" plus a
// separate merged flag) to the platform vocabulary.
func convertPullState(pr *gogithub.PullRequest) platform.PullState {
	if pr.GetMerged() {
		return platform.PullMerged
	}
	return platform.PullState(strings.ToUpper(pr.GetState()))
}

// convertCheckRun maps a check run to a single state: the conclusion once
// completed, the status (QUEUED, IN_PROGRESS) while running.
func convertCheckRun(run *gogithub.CheckRun) platform.Check {
	state := run.GetStatus()
	if state == "completed" {
		state = run.GetConclusion()
	}

	return platform.Check{
		Name:  run.GetName(),
		State: platform.CheckState(strings.ToUpper(state)),
	}
}

// convertStatus maps a legacy commit status to the platform vocabulary.
// The "error" state has no check-run equivalent and is reported as a
// failure so it cannot slip through as passed.
func convertStatus(status *gogithub.RepoStatus) platform.Check {
	state := strings.ToUpper(status.GetState())
	if state == "ERROR" {
		state = string(platform.StateFailure)
	}

	return platform.Check{
		Name:  status.GetContext(),
		State: platform.CheckState(state),
	}
}

func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q: must be in owner/name form", repo)
	}
	return parts[0], parts[1], nil
}
