// Package ghcli implements the platform client on top of the installed,
// authenticated gh CLI. Each operation is one blocking gh invocation with
// --json output; authentication is entirely gh's concern.
package ghcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/undraft-sh/undraft/pkg/platform"
)

// Client runs gh commands in a working directory.
type Client struct {
	// Path is the gh executable to invoke.
	Path string

	// Dir is the working directory for repo/branch context ("" = inherit).
	Dir string

	// run is the command execution seam, replaced in tests.
	run func(ctx context.Context, args ...string) ([]byte, error)
}

// New creates a client invoking "gh" from PATH.
func New() *Client {
	return NewWithPath("gh")
}

// NewWithPath creates a client invoking the given gh executable.
func NewWithPath(path string) *Client {
	c := &Client{Path: path}
	c.run = c.execCommand
	return c
}

// Name implements platform.Client.
func (c *Client) Name() string { return "gh" }

// execCommand executes a gh command, returning stdout. stderr diagnostics
// are folded into the error.
func (c *Client) execCommand(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("gh %s failed: %w", strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("gh %s failed: %w: %s", strings.Join(args, " "), err, msg)
	}

	return stdout.Bytes(), nil
}

// CurrentRepo implements platform.Client.
func (c *Client) CurrentRepo(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "repo", "view", "--json", "nameWithOwner")
	if err != nil {
		return "", err
	}

	var payload struct {
		NameWithOwner string `json:"nameWithOwner"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return "", fmt.Errorf("failed to parse gh repo view output: %w", err)
	}
	if payload.NameWithOwner == "" {
		return "", fmt.Errorf("gh repo view returned no repository")
	}

	return payload.NameWithOwner, nil
}

// CurrentPullNumber implements platform.Client.
func (c *Client) CurrentPullNumber(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "pr", "view", "--json", "number")
	if err != nil {
		// gh reports a missing PR for the branch as a failure; surface it
		// as the sentinel so the resolver can word the guidance.
		if strings.Contains(err.Error(), "no pull requests found") {
			return "", platform.ErrNoCurrentPull
		}
		return "", err
	}

	var payload struct {
		Number int `json:"number"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return "", fmt.Errorf("failed to parse gh pr view output: %w", err)
	}
	if payload.Number == 0 {
		return "", platform.ErrNoCurrentPull
	}

	return strconv.Itoa(payload.Number), nil
}

// PullRequest implements platform.Client.
func (c *Client) PullRequest(ctx context.Context, ref platform.Ref) (*platform.PullRequest, error) {
	out, err := c.run(ctx, "pr", "view", ref.Number, "--repo", ref.Repo,
		"--json", "title,state,isDraft,url")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Title   string `json:"title"`
		State   string `json:"state"`
		IsDraft bool   `json:"isDraft"`
		URL     string `json:"url"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse gh pr view output: %w", err)
	}

	return &platform.PullRequest{
		Title:   payload.Title,
		State:   platform.PullState(payload.State),
		IsDraft: payload.IsDraft,
		URL:     payload.URL,
	}, nil
}

// rollupNode is one entry of gh's statusCheckRollup: either a CheckRun
// (name + status/conclusion) or a StatusContext (context + state).
type rollupNode struct {
	TypeName   string `json:"__typename"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	Context    string `json:"context"`
	State      string `json:"state"`
}

// Checks implements platform.Client.
func (c *Client) Checks(ctx context.Context, ref platform.Ref) ([]platform.Check, error) {
	out, err := c.run(ctx, "pr", "view", ref.Number, "--repo", ref.Repo,
		"--json", "statusCheckRollup")
	if err != nil {
		return nil, err
	}

	var payload struct {
		StatusCheckRollup []rollupNode `json:"statusCheckRollup"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse gh status check output: %w", err)
	}

	checks := make([]platform.Check, 0, len(payload.StatusCheckRollup))
	for _, node := range payload.StatusCheckRollup {
		checks = append(checks, convertRollupNode(node))
	}

	return checks, nil
}

// convertRollupNode flattens a rollup entry to a single name/state pair.
// Completed check runs report their conclusion; unfinished ones report
// their status (QUEUED, IN_PROGRESS). Commit statuses report state as-is.
func convertRollupNode(node rollupNode) platform.Check {
	name := node.Name
	if name == "" {
		name = node.Context
	}

	state := node.State
	if state == "" {
		if node.Status == "COMPLETED" && node.Conclusion != "" {
			state = node.Conclusion
		} else {
			state = node.Status
		}
	}

	return platform.Check{Name: name, State: platform.CheckState(state)}
}

// MarkReady implements platform.Client.
func (c *Client) MarkReady(ctx context.Context, ref platform.Ref) error {
	_, err := c.run(ctx, "pr", "ready", ref.Number, "--repo", ref.Repo)
	return err
}
