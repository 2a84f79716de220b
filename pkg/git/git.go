// Package git reads local repository context by wrapping the system git
// binary. The API backend uses it to stand in for the gh CLI's awareness
// of the current repository and branch.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Client runs git commands against a repository directory.
type Client struct {
	// Dir is the working directory of the git repository.
	Dir string
}

// NewClient creates a new git client for the given directory.
func NewClient(dir string) *Client {
	return &Client{Dir: dir}
}

// execCommand executes a git command with proper error handling.
func (c *Client) execCommand(ctx context.Context, args ...string) ([]byte, error) {
	cmdArgs := []string{"-C", c.Dir}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return output, fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}

	return output, nil
}

// IsRepo checks if the directory is a git repository.
func (c *Client) IsRepo(ctx context.Context) bool {
	_, err := c.execCommand(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the current branch name. Returns an error when
// HEAD is detached.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	output, err := c.execCommand(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("detached HEAD: no current branch")
	}

	return branch, nil
}

// RemoteURL returns the fetch URL of the named remote.
func (c *Client) RemoteURL(ctx context.Context, name string) (string, error) {
	output, err := c.execCommand(ctx, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %q: %w", name, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// SetConfig sets a git configuration value.
func (c *Client) SetConfig(ctx context.Context, key, value string) error {
	_, err := c.execCommand(ctx, "config", key, value)
	return err
}

// Init initializes a new git repository.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.execCommand(ctx, "init")
	return err
}

// AddRemote adds a remote with the given name and URL.
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	_, err := c.execCommand(ctx, "remote", "add", name, url)
	if err != nil {
		return fmt.Errorf("failed to add remote %s with URL %s: %w", name, url, err)
	}
	return nil
}
