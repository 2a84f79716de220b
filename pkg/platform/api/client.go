// Package api implements the platform client directly against the GitHub
// API for hosts without the gh CLI. Authentication is a token from the
// environment; local repository and branch context come from the system
// git binary.
package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/undraft-sh/undraft/pkg/git"
)

const (
	// DefaultBaseURL is the default GitHub API base URL.
	DefaultBaseURL = "https://api.github.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRemote is the remote consulted for repository auto-detection.
	DefaultRemote = "origin"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the GitHub API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
		c.githubClient = nil
	}
}

// WithHTTPClient sets a custom HTTP client (used by tests to replay
// recorded fixtures).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
		c.githubClient = nil
	}
}

// WithTimeout sets a custom HTTP timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithWorkdir sets the directory used for local repository context.
func WithWorkdir(dir string) ClientOption {
	return func(c *Client) {
		c.git = git.NewClient(dir)
	}
}

// Client is a platform client backed by the GitHub API.
type Client struct {
	token        string
	baseURL      string
	timeout      time.Duration
	httpClient   *http.Client
	githubClient *gogithub.Client // lazy-loaded
	git          *git.Client
}

// New creates a new API-backed platform client with the given token.
func New(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		git:     git.NewClient("."),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name implements platform.Client.
func (c *Client) Name() string { return "api" }

// github returns the underlying go-github client (lazy-loaded).
func (c *Client) github() *gogithub.Client {
	if c.githubClient == nil {
		httpClient := c.httpClient
		if httpClient == nil {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
			httpClient = oauth2.NewClient(context.Background(), ts)
			httpClient.Timeout = c.timeout
		}
		c.githubClient = gogithub.NewClient(httpClient)

		if c.baseURL != DefaultBaseURL && c.baseURL != "" {
			baseURL := c.baseURL
			if baseURL[len(baseURL)-1] != '/' {
				baseURL += "/"
			}
			if parsed, err := url.Parse(baseURL); err == nil {
				c.githubClient.BaseURL = parsed
			}
		}
	}
	return c.githubClient
}
