package api

import (
	"context"
	"fmt"
)

// markReadyMutation clears the draft flag on a pull request node.
const markReadyMutation = `mutation($id: ID!) {
  markPullRequestReadyForReview(input: {pullRequestId: $id}) {
    pullRequest { isDraft }
  }
}`

// graphQLResponse is the envelope of a GraphQL call. GraphQL reports
// failures with HTTP 200 plus an errors array, so the envelope is checked
// explicitly.
type graphQLResponse struct {
	Data struct {
		MarkPullRequestReadyForReview struct {
			PullRequest struct {
				IsDraft bool `json:"isDraft"`
			} `json:"pullRequest"`
		} `json:"markPullRequestReadyForReview"`
	} `json:"data"`
	Errors []struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"errors"`
}

// markReadyByNodeID issues the ready-for-review mutation. The GraphQL
// endpoint lives next to the REST root, so the request goes through the
// go-github client to reuse its base URL and auth transport.
func (c *Client) markReadyByNodeID(ctx context.Context, nodeID string) error {
	body := map[string]any{
		"query": markReadyMutation,
		"variables": map[string]string{
			"id": nodeID,
		},
	}

	req, err := c.github().NewRequest("POST", "graphql", body)
	if err != nil {
		return fmt.Errorf("failed to build mark-ready request: %w", err)
	}

	var result graphQLResponse
	if _, err := c.github().Do(ctx, req, &result); err != nil {
		return fmt.Errorf("failed to mark pull request ready: %w", err)
	}

	if len(result.Errors) > 0 {
		return fmt.Errorf("failed to mark pull request ready: %s", result.Errors[0].Message)
	}

	return nil
}
