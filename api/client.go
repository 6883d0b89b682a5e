// Package api holds thin typed consumers of the ServiceHub endpoints.
// Each call is a dispatch through the gateway plus a JSON decode; the
// gateway decides credentials and session recovery on its own.
package api

import (
	"context"
	"fmt"
	"net/url"
)

// Caller is the dispatch surface the consumers go through. The gateway
// client satisfies it.
type Caller interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
}

// Client exposes the marketplace endpoints as typed calls.
type Client struct {
	api Caller
}

func NewClient(api Caller) *Client {
	return &Client{api: api}
}

// JobListOptions narrows the job listing. Zero values are omitted from
// the query.
type JobListOptions struct {
	Status   string
	Category string
}

// Jobs lists the caller's visible jobs.
func (c *Client) Jobs(ctx context.Context, opts JobListOptions) ([]Job, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	var jobs []Job
	if err := c.api.GetJSON(ctx, "/jobs", query, &jobs); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

// Job fetches one job with its full detail.
func (c *Client) Job(ctx context.Context, id int) (*Job, error) {
	var job Job
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/jobs/%d", id), nil, &job); err != nil {
		return nil, fmt.Errorf("failed to fetch job %d: %w", id, err)
	}
	return &job, nil
}

// QuotesForJob lists the quotes submitted on a job.
func (c *Client) QuotesForJob(ctx context.Context, jobID int) ([]Quote, error) {
	var quotes []Quote
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/quotes/job/%d", jobID), nil, &quotes); err != nil {
		return nil, fmt.Errorf("failed to list quotes for job %d: %w", jobID, err)
	}
	return quotes, nil
}

// Reviews lists the reviews left on a job.
func (c *Client) Reviews(ctx context.Context, jobID int) ([]Review, error) {
	var reviews []Review
	if err := c.api.GetJSON(ctx, fmt.Sprintf("/reviews/job/%d", jobID), nil, &reviews); err != nil {
		return nil, fmt.Errorf("failed to list reviews for job %d: %w", jobID, err)
	}
	return reviews, nil
}

// WalletBalance fetches the caller's balance.
func (c *Client) WalletBalance(ctx context.Context) (*WalletBalance, error) {
	var balance WalletBalance
	if err := c.api.GetJSON(ctx, "/wallet/balance", nil, &balance); err != nil {
		return nil, fmt.Errorf("failed to fetch wallet balance: %w", err)
	}
	return &balance, nil
}

// AdminUsers lists every account. It dispatches under the admin scope.
func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.api.GetJSON(ctx, "/admin/users", nil, &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
