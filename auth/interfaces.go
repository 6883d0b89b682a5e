package auth

import (
	"context"
	"net/url"
)

// APICaller defines the contract for the dispatch surface the service
// reaches the backend through. The gateway client satisfies it; tests use
// a mock.
type APICaller interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
}
