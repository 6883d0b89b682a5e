package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/myservicehub/ServiceHub-sub004/api"
	"github.com/myservicehub/ServiceHub-sub004/auth"
	"github.com/myservicehub/ServiceHub-sub004/config"
	"github.com/myservicehub/ServiceHub-sub004/db"
	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/myservicehub/ServiceHub-sub004/pkg/clierr"
)

// jobStatuses is a map that associates the job status filters the backend
// accepts with a short description of what each status means.
var jobStatuses = map[string]string{
	"open":        "Accepting quotes",
	"assigned":    "Worker selected",
	"in_progress": "Work underway",
	"completed":   "Work finished",
	"cancelled":   "Withdrawn by the customer",
}

// isValidStatus checks if a given job status filter is valid.
// It returns true if the status exists in the jobStatuses map, otherwise false.
func isValidStatus(status string) bool {
	_, ok := jobStatuses[status]
	return ok
}

// apiStack bundles the collaborators a networked command needs. Every
// command builds a fresh stack so the --server flag is honored.
type apiStack struct {
	store   gateway.SessionStore
	gateway *gateway.Client
	auth    *auth.Service
	api     *api.Client
}

func newAPIStack() (*apiStack, error) {
	store := &credentialStore{repo: db.NewCredentialRepository(db.GetDB())}
	gw, err := gateway.New(gateway.Config{
		BaseURL:   config.ResolveServerURL(serverFlag, config.Load()),
		Store:     store,
		Navigator: &sessionNotice{},
	})
	if err != nil {
		return nil, err
	}
	return &apiStack{
		store:   store,
		gateway: gw,
		auth:    auth.NewService(gw, store),
		api:     api.NewClient(gw),
	}, nil
}

// describeError converts a dispatch failure into a message suitable for
// terminal output.
func describeError(err error) *clierr.Error {
	var netErr *gateway.NetworkError
	var httpErr *gateway.HTTPError
	switch {
	case errors.As(err, &netErr):
		return clierr.New(clierr.API, "Could not reach the server. Check your connection and the server URL.", err)
	case errors.As(err, &httpErr):
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			return clierr.New(clierr.NotFound, "The requested resource was not found.", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return clierr.New(clierr.Auth, "You are not authorized for this action. Try logging in again.", err)
		default:
			return clierr.New(clierr.API, fmt.Sprintf("The server rejected the request (HTTP %d).", httpErr.StatusCode), err)
		}
	default:
		return clierr.New(clierr.Internal, "An unexpected error occurred. Check the logs for details.", err)
	}
}
