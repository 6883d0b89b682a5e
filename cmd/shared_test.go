package cmd

import (
	"errors"
	"testing"

	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/myservicehub/ServiceHub-sub004/pkg/clierr"
	"github.com/stretchr/testify/assert"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType clierr.Type
		wantMsg  string
	}{
		{
			name:     "network failure",
			err:      &gateway.NetworkError{URL: "http://x/jobs", Err: errors.New("connection refused")},
			wantType: clierr.API,
			wantMsg:  "Could not reach the server",
		},
		{
			name:     "not found",
			err:      &gateway.HTTPError{StatusCode: 404},
			wantType: clierr.NotFound,
			wantMsg:  "not found",
		},
		{
			name:     "unauthorized",
			err:      &gateway.HTTPError{StatusCode: 401, Detail: "Could not validate credentials"},
			wantType: clierr.Auth,
			wantMsg:  "not authorized",
		},
		{
			name:     "forbidden",
			err:      &gateway.HTTPError{StatusCode: 403, Detail: "Admins only"},
			wantType: clierr.Auth,
			wantMsg:  "not authorized",
		},
		{
			name:     "server error",
			err:      &gateway.HTTPError{StatusCode: 500},
			wantType: clierr.API,
			wantMsg:  "HTTP 500",
		},
		{
			name:     "anything else",
			err:      errors.New("boom"),
			wantType: clierr.Internal,
			wantMsg:  "unexpected error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := describeError(tc.err)
			assert.Equal(t, tc.wantType, got.Type)
			assert.Contains(t, got.Error(), tc.wantMsg)
			assert.ErrorIs(t, got, tc.err, "the original error must stay unwrappable")
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for status := range jobStatuses {
		assert.True(t, isValidStatus(status), "status %q should be valid", status)
	}
	assert.False(t, isValidStatus("bogus"))
	assert.False(t, isValidStatus(""))
	assert.False(t, isValidStatus("Open"), "status matching is case-sensitive")
}
