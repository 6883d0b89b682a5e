package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError reports that no response was received: connection failures,
// DNS errors, timeouts. It never triggers session recovery.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError reports a response with a non-2xx status. Detail carries the
// backend's error detail string when the body is a JSON object with a
// "detail" field, otherwise the trimmed raw body.
type HTTPError struct {
	StatusCode int
	Detail     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Detail:     extractDetail(body),
		Body:       body,
	}
}

func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

// isRecoverableAuth reports whether a user-scoped failure should enter
// refresh recovery: a 401, or the backend's soft 403 that carries
// "not authenticated" in place of a 401 for missing and invalid sessions.
// A plain 403 is a permission denial and stays untouched.
func isRecoverableAuth(e *HTTPError) bool {
	if e.StatusCode == http.StatusUnauthorized {
		return true
	}
	return e.StatusCode == http.StatusForbidden &&
		strings.Contains(strings.ToLower(e.Detail), "not authenticated")
}
