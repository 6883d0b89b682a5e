// Package gateway is the authenticated dispatch surface for the ServiceHub
// API. It classifies request paths into audiences, attaches the matching
// bearer credential, and transparently recovers an expired user session by
// refreshing the access token once and replaying the failed requests. All
// concurrent expiry failures share a single refresh call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RequestTimeout bounds every outbound call, replays and the refresh
// exchange included. A request exceeding it fails as a NetworkError.
const RequestTimeout = 30 * time.Second

// Request describes one outbound API call. The body is kept as bytes so
// the request can be replayed after a token refresh. A Request is used for
// a single Do call and must not be reused.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// retried is set once the request has been replayed after a refresh.
	// A request is never replayed a second time.
	retried bool
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Config carries the collaborators a Client needs. Store is required;
// Navigator and HTTPClient are optional.
type Config struct {
	BaseURL    string
	Store      SessionStore
	Navigator  Navigator
	HTTPClient *http.Client
}

// Client dispatches requests to the ServiceHub API.
type Client struct {
	base       *url.URL
	http       *http.Client
	store      SessionStore
	auth       *authenticator
	terminator *Terminator
	refresher  *Coordinator
}

func New(cfg Config) (*Client, error) {
	if cfg.Store == nil {
		return nil, errors.New("session store is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: RequestTimeout}
	}
	c := &Client{
		base:  base,
		http:  httpClient,
		store: cfg.Store,
		auth:  &authenticator{store: cfg.Store},
	}
	c.terminator = NewTerminator(cfg.Store, cfg.Navigator)
	c.refresher = NewCoordinator(cfg.Store, c.exchangeRefreshToken, c.terminator)
	return c, nil
}

// BaseURL returns the server URL the client dispatches to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Do sends one request with the credential its path calls for and returns
// the response, or an error classifying the failure.
//
// A user-audience request rejected for an expired session triggers one
// refresh round: the request joins the in-flight refresh if one exists,
// then is replayed once with the new token. Failures on auth endpoints,
// network failures, and permission denials propagate untouched. An admin
// request rejected with 401 ends the admin session; admin sessions are
// never refreshed.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	audience := Classify(req.Path)
	resp, err := c.send(ctx, req, audience, "")
	if err == nil {
		return resp, nil
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return nil, err
	}
	if audience == AudienceAuth {
		return nil, err
	}
	if audience == AudienceAdmin {
		if httpErr.StatusCode == http.StatusUnauthorized {
			log.Info().Str("path", req.Path).Msg("Admin credential rejected")
			c.terminator.Terminate(ScopeAdmin)
		}
		return nil, err
	}
	if !isRecoverableAuth(httpErr) {
		return nil, err
	}
	if req.retried {
		c.endExpiredSession()
		return nil, err
	}

	token, rerr := c.refresher.Recover(ctx)
	if rerr != nil {
		if errors.Is(rerr, errNoSession) {
			// Nothing to recover with; the caller sees the rejection
			// the server actually sent.
			return nil, err
		}
		return nil, rerr
	}

	req.retried = true
	log.Debug().Str("path", req.Path).Msg("Replaying request with refreshed token")
	resp, err = c.send(ctx, req, audience, token)
	if err == nil {
		return resp, nil
	}
	if errors.As(err, &httpErr) && isRecoverableAuth(httpErr) {
		// The freshly refreshed session was rejected too. Give up on it
		// rather than loop.
		c.endExpiredSession()
	}
	return nil, err
}

// GetJSON sends a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

// PostJSON sends a POST request with a JSON body and decodes the JSON
// response into out. Either in or out may be nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = b
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func decodeJSON(resp *Response, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("failed to parse response body: %w", err)
	}
	return nil
}

// send performs one network attempt. When token is non-empty it is
// attached instead of the stored credential; replays use this to carry the
// exact token their refresh round produced.
func (c *Client) send(ctx context.Context, req *Request, audience Audience, token string) (*Response, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	} else if err := c.auth.apply(httpReq, audience); err != nil {
		return nil, err
	}

	log.Debug().Str("method", req.Method).Str("url", httpReq.URL.String()).
		Str("audience", audience.String()).Msg("Sending API request")
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{URL: httpReq.URL.String(), Err: err}
	}
	defer func() {
		if cerr := httpResp.Body.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{URL: httpReq.URL.String(), Err: err}
	}
	if httpResp.StatusCode < http.StatusOK || httpResp.StatusCode >= http.StatusMultipleChoices {
		return nil, newHTTPError(httpResp.StatusCode, body)
	}
	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: body}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	u := c.base.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", req.Path, err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if len(req.Body) > 0 && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// endExpiredSession terminates the user session after a rejection recovery
// could not fix, but only when a session actually exists.
func (c *Client) endExpiredSession() {
	cred, err := c.store.Credential(ScopeUser)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read user credential")
		return
	}
	if cred == nil || cred.AccessToken == "" {
		return
	}
	c.terminator.Terminate(ScopeUser)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// exchangeRefreshToken performs the refresh exchange through the client's
// own dispatch path. The refresh path classifies as an auth endpoint, so
// the call goes out without a credential and its failures propagate
// instead of triggering recovery.
func (c *Client) exchangeRefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	body, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("failed to encode refresh request: %w", err)
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: PathRefresh, Body: body})
	if err != nil {
		return "", "", err
	}
	var out refreshResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if out.AccessToken == "" {
		return "", "", errors.New("refresh response is missing access_token")
	}
	return out.AccessToken, out.RefreshToken, nil
}
