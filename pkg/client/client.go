// Package client is the Go consumer of the tourist-agency API. It wraps
// net/http with a session manager that attaches the bearer token, refreshes
// the pair on 401 responses and retries the original request once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrSessionExpired reports that the refresh token was rejected and the
// session cannot be recovered without a fresh login.
var ErrSessionExpired = errors.New("session expired, login required")

// retryMarker marks a request that already went through one refresh+retry
// cycle. A second 401 on the retried request surfaces as-is.
type retryMarker struct{}

// Config configures a Client.
type Config struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// TokenStore holds the session pair. Defaults to an in-memory store.
	TokenStore TokenStore

	// HTTPClient is the underlying transport owner. Defaults to a client
	// with a 30s timeout.
	HTTPClient *http.Client

	// OnSessionExpired is invoked once per failed refresh, after the
	// stored pair has been cleared. Optional.
	OnSessionExpired func()
}

// Client is a session-managed API client. All methods are safe for
// concurrent use; concurrent 401s coalesce into a single refresh call.
type Client struct {
	baseURL   string
	store     TokenStore
	session   *http.Client
	bare      *http.Client
	onExpired func()
	refreshes singleflight.Group
}

// New creates a client from cfg.
func New(cfg Config) *Client {
	store := cfg.TokenStore
	if store == nil {
		store = NewMemoryTokenStore()
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		store:     store,
		bare:      base,
		onExpired: cfg.OnSessionExpired,
	}

	inner := base.Transport
	if inner == nil {
		inner = http.DefaultTransport
	}
	c.session = &http.Client{
		Timeout:   base.Timeout,
		Transport: &sessionTransport{client: c, inner: inner},
	}

	return c
}

// sessionTransport attaches the bearer token and drives the
// refresh-and-retry cycle on 401 responses.
type sessionTransport struct {
	client *Client
	inner  http.RoundTripper
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	access, _ := t.client.store.Tokens()
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if req.Context().Value(retryMarker{}) != nil {
		return resp, nil
	}
	// A request whose body cannot be replayed is not retried.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := t.client.refreshSession(req.Context(), access); err != nil {
		return nil, err
	}

	retry := req.Clone(context.WithValue(req.Context(), retryMarker{}, true))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}

	access, _ = t.client.store.Tokens()
	retry.Header.Set("Authorization", "Bearer "+access)

	return t.inner.RoundTrip(retry)
}

// refreshSession rotates the stored pair. Concurrent callers share one
// refresh round trip; callers arriving after the rotation see the new
// access token in the store and skip the round trip entirely.
func (c *Client) refreshSession(ctx context.Context, stale string) error {
	_, err, _ := c.refreshes.Do("refresh", func() (interface{}, error) {
		access, refresh := c.store.Tokens()
		if access != "" && access != stale {
			return nil, nil
		}
		if refresh == "" {
			return nil, c.expireSession()
		}

		result, err := c.Refresh(ctx, refresh)
		if err != nil {
			return nil, c.expireSession()
		}
		return result, nil
	})
	return err
}

// expireSession clears the stored pair, fires the hook and returns
// ErrSessionExpired.
func (c *Client) expireSession() error {
	c.store.Clear()
	if c.onExpired != nil {
		c.onExpired()
	}
	return ErrSessionExpired
}

// Login authenticates and stores the returned pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password})
}

// Register creates an account, logs it in and stores the returned pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", req)
}

// Refresh redeems a refresh token for a new pair and stores it. Most
// callers never invoke this directly; the session transport does.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/refresh", map[string]string{"refreshToken": refreshToken})
}

// Logout discards the stored pair. The server holds no access-token
// state, so this is purely local.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// Me returns the account behind the current session.
func (c *Client) Me(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// authenticate posts the body to an auth endpoint over the bare client
// and stores the returned pair.
func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.bare.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var result AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	if err := c.store.Save(result.Token, result.RefreshToken); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON performs a session-managed request and decodes the response
// into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: unexpected status %d: %s", e.StatusCode, e.Body)
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
}
