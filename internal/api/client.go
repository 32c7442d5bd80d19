// Package api is the single chokepoint for backend calls. It attaches the
// bearer credential, performs at most one refresh-and-retry cycle on 401,
// and normalizes non-2xx responses into structured errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/pairfit/internal/credentials"
	"github.com/felixgeelhaar/pairfit/pkg/observability"
)

const defaultTimeout = 30 * time.Second

// Client talks to the PairFit backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credentials.Store
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	logger     *slog.Logger
	metrics    observability.Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout on the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m observability.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client rooted at baseURL. Credentials are read from
// and written to creds as the refresh protocol rotates them.
func NewClient(baseURL string, creds credentials.Store, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		creds:      creds,
		logger:     logger,
		metrics:    observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(c)
	}

	// The breaker guards against a dead network, not against backend
	// error statuses: only transport-level failures count, so the
	// 401-refresh protocol and error surfacing are unaffected.
	c.breaker = gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name: "pairfit-api",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		Timeout: 30 * time.Second,
	})

	return c
}

// RequestOption adjusts a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	skipAuth bool
}

// SkipAuth sends the request without a bearer credential. Used for the
// public auth endpoints and the health probe.
func SkipAuth() RequestOption {
	return func(rc *requestConfig) { rc.skipAuth = true }
}

// Do issues an HTTP request against the backend. body (when non-nil) is
// JSON-encoded; out (when non-nil) receives the decoded 2xx response body.
//
// On a 401 for an authenticated, non-auth-endpoint request, exactly one
// refresh is attempted followed by exactly one retry. On refresh failure
// all credentials are cleared and ErrAuthenticationFailed is returned.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = data
	}

	token := ""
	if !rc.skipAuth {
		stored, err := c.creds.Load(ctx)
		if err != nil {
			c.logger.Warn("failed to load credentials", "error", err)
		} else if stored != nil {
			token = stored.AccessToken
		}
	}

	start := time.Now()
	resp, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		c.metrics.Counter("api.request.transport_error", 1, observability.T("method", method))
		return err
	}

	// 401 on an authed, non-auth-endpoint call: refresh once, retry once.
	if resp.StatusCode == http.StatusUnauthorized && !rc.skipAuth && !isAuthPath(path) {
		drain(resp)

		newToken, ok := c.refreshCredentials(ctx)
		if !ok {
			if err := c.creds.Clear(ctx); err != nil {
				c.logger.Warn("failed to clear credentials", "error", err)
			}
			return ErrAuthenticationFailed
		}

		resp, err = c.send(ctx, method, path, payload, newToken)
		if err != nil {
			return err
		}
	}

	c.metrics.Timing("api.request", time.Since(start),
		observability.T("method", method),
		observability.T("status", strconv.Itoa(resp.StatusCode)),
	)

	return c.handleResponse(ctx, resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, token string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if reqID := observability.RequestIDFromContext(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("backend unavailable: %w", err)
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.DebugContext(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)

	return resp, nil
}

func (c *Client) handleResponse(ctx context.Context, resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("HTTP %d", resp.StatusCode),
		}
		var body struct {
			Detail string `json:"detail"`
		}
		if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
			apiErr.Detail = body.Detail
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// refreshCredentials performs a single refresh using the stored refresh
// credential. On success the rotated pair is persisted and the new access
// token returned. Any failure reports (_, false); it never retries.
func (c *Client) refreshCredentials(ctx context.Context) (string, bool) {
	stored, err := c.creds.Load(ctx)
	if err != nil || stored == nil || stored.RefreshToken == "" {
		return "", false
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: stored.RefreshToken})
	if err != nil {
		return "", false
	}

	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh", payload, "")
	if err != nil {
		c.logger.Warn("credential refresh failed", "error", err)
		return "", false
	}

	var refreshed refreshResponse
	if err := c.handleResponse(ctx, resp, &refreshed); err != nil {
		c.logger.Warn("credential refresh rejected", "error", err)
		return "", false
	}

	rotated := &oauth2.Token{
		AccessToken:  refreshed.AccessToken,
		RefreshToken: refreshed.RefreshToken,
		TokenType:    stored.TokenType,
	}
	if err := c.creds.Save(ctx, rotated); err != nil {
		c.logger.Error("failed to persist rotated credentials", "error", err)
		return "", false
	}

	return refreshed.AccessToken, true
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// Login authenticates with email/password and returns the credential pair
// and user. Tokens are not persisted here; the auth store owns that.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", req, &resp, SkipAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns the credential pair and user.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", req, &resp, SkipAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignInWithApple exchanges an Apple identity token for a credential pair.
func (c *Client) SignInWithApple(ctx context.Context, req AppleSignInRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/apple", req, &resp, SkipAuth()); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend that the session ends.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Health probes the backend without authentication.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.Do(ctx, http.MethodGet, "/health", nil, &health, SkipAuth()); err != nil {
		return nil, err
	}
	return &health, nil
}
