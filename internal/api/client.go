// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the REST client for the DeerBank backend.
//
// Every request carries the current bearer token read from the credential
// slot at send time, a generated X-Request-ID, and passes through a
// client-side rate limiter. Transient failures (429, 5xx, network errors)
// are retried with exponential backoff. A 401 from any endpoint fires the
// registered session-expired callback exactly once per request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeranaias/deerbank-tui/internal/model"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the backend origin. The /api prefix is appended
	// per request, never stored in the base URL.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the number of attempts for transient errors.
	DefaultMaxRetries = 3

	// retryBaseDelay is the base delay for exponential backoff.
	retryBaseDelay = 500 * time.Millisecond

	// retryMaxDelay caps the backoff between attempts.
	retryMaxDelay = 5 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// Error variables for common backend failures.
var (
	// ErrUnauthorized indicates the bearer token was rejected (expired or
	// invalid). The session-expired callback has already fired by the time
	// a caller sees this error.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user lacks permission.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRateLimited indicates the backend rejected the request rate.
	ErrRateLimited = errors.New("rate limited")

	// ErrRejected indicates the backend processed the request but refused
	// it (success=false envelope with a 2xx status).
	ErrRejected = errors.New("request rejected")
)

// APIError carries the status and backend message for failed requests.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// apiErrorResponse is the error body shape the backend returns.
type apiErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// TokenSource supplies the current bearer token. An empty string means
// no session; the Authorization header is omitted.
type TokenSource interface {
	Get() string
}

// Client is the REST client for the DeerBank backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
	logger     *log.Logger

	// expiredMu guards the session-expired subscriber.
	expiredMu sync.Mutex
	onExpired func()
}

// NewClient creates a backend client. tokens may not be nil; pass a
// CredentialStore so the bearer header always reflects the live session.
func NewClient(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
		maxRetries: DefaultMaxRetries,
		userAgent:  "deerbank/0.3.0",
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithMaxRetries sets the maximum number of attempts for transient errors.
func (c *Client) WithMaxRetries(maxRetries int) *Client {
	if maxRetries > 0 {
		c.maxRetries = maxRetries
	}
	return c
}

// WithRateLimit replaces the client-side limiter. requestsPerSec <= 0
// disables limiting.
func (c *Client) WithRateLimit(requestsPerSec float64, burst int) *Client {
	if requestsPerSec <= 0 {
		c.limiter = nil
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSec), burst)
	return c
}

// WithLogger routes request traces to the given logger. The TUI owns the
// terminal, so this is normally a file-backed logger.
func (c *Client) WithLogger(logger *log.Logger) *Client {
	c.logger = logger
	return c
}

// WithHTTPClient substitutes the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

// OnSessionExpired registers the callback invoked when the backend
// returns 401. Passing nil unsubscribes; the default is a no-op.
func (c *Client) OnSessionExpired(fn func()) {
	c.expiredMu.Lock()
	c.onExpired = fn
	c.expiredMu.Unlock()
}

// notifyExpired fires the session-expired subscriber, if any.
func (c *Client) notifyExpired() {
	c.expiredMu.Lock()
	fn := c.onExpired
	c.expiredMu.Unlock()
	if fn != nil {
		fn()
	}
}

// Ping checks backend reachability and returns the round-trip time.
// Any HTTP response counts as reachable; only transport errors fail.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("backend unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
	return time.Since(start), nil
}

// ===== REQUEST PLUMBING =====

// logf writes a request trace when a logger is configured. Never logs
// headers or bodies; they carry credentials and account data.
func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// do sends one API request with rate limiting, retries, and bearer
// injection, decoding the response body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var bodyBytes []byte
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyBytes = b
	}

	requestURL := c.baseURL + "/api" + path

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := c.doOnce(ctx, method, requestURL, bodyBytes, out)
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doOnce performs a single attempt. The bearer token is re-read from the
// credential slot on every attempt so a refreshed session is picked up
// mid-retry.
func (c *Client) doOnce(ctx context.Context, method, requestURL string, bodyBytes []byte, out interface{}) error {
	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if token := c.tokens.Get(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logf("api: %s %s id=%s", method, req.URL.Path, requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logf("api: %s %s -> %d (%v)", method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	body, err := readResponse(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, requestID, body)
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}
	return nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse maps HTTP failures to the error taxonomy. A 401
// additionally fires the session-expired callback before returning.
func (c *Client) handleErrorResponse(statusCode int, requestID string, body []byte) error {
	message := ""
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil {
		message = apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
	}

	if statusCode == http.StatusUnauthorized {
		c.logf("api: 401 id=%s, signaling session expiry", requestID)
		c.notifyExpired()
	}

	wrapped := &APIError{Status: statusCode, Message: message, RequestID: requestID}
	switch statusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, wrapped.Error())
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, wrapped.Error())
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, wrapped.Error())
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, wrapped.Error())
	default:
		return wrapped
	}
}

// isRetryable reports whether an attempt should be retried.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500 && apiErr.Status < 600
	}
	// Bare network failures are wrapped with "request failed"
	return strings.Contains(err.Error(), "request failed")
}

// backoffDelay returns the exponential backoff delay before an attempt.
func backoffDelay(attempt int) time.Duration {
	delay := retryBaseDelay * time.Duration(1<<uint(attempt-1))
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

// ===== ENVELOPE HELPERS =====

// postEnvelope posts a body and unwraps the standard response envelope.
func postEnvelope[T any](ctx context.Context, c *Client, path string, body interface{}) (T, error) {
	var env model.Envelope[T]
	var zero T
	if err := c.do(ctx, http.MethodPost, path, body, &env); err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}
	return env.Data, nil
}

// getEnvelope fetches a path and unwraps the standard response envelope.
func getEnvelope[T any](ctx context.Context, c *Client, path string) (T, error) {
	var env model.Envelope[T]
	var zero T
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return zero, err
	}
	if !env.Success {
		return zero, fmt.Errorf("%w: %s", ErrRejected, env.Message)
	}
	return env.Data, nil
}
