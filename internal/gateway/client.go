// Package gateway is the client's single door to the remote banking API.
// Every request leaves through here so the credential is attached in one
// place and authentication failures are intercepted in one place.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"vaultguard-client/internal/logging"
	"vaultguard-client/internal/session"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vaultguard_client_requests_total",
		Help: "Outgoing API requests, labeled by status code",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vaultguard_client_request_duration_seconds",
		Help:    "Latency distribution of outgoing API requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})
)

// Client wraps fasthttp with the session-aware behavior the views rely on:
// Bearer attachment, request ids, and forced logout on auth failure.
type Client struct {
	http          *fasthttp.Client
	baseURL       string
	timeout       time.Duration
	session       *session.Store
	onAuthFailure func()
	log           zerolog.Logger
}

// New builds a gateway client around the given session store. The
// onAuthFailure hook is the navigation-to-login trigger; it runs at most
// once per stored credential, however many requests fail concurrently.
func New(baseURL string, timeout time.Duration, store *session.Store, onAuthFailure func()) *Client {
	return &Client{
		http:          &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       timeout,
		session:       store,
		onAuthFailure: onAuthFailure,
		log:           logging.ForComponent("gateway"),
	}
}

// Session exposes the store so views can check authentication state.
func (c *Client) Session() *session.Store {
	return c.session
}

// do performs one API call. A non-nil out is filled from the response body
// on 2xx. Errors are either *APIError (the server answered) or a wrapped
// network error (it did not).
func (c *Client) do(method, path string, query url.Values, body, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	uri := c.baseURL + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}
	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	// Login, registration and verification run without a credential.
	if cred, ok := c.session.Get(); ok {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+cred.Token)
	}

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		req.SetBody(payload)
	}

	start := time.Now()
	err := c.http.DoTimeout(req, resp, c.timeout)
	requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

	if err != nil {
		requestsTotal.WithLabelValues(method, path, "network").Inc()
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("transport failure")
		return fmt.Errorf("network error calling %s %s: %w", method, path, err)
	}

	status := resp.StatusCode()
	requestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()

	if status >= 200 && status < 300 {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response from %s %s: %w", method, path, err)
		}
		return nil
	}

	apiErr := &APIError{
		Status:    status,
		Message:   errorMessage(resp.Body()),
		RequestID: requestID,
	}

	if c.isAuthFailure(apiErr) {
		c.forceLogout(method, path)
	}

	c.log.Warn().Str("method", method).Str("path", path).
		Int("status", status).Str("message", apiErr.Message).Msg("api error")
	return apiErr
}

// isAuthFailure applies the backend's quirky signaling: a clean 401, or a
// 500 whose message complains about a missing authorization header. The
// latter means a genuine server error mentioning those words would be
// mistaken for an expired session; preserved for compatibility.
func (c *Client) isAuthFailure(err *APIError) bool {
	if err.Status == fasthttp.StatusUnauthorized {
		return true
	}
	if err.Status != fasthttp.StatusInternalServerError {
		return false
	}
	msg := strings.ToLower(err.Message)
	return strings.Contains(msg, "authorization") &&
		(strings.Contains(msg, "missing") || strings.Contains(msg, "header"))
}

// forceLogout clears the session and fires the navigation hook. Clear
// reports whether a credential was actually removed, so concurrent failing
// requests trigger a single redirect.
func (c *Client) forceLogout(method, path string) {
	cleared, err := c.session.Clear()
	if err != nil {
		c.log.Error().Err(err).Msg("failed to remove session file")
	}
	if !cleared {
		return
	}
	c.log.Info().Str("method", method).Str("path", path).Msg("session invalidated by server, logging out")
	if c.onAuthFailure != nil {
		c.onAuthFailure()
	}
}

// errorMessage digs the human-readable message out of an error body. The
// backend answers with {"message": ...} on the gRPC gateway paths and
// {"error": ...} elsewhere.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	if len(body) > 0 {
		return string(body)
	}
	return "request failed"
}
