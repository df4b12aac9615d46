// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package apiclient calls the ticket exchange backend.
//
// A [Client] wraps an http.Client, a base URL, and the process
// [session.Session]. Every authenticated call attaches the session's
// bearer token; every response is classified into the [Error] taxonomy
// (unauthorized, conflict, application, network) so that callers can
// branch on what the user should see rather than on status codes.
//
// The client never retries and never stores anything in the session
// on its own except on [Client.Logout], which always clears it.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bureau-foundation/tripswap/lib/market"
	"github.com/bureau-foundation/tripswap/lib/netutil"
	"github.com/bureau-foundation/tripswap/lib/session"
	"github.com/bureau-foundation/tripswap/lib/version"
)

// RequestIDHeader carries a per-request UUID so backend logs can be
// matched with client logs.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for creating a Client.
type Config struct {
	// BaseURL is the backend origin (e.g., "http://localhost:3000").
	// API paths such as /api/v1/tickets/all are appended to it.
	BaseURL string

	// Session supplies the bearer token. Required.
	Session *session.Session

	// HTTPClient is used for all requests. If nil, a client with
	// Timeout is created.
	HTTPClient *http.Client

	// Timeout bounds each request when HTTPClient is nil. Zero means
	// 15 seconds.
	Timeout time.Duration

	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger

	// Metrics records request counts and latencies. If nil, nothing
	// is recorded.
	Metrics *Metrics
}

// Client is the marketplace API client. Safe for concurrent use.
type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *Metrics
}

// New creates a Client.
func New(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: BaseURL is required")
	}
	parsed, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid BaseURL %q: %w", config.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: BaseURL %q must use http or https", config.BaseURL)
	}
	if config.Session == nil {
		return nil, fmt.Errorf("apiclient: Session is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		session:    config.Session,
		httpClient: httpClient,
		logger:     logger,
		metrics:    config.Metrics,
	}, nil
}

// Session returns the session the client reads its token from.
func (c *Client) Session() *session.Session {
	return c.session
}

// BaseURL returns the backend origin without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call describes one API request.
type call struct {
	operation     string
	method        string
	path          string
	body          any
	authenticated bool
}

// do performs the request and returns the response body for 2xx
// statuses. Any other outcome is an *Error.
func (c *Client) do(ctx context.Context, request call) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	responseBody, statusCode, err := c.roundTrip(ctx, request, requestID)

	outcome := "ok"
	if err != nil {
		if kind, ok := KindOf(err); ok {
			outcome = kind.String()
		} else {
			outcome = "error"
		}
	}
	elapsed := time.Since(start)
	c.metrics.observe(request.operation, outcome, elapsed)
	c.logger.DebugContext(ctx, "api request",
		"operation", request.operation,
		"method", request.method,
		"path", request.path,
		"status", statusCode,
		"outcome", outcome,
		"duration", elapsed,
		"request_id", requestID,
	)

	return responseBody, err
}

func (c *Client) roundTrip(ctx context.Context, request call, requestID string) ([]byte, int, error) {
	var bodyReader io.Reader
	if request.body != nil {
		encoded, err := json.Marshal(request.body)
		if err != nil {
			return nil, 0, fmt.Errorf("apiclient: encoding %s request: %w", request.operation, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.method, c.baseURL+request.path, bodyReader)
	if err != nil {
		return nil, 0, fmt.Errorf("apiclient: building %s request: %w", request.operation, err)
	}
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", version.UserAgent())
	httpRequest.Header.Set(RequestIDHeader, requestID)
	if request.body != nil {
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	if request.authenticated {
		if token := c.session.Token(); token != "" {
			httpRequest.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, 0, &Error{Operation: request.operation, Kind: KindNetwork, Err: err}
	}
	defer response.Body.Close()

	responseBody, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, response.StatusCode, &Error{Operation: request.operation, Kind: KindNetwork, StatusCode: response.StatusCode, Err: err}
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, response.StatusCode, nil
	}

	apiErr := &Error{
		Operation:  request.operation,
		Kind:       KindApplication,
		StatusCode: response.StatusCode,
		Message:    messageFrom(responseBody),
	}
	switch response.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
	case http.StatusConflict:
		apiErr.Kind = KindConflict
	}
	return responseBody, response.StatusCode, apiErr
}

// messageFrom extracts the "message" field of an error body. Non-JSON
// bodies (proxy error pages) yield "".
func messageFrom(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) != nil {
		return ""
	}
	return envelope.Message
}

// decodeEnvelope decodes a {success,data,message} body. success:false
// is an application error even on a 2xx status.
func decodeEnvelope[T any](operation string, body []byte) (T, error) {
	var envelope market.Envelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		var zero T
		return zero, fmt.Errorf("apiclient: decoding %s response: %w", operation, err)
	}
	if !envelope.Success {
		var zero T
		return zero, &Error{
			Operation:  operation,
			Kind:       KindApplication,
			StatusCode: http.StatusOK,
			Message:    envelope.Message,
		}
	}
	return envelope.Data, nil
}
