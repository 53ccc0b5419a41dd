// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

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

	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/logging"
)

// Endpoint paths, relative to the base URL.
const (
	PathQuery       = "/api/query/"
	PathCompare     = "/api/compare/"
	PathPriceGrowth = "/api/price_growth/"
)

// maxBodySize caps how much of a response is read.
const maxBodySize = 32 << 20

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	// Status is the HTTP status code for ErrTypeStatus errors.
	Status int
	Cause  error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by type, so errors.Is(err, ErrTimeout) holds for any
// timeout regardless of message.
func (e *ClientError) Is(target error) bool {
	t, ok := target.(*ClientError)
	return ok && t.Message == "" && t.Type == e.Type
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeDecode
	ErrTypeRequest
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeConnection:
		return "connection"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeStatus:
		return "status"
	case ErrTypeDecode:
		return "decode"
	case ErrTypeRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is checks.
var (
	ErrConnection = &ClientError{Type: ErrTypeConnection}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout}
	ErrBadStatus  = &ClientError{Type: ErrTypeStatus}
	ErrDecode     = &ClientError{Type: ErrTypeDecode}
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend root (default: http://127.0.0.1:8000).
	BaseURL string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	Logger *zap.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:8000",
		Timeout: 30 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the real-estate analysis backend. Each call is a single
// JSON POST with no retry. The Client is safe for concurrent use.
//
// Example:
//
//	client := api.NewClient("http://127.0.0.1:8000")
//	resp, err := client.Query(ctx, "wakad")
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a client for baseURL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = DefaultConfig().Timeout
	}

	hc := config.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: hc,
		log:        logging.OrNop(config.Logger).With(zap.String("component", "api")),
	}
}

// BaseURL returns the backend root the client posts to.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Query posts free text (or an area name) to /api/query/.
func (c *Client) Query(ctx context.Context, query string) (*QueryResponse, error) {
	var out QueryResponse
	if err := c.post(ctx, PathQuery, QueryRequest{Query: query}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare posts the areas to /api/compare/.
func (c *Client) Compare(ctx context.Context, areas []string) (*ComparisonResult, error) {
	if areas == nil {
		areas = []string{}
	}
	var out ComparisonResult
	if err := c.post(ctx, PathCompare, CompareRequest{Areas: areas}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PriceGrowth posts the area to /api/price_growth/.
func (c *Client) PriceGrowth(ctx context.Context, area string) (*GrowthResult, error) {
	var out GrowthResult
	if err := c.post(ctx, PathPriceGrowth, PriceGrowthRequest{Area: area}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

func (c *Client) post(ctx context.Context, path string, in, out any) (err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("endpoint", path),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			var ce *ClientError
			if errors.As(err, &ce) {
				fields = append(fields, zap.Stringer("kind", ce.Type), zap.Int("status", ce.Status))
			}
			c.log.Warn("backend request failed", append(fields, zap.Error(err))...)
			return
		}
		c.log.Debug("backend request finished", fields...)
	}()

	body, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeRequest, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return &ClientError{Type: ErrTypeTimeout, Message: "request timed out", Cause: err}
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ClientError{
			Type:    ErrTypeStatus,
			Status:  resp.StatusCode,
			Message: statusMessage(resp.Status, data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// statusMessage prefers the backend's own {"error"} or {"detail"} text.
func statusMessage(status string, body []byte) string {
	var o Object
	if err := json.Unmarshal(body, &o); err == nil {
		for _, key := range []string{"error", "detail"} {
			if msg := o.String(key); msg != "" {
				return fmt.Sprintf("backend returned %s: %s", status, msg)
			}
		}
	}
	return "backend returned " + status
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
