// Package apiclient is the single point of outbound communication with the EnergyPulse API.
package apiclient

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

	"github.com/google/uuid"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const (
	headerRequestID = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

// Config configures a Client.
type Config struct {
	BaseURL string
	// RequestsPerSecond caps outbound requests; zero means unlimited.
	RequestsPerSecond int
	HTTPClient        HTTPDoer
}

// Request describes one API call.
type Request struct {
	// Operation names the call in logs, metrics and errors, e.g. "houses.list".
	Operation string
	Method    string
	// Path is appended to the base URL; dynamic segments must already be escaped.
	Path  string
	Query url.Values
	Body  any
	// Anonymous requests never carry the session credential.
	Anonymous bool
}

// Client wraps outbound HTTP calls with the base URL, the session credential and
// uniform error surfacing. It never retries.
type Client struct {
	baseURL  string
	http     HTTPDoer
	sessions SessionSource
	metrics  Metrics
	limiter  ratelimit.Limiter
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// New constructs a Client.
func New(cfg Config, sessions SessionSource, metrics Metrics, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base url is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api base url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url missing host")
	}
	if metrics == nil {
		return nil, errors.New("api client metrics is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     httpClient,
		sessions: sessions,
		metrics:  metrics,
		limiter:  limiter,
		logger:   logger.Named("apiclient"),
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Do performs req and decodes a successful JSON response into out. A nil out discards
// the body. Any failure is returned as *Error.
func (c *Client) Do(ctx context.Context, req Request, out any) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe(req.Operation, err, started)
	}()

	httpReq, err := c.build(ctx, req)
	if err != nil {
		return err
	}

	c.limiter.Take()
	requestID := httpReq.Header.Get(headerRequestID)
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("operation", req.Operation),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &Error{Kind: KindTransport, Operation: req.Operation, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("response received",
		zap.String("operation", req.Operation),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Kind:      kindForStatus(resp.StatusCode),
			Operation: req.Operation,
			Status:    resp.StatusCode,
			Message:   serverMessage(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Operation: req.Operation, Status: resp.StatusCode, Err: err}
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Malformed(req.Operation, errors.New("empty response body"))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return Malformed(req.Operation, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Kind: KindValidation, Operation: req.Operation, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Operation: req.Operation, Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(headerRequestID, c.newID())
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.Anonymous || c.sessions == nil {
		return httpReq, nil
	}
	session, ok := c.sessions.Current()
	if !ok || session.Token == "" {
		return httpReq, nil
	}
	if session.Expired(c.now()) {
		return nil, &Error{Kind: KindUnauthenticated, Operation: req.Operation, Message: "session expired"}
	}
	httpReq.Header.Set("Authorization", "Bearer "+session.Token)
	return httpReq, nil
}

func serverMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
