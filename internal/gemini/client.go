// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

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
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jeranaias/nightowl-tui/internal/config"
)

const (
	// DefaultEndpoint is the models collection of the public API.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-pro"

	// DefaultTimeout bounds one request including any throttle wait.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize limits how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024

	// RequestIDHeader carries the request id for correlation in logs.
	RequestIDHeader = "X-Request-Id"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content      *responseContent `json:"content"`
	FinishReason string           `json:"finishReason,omitempty"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
}

// responsePart keeps Text nil when the field is absent or null, as for
// inlineData parts.
type responsePart struct {
	Text *string `json:"text"`
}

type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client asks single questions of one model. It is safe for concurrent use.
type Client struct {
	endpoint   string
	model      string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient returns a client with default endpoint, model and timeout and
// no throttle.
func NewClient(apiKey string, log logrus.FieldLogger) *Client {
	return &Client{
		endpoint:   DefaultEndpoint,
		model:      DefaultModel,
		apiKey:     apiKey,
		timeout:    DefaultTimeout,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		httpClient: &http.Client{},
		log:        log.WithField("component", "gemini"),
	}
}

// NewFromConfig builds a client from the [api] section.
func NewFromConfig(cfg config.APIConfig, log logrus.FieldLogger) *Client {
	return NewClient(cfg.APIKey, log).
		WithEndpoint(cfg.Endpoint).
		WithModel(cfg.Model).
		WithTimeout(cfg.Timeout()).
		WithRequestsPerMinute(cfg.RequestsPerMinute)
}

// WithEndpoint sets the models collection URL.
func (c *Client) WithEndpoint(endpoint string) *Client {
	if endpoint != "" {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
	return c
}

// WithModel sets the model name.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTimeout sets the per-request timeout. Zero disables it.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithRequestsPerMinute throttles outgoing requests. Zero disables the
// throttle.
func (c *Client) WithRequestsPerMinute(rpm int) *Client {
	if rpm <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
	} else {
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1)
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type requestIDKey struct{}

// WithRequestID attaches id to ctx. Ask sends it and logs with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Ask sends question and returns the answer text.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	id := requestID(ctx)
	log := c.log.WithFields(logrus.Fields{"request_id": id, "model": c.model})

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		log.WithError(err).Warn("request abandoned while throttled")
		return "", fmt.Errorf("throttle wait: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: question}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, id)

	log.WithField("question_len", len(question)).Debug("sending request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Error("request failed")
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := readResponse(resp)
	if err != nil {
		log.WithError(err).Error("failed to read response")
		return "", err
	}

	log = log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		log.WithError(apiErr).Error("API returned error status")
		return "", apiErr
	}

	answer, err := extractAnswer(respBody)
	if err != nil {
		log.WithError(err).Error("unusable response")
		return "", err
	}

	log.WithField("answer_len", len(answer)).Info("answer received")
	return answer, nil
}

// requestURL builds <endpoint>/<model>:generateContent?key=<key>.
func (c *Client) requestURL() string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s",
		c.endpoint, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Status = env.Error.Status
		apiErr.Message = env.Error.Message
	}
	return apiErr
}

// extractAnswer returns candidates[0].content.parts[0].text.
func extractAnswer(body []byte) (string, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	first := resp.Candidates[0]
	if first.Content == nil {
		return "", fmt.Errorf("%w: candidate has no content (finish reason %q)", ErrMalformedResponse, first.FinishReason)
	}
	if len(first.Content.Parts) == 0 {
		return "", ErrEmptyAnswer
	}
	text := first.Content.Parts[0].Text
	if text == nil {
		return "", fmt.Errorf("%w: first part has no text", ErrEmptyAnswer)
	}
	return *text, nil
}

// IsCancelled reports whether err came from the caller cancelling ctx
// rather than from the API.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
