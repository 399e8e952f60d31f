// Package upstream is the shared HTTP plumbing for the remote REST backends.
// Calls are single-shot: no retries and no request deduplication. Transport
// failures surface as DEPENDENCY_ERROR; non-2xx answers are mapped onto the
// local error taxonomy with the upstream status kept in the details.
package upstream

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

	pkgerrors "github.com/kuhabites/kuha-web/pkg/errors"
	"github.com/kuhabites/kuha-web/pkg/logger"
	"github.com/kuhabites/kuha-web/pkg/metrics"
)

const errorBodyReadLimit int64 = 1024

var errBaseURLRequired = errors.New("upstream base url is required")

// Client issues requests against a single backend.
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	metrics    *metrics.UpstreamMetrics
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets an explicit client timeout on a copy of the HTTP client.
// Zero keeps the HTTP client default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			cp := *c.httpClient
			cp.Timeout = timeout
			c.httpClient = &cp
		}
	}
}

// WithMetrics records every call on the supplied recorder.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger traces failed calls at warn level.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// New builds a client for the backend identified by name.
func New(name, baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("parsing %s base url: %w", name, err)
	}

	client := &Client{
		name:       name,
		baseURL:    trimmed,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// Name returns the backend label used in logs and metrics.
func (c *Client) Name() string {
	return c.name
}

// Request describes one call. Body is JSON-encoded unless Multipart is set.
type Request struct {
	Operation string
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Multipart *Form
	Bearer    string
}

// Do executes the request and decodes a JSON response into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "upstream client not configured")
	}

	target := c.URL(req.Path, req.Query)
	body, contentType, err := encodeBody(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode "+req.Operation+" request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build "+req.Operation+" request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(ctx, req.Operation, metrics.OutcomeTransport, start, err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.name+" unreachable").
			WithDetails(map[string]any{"upstream_url": target, "operation": req.Operation})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
		c.observe(ctx, req.Operation, metrics.OutcomeRejected, start, cause)
		return pkgerrors.Wrap(pkgerrors.CodeForUpstreamStatus(resp.StatusCode), cause, req.Operation+" rejected by "+c.name).
			WithDetails(map[string]any{
				"upstream_status": resp.StatusCode,
				"upstream_url":    target,
				"operation":       req.Operation,
			})
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			c.observe(ctx, req.Operation, metrics.OutcomeRejected, start, err)
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+req.Operation+" response")
		}
	}

	c.observe(ctx, req.Operation, metrics.OutcomeOK, start, nil)
	return nil
}

// URL joins the base URL with path and query.
func (c *Client) URL(path string, query url.Values) string {
	target := fmt.Sprintf("%s/%s", c.baseURL, strings.TrimLeft(path, "/"))
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) observe(ctx context.Context, operation, outcome string, start time.Time, err error) {
	c.metrics.Observe(c.name, operation, outcome, time.Since(start))
	if err != nil && c.logg != nil {
		logCtx := c.logg.WithBackend(ctx, c.name)
		logCtx = c.logg.WithFields(logCtx, map[string]any{
			"operation": operation,
			"outcome":   outcome,
			"error":     err.Error(),
		})
		c.logg.Warn(logCtx, "upstream.call_failed")
	}
}

func encodeBody(req Request) (io.Reader, string, error) {
	if req.Multipart != nil {
		return req.Multipart.encode()
	}
	if req.Body == nil {
		return nil, "", nil
	}
	payload, err := json.Marshal(req.Body)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(payload), "application/json", nil
}
