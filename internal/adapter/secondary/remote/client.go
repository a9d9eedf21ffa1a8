package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ruudy-sib/demobridge/internal/domain"
)

const userAgent = "demobridge/1.0"

// Request describes one outbound call. At most one of JSON and Form is set.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header
	JSON   interface{}
	Form   url.Values
}

// Response is the raw reply of a remote service.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs HTTP calls against one remote service and classifies
// failures as transport errors or *APIError values.
type Client struct {
	service string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a client for the named service with the given timeout.
func NewClient(service string, timeout time.Duration, logger *zap.Logger) *Client {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logger.Info("remote client initialized",
		zap.String("service", service),
		zap.Duration("timeout", client.Timeout),
	)

	return &Client{
		service: service,
		client:  client,
		logger:  logger.Named(service + "-client"),
	}
}

// Do executes req. A non-nil error always wraps domain.ErrTransport; HTTP
// status handling is left to the caller.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target := req.URL
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encoding %s request body: %w", c.service, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", c.service, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrTransport, req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("reading response failed",
			zap.String("url", req.URL),
			zap.Int("status_code", resp.StatusCode),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: reading %s response: %v", domain.ErrTransport, c.service, err)
	}

	c.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("url", req.URL),
		zap.Int("status_code", resp.StatusCode),
		zap.Int("body_size", len(respBody)),
	)

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// Fail builds an APIError for a rejected call and logs it.
func (c *Client) Fail(statusCode int, message string, details []string) *APIError {
	apiErr := &APIError{
		Service:    c.service,
		StatusCode: statusCode,
		Message:    message,
		Errors:     details,
	}
	c.logger.Error("remote api error",
		zap.Int("status_code", statusCode),
		zap.String("message", message),
		zap.Strings("errors", details),
	)
	return apiErr
}

// Decode unmarshals a successful body into out. A malformed body is
// reported as an APIError.
func (c *Client) Decode(resp *Response, out interface{}) error {
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return c.Fail(resp.StatusCode, "malformed response body", []string{err.Error()})
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	if c.client != nil {
		c.client.CloseIdleConnections()
	}
	return nil
}

// JoinURL joins base and path with exactly one slash between them.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
