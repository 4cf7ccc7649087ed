package submission

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

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/application"
)

// HTTPClient submits applications to a JSON backend. Every failure (transport,
// non-2xx status, malformed body) is reported as *Error.
type HTTPClient struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// HTTPOption configures an HTTPClient.
type HTTPOption func(*HTTPClient)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithHTTPLogger attaches a logger.
func WithHTTPLogger(logger *zap.Logger) HTTPOption {
	return func(c *HTTPClient) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewHTTPClient targets {baseURL}/applications.
func NewHTTPClient(baseURL string, options ...HTTPOption) (*HTTPClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("submission: base url is required")
	}
	endpoint, err := url.JoinPath(baseURL, "applications")
	if err != nil {
		return nil, fmt.Errorf("submission: invalid base url %q: %w", baseURL, err)
	}

	c := &HTTPClient{
		endpoint: endpoint,
		client:   http.DefaultClient,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Submit POSTs the form and decodes {"applicationId": "..."}.
func (c *HTTPClient) Submit(ctx context.Context, form application.ApplicationForm) (Result, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return Result{}, NewError(fmt.Errorf("encode form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, NewError(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("submission request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return Result{}, NewError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.logger.Warn("submission rejected", zap.String("endpoint", c.endpoint), zap.Int("status", resp.StatusCode))
		return Result{}, NewError(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var result Result
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&result); err != nil {
		return Result{}, NewError(fmt.Errorf("decode response: %w", err))
	}
	if strings.TrimSpace(result.ApplicationID) == "" {
		return Result{}, NewError(errors.New("response missing applicationId"))
	}
	return result, nil
}
