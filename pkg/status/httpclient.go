package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

// HTTPClient looks up records on a remote status service at
// GET {baseURL}/applications/{id}?email=.
type HTTPClient struct {
	base   string
	client *http.Client
	logger *zap.Logger
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

// NewHTTPClient targets baseURL.
func NewHTTPClient(baseURL string, options ...HTTPOption) (*HTTPClient, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("status: base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("status: invalid base url %q: %w", baseURL, err)
	}
	c := &HTTPClient{
		base:   baseURL,
		client: http.DefaultClient,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Lookup implements Lookup.
func (c *HTTPClient) Lookup(ctx context.Context, id, email string) (ApplicationRecord, error) {
	if err := checkCredentials(id, email); err != nil {
		return ApplicationRecord{}, err
	}
	key := NormalizeID(id)

	endpoint, err := url.JoinPath(c.base, "applications", key)
	if err != nil {
		return ApplicationRecord{}, fmt.Errorf("status: build url: %w", err)
	}
	endpoint += "?" + url.Values{"email": {strings.TrimSpace(email)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ApplicationRecord{}, fmt.Errorf("status: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("status request failed", zap.String("application_id", key), zap.Error(err))
		return ApplicationRecord{}, fmt.Errorf("status: lookup %s: %w", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return ApplicationRecord{}, &NotFoundError{ID: key}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.logger.Warn("status lookup rejected", zap.String("application_id", key), zap.Int("status", resp.StatusCode))
		return ApplicationRecord{}, fmt.Errorf("status: lookup %s: unexpected status %d", key, resp.StatusCode)
	}

	var rec ApplicationRecord
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&rec); err != nil {
		return ApplicationRecord{}, fmt.Errorf("status: decode response: %w", err)
	}
	return rec, nil
}
