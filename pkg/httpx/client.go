// Package httpx provides the shared HTTP client used for all upstream API
// calls, combining timeouts, retry with exponential backoff and rate limiting.
package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	Timeout     time.Duration
	RateLimiter RateLimiter
	RetryPolicy *RetryPolicy
	UserAgent   string
	Headers     map[string]string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Timeout:     30 * time.Second,
		RateLimiter: NewNoOpRateLimiter(),
		RetryPolicy: DefaultRetryPolicy(),
		UserAgent:   "storefront-forge/1.0",
		Headers:     make(map[string]string),
	}
}

// Client is an HTTP client with rate limiting and retry logic.
type Client struct {
	client      *http.Client
	rateLimiter RateLimiter
	retryPolicy *RetryPolicy
	userAgent   string
	headers     map[string]string
}

// NewClient creates a new client from the given configuration.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimiter == nil {
		config.RateLimiter = NewNoOpRateLimiter()
	}
	if config.RetryPolicy == nil {
		config.RetryPolicy = DefaultRetryPolicy()
	}
	if config.Headers == nil {
		config.Headers = make(map[string]string)
	}

	return &Client{
		client:      &http.Client{Timeout: config.Timeout},
		rateLimiter: config.RateLimiter,
		retryPolicy: config.RetryPolicy,
		userAgent:   config.UserAgent,
		headers:     config.Headers,
	}
}

// GetBytes performs a GET request with query parameters and extra headers,
// returning the raw response body.
func (c *Client) GetBytes(ctx context.Context, rawURL string, params url.Values, headers map[string]string) ([]byte, error) {
	var body []byte

	operation := func() error {
		c.rateLimiter.Wait()

		reqURL := rawURL
		if len(params) > 0 {
			reqURL = rawURL + "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create GET request: %w", err)
		}

		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		for key, value := range c.headers {
			req.Header.Set(key, value)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		start := time.Now()
		res, err := c.client.Do(req)
		duration := time.Since(start)

		if err != nil {
			slog.Warn("API call failed", "url", rawURL, "duration", duration, "error", err)
			return fmt.Errorf("failed to perform GET request: %w", err)
		}
		defer func() { _ = res.Body.Close() }()

		if res.StatusCode != http.StatusOK {
			slog.Warn("API call failed", "url", rawURL, "duration", duration, "status", res.StatusCode)
			return &StatusError{StatusCode: res.StatusCode, Status: res.Status}
		}

		body, err = io.ReadAll(res.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}

		slog.Debug("API call completed", "url", rawURL, "duration", duration)
		return nil
	}

	if err := ExecuteWithRetry(operation, c.retryPolicy, "GET "+rawURL); err != nil {
		return nil, err
	}
	return body, nil
}

// GetJSON performs a GET request and decodes the JSON response into target.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, headers map[string]string, target any) error {
	body, err := c.GetBytes(ctx, rawURL, params, headers)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode json response: %w", err)
	}
	return nil
}

// SetHeader sets a default header included in all requests.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}
