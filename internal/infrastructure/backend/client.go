// Package backend is the JSON transport to the remote ERP backend that owns
// payment and settlement history. It handles URL building, default headers,
// bearer authentication and bounded retries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/erp/orderdesk/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HeaderRequestID is forwarded so backend logs correlate with ours.
const HeaderRequestID = "X-Request-ID"

// Config points the client at the backend.
type Config struct {
	BaseURL    string
	APIVersion string
	Token      string
	Timeout    time.Duration
	UserAgent  string
}

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxRetries  int
	RetryDelay  time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	ShouldRetry func(resp *http.Response, err error) bool
	// Methods lists the HTTP methods that may be retried. Empty means
	// DefaultRetryMethods.
	Methods []string
}

// DefaultRetryMethods are the methods retried unless RetryConfig.Methods
// says otherwise. Writes are sent once.
var DefaultRetryMethods = []string{http.MethodGet, http.MethodHead, http.MethodOptions}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:  2,
		RetryDelay:  200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2.0,
		ShouldRetry: RetryOnServerError,
	}
}

// RetryOnServerError retries transport errors, 5xx and 429 responses.
// Context cancellation is never retried.
func RetryOnServerError(resp *http.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	return resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
}

func (rc RetryConfig) allows(method string) bool {
	return slices.Contains(rc.Methods, strings.ToUpper(method))
}

// Client talks JSON to the backend.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	apiVersion  string
	headers     map[string]string
	retryConfig RetryConfig
	mu          sync.RWMutex
}

// NewClient creates a client. A nil retry config uses DefaultRetryConfig.
func NewClient(cfg Config, retryCfg *RetryConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q is not absolute", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "orderdesk/1.0"
	}

	if retryCfg == nil {
		defaultCfg := DefaultRetryConfig()
		retryCfg = &defaultCfg
	}
	if retryCfg.ShouldRetry == nil {
		retryCfg.ShouldRetry = RetryOnServerError
	}
	if retryCfg.Multiplier <= 0 {
		retryCfg.Multiplier = 2.0
	}
	if len(retryCfg.Methods) == 0 {
		retryCfg.Methods = DefaultRetryMethods
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	client := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		baseURL:     base,
		apiVersion:  strings.Trim(cfg.APIVersion, "/"),
		headers:     make(map[string]string),
		retryConfig: *retryCfg,
	}

	client.headers["Content-Type"] = "application/json"
	client.headers["Accept"] = "application/json"
	client.headers["User-Agent"] = cfg.UserAgent
	if cfg.Token != "" {
		client.headers["Authorization"] = "Bearer " + cfg.Token
	}

	return client, nil
}

// Request represents an HTTP request to be executed.
type Request struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	Body        any
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
	Attempts   int
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Err returns an *APIError for a non-2xx response, nil otherwise.
func (r *Response) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return parseAPIError(r.StatusCode, r.Body)
}

// Do executes req with retry logic. A non-2xx final response is returned
// without error; use Response.Err to convert it.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u, err := c.buildURL(req.Path, req.QueryParams)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}

	var body []byte
	if req.Body != nil {
		body, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
	}

	var (
		lastResp *Response
		lastErr  error
	)
	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.calculateBackoff(attempt)); err != nil {
				return nil, err
			}
		}

		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
		if err != nil {
			return nil, fmt.Errorf("creating HTTP request: %w", err)
		}
		c.setHeaders(ctx, httpReq, req.Headers)

		start := time.Now()
		httpResp, err := c.httpClient.Do(httpReq)
		resp := &Response{Duration: time.Since(start), Attempts: attempt + 1}

		if err == nil {
			resp.StatusCode = httpResp.StatusCode
			resp.Headers = httpResp.Header
			resp.Body, err = io.ReadAll(httpResp.Body)
			_ = httpResp.Body.Close()
			if err != nil {
				err = fmt.Errorf("reading response body: %w", err)
			}
		}

		lastResp, lastErr = resp, err
		if err != nil {
			lastResp = nil
		}

		if attempt < c.retryConfig.MaxRetries && c.retryConfig.allows(req.Method) && c.retryConfig.ShouldRetry(httpResp, err) {
			logger.L(ctx).Debug("Retrying backend request",
				zap.String("method", req.Method),
				zap.String("path", u.Path),
				zap.Int("attempt", attempt+1),
				zap.Int("status", resp.StatusCode),
			)
			continue
		}
		break
	}

	return lastResp, lastErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, queryParams map[string]string) (*Response, error) {
	return c.Do(ctx, Request{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: queryParams,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   body,
	})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   path,
	})
}

// GetJSON performs a GET and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path string, queryParams map[string]string, out any) error {
	resp, err := c.Get(ctx, path, queryParams)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// SendJSON performs method with body and decodes a 2xx body into out.
// out may be nil when the response body is not needed.
func (c *Client) SendJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, Request{Method: method, Path: path, Body: body})
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// SetHeader sets a default header for all requests.
func (c *Client) SetHeader(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[key] = value
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func decode(resp *Response, out any) error {
	if err := resp.Err(); err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// buildURL joins base URL, API version, path and query parameters.
func (c *Client) buildURL(path string, queryParams map[string]string) (*url.URL, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.apiVersion != "" && path != "/"+c.apiVersion && !strings.HasPrefix(path, "/"+c.apiVersion+"/") {
		path = "/" + c.apiVersion + path
	}

	u := *c.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	u.RawPath = ""

	if len(queryParams) > 0 {
		q := u.Query()
		for k, v := range queryParams {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return &u, nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, customHeaders map[string]string) {
	c.mu.RLock()
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()

	if id := logger.RequestID(ctx); id != "" {
		req.Header.Set(HeaderRequestID, id)
	}
	for k, v := range customHeaders {
		req.Header.Set(k, v)
	}
}

// calculateBackoff returns the delay before attempt, with ±25% jitter.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	delay := float64(c.retryConfig.RetryDelay) * math.Pow(c.retryConfig.Multiplier, float64(attempt-1))
	if c.retryConfig.MaxDelay > 0 && delay > float64(c.retryConfig.MaxDelay) {
		delay = float64(c.retryConfig.MaxDelay)
	}
	jitter := delay * 0.25
	delay += (rand.Float64()*2 - 1) * jitter
	return time.Duration(delay)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
