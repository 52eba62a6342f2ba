// Package backend is the HTTP client for the metrics backend that tracks brand
// mentions across LLMs.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AI2HU/gego-site/internal/config"
	"github.com/AI2HU/gego-site/internal/logger"
	"github.com/AI2HU/gego-site/internal/models"
)

// maxErrorBody caps how much of an error response is kept in a StatusError
const maxErrorBody = 512

// ErrMissingBrand is returned when a query names neither a brand nor a website
var ErrMissingBrand = errors.New("brand_name or website is required")

// StatusError is a non-2xx answer from the backend
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// Query identifies the brand to fetch data for
type Query struct {
	BrandName string
	Website   string
}

// Validate checks that the query names a brand or a website
func (q Query) Validate() error {
	if strings.TrimSpace(q.BrandName) == "" && strings.TrimSpace(q.Website) == "" {
		return ErrMissingBrand
	}
	return nil
}

// Label is the name to show for the queried brand
func (q Query) Label() string {
	if q.BrandName != "" {
		return q.BrandName
	}
	return q.Website
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.BrandName != "" {
		v.Set("brand_name", q.BrandName)
	}
	if q.Website != "" {
		v.Set("website", q.Website)
	}
	return v
}

// Client fetches metrics and prompts from the backend
type Client struct {
	baseURL     string
	metricsPath string
	promptsPath string
	client      *http.Client
	limiter     *rate.Limiter
}

// New creates a backend client from configuration
func New(cfg config.BackendConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		metricsPath: cfg.MetricsPath,
		promptsPath: cfg.PromptsPath,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
	}
}

// FetchMetrics returns the metrics payload for a brand
func (c *Client) FetchMetrics(ctx context.Context, q Query) (*models.BackendMetricResponse, error) {
	body, err := c.FetchRawMetrics(ctx, q)
	if err != nil {
		return nil, err
	}

	var metrics models.BackendMetricResponse
	if err := json.Unmarshal(body, &metrics); err != nil {
		return nil, fmt.Errorf("failed to decode metrics: %w", err)
	}
	return &metrics, nil
}

// FetchRawMetrics returns the metrics payload without decoding it
func (c *Client) FetchRawMetrics(ctx context.Context, q Query) (json.RawMessage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	body, err := c.get(ctx, c.metricsPath, q.values())
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to decode metrics: backend returned %d bytes of non-JSON", len(body))
	}
	return body, nil
}

// FetchPrompts returns one page of tracked prompts for a brand
func (c *Client) FetchPrompts(ctx context.Context, q Query, page, perPage int) (*models.PromptsResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	params := q.values()
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	body, err := c.get(ctx, c.promptsPath, params)
	if err != nil {
		return nil, err
	}

	var prompts models.PromptsResponse
	if err := json.Unmarshal(body, &prompts); err != nil {
		return nil, fmt.Errorf("failed to decode prompts: %w", err)
	}
	return &prompts, nil
}

// Ping reports whether the backend answers HTTP requests at all
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	logger.Debug("GET %s -> %d in %v", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	return unwrapEnvelope(body), nil
}

// envelope is the {success, data, error} wrapper some backend routes use
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func unwrapEnvelope(body []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Success != nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}

func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}
