// Package indexnow notifies search engines about changed site URLs using the
// IndexNow protocol.
package indexnow

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

	"golang.org/x/time/rate"

	"github.com/AI2HU/gego-site/internal/config"
	"github.com/AI2HU/gego-site/internal/logger"
)

const (
	// DefaultEndpoint is the shared IndexNow endpoint that forwards to all engines
	DefaultEndpoint = "https://api.indexnow.org/indexnow"
	// MaxURLsPerRequest is the protocol limit for a single submission
	MaxURLsPerRequest = 10000
)

var (
	ErrNoURLs      = errors.New("no URLs to submit")
	ErrMissingKey  = errors.New("indexnow key is not configured")
	ErrMissingHost = errors.New("site host is not configured")
)

// StatusError is a rejected submission
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	reason := statusReasons[e.StatusCode]
	if reason == "" {
		reason = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("indexnow returned status %d: %s", e.StatusCode, reason)
}

var statusReasons = map[int]string{
	http.StatusBadRequest:          "invalid format",
	http.StatusForbidden:           "key not valid",
	http.StatusUnprocessableEntity: "URLs do not belong to the host or the key does not match",
	http.StatusTooManyRequests:     "too many requests",
}

// submission is the JSON body of an IndexNow POST
type submission struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation,omitempty"`
	URLList     []string `json:"urlList"`
}

// Client submits URLs of one site to an IndexNow endpoint
type Client struct {
	endpoint    string
	key         string
	keyLocation string
	siteURL     *url.URL
	client      *http.Client
	limiter     *rate.Limiter
}

// New creates a client for the site at siteURL
func New(cfg config.IndexNowConfig, siteURL string) (*Client, error) {
	if cfg.Key == "" {
		return nil, ErrMissingKey
	}

	site, err := url.Parse(strings.TrimRight(siteURL, "/"))
	if err != nil || site.Host == "" {
		return nil, ErrMissingHost
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	keyLocation := cfg.KeyLocation
	if keyLocation == "" {
		keyLocation = site.String() + "/" + cfg.Key + ".txt"
	}

	return &Client{
		endpoint:    endpoint,
		key:         cfg.Key,
		keyLocation: keyLocation,
		siteURL:     site,
		client:      &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Key returns the verification key served at the key location
func (c *Client) Key() string {
	return c.key
}

// Endpoint returns the endpoint submissions are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Resolve turns site paths like "/pricing" into absolute URLs on the site host.
// Absolute URLs are returned as they are.
func (c *Client) Resolve(paths ...string) []string {
	urls := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			urls = append(urls, p)
			continue
		}
		u := *c.siteURL
		u.Path = "/" + strings.TrimLeft(p, "/")
		urls = append(urls, u.String())
	}
	return urls
}

// Validate checks that every URL is absolute and belongs to the site host
func (c *Client) Validate(urls []string) error {
	if len(urls) == 0 {
		return ErrNoURLs
	}
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid URL %q", raw)
		}
		if !strings.EqualFold(u.Hostname(), c.siteURL.Hostname()) {
			return fmt.Errorf("URL %q does not belong to host %s", raw, c.siteURL.Hostname())
		}
	}
	return nil
}

// Submit posts the URLs in batches and returns the status of the last batch
func (c *Client) Submit(ctx context.Context, urls []string) (int, error) {
	if err := c.Validate(urls); err != nil {
		return 0, err
	}

	status := 0
	for start := 0; start < len(urls); start += MaxURLsPerRequest {
		end := min(start+MaxURLsPerRequest, len(urls))

		var err error
		status, err = c.submitBatch(ctx, urls[start:end])
		if err != nil {
			return status, err
		}
	}

	logger.Info("Submitted %d URLs to IndexNow (status %d)", len(urls), status)
	return status, nil
}

func (c *Client) submitBatch(ctx context.Context, urls []string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	body, err := json.Marshal(submission{
		Host:        c.siteURL.Hostname(),
		Key:         c.key,
		KeyLocation: c.keyLocation,
		URLList:     urls,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to submit URLs: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted:
		return resp.StatusCode, nil
	default:
		return resp.StatusCode, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}
}
