package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/AI2HU/gego-site/internal/logger"
)

// Retry configuration constants
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 30 * time.Second
)

// Submitter sends site URLs to search engines
type Submitter interface {
	Resolve(paths ...string) []string
	Submit(ctx context.Context, urls []string) (int, error)
}

// PostLister lists the slugs of published blog posts
type PostLister interface {
	Slugs() ([]string, error)
}

// Scheduler periodically resubmits the site's pages to IndexNow
type Scheduler struct {
	submitter   Submitter
	posts       PostLister
	staticPaths []string
	cronExpr    string
	cron        *cron.Cron
	running     bool
	mu          sync.RWMutex

	MaxRetries int
	RetryDelay time.Duration
}

// New creates a new scheduler. posts may be nil when the site has no blog.
func New(submitter Submitter, posts PostLister, staticPaths []string, cronExpr string) *Scheduler {
	return &Scheduler{
		submitter:   submitter,
		posts:       posts,
		staticPaths: staticPaths,
		cronExpr:    cronExpr,
		cron:        cron.New(),
		MaxRetries:  DefaultMaxRetries,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Start registers the resubmission job and starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if err := s.registerSchedule(ctx); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	logger.Info("Scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false

	logger.Info("Scheduler stopped")
}

// Running reports whether the scheduler has been started
func (s *Scheduler) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// registerSchedule registers the resubmission job with cron
func (s *Scheduler) registerSchedule(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cronExpr, func() {
		if _, err := s.ExecuteNow(ctx); err != nil {
			logger.Error("Failed to resubmit site URLs: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	logger.Info("Registered IndexNow resubmission with cron expression: %s", s.cronExpr)
	return nil
}

// URLs returns the absolute URLs of the static pages and every published post
func (s *Scheduler) URLs() ([]string, error) {
	paths := append([]string{}, s.staticPaths...)

	if s.posts != nil {
		slugs, err := s.posts.Slugs()
		if err != nil {
			return nil, fmt.Errorf("failed to list blog posts: %w", err)
		}
		for _, slug := range slugs {
			paths = append(paths, "/blog/"+slug)
		}
	}

	return s.submitter.Resolve(paths...), nil
}

// ExecuteNow resubmits all site URLs immediately and returns how many were sent
func (s *Scheduler) ExecuteNow(ctx context.Context) (int, error) {
	runID := uuid.New().String()

	urls, err := s.URLs()
	if err != nil {
		return 0, err
	}
	if len(urls) == 0 {
		logger.Warning("Run %s: no URLs to submit", runID)
		return 0, nil
	}

	logger.Info("Run %s: submitting %d URLs", runID, len(urls))
	if err := s.submitWithRetry(ctx, urls); err != nil {
		return 0, err
	}

	logger.Info("Run %s: completed", runID)
	return len(urls), nil
}

// submitWithRetry submits the URLs, retrying failed attempts after RetryDelay
func (s *Scheduler) submitWithRetry(ctx context.Context, urls []string) error {
	maxRetries := max(1, s.MaxRetries)
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		_, err := s.submitter.Submit(ctx, urls)
		if err == nil {
			if attempt > 1 {
				logger.Info("Submission succeeded on attempt %d after %d previous failures", attempt, attempt-1)
			}
			return nil
		}

		lastErr = err
		logger.Warning("Attempt %d/%d failed: %v", attempt, maxRetries, err)

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.RetryDelay):
			}
		}
	}

	return fmt.Errorf("failed after %d attempts, last error: %w", maxRetries, lastErr)
}
