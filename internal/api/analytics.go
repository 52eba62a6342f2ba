package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc/pool"

	"github.com/AI2HU/gego-site/internal/analytics"
	"github.com/AI2HU/gego-site/internal/models"
)

// getMetrics handles GET /api/v1/metrics
func (s *Server) getMetrics(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}

	raw, err := s.metrics.FetchRawMetrics(c.Request.Context(), q)
	if err != nil {
		s.backendError(c, err)
		return
	}

	s.successResponse(c, raw)
}

// getAnalytics handles GET /api/v1/analytics
func (s *Server) getAnalytics(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}

	m, err := s.metrics.FetchMetrics(c.Request.Context(), q)
	if err != nil {
		s.backendError(c, err)
		return
	}

	s.successResponse(c, analytics.BuildDashboard(q.Label(), m))
}

// getOverview handles GET /api/v1/analytics/overview
func (s *Server) getOverview(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}

	var (
		metrics *models.BackendMetricResponse
		prompts *models.PromptsResponse
	)

	p := pool.New().WithContext(c.Request.Context()).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		metrics, err = s.metrics.FetchMetrics(ctx, q)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		prompts, err = s.metrics.FetchPrompts(ctx, q, 1, analytics.DefaultPageSize)
		return err
	})

	if err := p.Wait(); err != nil {
		s.backendError(c, err)
		return
	}

	s.successResponse(c, models.AnalyticsOverview{
		Dashboard: analytics.BuildDashboard(q.Label(), metrics),
		Prompts:   analytics.BuildPromptsPage(prompts),
	})
}

// getPageWindow handles GET /api/v1/insights/page-window
func (s *Server) getPageWindow(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	totalPages := parseIntQuery(c, "total_pages", 1)
	if totalPages < 1 {
		s.errorResponse(c, http.StatusBadRequest, "total_pages must be at least 1")
		return
	}

	s.successResponse(c, analytics.ComputePageWindow(page, totalPages))
}
