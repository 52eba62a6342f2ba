package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AI2HU/gego-site/internal/backend"
	"github.com/AI2HU/gego-site/internal/blog"
	"github.com/AI2HU/gego-site/internal/logger"
	"github.com/AI2HU/gego-site/internal/models"
)

const requestIDHeader = "X-Request-ID"

// MetricsSource fetches brand data from the metrics backend
type MetricsSource interface {
	FetchMetrics(ctx context.Context, q backend.Query) (*models.BackendMetricResponse, error)
	FetchRawMetrics(ctx context.Context, q backend.Query) (json.RawMessage, error)
	FetchPrompts(ctx context.Context, q backend.Query, page, perPage int) (*models.PromptsResponse, error)
	Ping(ctx context.Context) error
}

// URLSubmitter notifies search engines about site URLs
type URLSubmitter interface {
	Key() string
	Endpoint() string
	Resolve(paths ...string) []string
	Validate(urls []string) error
	Submit(ctx context.Context, urls []string) (int, error)
}

// PostStore serves blog posts
type PostStore interface {
	List() ([]*blog.Post, error)
	Get(slug string) (*blog.Post, error)
}

// Server is the site's JSON API
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	metrics    MetricsSource
	submitter  URLSubmitter
	posts      PostStore
	corsOrigin string
}

// NewServer creates the API server. submitter and posts may be nil, in which
// case their routes answer 503.
func NewServer(metrics MetricsSource, submitter URLSubmitter, posts PostStore, corsOrigin string) *Server {
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	s := &Server{
		router:     gin.New(),
		metrics:    metrics,
		submitter:  submitter,
		posts:      posts,
		corsOrigin: corsOrigin,
	}

	s.router.Use(gin.Recovery(), s.requestIDMiddleware(), s.loggingMiddleware(), s.corsMiddleware())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/health", s.healthCheck)

		v1.GET("/metrics", s.getMetrics)
		v1.GET("/analytics", s.getAnalytics)
		v1.GET("/analytics/overview", s.getOverview)
		v1.GET("/prompts", s.getPrompts)
		v1.GET("/insights/page-window", s.getPageWindow)

		v1.POST("/indexnow", s.submitIndexNow)

		v1.GET("/blog", s.listPosts)
		v1.GET("/blog/:slug", s.getPost)
	}

	if s.submitter != nil && s.submitter.Key() != "" {
		s.router.GET("/"+s.submitter.Key()+".txt", s.serveIndexNowKey)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run(address string) error {
	s.httpServer = &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting API server on %s", address)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a running server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		format := "%s %s %d %v request_id=%s"
		args := []interface{}{c.Request.Method, c.Request.URL.Path, status, time.Since(start), c.GetString("request_id")}
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error(format, args...)
		case status >= http.StatusBadRequest:
			logger.Warning(format, args...)
		default:
			logger.Debug(format, args...)
		}
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", s.corsOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+requestIDHeader)
		c.Header("Access-Control-Expose-Headers", requestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// healthCheck handles GET /api/v1/health
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	backendOK := true
	if err := s.metrics.Ping(ctx); err != nil {
		logger.Warning("Backend health check failed: %v", err)
		backendOK = false
	}

	s.successResponse(c, gin.H{
		"status":  "ok",
		"backend": backendOK,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    data,
	})
}

// backendError maps a backend failure onto the response. Backend error status
// codes are passed through; anything else becomes 502.
func (s *Server) backendError(c *gin.Context, err error) {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, backend.ErrMissingBrand):
		s.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if msg == "" {
			msg = http.StatusText(statusErr.StatusCode)
		}
		code := statusErr.StatusCode
		if code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		s.errorResponse(c, code, msg)
	default:
		s.errorResponse(c, http.StatusBadGateway, "Metrics backend request failed: "+err.Error())
	}
}

// parseQuery reads brand_name and website, answering 400 when both are empty
func (s *Server) parseQuery(c *gin.Context) (backend.Query, bool) {
	q := backend.Query{
		BrandName: c.Query("brand_name"),
		Website:   c.Query("website"),
	}
	if err := q.Validate(); err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return q, false
	}
	return q, true
}

// parseIntQuery reads an integer query parameter, falling back on bad input
func parseIntQuery(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
