package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gego-site/internal/indexnow"
	"github.com/AI2HU/gego-site/internal/models"
)

// submitIndexNow handles POST /api/v1/indexnow
func (s *Server) submitIndexNow(c *gin.Context) {
	if s.submitter == nil {
		s.errorResponse(c, http.StatusServiceUnavailable, "IndexNow is not configured")
		return
	}

	var req models.IndexNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if len(req.URLs) > indexnow.MaxURLsPerRequest {
		s.errorResponse(c, http.StatusBadRequest, "Too many URLs (max 10000)")
		return
	}

	urls := s.submitter.Resolve(req.URLs...)
	if err := s.submitter.Validate(urls); err != nil {
		s.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	status, err := s.submitter.Submit(c.Request.Context(), urls)
	if err != nil {
		s.errorResponse(c, http.StatusBadGateway, "Failed to submit URLs: "+err.Error())
		return
	}

	s.successResponse(c, models.IndexNowResult{
		Submitted: len(urls),
		Status:    status,
		Endpoint:  s.submitter.Endpoint(),
	})
}

// serveIndexNowKey serves the key verification file at /<key>.txt
func (s *Server) serveIndexNowKey(c *gin.Context) {
	c.String(http.StatusOK, s.submitter.Key())
}
