package api

import (
	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gego-site/internal/analytics"
)

// getPrompts handles GET /api/v1/prompts
func (s *Server) getPrompts(c *gin.Context) {
	q, ok := s.parseQuery(c)
	if !ok {
		return
	}

	page, perPage := analytics.NormalizePageRequest(
		parseIntQuery(c, "page", 1),
		parseIntQuery(c, "per_page", analytics.DefaultPageSize),
	)

	resp, err := s.metrics.FetchPrompts(c.Request.Context(), q, page, perPage)
	if err != nil {
		s.backendError(c, err)
		return
	}

	s.successResponse(c, analytics.BuildPromptsPage(resp))
}
