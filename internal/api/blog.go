package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/gego-site/internal/blog"
)

// listPosts handles GET /api/v1/blog
func (s *Server) listPosts(c *gin.Context) {
	if s.posts == nil {
		s.errorResponse(c, http.StatusServiceUnavailable, "Blog is not configured")
		return
	}

	posts, err := s.posts.List()
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to list posts: "+err.Error())
		return
	}

	s.successResponse(c, posts)
}

// getPost handles GET /api/v1/blog/:slug
func (s *Server) getPost(c *gin.Context) {
	if s.posts == nil {
		s.errorResponse(c, http.StatusServiceUnavailable, "Blog is not configured")
		return
	}

	post, err := s.posts.Get(c.Param("slug"))
	if errors.Is(err, blog.ErrPostNotFound) {
		s.errorResponse(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		s.errorResponse(c, http.StatusInternalServerError, "Failed to load post: "+err.Error())
		return
	}

	s.successResponse(c, post)
}
