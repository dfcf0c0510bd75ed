package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/heroic-planner/services/api/planner"
)

// handleV1GetFilters returns the current filter state
// GET /api/v1/filters
func (s *Server) handleV1GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.planner.Filters().Snapshot(),
	})
}

// handleV1PutFilters replaces the filter state
// PUT /api/v1/filters
func (s *Server) handleV1PutFilters(c *gin.Context) {
	var next planner.FilterState
	if err := c.ShouldBindJSON(&next); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter body: " + err.Error()})
		return
	}

	if err := s.planner.Filters().Replace(next); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, planner.ErrInvalidFilters) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": s.planner.Filters().Snapshot(),
	})
}

// handleV1FilterPayload previews the body the next visibility query would send
// GET /api/v1/filters/payload
func (s *Server) handleV1FilterPayload(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": planner.BuildPayload(s.planner.Filters().Snapshot()),
	})
}
