package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/heroic-planner/services/api/planner"
)

// handleV1QueryState returns every coordinator snapshot
// GET /api/v1/queries
func (s *Server) handleV1QueryState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.planner.State(),
		"meta": gin.H{
			"generated_at": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// handleV1QuerySnapshot returns one coordinator snapshot
// GET /api/v1/queries/:kind
func (s *Server) handleV1QuerySnapshot(c *gin.Context) {
	coordinator, ok := s.coordinator(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data": coordinator.Snapshot(),
	})
}

// handleV1StartQuery triggers a query; visibility also chains airmass
// POST /api/v1/queries/:kind
func (s *Server) handleV1StartQuery(c *gin.Context) {
	coordinator, ok := s.coordinator(c)
	if !ok {
		return
	}
	status := http.StatusAccepted
	if err := s.planner.Query(coordinator.Kind()); err != nil {
		var qerr *planner.QueryError
		if !errors.As(err, &qerr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		status = http.StatusUnprocessableEntity
	}

	c.JSON(status, gin.H{
		"data": coordinator.Snapshot(),
	})
}

// handleV1CancelQuery aborts the in-flight request of a coordinator
// DELETE /api/v1/queries/:kind
func (s *Server) handleV1CancelQuery(c *gin.Context) {
	coordinator, ok := s.coordinator(c)
	if !ok {
		return
	}
	cancelled := coordinator.Cancel()
	c.JSON(http.StatusOK, gin.H{
		"data": coordinator.Snapshot(),
		"meta": gin.H{
			"cancelled": cancelled,
		},
	})
}

func (s *Server) coordinator(c *gin.Context) (*planner.Coordinator, bool) {
	kind, err := planner.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	coordinator, err := s.planner.Coordinator(kind)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return coordinator, true
}
