package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleV1ListTelescopes returns the whole catalog
// GET /api/v1/catalog/telescopes
func (s *Server) handleV1ListTelescopes(c *gin.Context) {
	telescopes := s.planner.Catalog().Telescopes()
	c.JSON(http.StatusOK, gin.H{
		"data": telescopes,
		"meta": gin.H{
			"count": len(telescopes),
		},
	})
}

// handleV1GetTelescope returns a single telescope
// GET /api/v1/catalog/telescopes/:id
func (s *Server) handleV1GetTelescope(c *gin.Context) {
	telescope, ok := s.planner.Catalog().Telescope(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "telescope not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": telescope,
	})
}

// handleV1GetInstrument returns an instrument and the telescope carrying it
// GET /api/v1/catalog/instruments/:id
func (s *Server) handleV1GetInstrument(c *gin.Context) {
	instrument, telescope, ok := s.planner.Catalog().Instrument(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "instrument not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"instrument": instrument,
			"telescope":  telescope,
		},
	})
}
