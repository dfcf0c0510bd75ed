package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/filters, /api/v1/queries, /api/v1/catalog
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Filter endpoints - the user's current selection
	filters := v1.Group("/filters")
	{
		filters.GET("", s.handleV1GetFilters)
		filters.PUT("", s.handleV1PutFilters)
		filters.GET("/payload", s.handleV1FilterPayload)
	}

	// Query endpoints - trigger, inspect and cancel backend queries
	queries := v1.Group("/queries")
	{
		queries.GET("", s.handleV1QueryState)
		queries.GET("/:kind", s.handleV1QuerySnapshot)
		queries.POST("/:kind", s.handleV1StartQuery)
		queries.DELETE("/:kind", s.handleV1CancelQuery)
	}

	// Catalog endpoints - telescopes and instruments
	catalog := v1.Group("/catalog")
	{
		catalog.GET("/telescopes", s.handleV1ListTelescopes)
		catalog.GET("/telescopes/:id", s.handleV1GetTelescope)
		catalog.GET("/instruments/:id", s.handleV1GetInstrument)
	}
}
