// Package api exposes the state store and the calculation engine over HTTP.
//
// The API is a thin boundary: handlers translate JSON to store mutations and
// engine calls, and sanitize numeric input on the way in. All receipt math
// stays in internal/calculator; all state changes go through internal/state.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitsnap/splitsnap/internal/state"
)

// Server wires handlers around one state store.
type Server struct {
	store        *state.Store
	shareBaseURL string
}

// NewServer creates a Server for the given store. shareBaseURL is the public
// app address share links point at.
func NewServer(store *state.Store, shareBaseURL string) *Server {
	return &Server{store: store, shareBaseURL: shareBaseURL}
}

// Router builds the HTTP routing table.
func (s *Server) Router(corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), requestMetrics())
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	api := router.Group("/api")
	{
		api.GET("/health", s.health)

		api.GET("/receipt", s.getReceipt)
		api.GET("/state", s.getState)
		api.GET("/totals", s.getTotals)
		api.GET("/settlements", s.getSettlements)
		api.GET("/audit/:personId", s.getAuditTrail)

		api.POST("/receipt/venue", s.setVenue)
		api.POST("/receipt/currency", s.setCurrency)
		api.POST("/receipt/rounding", s.setRounding)
		api.POST("/receipt/extras", s.setExtras)
		api.POST("/receipt/payer", s.setPaidBy)

		api.POST("/people", s.addPerson)
		api.PATCH("/people/:id", s.renamePerson)
		api.DELETE("/people/:id", s.removePerson)

		api.POST("/items", s.addItem)
		api.PUT("/items", s.setItems)
		api.PATCH("/items/:id", s.updateItem)
		api.DELETE("/items/:id", s.removeItem)

		api.POST("/scan", s.importScan)

		api.POST("/undo", s.undo)
		api.POST("/reset", s.reset)

		api.GET("/share", s.makeShareLink)
		api.POST("/share", s.importShareToken)
		api.GET("/export", s.exportReceipt)
		api.POST("/import", s.importReceipt)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}
