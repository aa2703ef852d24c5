// Package handler contains HTTP handlers for the API.
// Handlers parse requests, call use case methods and hand results or errors
// to the response package.
package handler

import (
	"github.com/gin-gonic/gin"

	"qaboard/src/app/http/response"
	"qaboard/src/core/usecase"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	healthService *usecase.HealthService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(healthService *usecase.HealthService) *HealthHandler {
	return &HealthHandler{
		healthService: healthService,
	}
}

// HealthResponse is the response for the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports that the process is serving.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, HealthResponse{Status: "ok"})
}

// DetailedHealth returns component status, including the database.
// GET /health/detailed
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	response.OK(c, h.healthService.Check(c.Request.Context()))
}
