package handlers

import (
	"context"
	"net/http"
	"time"

	"registration-service/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency; a nil error means healthy. Details, when
// set, adds the component's own figures to the report.
type HealthCheck struct {
	Name    string
	Probe   func(ctx context.Context) error
	Details func() any
}

type ComponentHealth struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/registration/public/api/v1/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	components := make(map[string]ComponentHealth, len(h.checks))
	for _, check := range h.checks {
		component := ComponentHealth{Status: "ok"}
		if err := check.Probe(ctx); err != nil {
			component.Status = "down"
			component.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
		if check.Details != nil {
			component.Details = check.Details()
		}
		components[check.Name] = component
	}

	if status != http.StatusOK {
		c.JSON(status, utils.CreateDetailedErrorResponse("UNHEALTHY", "one or more dependencies are unavailable", components))
		return
	}
	c.JSON(status, utils.CreateSuccessResponse(components))
}
