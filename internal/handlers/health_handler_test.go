package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ok := HealthCheck{Name: "postgres", Probe: func(context.Context) error { return nil }}
	down := HealthCheck{
		Name:    "rabbitmq",
		Probe:   func(context.Context) error { return errors.New("connection closed") },
		Details: func() any { return map[string]any{"messages_failed": 2} },
	}

	router := gin.New()
	NewHealthHandler(ok).RegisterRoutes(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registration/public/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	router = gin.New()
	NewHealthHandler(ok, down).RegisterRoutes(router)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registration/public/api/v1/health", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var components map[string]ComponentHealth
	require.NoError(t, json.Unmarshal(env.Error.Details, &components))
	assert.Equal(t, "ok", components["postgres"].Status)
	assert.Nil(t, components["postgres"].Details)
	assert.Equal(t, "down", components["rabbitmq"].Status)
	assert.Equal(t, "connection closed", components["rabbitmq"].Error)
	assert.Equal(t, map[string]any{"messages_failed": float64(2)}, components["rabbitmq"].Details)
}
