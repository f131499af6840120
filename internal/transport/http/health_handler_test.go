package http

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yardcli/internal/services"
	"yardcli/internal/shiftcal"
)

func testCalendarWithDays() *shiftcal.Calendar {
	return shiftcal.New([]shiftcal.DayAssignment{
		{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Day: "Alpha", Night: "Bravo"},
	})
}

func TestHealthHandler(t *testing.T) {
	paths := testPaths(t)
	cal := shiftcal.New([]shiftcal.DayAssignment{})
	logger := slog.Default()

	t.Run("healthy", func(t *testing.T) {
		svc := testReconcileService()
		health := services.NewHealthService("1.2.0", paths, testCalendarWithDays(), svc, logger)
		handler := NewHealthHandler(health, logger)

		r := chi.NewRouter()
		r.Mount("/health", handler.Routes())
		r.Get("/api/v1/version", handler.Version)

		code, resp := getJSON(t, r, "/health")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", resp["status"])

		code, resp = getJSON(t, r, "/health/ready")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, resp["ready"])

		code, resp = getJSON(t, r, "/health/live")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "alive", resp["status"])

		code, resp = getJSON(t, r, "/api/v1/version")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "1.2.0", resp["version"])
	})

	t.Run("degraded without calendar", func(t *testing.T) {
		health := services.NewHealthService("1.2.0", paths, cal, nil, logger)
		handler := NewHealthHandler(health, logger)

		r := chi.NewRouter()
		r.Mount("/health", handler.Routes())

		code, resp := getJSON(t, r, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "degraded", resp["status"])

		code, resp = getJSON(t, r, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, false, resp["ready"])
	})
}
