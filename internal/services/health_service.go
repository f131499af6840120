package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"yardcli/internal/config"
	"yardcli/internal/shiftcal"
)

// ServiceHealth captures the health of one dependency
type ServiceHealth struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthStatus is the aggregate health report
type HealthStatus struct {
	Status    string                   `json:"status"`
	Version   string                   `json:"version"`
	Timestamp time.Time                `json:"timestamp"`
	Uptime    string                   `json:"uptime"`
	Services  map[string]ServiceHealth `json:"services"`
}

// HealthService reports on the health of the application and its
// on-disk dependencies.
type HealthService struct {
	version   string
	startTime time.Time
	paths     *config.Paths
	calendar  *shiftcal.Calendar
	reconcile *ReconcileService
	logger    *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(version string, paths *config.Paths, calendar *shiftcal.Calendar, reconcile *ReconcileService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startTime: time.Now(),
		paths:     paths,
		calendar:  calendar,
		reconcile: reconcile,
		logger:    logger,
	}
}

// HealthCheck returns the full health report. Overall status is
// "degraded" if any dependency check fails.
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	services := map[string]ServiceHealth{
		"directories":    s.checkDirectories(),
		"shift_calendar": s.checkCalendar(),
		"reconcile":      s.checkReconcile(),
	}

	overall := "healthy"
	for name, svc := range services {
		if svc.Status != "healthy" {
			overall = "degraded"
			s.logger.WarnContext(ctx, "dependency unhealthy",
				slog.String("service", name),
				slog.String("message", svc.Message))
		}
	}

	return HealthStatus{
		Status:    overall,
		Version:   s.version,
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Services:  services,
	}
}

// LivenessCheck reports whether the process is running
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]any {
	return map[string]any{
		"status":    "alive",
		"timestamp": time.Now(),
		"uptime":    time.Since(s.startTime).Round(time.Second).String(),
	}
}

// ReadinessCheck reports whether the service can accept traffic. The
// service is ready once the shift calendar is loaded and the data
// directories exist; an empty compliance table does not block readiness.
func (s *HealthService) ReadinessCheck(ctx context.Context) (bool, map[string]any) {
	dirs := s.checkDirectories()
	cal := s.checkCalendar()
	ready := dirs.Status == "healthy" && cal.Status == "healthy"

	return ready, map[string]any{
		"ready":          ready,
		"directories":    dirs.Status,
		"shift_calendar": cal.Status,
		"timestamp":      time.Now(),
	}
}

// Version returns build and runtime information
func (s *HealthService) Version(ctx context.Context) map[string]any {
	return map[string]any{
		"version":    s.version,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"start_time": s.startTime,
	}
}

func (s *HealthService) checkDirectories() ServiceHealth {
	for _, dir := range []string{s.paths.DataDir, s.paths.UploadsDir, s.paths.ReportsDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return ServiceHealth{
				Status:  "unhealthy",
				Message: "required directory missing",
				Details: map[string]any{"dir": dir},
			}
		}
	}
	return ServiceHealth{Status: "healthy"}
}

func (s *HealthService) checkCalendar() ServiceHealth {
	if s.calendar == nil || s.calendar.Len() == 0 {
		return ServiceHealth{
			Status:  "unhealthy",
			Message: "shift calendar not loaded",
		}
	}
	return ServiceHealth{
		Status:  "healthy",
		Details: map[string]any{"days": s.calendar.Len()},
	}
}

func (s *HealthService) checkReconcile() ServiceHealth {
	if s.reconcile == nil {
		return ServiceHealth{
			Status:  "unhealthy",
			Message: "reconcile service not initialized",
		}
	}
	status := s.reconcile.Status()
	health := ServiceHealth{
		Status: "healthy",
		Details: map[string]any{
			"runs":       status.Runs,
			"orders":     status.Orders,
			"trailers":   status.Trailers,
			"compliance": status.Compliance,
		},
	}
	if status.Runs == 0 {
		health.Message = "no reconciliation run yet"
	}
	return health
}
