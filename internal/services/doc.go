// Package services implements the business logic layer of the yard
// compliance application. It provides a clean separation between HTTP
// handlers and data processing, ensuring that business rules are
// centralized and testable.
//
// # Available Services
//
//	- ReconcileService: owns the cleaned source tables and the
//	  reconciled compliance table; uploads replace one table in full
//	  and trigger a recompute
//	- DataService: lists and serves generated CSV reports from disk
//	- HealthService: liveness, readiness, and dependency checks
//
// # Common Service Pattern
//
// Services follow constructor injection:
//
//	type ServiceName struct {
//	    paths  *config.Paths
//	    logger *slog.Logger
//	}
//
//	func NewServiceName(paths *config.Paths, logger *slog.Logger) *ServiceName {
//	    return &ServiceName{paths: paths, logger: logger}
//	}
//
// All blocking operations take a context.Context for cancellation and
// trace propagation.
//
// # Error Handling
//
// Services return the sentinel errors in errors.go so handlers can map
// them to HTTP status codes without string matching:
//
//	- ErrNoReportsFound, ErrTableNotReady for empty state
//	- ErrInvalidInput, ErrInvalidFileType for bad requests
//	- ErrFileNotFound for missing resources
package services
