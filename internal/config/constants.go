package config

import "time"

// Application constants - all hardcoded values for the yard compliance system
const (
	// Application Info
	AppName    = "Yard Compliance"
	AppVersion = "1.2.0"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultUploadsDir = "data/uploads"
	DefaultReportsDir = "data/reports"

	// Operation Timeouts
	ReconcileTimeout        = 5 * time.Minute
	ReportGenerationTimeout = 15 * time.Minute

	// Log Settings
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "json"
	MaxLogFileSize    = 100 * 1024 * 1024 // 100MB
	MaxLogFileAge     = 30                // days
	MaxLogFileBackups = 10

	// API Endpoints (internal)
	APIBasePath     = "/api/v1"
	UploadsEndpoint = "/api/v1/uploads"
	DataEndpoint    = "/api/v1/data"
	ReportsEndpoint = "/api/v1/reports"
	HealthEndpoint  = "/health"
	MetricsEndpoint = "/metrics"
)
