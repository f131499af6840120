// Package config provides centralized configuration management for the yard
// compliance system. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration values
// throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern YARD_* for namespacing:
//
//	YARD_SERVER_PORT=8080
//	YARD_LOGGING_LEVEL=info
//	YARD_PATHS_SHIFT_CALENDAR_FILE=data/shift_calendar.csv
//	YARD_SECURITY_RATE_LIMIT_ENABLED=true
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	if err != nil {
//	    return err
//	}
//	if err := paths.EnsureDirectories(); err != nil {
//	    return err
//	}
//	calendarPath := paths.GetShiftCalendarPath()
//
// Paths are always resolved relative to the executable directory, never the
// current working directory, so binaries behave identically regardless of
// where they are launched from.
package config
