// Package app wires the yard compliance web service together: it loads
// configuration, initializes the logger and OpenTelemetry metrics,
// resolves executable-relative paths, loads the shift calendar, builds
// the service layer, and assembles the Chi router with its middleware
// chain.
//
// The middleware ordering is fixed: RequestID → RealIP → OTel →
// StructuredLogger → Recoverer → SecurityHeaders → CORS → RateLimiter.
// Upload routes run under the reconcile timeout, everything else under
// the server read timeout. The Prometheus endpoint is mounted outside
// the JSON API group.
//
// Run blocks until SIGINT or SIGTERM, then shuts the server down
// gracefully within the configured shutdown timeout.
package app
