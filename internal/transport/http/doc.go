// Package http holds the HTTP handlers for the yard compliance web
// service. Handlers stay thin: they parse the request, call a service,
// and shape the response; the business rules live in internal/services.
//
// # Handlers
//
//	- UploadHandler: multipart upload of the three warehouse exports;
//	  each accepted file replaces one source table in full and triggers
//	  a recompute of the compliance table
//	- DataHandler: cleaned tables and the compliance table as JSON,
//	  report listing, CSV download
//	- HealthHandler: health, readiness, liveness, version
//
// # Error Handling
//
// Every error response is an RFC 7807 problem document:
//
//	{
//	    "type": "validation_error",
//	    "title": "Invalid request data",
//	    "status": 400,
//	    "detail": "Upload source must be one of: activity, orders, trailers",
//	    "instance": "/api/v1/uploads/tickets"
//	}
//
// Handlers map service sentinel errors to problems through the shared
// ErrorHandler rather than matching on message strings.
//
// # Testing
//
// Handler tests run httptest against real services backed by t.TempDir,
// asserting on status codes and response shapes.
package http
