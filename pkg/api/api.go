// Package api defines the public API endpoints for the filtra lab gateway.
package api

// API version
const Version = "0.1.0"

// API endpoints
const (
	EndpointCheck        = "/api/v1/check"
	EndpointExercises    = "/api/v1/exercises"
	EndpointFilters      = "/api/v1/filters"
	EndpointAuditSummary = "/api/v1/audit/summary"
	EndpointHealth       = "/health"
	EndpointReady        = "/ready"
)

// HTTP headers
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	HeaderCheckID     = "X-Check-ID"
)

// Content types
const (
	ContentTypeJSON = "application/json"
)
