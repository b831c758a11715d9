// Package greenflag contains Green-Flag tests that prove the system correctly
// succeeds on explicitly safe behavior. These tests validate happy paths.
//
// Per docs/test.md: "Green-Flag tests prove the system succeeds on
// explicitly safe behavior."
package greenflag

// This package contains Green-Flag tests organized by component:
// - workspace_test.go: Valid workspaces load, validate, and apply
// - laws_test.go: Lattice and transport laws hold end to end
// - check_flow_test.go: Well-formed exercises check to the right verdicts
// - audit_persistence_test.go: Attempts survive in the SQLite store
// - readiness_test.go: Gateway health and readiness with a healthy store
// - client_test.go: CLI gateway client against a live gateway
