// Package redflag contains Red-Flag tests that prove the system correctly
// refuses unsafe or invalid operations. These tests must be written BEFORE
// implementation.
//
// Per docs/test.md: "Red-Flag tests assert that the system REFUSES to
// execute behavior that violates a stated invariant."
package redflag

// This package contains Red-Flag tests organized by component:
// - axioms_test.go: Filter axiom violations are refused at construction
// - universe_test.go: Universe limits and cross-universe operations
// - workspace_test.go: Invalid workspaces never apply
// - exercise_test.go: Malformed exercises are refused
// - gateway_test.go: Gateway error handling and mandatory auditing
// - storage_test.go: Attempt store rejects invalid records and surfaces failures
