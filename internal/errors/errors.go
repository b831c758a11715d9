// Package errors provides explicit, human-readable error types for filtra.
// All errors must include a Reason and Suggestion for actionable feedback.
//
// Per docs/plan.md: "Errors must be understandable. If you can't explain the
// failure, don't ship it."
package errors

import (
	"errors"
	"fmt"
)

// FiltraError is the base error type for all filtra errors.
// Every error must provide a human-readable reason and suggestion.
type FiltraError struct {
	Code       ErrorCode
	Message    string
	Reason     string
	Suggestion string
	Cause      error
}

// ErrorCode represents the category of error for exit code mapping.
type ErrorCode int

const (
	CodeValidation ErrorCode = 1
	CodeCheck      ErrorCode = 2
	CodeWorkspace  ErrorCode = 3
	CodeInternal   ErrorCode = 4
)

func (e *FiltraError) Error() string {
	msg := e.Message
	if e.Reason != "" {
		msg = fmt.Sprintf("%s\nReason: %s", msg, e.Reason)
	}
	if e.Suggestion != "" {
		msg = fmt.Sprintf("%s\nSuggestion: %s", msg, e.Suggestion)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s\nCaused by: %v", msg, e.Cause)
	}
	return msg
}

func (e *FiltraError) Unwrap() error {
	return e.Cause
}

func (e *FiltraError) base() *FiltraError {
	return e
}

// AsFiltraError extracts the embedded FiltraError from any filtra error
// type, walking wrapped causes. The second return is false for foreign
// errors.
func AsFiltraError(err error) (*FiltraError, bool) {
	for err != nil {
		if fe, ok := err.(interface{ base() *FiltraError }); ok {
			return fe.base(), true
		}
		err = errors.Unwrap(err)
	}
	return nil, false
}

// Axiom identifies one of the three filter axioms.
type Axiom string

const (
	AxiomFullMember          Axiom = "FULL_CARRIER_MEMBER"
	AxiomUpwardClosure       Axiom = "UPWARD_CLOSURE"
	AxiomIntersectionClosure Axiom = "INTERSECTION_CLOSURE"
)

// ErrAxiomViolation is returned when a candidate member family does not
// satisfy the three filter axioms at construction time.
type ErrAxiomViolation struct {
	FiltraError
	Axiom          Axiom
	Counterexample string
}

// NewAxiomViolation creates a new ErrAxiomViolation.
// counterexample names a set witnessing the failure, rendered as "{a, b}".
func NewAxiomViolation(axiom Axiom, counterexample, detail string) *ErrAxiomViolation {
	return &ErrAxiomViolation{
		FiltraError: FiltraError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("filter axiom %s violated", axiom),
			Reason:     detail,
			Suggestion: "close the member family under supersets and pairwise intersections, and include the full carrier",
		},
		Axiom:          axiom,
		Counterexample: counterexample,
	}
}

// ErrUniverseMismatch is returned when an operation combines values drawn
// from different universes.
type ErrUniverseMismatch struct {
	FiltraError
	Left  string
	Right string
}

// NewUniverseMismatch creates a new ErrUniverseMismatch.
func NewUniverseMismatch(operation, left, right string) *ErrUniverseMismatch {
	return &ErrUniverseMismatch{
		FiltraError: FiltraError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("%s requires operands over the same universe", operation),
			Reason:     fmt.Sprintf("left operand is over %s, right operand is over %s", left, right),
			Suggestion: "transport one operand with map or comap along a mapping between the universes",
		},
		Left:  left,
		Right: right,
	}
}

// ErrNotFound is returned when a catalog lookup fails.
type ErrNotFound struct {
	FiltraError
	Kind string
	Name string
}

// NewUniverseNotFound creates a lookup error for an unknown universe.
func NewUniverseNotFound(name string) *ErrNotFound {
	return newNotFound("universe", name, "list universes with 'filtra workspace show'")
}

// NewFilterNotFound creates a lookup error for an unknown filter.
func NewFilterNotFound(name string) *ErrNotFound {
	return newNotFound("filter", name, "list filters with 'filtra filter list'")
}

// NewMappingNotFound creates a lookup error for an unknown mapping.
func NewMappingNotFound(name string) *ErrNotFound {
	return newNotFound("mapping", name, "list mappings with 'filtra workspace show'")
}

// NewExerciseNotFound creates a lookup error for an unknown exercise.
func NewExerciseNotFound(name string) *ErrNotFound {
	return newNotFound("exercise", name, "list exercises with 'filtra exercise list'")
}

// NewAttemptNotFound creates a lookup error for an unknown check attempt.
func NewAttemptNotFound(checkID string) *ErrNotFound {
	return newNotFound("attempt", checkID, "list recorded attempts with 'filtra audit list'")
}

func newNotFound(kind, name, suggestion string) *ErrNotFound {
	return &ErrNotFound{
		FiltraError: FiltraError{
			Code:       CodeValidation,
			Message:    fmt.Sprintf("%s not found: %s", kind, name),
			Reason:     fmt.Sprintf("no %s registered with this name", kind),
			Suggestion: suggestion,
		},
		Kind: kind,
		Name: name,
	}
}

// ErrInvalidExercise is returned when an exercise definition is invalid.
type ErrInvalidExercise struct {
	FiltraError
	Field string
}

// NewInvalidExercise creates a new ErrInvalidExercise.
func NewInvalidExercise(field, reason string) *ErrInvalidExercise {
	return &ErrInvalidExercise{
		FiltraError: FiltraError{
			Code:       CodeValidation,
			Message:    "invalid exercise definition",
			Reason:     fmt.Sprintf("field '%s': %s", field, reason),
			Suggestion: "check the exercise schema in docs/plan.md",
		},
		Field: field,
	}
}

// ErrInvalidWorkspace is returned when a workspace configuration is invalid.
type ErrInvalidWorkspace struct {
	FiltraError
	Section string
}

// NewInvalidWorkspace creates a new ErrInvalidWorkspace.
func NewInvalidWorkspace(section, reason string) *ErrInvalidWorkspace {
	return &ErrInvalidWorkspace{
		FiltraError: FiltraError{
			Code:       CodeWorkspace,
			Message:    "invalid workspace configuration",
			Reason:     fmt.Sprintf("section '%s': %s", section, reason),
			Suggestion: "validate the file with 'filtra workspace validate' and fix the reported section",
		},
		Section: section,
	}
}

// ErrInvalidMapping is returned when a mapping definition is not total or
// maps outside its target universe.
type ErrInvalidMapping struct {
	FiltraError
	Element string
}

// NewInvalidMapping creates a new ErrInvalidMapping.
func NewInvalidMapping(element, reason string) *ErrInvalidMapping {
	return &ErrInvalidMapping{
		FiltraError: FiltraError{
			Code:       CodeValidation,
			Message:    "invalid mapping definition",
			Reason:     fmt.Sprintf("element '%s': %s", element, reason),
			Suggestion: "a mapping must send every source element to an element of the target universe",
		},
		Element: element,
	}
}

// ErrCheckRejected is returned when the checker refuses an exercise before
// evaluating its goal.
type ErrCheckRejected struct {
	FiltraError
	Exercise string
}

// NewCheckRejected creates a new ErrCheckRejected.
func NewCheckRejected(exercise, reason, suggestion string) *ErrCheckRejected {
	return &ErrCheckRejected{
		FiltraError: FiltraError{
			Code:       CodeCheck,
			Message:    fmt.Sprintf("check rejected for exercise %s", exercise),
			Reason:     reason,
			Suggestion: suggestion,
		},
		Exercise: exercise,
	}
}

// ErrStorageUnavailable is returned when the attempt store cannot be reached.
type ErrStorageUnavailable struct {
	FiltraError
}

// NewStorageUnavailable creates a new ErrStorageUnavailable.
func NewStorageUnavailable(cause error) *ErrStorageUnavailable {
	return &ErrStorageUnavailable{
		FiltraError: FiltraError{
			Code:       CodeInternal,
			Message:    "attempt store unavailable",
			Reason:     "the SQLite attempt database could not be opened or queried",
			Suggestion: "check the database path with 'filtra doctor'",
			Cause:      cause,
		},
	}
}

// ErrGatewayUnavailable is returned when the gateway cannot be reached.
type ErrGatewayUnavailable struct {
	FiltraError
	Endpoint string
}

// NewGatewayUnavailable creates a new ErrGatewayUnavailable.
func NewGatewayUnavailable(endpoint, reason string) *ErrGatewayUnavailable {
	return &ErrGatewayUnavailable{
		FiltraError: FiltraError{
			Code:       CodeInternal,
			Message:    "gateway unavailable",
			Reason:     reason,
			Suggestion: "check the endpoint with 'filtra doctor' or start the gateway with 'filtra-gateway'",
		},
		Endpoint: endpoint,
	}
}

// NewMigrationFailed creates an error for a failed schema migration.
func NewMigrationFailed(name string, cause error) *ErrStorageUnavailable {
	return &ErrStorageUnavailable{
		FiltraError: FiltraError{
			Code:       CodeInternal,
			Message:    fmt.Sprintf("schema migration %s failed", name),
			Reason:     "the attempt database schema could not be brought up to date",
			Suggestion: "inspect the migration SQL and the database file; a partially applied migration is rolled back",
			Cause:      cause,
		},
	}
}
