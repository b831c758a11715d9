// Package storage provides persistence for check attempts.
//
// Per docs/plan.md: "SQLite for attempt history and audit summaries."
// The checker never reads from storage; attempts are write-once records.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/pkg/models"
)

// Attempt is one recorded check of an exercise.
type Attempt struct {
	// CheckID is the unique identifier of the check.
	CheckID string

	// Exercise is the name of the checked exercise.
	Exercise string

	// Form is the exercise form at check time.
	Form string

	// GoalKind is the goal kind of the checked statement.
	GoalKind string

	// Verdict is the checker's answer.
	Verdict string

	// Explanation is the checker's explanation, if any.
	Explanation string

	// Duration is how long the check took.
	Duration time.Duration

	// CheckedAt is when the check started.
	CheckedAt time.Time
}

// Validate checks that all required fields are present.
func (a *Attempt) Validate() error {
	if a.CheckID == "" {
		return fmt.Errorf("storage: check_id is required")
	}
	if a.Exercise == "" {
		return fmt.Errorf("storage: exercise is required")
	}
	if !goals.Verdict(a.Verdict).IsValid() {
		return fmt.Errorf("storage: invalid verdict %q", a.Verdict)
	}
	if a.Duration < 0 {
		return fmt.Errorf("storage: duration cannot be negative")
	}
	return nil
}

// AttemptRepository defines the interface for attempt persistence.
// All implementations must be:
// - Thread-safe
// - Context-aware (respecting cancellation/timeout)
// - Explicit about errors (never swallow)
type AttemptRepository interface {
	// Record persists a new attempt.
	// Returns an error if:
	// - The attempt is invalid
	// - The check ID already exists
	// - Context is cancelled
	Record(ctx context.Context, attempt *Attempt) error

	// Get retrieves an attempt by check ID.
	// Returns an error if:
	// - The attempt does not exist
	// - Context is cancelled
	Get(ctx context.Context, checkID string) (*Attempt, error)

	// List returns attempts, newest first, optionally filtered by exercise.
	// limit <= 0 means no limit. Returns an empty slice (not nil) when
	// nothing matches.
	List(ctx context.Context, exercise string, limit int) ([]*Attempt, error)

	// Summary returns aggregated attempt statistics.
	// Only aggregates are exposed, never raw explanations per attempt.
	Summary(ctx context.Context) (*models.AuditSummaryInfo, error)

	// CheckConnectivity verifies the store is reachable.
	// Gateway startup fails if the attempt store is unavailable.
	CheckConnectivity(ctx context.Context) error
}
