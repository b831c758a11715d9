// Package observability provides structured logging for the filtra gateway.
// Per docs/plan.md: "Structured logging only."
//
// Every check must emit: check_id, exercise, goal kind, verdict, duration,
// and error (if any).
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/internal/storage"
	"github.com/filtra-labs/filtra/pkg/models"
)

// CheckLogEntry contains all required fields for check logging.
type CheckLogEntry struct {
	// CheckID is the unique identifier for this check.
	// Required: every check must have an ID.
	CheckID string

	// Exercise is the name of the checked exercise.
	// Required: every check must be attributed to an exercise.
	Exercise string

	// Form is the exercise form, "PROBLEM" or "SOLUTION".
	Form string

	// GoalKind is the relation the checked statement asserts.
	GoalKind string

	// Verdict is the checker's answer: "ACCEPTED", "REJECTED", "UNFINISHED".
	Verdict string

	// Explanation is the checker's explanation for the verdict.
	Explanation string

	// Duration is how long the check took.
	// Must be non-negative.
	Duration time.Duration

	// Error contains the error message if the check itself failed.
	// Empty for checks that produced a verdict. Silent failures are
	// forbidden.
	Error string
}

// Validate checks that all required fields are present.
func (e *CheckLogEntry) Validate() error {
	if e.CheckID == "" {
		return fmt.Errorf("observability: check_id is required")
	}
	if e.Exercise == "" {
		return fmt.Errorf("observability: exercise is required")
	}
	if e.Duration < 0 {
		return fmt.Errorf("observability: duration cannot be negative")
	}
	return nil
}

// CheckLogger is the interface for check logging.
type CheckLogger interface {
	// LogCheck logs a check event.
	// Returns an error if logging fails or the entry is invalid.
	LogCheck(ctx context.Context, entry CheckLogEntry) error

	// GetAuditSummary returns aggregated audit statistics.
	// Only aggregates are exposed, never per-attempt detail.
	GetAuditSummary(ctx context.Context) (*models.AuditSummaryInfo, error)
}

// jsonLogOutput is the structured format for JSON logs.
type jsonLogOutput struct {
	Timestamp   string `json:"timestamp"`
	Level       string `json:"level"`
	CheckID     string `json:"check_id"`
	Exercise    string `json:"exercise"`
	Form        string `json:"form,omitempty"`
	GoalKind    string `json:"goal_kind,omitempty"`
	Verdict     string `json:"verdict,omitempty"`
	Explanation string `json:"explanation,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
	Error       string `json:"error,omitempty"`
}

func (e *CheckLogEntry) output() jsonLogOutput {
	level := "info"
	if e.Error != "" {
		level = "error"
	}
	return jsonLogOutput{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Level:       level,
		CheckID:     e.CheckID,
		Exercise:    e.Exercise,
		Form:        e.Form,
		GoalKind:    e.GoalKind,
		Verdict:     e.Verdict,
		Explanation: e.Explanation,
		DurationMs:  e.Duration.Milliseconds(),
		Error:       e.Error,
	}
}

// JSONLogger implements CheckLogger with JSON output.
type JSONLogger struct {
	writer  io.Writer
	entries []CheckLogEntry // Track entries for audit summary
	mu      sync.RWMutex
}

// NewJSONLogger creates a new JSON logger writing to the given writer.
func NewJSONLogger(w io.Writer) *JSONLogger {
	return &JSONLogger{
		writer:  w,
		entries: make([]CheckLogEntry, 0),
	}
}

// LogCheck logs a check event as JSON.
func (l *JSONLogger) LogCheck(ctx context.Context, entry CheckLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(entry.output())
	if err != nil {
		return fmt.Errorf("observability: failed to marshal log: %w", err)
	}
	if _, err := l.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("observability: failed to write log: %w", err)
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return nil
}

// GetAuditSummary returns aggregated audit statistics over logged entries.
func (l *JSONLogger) GetAuditSummary(ctx context.Context) (*models.AuditSummaryInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	summary := &models.AuditSummaryInfo{
		TopRejectReasons: []models.RejectionReasonStat{},
		TopExercises:     []models.ExerciseCheckStat{},
	}

	reasons := make(map[string]int)
	exerciseCounts := make(map[string]int)

	for _, entry := range l.entries {
		switch goals.Verdict(entry.Verdict) {
		case goals.VerdictAccepted:
			summary.AcceptedCount++
		case goals.VerdictRejected:
			summary.RejectedCount++
			if entry.Explanation != "" {
				reasons[entry.Explanation]++
			}
		case goals.VerdictUnfinished:
			summary.UnfinishedCount++
		}
		exerciseCounts[entry.Exercise]++
	}

	for reason, count := range reasons {
		summary.TopRejectReasons = append(summary.TopRejectReasons, models.RejectionReasonStat{
			Reason: reason,
			Count:  count,
		})
	}
	sort.Slice(summary.TopRejectReasons, func(i, j int) bool {
		return summary.TopRejectReasons[i].Count > summary.TopRejectReasons[j].Count
	})
	if len(summary.TopRejectReasons) > 5 {
		summary.TopRejectReasons = summary.TopRejectReasons[:5]
	}

	for exercise, count := range exerciseCounts {
		summary.TopExercises = append(summary.TopExercises, models.ExerciseCheckStat{
			Exercise: exercise,
			Count:    count,
		})
	}
	sort.Slice(summary.TopExercises, func(i, j int) bool {
		return summary.TopExercises[i].Count > summary.TopExercises[j].Count
	})
	if len(summary.TopExercises) > 5 {
		summary.TopExercises = summary.TopExercises[:5]
	}

	return summary, nil
}

// NoopLogger is a logger that discards all logs.
// Useful for testing or when logging is disabled.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// LogCheck does nothing and always succeeds.
func (l *NoopLogger) LogCheck(ctx context.Context, entry CheckLogEntry) error {
	return nil
}

// GetAuditSummary returns an empty summary for the no-op logger.
func (l *NoopLogger) GetAuditSummary(ctx context.Context) (*models.AuditSummaryInfo, error) {
	return &models.AuditSummaryInfo{
		TopRejectReasons: []models.RejectionReasonStat{},
		TopExercises:     []models.ExerciseCheckStat{},
	}, nil
}

// PersistentLogger implements CheckLogger over the attempt store.
// Audit entries must survive gateway restart.
type PersistentLogger struct {
	repo   storage.AttemptRepository
	writer io.Writer // optional: also write to stdout for debugging
}

// NewPersistentLogger creates a logger that persists checks as attempts.
func NewPersistentLogger(repo storage.AttemptRepository) (*PersistentLogger, error) {
	if repo == nil {
		return nil, fmt.Errorf("observability: attempt repository is required for persistent logging")
	}
	return &PersistentLogger{repo: repo}, nil
}

// NewPersistentLoggerWithWriter creates a logger that persists attempts and
// also writes JSON lines to a writer.
func NewPersistentLoggerWithWriter(repo storage.AttemptRepository, w io.Writer) (*PersistentLogger, error) {
	if repo == nil {
		return nil, fmt.Errorf("observability: attempt repository is required for persistent logging")
	}
	return &PersistentLogger{repo: repo, writer: w}, nil
}

// LogCheck persists a check log entry as an attempt record.
func (l *PersistentLogger) LogCheck(ctx context.Context, entry CheckLogEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("observability: context error: %w", err)
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	explanation := entry.Explanation
	if entry.Error != "" {
		explanation = entry.Error
	}
	attempt := &storage.Attempt{
		CheckID:     entry.CheckID,
		Exercise:    entry.Exercise,
		Form:        entry.Form,
		GoalKind:    entry.GoalKind,
		Verdict:     entry.Verdict,
		Explanation: explanation,
		Duration:    entry.Duration,
		CheckedAt:   time.Now().UTC(),
	}
	if err := l.repo.Record(ctx, attempt); err != nil {
		return fmt.Errorf("observability: failed to persist audit entry: %w", err)
	}

	if l.writer != nil {
		if data, err := json.Marshal(entry.output()); err == nil {
			l.writer.Write(append(data, '\n'))
		}
	}

	return nil
}

// GetAuditSummary returns aggregated audit statistics from the store.
func (l *PersistentLogger) GetAuditSummary(ctx context.Context) (*models.AuditSummaryInfo, error) {
	return l.repo.Summary(ctx)
}

// Verify the implementations satisfy CheckLogger.
var (
	_ CheckLogger = (*JSONLogger)(nil)
	_ CheckLogger = (*NoopLogger)(nil)
	_ CheckLogger = (*PersistentLogger)(nil)
)
