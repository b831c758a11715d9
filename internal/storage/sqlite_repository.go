package storage

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/pkg/models"
)

// OpenDatabase opens the SQLite attempt database at path.
// The pure-Go driver needs no cgo; ":memory:" gives a throwaway store.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	// SQLite handles one writer at a time; keep the pool to a single
	// connection so an in-memory database is not silently duplicated.
	db.SetMaxOpenConns(1)
	return db, nil
}

// SQLiteRepository implements AttemptRepository backed by SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a repository over an open database.
// Migrations must already have been run.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("storage: database connection is required")
	}
	return &SQLiteRepository{db: db}, nil
}

// Record persists a new attempt.
func (r *SQLiteRepository) Record(ctx context.Context, attempt *Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO attempts (
			check_id, exercise, form, goal_kind, verdict,
			explanation, duration_ms, checked_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		attempt.CheckID,
		attempt.Exercise,
		attempt.Form,
		attempt.GoalKind,
		attempt.Verdict,
		attempt.Explanation,
		attempt.Duration.Milliseconds(),
		attempt.CheckedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return errors.NewStorageUnavailable(err)
	}
	return nil
}

// Get retrieves an attempt by check ID.
func (r *SQLiteRepository) Get(ctx context.Context, checkID string) (*Attempt, error) {
	query := `
		SELECT check_id, exercise, form, goal_kind, verdict,
		       explanation, duration_ms, checked_at
		FROM attempts WHERE check_id = ?
	`
	attempt, err := scanAttempt(r.db.QueryRowContext(ctx, query, checkID))
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewAttemptNotFound(checkID)
	}
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	return attempt, nil
}

// List returns attempts, newest first, optionally filtered by exercise.
func (r *SQLiteRepository) List(ctx context.Context, exercise string, limit int) ([]*Attempt, error) {
	query := `
		SELECT check_id, exercise, form, goal_kind, verdict,
		       explanation, duration_ms, checked_at
		FROM attempts
	`
	args := []interface{}{}
	if exercise != "" {
		query += ` WHERE exercise = ?`
		args = append(args, exercise)
	}
	query += ` ORDER BY checked_at DESC, check_id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	defer rows.Close()

	attempts := make([]*Attempt, 0)
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, errors.NewStorageUnavailable(err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	return attempts, nil
}

// Summary returns aggregated attempt statistics.
func (r *SQLiteRepository) Summary(ctx context.Context) (*models.AuditSummaryInfo, error) {
	summary := &models.AuditSummaryInfo{
		TopRejectReasons: []models.RejectionReasonStat{},
		TopExercises:     []models.ExerciseCheckStat{},
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT verdict, COUNT(*) FROM attempts GROUP BY verdict`)
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	defer rows.Close()
	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, errors.NewStorageUnavailable(err)
		}
		switch goals.Verdict(verdict) {
		case goals.VerdictAccepted:
			summary.AcceptedCount = count
		case goals.VerdictRejected:
			summary.RejectedCount = count
		case goals.VerdictUnfinished:
			summary.UnfinishedCount = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}

	reasonRows, err := r.db.QueryContext(ctx, `
		SELECT explanation, COUNT(*) as cnt
		FROM attempts
		WHERE verdict = ? AND explanation != ''
		GROUP BY explanation
		ORDER BY cnt DESC
		LIMIT 5
	`, goals.VerdictRejected.String())
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	defer reasonRows.Close()
	for reasonRows.Next() {
		var stat models.RejectionReasonStat
		if err := reasonRows.Scan(&stat.Reason, &stat.Count); err != nil {
			return nil, errors.NewStorageUnavailable(err)
		}
		summary.TopRejectReasons = append(summary.TopRejectReasons, stat)
	}
	if err := reasonRows.Err(); err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}

	exerciseRows, err := r.db.QueryContext(ctx, `
		SELECT exercise, COUNT(*) as cnt
		FROM attempts
		GROUP BY exercise
		ORDER BY cnt DESC
		LIMIT 5
	`)
	if err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}
	defer exerciseRows.Close()
	for exerciseRows.Next() {
		var stat models.ExerciseCheckStat
		if err := exerciseRows.Scan(&stat.Exercise, &stat.Count); err != nil {
			return nil, errors.NewStorageUnavailable(err)
		}
		summary.TopExercises = append(summary.TopExercises, stat)
	}
	if err := exerciseRows.Err(); err != nil {
		return nil, errors.NewStorageUnavailable(err)
	}

	return summary, nil
}

// CheckConnectivity verifies the store is reachable.
func (r *SQLiteRepository) CheckConnectivity(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return errors.NewStorageUnavailable(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAttempt(row rowScanner) (*Attempt, error) {
	var attempt Attempt
	var durationMs int64
	var checkedAt string
	if err := row.Scan(
		&attempt.CheckID,
		&attempt.Exercise,
		&attempt.Form,
		&attempt.GoalKind,
		&attempt.Verdict,
		&attempt.Explanation,
		&durationMs,
		&checkedAt,
	); err != nil {
		return nil, err
	}
	attempt.Duration = time.Duration(durationMs) * time.Millisecond
	ts, err := time.Parse(time.RFC3339Nano, checkedAt)
	if err != nil {
		return nil, fmt.Errorf("storage: bad checked_at %q: %w", checkedAt, err)
	}
	attempt.CheckedAt = ts
	return &attempt, nil
}

// Verify SQLiteRepository implements AttemptRepository.
var _ AttemptRepository = (*SQLiteRepository)(nil)
