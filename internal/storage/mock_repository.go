package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/goals"
	"github.com/filtra-labs/filtra/pkg/models"
)

// MockRepository is an in-memory implementation of AttemptRepository for
// testing. It is thread-safe and respects context cancellation.
// In-memory stores may exist ONLY for tests.
type MockRepository struct {
	mu       sync.RWMutex
	attempts []*Attempt

	// Test helper fields for simulating failures
	connectivityFailure     bool
	persistenceFailure      bool
	connectivityCheckCalled bool
}

// NewMockRepository creates a new mock repository.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		attempts: make([]*Attempt, 0),
	}
}

// checkContext verifies the context is not cancelled or timed out.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Record persists a new attempt.
func (r *MockRepository) Record(ctx context.Context, attempt *Attempt) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := attempt.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.persistenceFailure {
		return errors.NewStorageUnavailable(nil)
	}

	copied := *attempt
	r.attempts = append(r.attempts, &copied)
	return nil
}

// Get retrieves an attempt by check ID.
func (r *MockRepository) Get(ctx context.Context, checkID string) (*Attempt, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.attempts {
		if a.CheckID == checkID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errors.NewAttemptNotFound(checkID)
}

// List returns attempts, newest first, optionally filtered by exercise.
func (r *MockRepository) List(ctx context.Context, exercise string, limit int) ([]*Attempt, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Attempt, 0)
	for _, a := range r.attempts {
		if exercise != "" && a.Exercise != exercise {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CheckedAt.After(result[j].CheckedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// Summary returns aggregated attempt statistics.
func (r *MockRepository) Summary(ctx context.Context) (*models.AuditSummaryInfo, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	summary := &models.AuditSummaryInfo{
		TopRejectReasons: []models.RejectionReasonStat{},
		TopExercises:     []models.ExerciseCheckStat{},
	}

	reasons := make(map[string]int)
	exerciseCounts := make(map[string]int)

	for _, a := range r.attempts {
		switch goals.Verdict(a.Verdict) {
		case goals.VerdictAccepted:
			summary.AcceptedCount++
		case goals.VerdictRejected:
			summary.RejectedCount++
			if a.Explanation != "" {
				reasons[a.Explanation]++
			}
		case goals.VerdictUnfinished:
			summary.UnfinishedCount++
		}
		exerciseCounts[a.Exercise]++
	}

	for reason, count := range reasons {
		summary.TopRejectReasons = append(summary.TopRejectReasons, models.RejectionReasonStat{
			Reason: reason,
			Count:  count,
		})
	}
	sort.Slice(summary.TopRejectReasons, func(i, j int) bool {
		if summary.TopRejectReasons[i].Count != summary.TopRejectReasons[j].Count {
			return summary.TopRejectReasons[i].Count > summary.TopRejectReasons[j].Count
		}
		return summary.TopRejectReasons[i].Reason < summary.TopRejectReasons[j].Reason
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
		if summary.TopExercises[i].Count != summary.TopExercises[j].Count {
			return summary.TopExercises[i].Count > summary.TopExercises[j].Count
		}
		return summary.TopExercises[i].Exercise < summary.TopExercises[j].Exercise
	})
	if len(summary.TopExercises) > 5 {
		summary.TopExercises = summary.TopExercises[:5]
	}

	return summary, nil
}

// SetConnectivityFailure configures the mock to simulate connectivity failures.
func (r *MockRepository) SetConnectivityFailure(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectivityFailure = fail
}

// SetPersistenceFailure configures the mock to simulate persistence failures.
func (r *MockRepository) SetPersistenceFailure(fail bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persistenceFailure = fail
}

// CheckConnectivity verifies store connectivity.
func (r *MockRepository) CheckConnectivity(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connectivityCheckCalled = true

	if r.connectivityFailure {
		return errors.NewStorageUnavailable(nil)
	}
	return nil
}

// ConnectivityCheckCalled returns whether CheckConnectivity was called.
func (r *MockRepository) ConnectivityCheckCalled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connectivityCheckCalled
}

// Verify MockRepository implements AttemptRepository.
var _ AttemptRepository = (*MockRepository)(nil)
