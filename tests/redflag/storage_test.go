package redflag

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	ferrors "github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/storage"
)

func attempt(checkID string) *storage.Attempt {
	return &storage.Attempt{
		CheckID:   checkID,
		Exercise:  "tail-member",
		Form:      "SOLUTION",
		GoalKind:  "MEMBER",
		Verdict:   "ACCEPTED",
		Duration:  5 * time.Millisecond,
		CheckedAt: time.Now().UTC(),
	}
}

// TestInvalidAttemptsRefused tests that no implementation persists a
// structurally invalid attempt.
func TestInvalidAttemptsRefused(t *testing.T) {
	repo := storage.NewMockRepository()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*storage.Attempt)
	}{
		{name: "missing check id", mutate: func(a *storage.Attempt) { a.CheckID = "" }},
		{name: "missing exercise", mutate: func(a *storage.Attempt) { a.Exercise = "" }},
		{name: "unknown verdict", mutate: func(a *storage.Attempt) { a.Verdict = "MAYBE" }},
		{name: "negative duration", mutate: func(a *storage.Attempt) { a.Duration = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := attempt("c-invalid")
			tt.mutate(a)
			if err := repo.Record(ctx, a); err == nil {
				t.Error("Record() expected error, got nil")
			}
		})
	}

	attempts, err := repo.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("invalid attempts reached the store: %d", len(attempts))
	}
}

// TestDuplicateCheckIDRefused tests that the persistent store enforces
// check ID uniqueness. Attempts are write-once records.
func TestDuplicateCheckIDRefused(t *testing.T) {
	db, err := storage.OpenDatabase(":memory:")
	if err != nil {
		t.Fatalf("OpenDatabase() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := storage.NewMigrationRunner(db).Run(ctx); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error: %v", err)
	}

	if err := repo.Record(ctx, attempt("c-dup")); err != nil {
		t.Fatalf("Record() error: %v", err)
	}
	if err := repo.Record(ctx, attempt("c-dup")); err == nil {
		t.Error("Record() with a duplicate check ID expected error, got nil")
	}
}

// TestStoreFailuresSurface tests that store failures are reported as
// storage errors, never swallowed.
func TestStoreFailuresSurface(t *testing.T) {
	repo := storage.NewMockRepository()
	ctx := context.Background()

	repo.SetPersistenceFailure(true)
	err := repo.Record(ctx, attempt("c-fail"))
	var unavailable *ferrors.ErrStorageUnavailable
	if !stderrors.As(err, &unavailable) {
		t.Errorf("Record() = %v, want ErrStorageUnavailable", err)
	}

	repo.SetConnectivityFailure(true)
	if err := repo.CheckConnectivity(ctx); !stderrors.As(err, &unavailable) {
		t.Errorf("CheckConnectivity() = %v, want ErrStorageUnavailable", err)
	}
}

// TestCancelledContextStopsStoreWork tests that a cancelled context is
// honored before any store mutation.
func TestCancelledContextStopsStoreWork(t *testing.T) {
	repo := storage.NewMockRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Record(ctx, attempt("c-cancelled")); err == nil {
		t.Error("Record() with a cancelled context expected error, got nil")
	}
	if _, err := repo.List(ctx, "", 0); err == nil {
		t.Error("List() with a cancelled context expected error, got nil")
	}
}
