package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/filtra-labs/filtra/internal/storage"
)

func validEntry(id string) CheckLogEntry {
	return CheckLogEntry{
		CheckID:  id,
		Exercise: "tail-meets-evens",
		Form:     "SOLUTION",
		GoalKind: "LEQ",
		Verdict:  "ACCEPTED",
		Duration: 3 * time.Millisecond,
	}
}

func TestCheckLogEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CheckLogEntry)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *CheckLogEntry) {}},
		{name: "missing check id", mutate: func(e *CheckLogEntry) { e.CheckID = "" }, wantErr: true},
		{name: "missing exercise", mutate: func(e *CheckLogEntry) { e.Exercise = "" }, wantErr: true},
		{name: "negative duration", mutate: func(e *CheckLogEntry) { e.Duration = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry("c-1")
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestJSONLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf)

	entry := validEntry("c-1")
	entry.Explanation = "every member of the right filter is a member of the left"
	if err := logger.LogCheck(context.Background(), entry); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if out["check_id"] != "c-1" || out["verdict"] != "ACCEPTED" {
		t.Errorf("log line = %v, want check_id c-1 with verdict ACCEPTED", out)
	}
	if out["level"] != "info" {
		t.Errorf("level = %v, want info", out["level"])
	}

	failed := validEntry("c-2")
	failed.Error = "attempt store unavailable"
	buf.Reset()
	if err := logger.LogCheck(context.Background(), failed); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &out); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if out["level"] != "error" {
		t.Errorf("level = %v, want error for a failed check", out["level"])
	}
}

func TestJSONLoggerSummary(t *testing.T) {
	logger := NewJSONLogger(&bytes.Buffer{})
	ctx := context.Background()

	verdicts := []string{"ACCEPTED", "REJECTED", "REJECTED", "UNFINISHED"}
	for i, v := range verdicts {
		e := validEntry(strings.Repeat("x", i+1))
		e.Verdict = v
		if v == "REJECTED" {
			e.Explanation = "the set misses the core"
		}
		if err := logger.LogCheck(ctx, e); err != nil {
			t.Fatalf("LogCheck() error: %v", err)
		}
	}

	summary, err := logger.GetAuditSummary(ctx)
	if err != nil {
		t.Fatalf("GetAuditSummary() error: %v", err)
	}
	if summary.AcceptedCount != 1 || summary.RejectedCount != 2 || summary.UnfinishedCount != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/2/1",
			summary.AcceptedCount, summary.RejectedCount, summary.UnfinishedCount)
	}
	if len(summary.TopRejectReasons) != 1 || summary.TopRejectReasons[0].Count != 2 {
		t.Errorf("TopRejectReasons = %+v, want the shared reason counted twice", summary.TopRejectReasons)
	}
}

func TestPersistentLoggerRecordsAttempts(t *testing.T) {
	repo := storage.NewMockRepository()
	logger, err := NewPersistentLogger(repo)
	if err != nil {
		t.Fatalf("NewPersistentLogger() error: %v", err)
	}
	ctx := context.Background()

	entry := validEntry("c-1")
	entry.Explanation = "holds"
	if err := logger.LogCheck(ctx, entry); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}

	attempt, err := repo.Get(ctx, "c-1")
	if err != nil {
		t.Fatalf("attempt was not persisted: %v", err)
	}
	if attempt.Verdict != "ACCEPTED" || attempt.Explanation != "holds" {
		t.Errorf("attempt = %+v, want the logged verdict and explanation", attempt)
	}

	// The error message wins over the explanation in the stored record.
	failed := validEntry("c-2")
	failed.Explanation = "holds"
	failed.Error = "checker panic"
	if err := logger.LogCheck(ctx, failed); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}
	attempt, err = repo.Get(ctx, "c-2")
	if err != nil {
		t.Fatalf("attempt was not persisted: %v", err)
	}
	if attempt.Explanation != "checker panic" {
		t.Errorf("explanation = %q, want the error message", attempt.Explanation)
	}
}

func TestPersistentLoggerPropagatesStoreFailure(t *testing.T) {
	repo := storage.NewMockRepository()
	repo.SetPersistenceFailure(true)
	logger, err := NewPersistentLogger(repo)
	if err != nil {
		t.Fatalf("NewPersistentLogger() error: %v", err)
	}

	if err := logger.LogCheck(context.Background(), validEntry("c-1")); err == nil {
		t.Error("LogCheck() under store failure expected error, got nil")
	}
}

func TestPersistentLoggerRequiresRepository(t *testing.T) {
	if _, err := NewPersistentLogger(nil); err == nil {
		t.Error("NewPersistentLogger(nil) expected error, got nil")
	}
}

func TestPersistentLoggerSummaryDelegates(t *testing.T) {
	repo := storage.NewMockRepository()
	logger, _ := NewPersistentLogger(repo)
	ctx := context.Background()

	if err := logger.LogCheck(ctx, validEntry("c-1")); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}
	summary, err := logger.GetAuditSummary(ctx)
	if err != nil {
		t.Fatalf("GetAuditSummary() error: %v", err)
	}
	if summary.AcceptedCount != 1 {
		t.Errorf("AcceptedCount = %d, want 1", summary.AcceptedCount)
	}
}

func TestPersistentLoggerWithWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	repo := storage.NewMockRepository()
	logger, err := NewPersistentLoggerWithWriter(repo, &buf)
	if err != nil {
		t.Fatalf("NewPersistentLoggerWithWriter() error: %v", err)
	}

	if err := logger.LogCheck(context.Background(), validEntry("c-1")); err != nil {
		t.Fatalf("LogCheck() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"check_id":"c-1"`) {
		t.Errorf("writer output %q does not contain the check id", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()
	if err := logger.LogCheck(context.Background(), CheckLogEntry{}); err != nil {
		t.Errorf("NoopLogger.LogCheck() error: %v", err)
	}
	summary, err := logger.GetAuditSummary(context.Background())
	if err != nil {
		t.Fatalf("GetAuditSummary() error: %v", err)
	}
	if summary.AcceptedCount != 0 || len(summary.TopExercises) != 0 {
		t.Errorf("noop summary = %+v, want empty", summary)
	}
}
