package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/pkg/api"
	"github.com/filtra-labs/filtra/pkg/models"
)

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: errors.NewInvalidExercise("goal", "bad"), want: ExitValidation},
		{name: "check", err: errors.NewCheckRejected("ex", "r", "s"), want: ExitCheck},
		{name: "workspace", err: errors.NewInvalidWorkspace("filters", "bad"), want: ExitWorkspace},
		{name: "storage is internal", err: errors.NewStorageUnavailable(nil), want: ExitInternal},
		{name: "foreign error", err: fmt.Errorf("boom"), want: ExitInternal},
		{name: "wrapped filtra error", err: fmt.Errorf("context: %w", errors.NewInvalidWorkspace("x", "y")), want: ExitWorkspace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGatewayClientCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != api.EndpointCheck || r.Method != "POST" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req models.CheckRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		json.NewEncoder(w).Encode(models.CheckResult{
			CheckID:  "c-1",
			Exercise: req.Exercise,
			Verdict:  "ACCEPTED",
		})
	}))
	defer server.Close()

	client := NewGatewayClient(server.URL)
	result, err := client.Check(context.Background(), &models.CheckRequest{Exercise: "tail-member"})
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if result.Verdict != "ACCEPTED" || result.Exercise != "tail-member" {
		t.Errorf("result = %+v, want the echoed exercise accepted", result)
	}
}

func TestGatewayClientParsesErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Error:  "exercise not found: ghost",
			Reason: "no exercise registered with this name",
			Code:   1,
		})
	}))
	defer server.Close()

	client := NewGatewayClient(server.URL)
	_, err := client.Check(context.Background(), &models.CheckRequest{Exercise: "ghost"})
	if err == nil {
		t.Fatal("Check() expected error, got nil")
	}
	if got := err.Error(); got != "exercise not found: ghost: no exercise registered with this name" {
		t.Errorf("error = %q, want the parsed message and reason", got)
	}
}

func TestGatewayClientUnreachable(t *testing.T) {
	client := NewGatewayClient("http://127.0.0.1:1")
	_, err := client.ListExercises(context.Background())
	if err == nil {
		t.Fatal("ListExercises() expected error, got nil")
	}
	if fe, ok := errors.AsFiltraError(err); !ok || fe.Code != errors.CodeInternal {
		t.Errorf("error = %v, want a gateway-unavailable filtra error", err)
	}
}

func TestGatewayClientRequiresEndpoint(t *testing.T) {
	client := NewGatewayClient("")
	if _, err := client.ListExercises(context.Background()); err == nil {
		t.Error("ListExercises() without endpoint expected error")
	}
	if _, err := client.GetAuditSummary(context.Background()); err == nil {
		t.Error("GetAuditSummary() without endpoint expected error")
	}
	if _, err := client.CheckHealth(context.Background()); err == nil {
		t.Error("CheckHealth() without endpoint expected error")
	}
}

func TestGatewayClientListFiltersFullFlag(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]interface{}{"filters": []models.FilterInfo{}})
	}))
	defer server.Close()

	client := NewGatewayClient(server.URL)
	if _, err := client.ListFilters(context.Background(), true); err != nil {
		t.Fatalf("ListFilters() error: %v", err)
	}
	if gotQuery != "full=true" {
		t.Errorf("query = %q, want full=true", gotQuery)
	}
}
