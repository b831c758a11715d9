// Package gateway provides the HTTP API for the filtra lab.
// The gateway accepts check requests, resolves exercises and filters from
// the workspace catalog, runs the checker, and records every attempt.
//
// Per docs/plan.md:
//   - "Accept check requests, resolve names, forward to the checker"
//   - "Explicitly does NOT: mutate the workspace at runtime"
//   - "Gateway startup fails if the attempt store is unavailable"
package gateway

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/filtra-labs/filtra/internal/catalog"
	"github.com/filtra-labs/filtra/internal/checker"
	"github.com/filtra-labs/filtra/internal/errors"
	"github.com/filtra-labs/filtra/internal/exercises"
	"github.com/filtra-labs/filtra/internal/observability"
	"github.com/filtra-labs/filtra/internal/storage"
	"github.com/filtra-labs/filtra/pkg/api"
	"github.com/filtra-labs/filtra/pkg/models"
)

// Config holds gateway construction options.
type Config struct {
	// Version is reported on /health and /ready.
	Version string
}

// Gateway is the HTTP API server for the filtra lab.
type Gateway struct {
	catalog *catalog.Catalog
	checker *checker.Checker
	repo    storage.AttemptRepository
	logger  observability.CheckLogger
	version string
	mux     *http.ServeMux
}

// NewGateway creates a gateway over a catalog and an attempt store.
// The repository and logger are mandatory: every check must be recorded.
func NewGateway(cat *catalog.Catalog, repo storage.AttemptRepository, logger observability.CheckLogger, cfg Config) (*Gateway, error) {
	if cat == nil {
		return nil, fmt.Errorf("gateway: catalog is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("gateway: attempt repository is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("gateway: check logger is required")
	}

	g := &Gateway{
		catalog: cat,
		checker: checker.New(cat),
		repo:    repo,
		logger:  logger,
		version: cfg.Version,
		mux:     http.NewServeMux(),
	}
	g.routes()
	return g, nil
}

func (g *Gateway) routes() {
	g.mux.HandleFunc("GET "+api.EndpointHealth, g.handleHealth)
	g.mux.HandleFunc("GET "+api.EndpointReady, g.handleReady)
	g.mux.HandleFunc("GET "+api.EndpointExercises, g.handleListExercises)
	g.mux.HandleFunc("GET "+api.EndpointExercises+"/{name}", g.handleGetExercise)
	g.mux.HandleFunc("GET "+api.EndpointFilters, g.handleListFilters)
	g.mux.HandleFunc("GET "+api.EndpointFilters+"/{name}", g.handleGetFilter)
	g.mux.HandleFunc("POST "+api.EndpointCheck, g.handleCheck)
	g.mux.HandleFunc("GET "+api.EndpointAuditSummary, g.handleAuditSummary)
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mux.ServeHTTP(w, r)
}

// ReadinessResult reports whether the gateway can serve checks.
type ReadinessResult struct {
	Ready      bool                       `json:"ready"`
	Components map[string]ComponentStatus `json:"components"`
}

// ComponentStatus is the readiness of one gateway component.
type ComponentStatus struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
}

// Readiness checks every component the gateway depends on.
func (g *Gateway) Readiness(ctx context.Context) *ReadinessResult {
	result := &ReadinessResult{
		Ready:      true,
		Components: make(map[string]ComponentStatus),
	}

	if err := g.repo.CheckConnectivity(ctx); err != nil {
		result.Ready = false
		result.Components["store"] = ComponentStatus{Ready: false, Message: err.Error()}
	} else {
		result.Components["store"] = ComponentStatus{Ready: true, Message: "connected"}
	}

	exerciseCount := len(g.catalog.Exercises())
	result.Components["workspace"] = ComponentStatus{
		Ready:   true,
		Message: fmt.Sprintf("%d exercises loaded", exerciseCount),
	}

	return result
}

// Version returns the gateway version string.
func (g *Gateway) Version() string {
	return g.version
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": g.version,
	})
}

func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	readiness := g.Readiness(r.Context())
	status := http.StatusOK
	if !readiness.Ready {
		status = http.StatusServiceUnavailable
	}
	g.writeJSON(w, status, readiness)
}

func (g *Gateway) handleListExercises(w http.ResponseWriter, r *http.Request) {
	infos := make([]models.ExerciseInfo, 0)
	for _, ex := range g.catalog.Exercises() {
		infos = append(infos, ex.Info())
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{"exercises": infos})
}

func (g *Gateway) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, err := g.catalog.Exercise(r.PathValue("name"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, ex.Info())
}

func (g *Gateway) handleListFilters(w http.ResponseWriter, r *http.Request) {
	full := r.URL.Query().Get("full") == "true"
	infos := make([]models.FilterInfo, 0)
	for _, nf := range g.catalog.Filters() {
		infos = append(infos, nf.Info(full))
	}
	g.writeJSON(w, http.StatusOK, map[string]interface{}{"filters": infos})
}

func (g *Gateway) handleGetFilter(w http.ResponseWriter, r *http.Request) {
	nf, err := g.catalog.Filter(r.PathValue("name"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	full := r.URL.Query().Get("full") == "true"
	g.writeJSON(w, http.StatusOK, nf.Info(full))
}

func (g *Gateway) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req models.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, errors.NewInvalidExercise("body", "request body is not valid JSON: "+err.Error()))
		return
	}

	ctx := r.Context()
	var result *models.CheckResult
	var err error
	switch {
	case req.Exercise != "" && req.Definition != nil:
		g.writeError(w, errors.NewInvalidExercise("body", "set either exercise or definition, not both"))
		return
	case req.Exercise != "":
		result, err = g.checker.CheckByName(ctx, req.Exercise)
	case req.Definition != nil:
		var ex *exercises.Exercise
		ex, err = exercises.FromDefinition(*req.Definition)
		if err == nil {
			result, err = g.checker.Check(ctx, ex)
		}
	default:
		g.writeError(w, errors.NewInvalidExercise("body", "set exercise (a catalog name) or definition (an inline exercise)"))
		return
	}
	if err != nil {
		g.writeError(w, err)
		return
	}

	// Every verdict is audited. A failed audit write fails the request:
	// silent failures are forbidden.
	entry := observability.CheckLogEntry{
		CheckID:     result.CheckID,
		Exercise:    result.Exercise,
		Form:        result.Form,
		GoalKind:    result.GoalKind,
		Verdict:     result.Verdict,
		Explanation: result.Explanation,
	}
	if err := g.logger.LogCheck(ctx, entry); err != nil {
		g.writeError(w, err)
		return
	}

	w.Header().Set(api.HeaderCheckID, result.CheckID)
	g.writeJSON(w, http.StatusOK, result)
}

func (g *Gateway) handleAuditSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := g.logger.GetAuditSummary(r.Context())
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.writeJSON(w, http.StatusOK, summary)
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (g *Gateway) writeError(w http.ResponseWriter, err error) {
	resp := models.ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var notFound *errors.ErrNotFound
	if fe, ok := errors.AsFiltraError(err); ok {
		resp.Error = fe.Message
		resp.Reason = fe.Reason
		resp.Suggestion = fe.Suggestion
		resp.Code = int(fe.Code)
		switch {
		case stderrors.As(err, &notFound):
			status = http.StatusNotFound
		case fe.Code == errors.CodeValidation || fe.Code == errors.CodeWorkspace:
			status = http.StatusBadRequest
		case fe.Code == errors.CodeCheck:
			status = http.StatusUnprocessableEntity
		}
	}

	g.writeJSON(w, status, resp)
}
