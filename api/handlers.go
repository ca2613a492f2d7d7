/*
handlers.go - HTTP API handlers for the projection service

PURPOSE:

	Exposes the projection engine via REST API. Handles HTTP
	request/response, JSON serialization, audit logging, and delegates to
	the engine and parser.

ENDPOINTS:

	Projection:
	  POST   /api/parse              Natural language -> assumptions
	  POST   /api/project            Assumptions -> full projection result
	  POST   /api/project-from-text  Parse then project in one step
	  POST   /api/export             Assumptions -> CSV download

	Audit:
	  GET    /api/executions         Paginated execution log with stats
	  GET    /api/executions/{id}    Single execution with payloads

ARCHITECTURE:

	Handler struct holds all dependencies:
	- Store:  Execution audit log (nil disables audit logging entirely)
	- Parser: Language-model extraction backend

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Validation errors, unknown mortality table, invalid input
	- 404: Execution not found
	- 500: Store failures, internal errors
	Parse failures are reported inside ParseResponse (success=false), since
	the transport call itself succeeded.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/actuarial-engine/mortality"
	"github.com/warp/actuarial-engine/parse"
	"github.com/warp/actuarial-engine/projection"
	"github.com/warp/actuarial-engine/store/sqlite"
)

// minParseTextLength guards against empty or junk extraction requests.
const minParseTextLength = 10

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store // nil disables audit logging
	Parser parse.Backend
}

// NewHandler creates a new handler with the given store and parser backend.
func NewHandler(store *sqlite.Store, parser parse.Backend) *Handler {
	return &Handler{Store: store, Parser: parser}
}

// logExecution records one audited call. A nil store is a no-op; audit
// failures are swallowed so they never break the request itself.
func (h *Handler) logExecution(ctx context.Context, e sqlite.Execution) {
	if h.Store == nil {
		return
	}
	h.Store.LogExecution(ctx, e)
}

// clientIP extracts the caller address, honoring X-Forwarded-For.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if host, _, ok := strings.Cut(r.RemoteAddr, ":"); ok {
		return host
	}
	return r.RemoteAddr
}

// =============================================================================
// PARSE HANDLER
// =============================================================================

// ParseAssumptions converts natural-language text into structured assumptions.
// POST /api/parse
func (h *Handler) ParseAssumptions(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Text) < minParseTextLength {
		writeError(w, http.StatusBadRequest, "Text too short to describe a product", nil)
		return
	}

	start := time.Now()
	ctx := r.Context()

	assumptions, err := h.Parser.Extract(ctx, req.Text)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	resp := ParseResponse{RawInput: req.Text}
	if err != nil {
		resp.Error = err.Error()
	} else {
		resp.Success = true
		resp.Assumptions = &assumptions
	}

	inputJSON, _ := json.Marshal(req)
	exec := sqlite.Execution{
		ActionType:   sqlite.ActionParse,
		IPAddress:    clientIP(r),
		ElapsedMS:    elapsed,
		Input:        inputJSON,
		Success:      resp.Success,
		ErrorMessage: resp.Error,
	}
	if resp.Success {
		exec.Output, _ = json.Marshal(resp.Assumptions)
	}
	h.logExecution(ctx, exec)

	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PROJECTION HANDLERS
// =============================================================================

// RunProjection runs a projection with the given assumptions.
// POST /api/project
func (h *Handler) RunProjection(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, status, err := h.project(r, req.Assumptions)
	if err != nil {
		writeError(w, status, "Projection failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ProjectFromText parses natural language and runs the projection in one step.
// POST /api/project-from-text
func (h *Handler) ProjectFromText(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Text) < minParseTextLength {
		writeError(w, http.StatusBadRequest, "Text too short to describe a product", nil)
		return
	}

	assumptions, err := h.Parser.Extract(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Extraction failed", err)
		return
	}

	result, status, err := h.project(r, assumptions)
	if err != nil {
		writeError(w, status, "Projection failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ExportCSV runs a projection and returns the rows as a CSV download.
// POST /api/export
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Assumptions.SetDefaults()
	if err := req.Assumptions.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Projection failed", err)
		return
	}

	start := time.Now()
	result, err := projection.Run(req.Assumptions)
	if err != nil {
		h.logFailedProjection(r, sqlite.ActionExport, req.Assumptions, start, err)
		writeError(w, projectionStatus(err), "Projection failed", err)
		return
	}

	inputJSON, _ := json.Marshal(req.Assumptions)
	h.logExecution(r.Context(), sqlite.Execution{
		ActionType: sqlite.ActionExport,
		IPAddress:  clientIP(r),
		ElapsedMS:  float64(time.Since(start).Microseconds()) / 1000,
		Input:      inputJSON,
		Success:    true,
	})

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename=projection.csv`)
	w.WriteHeader(http.StatusOK)
	projection.WriteCSV(w, result)
}

// project validates, runs, and audits one projection. Returns the HTTP
// status to use when err is non-nil.
func (h *Handler) project(r *http.Request, a projection.Assumptions) (*projection.Result, int, error) {
	a.SetDefaults()
	if err := a.Validate(); err != nil {
		return nil, http.StatusBadRequest, err
	}

	start := time.Now()
	result, err := projection.Run(a)
	if err != nil {
		h.logFailedProjection(r, sqlite.ActionProject, a, start, err)
		return nil, projectionStatus(err), err
	}

	inputJSON, _ := json.Marshal(a)
	outputJSON, _ := json.Marshal(map[string]any{
		"summary":   result.Summary,
		"row_count": len(result.Rows),
	})
	h.logExecution(r.Context(), sqlite.Execution{
		ActionType: sqlite.ActionProject,
		IPAddress:  clientIP(r),
		ElapsedMS:  float64(time.Since(start).Microseconds()) / 1000,
		Input:      inputJSON,
		Output:     outputJSON,
		Success:    true,
	})
	return result, http.StatusOK, nil
}

func (h *Handler) logFailedProjection(r *http.Request, action string, a projection.Assumptions, start time.Time, err error) {
	inputJSON, _ := json.Marshal(a)
	h.logExecution(r.Context(), sqlite.Execution{
		ActionType:   action,
		IPAddress:    clientIP(r),
		ElapsedMS:    float64(time.Since(start).Microseconds()) / 1000,
		Input:        inputJSON,
		Success:      false,
		ErrorMessage: err.Error(),
	})
}

// projectionStatus maps an engine error to an HTTP status.
func projectionStatus(err error) int {
	if errors.Is(err, mortality.ErrUnknownTable) || errors.Is(err, projection.ErrInvalidAssumptions) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// =============================================================================
// AUDIT HANDLERS
// =============================================================================

// ListExecutions returns the execution log, most recent first.
// GET /api/executions?limit=&offset=
func (h *Handler) ListExecutions(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "Audit log not configured", nil)
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)
	ctx := r.Context()

	execs, err := h.Store.ListExecutions(ctx, limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list executions", err)
		return
	}
	total, err := h.Store.Count(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count executions", err)
		return
	}
	stats, err := h.Store.GetStats(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}

	writeJSON(w, http.StatusOK, ExecutionListResponse{
		Executions: toExecutionDTOs(execs),
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		Stats:      stats,
	})
}

// GetExecution returns a single execution with full payloads.
// GET /api/executions/{id}
func (h *Handler) GetExecution(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeError(w, http.StatusNotFound, "Audit log not configured", nil)
		return
	}

	id := chi.URLParam(r, "id")
	exec, err := h.Store.GetExecution(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get execution", err)
		return
	}
	if exec == nil {
		writeError(w, http.StatusNotFound, "Execution not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toExecutionDTO(*exec))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
