package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"optiserve/internal/apperror"
	"optiserve/internal/logger"
	"optiserve/internal/production"
)

// Handlers holds the dependencies the production-optimizer endpoints need:
// the registry-backed service, and the wall-clock budget each solve gets
// before its context is cancelled.
type Handlers struct {
	service      *production.Service
	solveTimeout time.Duration
}

// NewHandlers builds a Handlers around a running Service. A zero timeout
// means the request's own context governs cancellation with no additional
// deadline.
func NewHandlers(service *production.Service, solveTimeout time.Duration) *Handlers {
	return &Handlers{service: service, solveTimeout: solveTimeout}
}

// ListOptimizers handles GET /optimizers.
func (h *Handlers) ListOptimizers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, optimizersResponse{Optimizers: h.service.ListOptimizers()})
}

// Optimize handles POST /optimize/{optimizer_type}, decoding the request
// body, dispatching to the named optimizer, and mapping the outcome to an
// HTTP status.
func (h *Handlers) Optimize(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, mux.Vars(r)["optimizer_type"])
}

// BasicOptimization handles the POST /basic-optimization legacy alias,
// dispatching to the "basic" registry entry.
func (h *Handlers) BasicOptimization(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "basic")
}

// DemandConstrained handles the POST /demand-constrained legacy alias,
// dispatching to the "demand-constrained" registry entry.
func (h *Handlers) DemandConstrained(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, "demand-constrained")
}

func (h *Handlers) dispatch(w http.ResponseWriter, r *http.Request, optimizerID string) {
	var req production.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:           string(production.StatusValidationError),
			SolverMessage:    "request body is not valid JSON",
			ValidationErrors: []string{err.Error()},
		})
		return
	}

	ctx := r.Context()
	if h.solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.solveTimeout)
		defer cancel()
	}

	result, err := h.service.Optimize(ctx, optimizerID, &req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeServiceError maps a *apperror.Error to the response envelope and
// its HTTP status. Validation failures carry their full list of
// offending fields; everything else is a bare message.
func (h *Handlers) writeServiceError(w http.ResponseWriter, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		logger.Error("unmapped error reached the HTTP layer", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Status:        string(production.StatusError),
			SolverMessage: "engine_error: " + err.Error(),
		})
		return
	}

	resp := errorResponse{SolverMessage: appErr.Message}
	switch appErr.Code {
	case apperror.CodeValidation:
		resp.Status = string(production.StatusValidationError)
		if errs, ok := appErr.Details["errors"].([]string); ok {
			resp.ValidationErrors = errs
		}
	case apperror.CodeUnknownKind:
		resp.Status = string(production.StatusValidationError)
	default:
		resp.Status = string(production.StatusError)
		resp.SolverMessage = "engine_error: " + appErr.Message
	}

	writeJSON(w, appErr.ToHTTPStatus(), resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response body", "error", err)
	}
}
