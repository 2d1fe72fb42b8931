package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/HarshMaht02004/wacc-backend/internal/wacc"
	"github.com/HarshMaht02004/wacc-backend/pkg/config"
	"github.com/HarshMaht02004/wacc-backend/pkg/logger"
)

// CalcHandler handles WACC calculation endpoints.
type CalcHandler struct {
	cfg    *config.Config
	logger *logger.Logger
}

// NewCalcHandler creates a new calculation handler
func NewCalcHandler(cfg *config.Config, log *logger.Logger) *CalcHandler {
	return &CalcHandler{
		cfg:    cfg,
		logger: log,
	}
}

// ComputeResponse wraps a successful computation.
type ComputeResponse struct {
	Success bool        `json:"success"`
	Data    wacc.Result `json:"data"`
}

// ErrorResponse carries the structured error message and kind so the
// frontend can map missing-input and degenerate cases to guidance
// text instead of a generic failure banner.
type ErrorResponse struct {
	Error string    `json:"error"`
	Kind  wacc.Kind `json:"kind,omitempty"`
}

// Compute calculates WACC from a normalized input record.
// POST /api/v1/wacc
func (h *CalcHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var in wacc.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", wacc.KindValidation)
		return
	}

	result, err := wacc.Compute(in)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"equity": in.EquityValue,
			"debt":   in.DebtValue,
		}).Warn("WACC computation rejected")

		respondError(w, statusForError(err), err.Error(), wacc.KindOf(err))
		return
	}

	respondJSON(w, http.StatusOK, ComputeResponse{
		Success: true,
		Data:    result,
	})
}

// statusForError maps error kinds to HTTP statuses. Validation and
// missing-input failures are client errors; a degenerate capital
// structure is well-formed but uncomputable.
func statusForError(err error) int {
	switch wacc.KindOf(err) {
	case wacc.KindValidation, wacc.KindMissingInputs:
		return http.StatusBadRequest
	case wacc.KindDegenerateCapital:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, kind wacc.Kind) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Kind:  kind,
	})
}
