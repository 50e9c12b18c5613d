package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/metrics"
	"github.com/ymaeda/katsuyo/internal/validate"
)

type ValidateHandler struct {
	validator *validate.Validator
	log       *slog.Logger
}

func NewValidateHandler(validator *validate.Validator, log *slog.Logger) *ValidateHandler {
	return &ValidateHandler{validator: validator, log: log}
}

type validateFormRequest struct {
	Word      string            `json:"word"`
	Tag       conjugate.FormTag `json:"form"`
	Candidate string            `json:"candidate"`
}

// Form serves POST /api/v1/validate/form.
func (h *ValidateHandler) Form(w http.ResponseWriter, r *http.Request) {
	var req validateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Word == "" || req.Tag == "" {
		writeError(w, http.StatusBadRequest, "word and form are required")
		return
	}

	verdict, err := h.validator.ValidateForm(req.Word, req.Tag, req.Candidate)
	if err != nil {
		h.validationError(w, err)
		return
	}
	countVerdict(verdict)
	writeJSON(w, http.StatusOK, verdict)
}

type validateTextRequest struct {
	Text         string                 `json:"text"`
	Expectations []validate.Expectation `json:"expectations"`
}

// Text serves POST /api/v1/validate/text.
func (h *ValidateHandler) Text(w http.ResponseWriter, r *http.Request) {
	var req validateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" || len(req.Expectations) == 0 {
		writeError(w, http.StatusBadRequest, "text and expectations are required")
		return
	}

	verdict, err := h.validator.ValidateFreeText(req.Text, req.Expectations)
	if err != nil {
		h.validationError(w, err)
		return
	}
	countVerdict(verdict)
	writeJSON(w, http.StatusOK, verdict)
}

func countVerdict(verdict validate.Verdict) {
	result := "valid"
	if !verdict.Valid {
		result = "invalid"
	}
	metrics.ValidationsTotal.WithLabelValues(result).Inc()
}

func (h *ValidateHandler) validationError(w http.ResponseWriter, err error) {
	var ufe *conjugate.UnsupportedFormError
	var se *conjugate.ShapeError
	switch {
	case errors.As(err, &ufe):
		writeError(w, http.StatusBadRequest, ufe.Error())
	case errors.As(err, &se):
		h.log.Warn("malformed word record", "error", se)
		writeError(w, http.StatusUnprocessableEntity, se.Error())
	default:
		writeError(w, http.StatusInternalServerError, "validation failed")
	}
}
