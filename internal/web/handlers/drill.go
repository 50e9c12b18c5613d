package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ymaeda/katsuyo/internal/drill"
	"github.com/ymaeda/katsuyo/internal/metrics"
)

type DrillHandler struct {
	generator *drill.Generator
	log       *slog.Logger
}

// NewDrillHandler accepts a nil generator when no LLM provider is configured;
// the endpoint then reports unavailability instead of failing at startup.
func NewDrillHandler(generator *drill.Generator, log *slog.Logger) *DrillHandler {
	return &DrillHandler{generator: generator, log: log}
}

type drillRequest struct {
	Items []drill.Request `json:"items"`
}

type drillResponse struct {
	Sentences []drill.Reviewed `json:"sentences"`
}

// Generate serves POST /api/v1/drill.
func (h *DrillHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}

	var req drillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Items) == 0 || len(req.Items) > 20 {
		writeError(w, http.StatusBadRequest, "items must contain between 1 and 20 entries")
		return
	}

	start := time.Now()
	reviewed, err := h.generator.Generate(r.Context(), req.Items)
	metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.log.Error("generating drill sentences", "error", err)
		writeError(w, http.StatusBadGateway, "sentence generation failed")
		return
	}

	for _, s := range reviewed {
		result := "valid"
		if !s.Valid {
			result = "corrected"
		}
		metrics.DrillSentencesTotal.WithLabelValues(result).Inc()
	}
	writeJSON(w, http.StatusOK, drillResponse{Sentences: reviewed})
}
