package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/metrics"
)

type ConjugateHandler struct {
	index  *lexicon.Index
	engine *conjugate.Engine
	log    *slog.Logger
}

func NewConjugateHandler(index *lexicon.Index, engine *conjugate.Engine, log *slog.Logger) *ConjugateHandler {
	return &ConjugateHandler{index: index, engine: engine, log: log}
}

type conjugationResponse struct {
	Word    string                               `json:"word"`
	Reading string                               `json:"reading"`
	Class   conjugate.Class                      `json:"class"`
	Tags    []conjugate.FormTag                  `json:"tags"`
	Forms   map[conjugate.FormTag]conjugate.Form `json:"forms"`
}

// Get serves GET /api/v1/conjugate?word=...&form=... — the form parameter is
// optional; without it the full table is returned.
func (h *ConjugateHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, "missing word parameter")
		return
	}

	rec, ok := h.index.Lookup(word)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown word")
		return
	}

	if form := r.URL.Query().Get("form"); form != "" {
		h.single(w, rec, conjugate.FormTag(form))
		return
	}

	table, err := h.engine.GenerateAll(rec.DictionaryForm, rec.Reading, rec.Class)
	if err != nil {
		h.conjugationError(w, err)
		return
	}
	metrics.ConjugationsTotal.WithLabelValues(string(rec.Class)).Inc()
	writeJSON(w, http.StatusOK, conjugationResponse{
		Word:    rec.DictionaryForm,
		Reading: rec.Reading,
		Class:   rec.Class,
		Tags:    conjugate.TagsFor(rec.Class),
		Forms:   table,
	})
}

func (h *ConjugateHandler) single(w http.ResponseWriter, rec lexicon.Record, tag conjugate.FormTag) {
	form, err := h.engine.Conjugate(rec.DictionaryForm, rec.Reading, rec.Class, tag)
	if err != nil {
		h.conjugationError(w, err)
		return
	}
	metrics.ConjugationsTotal.WithLabelValues(string(rec.Class)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{
		"word":  rec.DictionaryForm,
		"class": rec.Class,
		"tag":   tag,
		"form":  form,
	})
}

func (h *ConjugateHandler) conjugationError(w http.ResponseWriter, err error) {
	var ufe *conjugate.UnsupportedFormError
	var se *conjugate.ShapeError
	switch {
	case errors.As(err, &ufe):
		writeError(w, http.StatusBadRequest, ufe.Error())
	case errors.As(err, &se):
		// Bad dictionary data; the word loaded but cannot conjugate.
		h.log.Warn("malformed word record", "error", se)
		writeError(w, http.StatusUnprocessableEntity, se.Error())
	default:
		writeError(w, http.StatusInternalServerError, "conjugation failed")
	}
}
