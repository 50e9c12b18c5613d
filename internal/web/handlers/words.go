package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/samber/lo"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/metrics"
	"github.com/ymaeda/katsuyo/internal/store"
)

// WordHandler owns the store-to-index pipeline. The index publishes each
// generation atomically, so request goroutines read it lock-free; mu only
// keeps concurrent reloads from racing each other on the store read and the
// publish order.
type WordHandler struct {
	repo  store.Repository
	index *lexicon.Index
	log   *slog.Logger
	mu    sync.Mutex
}

func NewWordHandler(repo store.Repository, index *lexicon.Index, log *slog.Logger) *WordHandler {
	return &WordHandler{repo: repo, index: index, log: log}
}

type wordResponse struct {
	Script     string `json:"script"`
	Reading    string `json:"reading"`
	Class      string `json:"class"`
	Transitive *bool  `json:"transitive,omitempty"`
}

func toWordResponse(w store.Word) wordResponse {
	resp := wordResponse{Script: w.Script, Reading: w.Reading, Class: w.Class}
	if w.Transitive.Valid {
		t := w.Transitive.Bool
		resp.Transitive = &t
	}
	return resp
}

type listWordsResponse struct {
	Data  []wordResponse `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

// List serves GET /api/v1/words?class=...&page=...&limit=...
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	words, err := h.repo.ListWords(r.Context(), store.ListWordsParams{
		Class:  r.URL.Query().Get("class"),
		Limit:  int32(limit),
		Offset: int32((page - 1) * limit),
	})
	if err != nil {
		h.log.Error("listing words", "error", err)
		writeError(w, http.StatusInternalServerError, "listing words failed")
		return
	}
	total, err := h.repo.CountWords(r.Context())
	if err != nil {
		h.log.Error("counting words", "error", err)
		writeError(w, http.StatusInternalServerError, "listing words failed")
		return
	}

	writeJSON(w, http.StatusOK, listWordsResponse{
		Data:  lo.Map(words, func(word store.Word, _ int) wordResponse { return toWordResponse(word) }),
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

type upsertWordRequest struct {
	Script     string `json:"script"`
	Reading    string `json:"reading"`
	Class      string `json:"class"`
	Transitive *bool  `json:"transitive,omitempty"`
}

// Upsert serves POST /api/v1/words and refreshes the index on success.
func (h *WordHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req upsertWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Script == "" || req.Reading == "" || req.Class == "" {
		writeError(w, http.StatusBadRequest, "script, reading, and class are required")
		return
	}

	params := store.UpsertWordParams{Script: req.Script, Reading: req.Reading, Class: req.Class}
	if req.Transitive != nil {
		params.Transitive = sql.NullBool{Bool: *req.Transitive, Valid: true}
	}

	word, err := h.repo.UpsertWord(r.Context(), params)
	if err != nil {
		h.log.Error("upserting word", "script", req.Script, "error", err)
		writeError(w, http.StatusInternalServerError, "saving word failed")
		return
	}

	if err := h.reload(r); err != nil {
		// The row is saved; the stale index heals on the next reload.
		h.log.Error("reloading index after upsert", "error", err)
	}
	writeJSON(w, http.StatusCreated, toWordResponse(word))
}

// Delete serves DELETE /api/v1/words/{script}.
func (h *WordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	script := r.PathValue("script")
	deleted, err := h.repo.DeleteWord(r.Context(), script)
	if err != nil {
		h.log.Error("deleting word", "script", script, "error", err)
		writeError(w, http.StatusInternalServerError, "deleting word failed")
		return
	}
	if deleted == 0 {
		writeError(w, http.StatusNotFound, "unknown word")
		return
	}
	if err := h.reload(r); err != nil {
		h.log.Error("reloading index after delete", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WordHandler) reload(r *http.Request) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	words, err := h.repo.LoadAll(r.Context())
	if err != nil {
		return err
	}
	records, err := store.ToRecords(words)
	if err != nil {
		return err
	}
	for _, c := range h.index.Load(records) {
		h.log.Warn("surface collision in word index",
			"surface", c.Surface,
			"kept", c.Kept.DictionaryForm,
			"replaced", c.Replaced.DictionaryForm,
		)
	}
	metrics.IndexReloads.Inc()
	return nil
}
