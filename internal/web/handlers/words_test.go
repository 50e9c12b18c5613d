package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/logger"
	"github.com/ymaeda/katsuyo/internal/store"
	"github.com/ymaeda/katsuyo/internal/store/sqlite"
)

// Upserts reload the index while conjugate requests keep reading it on other
// goroutines. Run with -race: a torn index generation shows up here.
func TestUpsertReloadConcurrentWithConjugate(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	_, err = repo.UpsertWord(ctx, store.UpsertWordParams{Script: "見る", Reading: "みる", Class: "ichidan"})
	require.NoError(t, err)

	index := lexicon.NewIndex()
	words, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	records, err := store.ToRecords(words)
	require.NoError(t, err)
	index.Load(records)

	wordHandler := NewWordHandler(repo, index, logger.Get())
	conjugateHandler := NewConjugateHandler(index, conjugate.New(), logger.Get())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 200 {
			body := `{"script":"書く","reading":"かく","class":"godan"}`
			req := httptest.NewRequest(http.MethodPost, "/api/v1/words", strings.NewReader(body))
			rec := httptest.NewRecorder()
			wordHandler.Upsert(rec, req)
			assert.Equal(t, http.StatusCreated, rec.Code)
		}
	}()

	for range 200 {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/conjugate?word=見る", nil)
		rec := httptest.NewRecorder()
		conjugateHandler.Get(rec, req)
		// 見る survives every reload, so the lookup must always hit.
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	wg.Wait()
}
