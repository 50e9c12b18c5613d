package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/logger"
	"github.com/ymaeda/katsuyo/internal/store"
	"github.com/ymaeda/katsuyo/internal/store/sqlite"
	"github.com/ymaeda/katsuyo/internal/validate"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	repo, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	seed := []store.UpsertWordParams{
		{Script: "見る", Reading: "みる", Class: "ichidan"},
		{Script: "書く", Reading: "かく", Class: "godan"},
		{Script: "行く", Reading: "いく", Class: "godan"},
	}
	for _, p := range seed {
		_, err := repo.UpsertWord(ctx, p)
		require.NoError(t, err)
	}

	index := lexicon.NewIndex()
	words, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	records, err := store.ToRecords(words)
	require.NoError(t, err)
	index.Load(records)

	engine := conjugate.New()
	router := NewRouter(repo, index, engine, validate.New(index, engine), nil, logger.Get())
	srv := httptest.NewServer(router.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestConjugateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/conjugate?word=書く")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Word  string                               `json:"word"`
		Class string                               `json:"class"`
		Forms map[conjugate.FormTag]conjugate.Form `json:"forms"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "書く", body.Word)
	assert.Equal(t, "godan", body.Class)
	assert.Len(t, body.Forms, len(conjugate.TagsFor(conjugate.ClassGodan)))
	assert.Equal(t, "かいて", body.Forms[conjugate.FormTe].Reading)
	assert.Equal(t, "kaite", body.Forms[conjugate.FormTe].Romanized)
}

func TestConjugateEndpointSingleForm(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/conjugate?word=いく&form=te")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Form conjugate.Form `json:"form"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "行って", body.Form.Script)
	assert.Equal(t, "itte", body.Form.Romanized)
}

func TestConjugateEndpointUnknownWord(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/conjugate?word=泳ぐ")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestConjugateEndpointUnsupportedForm(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/conjugate?word=見る&form=bogus")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidateFormEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/validate/form", "application/json",
		strings.NewReader(`{"word": "書く", "form": "te", "candidate": "かくて"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verdict validate.Verdict
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.False(t, verdict.Valid)
	require.NotNil(t, verdict.Expected)
	assert.Equal(t, "書いて", verdict.Expected.Script)
}

func TestValidateTextEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/validate/text", "application/json",
		strings.NewReader(`{"text": "映画を見る。", "expectations": [{"word": "見る", "form": "past"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verdict validate.Verdict
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verdict))
	assert.False(t, verdict.Valid)
	assert.Equal(t, "映画を見た。", verdict.Corrected)
}

func TestWordLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/words", "application/json",
		strings.NewReader(`{"script": "泳ぐ", "reading": "およぐ", "class": "godan"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The index refreshes, so the new word conjugates immediately.
	conjResp, err := http.Get(srv.URL + "/api/v1/conjugate?word=泳ぐ&form=te")
	require.NoError(t, err)
	defer conjResp.Body.Close()
	require.Equal(t, http.StatusOK, conjResp.StatusCode)

	var body struct {
		Form conjugate.Form `json:"form"`
	}
	require.NoError(t, json.NewDecoder(conjResp.Body).Decode(&body))
	assert.Equal(t, "およいで", body.Form.Reading)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/words/泳ぐ", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDrillUnavailableWithoutProvider(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/drill", "application/json",
		strings.NewReader(`{"items": [{"word": "見る", "form": "te"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
