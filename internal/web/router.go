// Package web exposes the engine over HTTP. Routes are thin adapters; all
// linguistic behavior lives in the internal engine packages.
package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ymaeda/katsuyo/internal/conjugate"
	"github.com/ymaeda/katsuyo/internal/drill"
	"github.com/ymaeda/katsuyo/internal/lexicon"
	"github.com/ymaeda/katsuyo/internal/store"
	"github.com/ymaeda/katsuyo/internal/validate"
	"github.com/ymaeda/katsuyo/internal/web/handlers"
	"github.com/ymaeda/katsuyo/internal/web/middleware"
)

type Router struct {
	repo      store.Repository
	index     *lexicon.Index
	engine    *conjugate.Engine
	validator *validate.Validator
	generator *drill.Generator
	log       *slog.Logger
}

func NewRouter(
	repo store.Repository,
	index *lexicon.Index,
	engine *conjugate.Engine,
	validator *validate.Validator,
	generator *drill.Generator,
	log *slog.Logger,
) *Router {
	return &Router{
		repo:      repo,
		index:     index,
		engine:    engine,
		validator: validator,
		generator: generator,
		log:       log,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()

	conjugateHandler := handlers.NewConjugateHandler(rt.index, rt.engine, rt.log)
	validateHandler := handlers.NewValidateHandler(rt.validator, rt.log)
	wordHandler := handlers.NewWordHandler(rt.repo, rt.index, rt.log)
	drillHandler := handlers.NewDrillHandler(rt.generator, rt.log)

	limiter := middleware.NewRateLimiter()
	api := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.CORS,
			limiter.Limit(),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(rt.log),
		)
	}

	mux.Handle("GET /api/v1/conjugate", api(conjugateHandler.Get))
	mux.Handle("POST /api/v1/validate/form", api(validateHandler.Form))
	mux.Handle("POST /api/v1/validate/text", api(validateHandler.Text))
	mux.Handle("GET /api/v1/words", api(wordHandler.List))
	mux.Handle("POST /api/v1/words", api(wordHandler.Upsert))
	mux.Handle("DELETE /api/v1/words/{script}", api(wordHandler.Delete))
	mux.Handle("POST /api/v1/drill", api(drillHandler.Generate))

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"words":  rt.index.Len(),
		})
	})

	return mux
}
