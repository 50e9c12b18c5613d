package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "katsuyo_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "katsuyo_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	ConjugationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "katsuyo_conjugations_total",
		Help: "Conjugation table generations by inflection class",
	}, []string{"class"})

	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "katsuyo_validations_total",
		Help: "Validation verdicts by result",
	}, []string{"result"})

	IndexReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "katsuyo_index_reloads_total",
		Help: "Word index reloads from the store",
	})

	DrillSentencesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "katsuyo_drill_sentences_total",
		Help: "Generated drill sentences by review result",
	}, []string{"result"})

	LLMRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "katsuyo_llm_request_duration_seconds",
		Help:    "LLM drill-generation call duration in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30},
	})
)
