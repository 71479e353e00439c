// Package metrics expone las métricas Prometheus del recomendador.
//
// Cubre las llamadas al proveedor LLM (por proveedor, propósito y resultado), el resultado de
// cada recomendación y el estado de la expansión de etiquetas. Se publican en GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados de una recomendación.
const (
	OutcomeOK            = "ok"
	OutcomeParseError    = "parse_error"
	OutcomeUpstreamError = "upstream_error"
	OutcomeNoCandidates  = "no_candidates"
)

var (
	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total de llamadas al proveedor LLM",
		},
		[]string{"provider", "call", "outcome"}, // outcome: success, error
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "Duración de las llamadas al proveedor LLM en segundos",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		},
		[]string{"provider", "call"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total de recomendaciones generadas por resultado",
		},
		[]string{"outcome"},
	)

	RecommendedProducts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_products_returned",
			Help:    "Productos válidos devueltos por recomendación",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 10},
		},
	)

	DroppedProductIDs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_dropped_ids_total",
			Help: "Total de product_id devueltos por el modelo que no existen en el catálogo",
		},
	)

	TagLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tag_expansion_lookups_total",
			Help: "Total de consultas de expansión de etiquetas por estado",
		},
		[]string{"status"}, // found, empty, failed, skipped
	)
)

// ObserveLLMCall registra una llamada al LLM.
func ObserveLLMCall(provider, call string, err error, elapsed time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	LLMRequests.WithLabelValues(provider, call, outcome).Inc()
	LLMRequestDuration.WithLabelValues(provider, call).Observe(elapsed.Seconds())
}

// ObserveRecommendation registra el resultado de una recomendación.
func ObserveRecommendation(outcome string, returned, dropped int) {
	Recommendations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK || outcome == OutcomeParseError {
		RecommendedProducts.Observe(float64(returned))
	}
	if dropped > 0 {
		DroppedProductIDs.Add(float64(dropped))
	}
}

// ObserveTagLookup registra el estado de una expansión de etiquetas.
func ObserveTagLookup(status string) {
	TagLookups.WithLabelValues(status).Inc()
}
