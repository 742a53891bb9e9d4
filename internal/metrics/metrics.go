// Package metrics provides Prometheus metrics for the odds pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// PipelineMetrics collects and exposes pipeline metrics
type PipelineMetrics struct {
	registry *prometheus.Registry

	ProviderRequests *prometheus.CounterVec
	ProviderQuota    prometheus.Gauge
	NormalizedQuotes *prometheus.CounterVec
	EventRefreshes   *prometheus.CounterVec
	RefreshDuration  prometheus.Histogram
	Selections       *prometheus.GaugeVec
	SelectionRuns    *prometheus.CounterVec
}

// NewPipelineMetrics creates metrics on a dedicated registry
func NewPipelineMetrics() *PipelineMetrics {
	registry := prometheus.NewRegistry()

	m := &PipelineMetrics{
		registry: registry,

		ProviderRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odds_provider_requests_total",
				Help: "Odds provider requests by endpoint and HTTP status",
			},
			[]string{"endpoint", "status"},
		),
		ProviderQuota: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "odds_provider_requests_remaining",
				Help: "Requests remaining in the provider quota as last reported",
			},
		),
		NormalizedQuotes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odds_normalized_quotes_total",
				Help: "Over/under quotes accepted by normalization",
			},
			[]string{"category"},
		),
		EventRefreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "odds_event_refreshes_total",
				Help: "Event odds refreshes by outcome",
			},
			[]string{"outcome"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "odds_event_refresh_duration_seconds",
				Help:    "Time to fetch and evaluate one event",
				Buckets: prometheus.DefBuckets,
			},
		),
		Selections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "selections_current",
				Help: "Selections in the current daily snapshot",
			},
			[]string{"kind"},
		),
		SelectionRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "selection_refresh_runs_total",
				Help: "Daily selection refreshes by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.ProviderRequests,
		m.ProviderQuota,
		m.NormalizedQuotes,
		m.EventRefreshes,
		m.RefreshDuration,
		m.Selections,
		m.SelectionRuns,
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest implements oddsapi.Recorder
func (m *PipelineMetrics) ObserveRequest(endpoint string, statusCode int) {
	m.ProviderRequests.WithLabelValues(endpoint, strconv.Itoa(statusCode)).Inc()
}

// ObserveQuota implements oddsapi.Recorder
func (m *PipelineMetrics) ObserveQuota(remaining string) {
	if v, err := strconv.ParseFloat(remaining, 64); err == nil {
		m.ProviderQuota.Set(v)
	}
}

// ObserveEventRefresh records one event refresh
func (m *PipelineMetrics) ObserveEventRefresh(bundle models.NormalizedOddsBundle, elapsed time.Duration, err error) {
	m.RefreshDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.EventRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.EventRefreshes.WithLabelValues("ok").Inc()
	m.NormalizedQuotes.WithLabelValues(string(models.CategoryGoals)).Add(float64(len(bundle.Goals)))
	m.NormalizedQuotes.WithLabelValues(string(models.CategoryCards)).Add(float64(len(bundle.Cards)))
	m.NormalizedQuotes.WithLabelValues(string(models.CategoryCorners)).Add(float64(len(bundle.Corners)))
}

// ObserveSelectionRefresh records one daily refresh and the resulting snapshot size
func (m *PipelineMetrics) ObserveSelectionRefresh(snapshot *models.DailySnapshot, err error) {
	if err != nil {
		m.SelectionRuns.WithLabelValues("error").Inc()
		return
	}
	m.SelectionRuns.WithLabelValues("ok").Inc()
	m.Selections.WithLabelValues(string(models.SelectionGolden)).Set(float64(len(snapshot.Golden)))
	m.Selections.WithLabelValues(string(models.SelectionValue)).Set(float64(len(snapshot.Value)))
	m.Selections.WithLabelValues("bet_builder_legs").Set(float64(len(snapshot.BetBuilder.Legs)))
}
