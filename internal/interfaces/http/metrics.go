package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog/log"

	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/application"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain"
	"github.com/scrumdogmillionaire11/cheddar-logic-sub006/internal/domain/drivers"
)

// EvalResult labels how an evaluation ended.
type EvalResult string

const (
	EvalResultSuccess EvalResult = "success"
	EvalResultError   EvalResult = "error"
)

// MetricsRegistry holds the engine's Prometheus metrics. Each registry owns
// its own prometheus.Registry so tests can build servers freely.
type MetricsRegistry struct {
	registry *prometheus.Registry

	EvaluationDuration *prometheus.HistogramVec
	EvaluationsTotal   *prometheus.CounterVec
	DecisionsTotal     *prometheus.CounterVec
	SelectionsTotal    *prometheus.CounterVec
	RiskFlagsTotal     *prometheus.CounterVec
	ActiveEvaluations  prometheus.Gauge
}

// NewMetricsRegistry creates a registry with all engine metrics.
func NewMetricsRegistry() *MetricsRegistry {
	m := &MetricsRegistry{
		registry: prometheus.NewRegistry(),

		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cheddar_evaluation_duration_seconds",
				Help:    "Duration of game evaluations in seconds",
				Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"sport", "result"},
		),

		EvaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheddar_evaluations_total",
				Help: "Total number of game evaluations by sport and result",
			},
			[]string{"sport", "result"},
		),

		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheddar_decisions_total",
				Help: "Total number of market decisions by market and status",
			},
			[]string{"market", "status"},
		),

		SelectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheddar_selections_total",
				Help: "Total number of expression selections by market, none included",
			},
			[]string{"market"},
		),

		RiskFlagsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cheddar_risk_flags_total",
				Help: "Total number of risk flags raised by market and flag",
			},
			[]string{"market", "flag"},
		),

		ActiveEvaluations: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "cheddar_active_evaluations",
				Help: "Number of evaluations currently in flight",
			},
		),
	}

	m.registry.MustRegister(
		m.EvaluationDuration,
		m.EvaluationsTotal,
		m.DecisionsTotal,
		m.SelectionsTotal,
		m.RiskFlagsTotal,
		m.ActiveEvaluations,
	)
	return m
}

// EvalTimer tracks one evaluation's wall time.
type EvalTimer struct {
	metrics *MetricsRegistry
	sport   string
	start   time.Time
}

// StartEvaluation begins timing an evaluation.
func (m *MetricsRegistry) StartEvaluation(sport string) *EvalTimer {
	m.ActiveEvaluations.Inc()
	return &EvalTimer{
		metrics: m,
		sport:   sport,
		start:   time.Now(),
	}
}

// Stop completes the timing and records the evaluation.
func (t *EvalTimer) Stop(result EvalResult) {
	duration := time.Since(t.start)
	t.metrics.EvaluationDuration.WithLabelValues(t.sport, string(result)).Observe(duration.Seconds())
	t.metrics.EvaluationsTotal.WithLabelValues(t.sport, string(result)).Inc()
	t.metrics.ActiveEvaluations.Dec()

	log.Debug().
		Str("sport", t.sport).
		Str("result", string(result)).
		Dur("duration", duration).
		Msg("Evaluation timed")
}

// RecordEvaluation counts a finished evaluation's decisions, flags, and
// selection.
func (m *MetricsRegistry) RecordEvaluation(eval *application.GameEvaluation) {
	for i := range eval.Decisions {
		d := &eval.Decisions[i]
		m.DecisionsTotal.WithLabelValues(string(d.Market), string(d.Status)).Inc()
		for _, f := range d.RiskFlags {
			m.RiskFlagsTotal.WithLabelValues(string(d.Market), string(f)).Inc()
		}
	}

	if eval.Choice.None() {
		m.SelectionsTotal.WithLabelValues("none").Inc()
	} else {
		m.SelectionsTotal.WithLabelValues(string(*eval.Choice.ChosenMarket)).Inc()
	}
}

// TotalEvaluations sums the evaluation counter across sports and results.
func (m *MetricsRegistry) TotalEvaluations() float64 {
	var total float64
	metric := &io_prometheus_client.Metric{}
	for _, sport := range drivers.Sports() {
		for _, result := range []EvalResult{EvalResultSuccess, EvalResultError} {
			counter, err := m.EvaluationsTotal.GetMetricWithLabelValues(sport, string(result))
			if err != nil {
				continue
			}
			if err := counter.Write(metric); err == nil {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

// AdviseRate returns the share of market decisions that came out ADVISE.
func (m *MetricsRegistry) AdviseRate() float64 {
	markets := []domain.Market{domain.MarketTotal, domain.MarketSpread, domain.MarketML}
	statuses := []domain.DecisionStatus{domain.StatusPass, domain.StatusWatch, domain.StatusAdvise}

	var total, advise float64
	metric := &io_prometheus_client.Metric{}
	for _, market := range markets {
		for _, status := range statuses {
			counter, err := m.DecisionsTotal.GetMetricWithLabelValues(string(market), string(status))
			if err != nil {
				continue
			}
			if err := counter.Write(metric); err != nil {
				continue
			}
			v := metric.GetCounter().GetValue()
			total += v
			if status == domain.StatusAdvise {
				advise += v
			}
		}
	}
	if total == 0 {
		return 0
	}
	return advise / total
}

// Handler serves this registry's metrics in Prometheus text format.
func (m *MetricsRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
