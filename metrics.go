// FILE: metrics.go
// Package main – Prometheus metrics for observability.
//
// Exposes the metrics this process updates while acquiring bars and running
// the pipeline:
//   - chanlun_runs_total{outcome}            – pipeline invocations by outcome
//   - chanlun_structural_bars                – structural bar count of the last run
//   - chanlun_fractals_total{type}           – surviving fractals by type
//   - chanlun_strokes_total                  – stroke count of the last run
//   - chanlun_filter_cleared_total{stage}    – marks cleared per filter stage
//   - chanlun_acquire_latency_seconds{source} – acquirer round-trip latency
//   - chanlun_server_probe_latency_ms{host}  – latest latency probe per host
//
// These are registered in init() and served by the HTTP handler started in
// main.go at /metrics (Prometheus text exposition format).
package main

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanlun_runs_total",
			Help: "Pipeline invocations by outcome (ok|input_error|invariant_error).",
		},
		[]string{"outcome"},
	)

	mtxStructuralBars = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanlun_structural_bars",
			Help: "Structural bar count of the last run.",
		},
	)

	mtxFractals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanlun_fractals_total",
			Help: "Surviving fractals by type (top|bottom) after the filter chain.",
		},
		[]string{"type"},
	)

	mtxStrokes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chanlun_strokes_total",
			Help: "Stroke count of the last run.",
		},
	)

	mtxFilterCleared = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chanlun_filter_cleared_total",
			Help: "Fractal marks cleared per filter stage (f1|f2|f3|f4|f5).",
		},
		[]string{"stage"},
	)

	mtxAcquireLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chanlun_acquire_latency_seconds",
			Help:    "Acquirer round-trip latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	mtxServerProbeLatency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chanlun_server_probe_latency_ms",
			Help: "Latest latency probe in milliseconds, per candidate upstream host.",
		},
		[]string{"host"},
	)
)

func init() {
	prometheus.MustRegister(mtxRuns, mtxStructuralBars, mtxFractals, mtxStrokes)
	prometheus.MustRegister(mtxFilterCleared)
	prometheus.MustRegister(mtxAcquireLatency, mtxServerProbeLatency)
}

func recordRunOutcome(outcome string) { mtxRuns.WithLabelValues(outcome).Inc() }

func recordResultMetrics(structuralBars, tops, bottoms, strokes int) {
	mtxStructuralBars.Set(float64(structuralBars))
	mtxFractals.WithLabelValues("top").Add(float64(tops))
	mtxFractals.WithLabelValues("bottom").Add(float64(bottoms))
	mtxStrokes.Set(float64(strokes))
}

func recordFilterCleared(stage string, n int) {
	if n <= 0 {
		return
	}
	mtxFilterCleared.WithLabelValues(stage).Add(float64(n))
}

func recordAcquireLatency(source string, seconds float64) {
	mtxAcquireLatency.WithLabelValues(source).Observe(seconds)
}

func recordServerProbeLatency(host string, ms float64) {
	mtxServerProbeLatency.WithLabelValues(host).Set(ms)
}
