// Package metrics provides Prometheus observability metrics for the engine.
// It covers data-load quality counters and report computation timings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// LOADER METRICS - Data quality visibility
// =============================================================================

// LoaderRowsTotal tracks rows read per dataset before validation.
var LoaderRowsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "rows_total",
	Help:      "Total raw rows read per dataset",
}, []string{"dataset"})

// LoaderDroppedTotal tracks rows dropped per dataset during normalization.
// Rows fall out on unparseable timestamps, missing key fields, or a
// non-positive duration. High values indicate an upstream export problem.
var LoaderDroppedTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "loader",
	Name:      "rows_dropped_total",
	Help:      "Rows dropped during normalization per dataset",
}, []string{"dataset"})

// =============================================================================
// REPORT METRICS - Computation health
// =============================================================================

// ReportDurationSeconds tracks the wall time of one full report computation.
// The minute-grid utilization loop dominates this for multi-day ranges.
var ReportDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "report",
	Name:      "duration_seconds",
	Help:      "Time taken to compute one agent report",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
})

// ReportsBuiltTotal tracks built reports by triage view.
var ReportsBuiltTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "report",
	Name:      "built_total",
	Help:      "Reports built, labeled by triage view",
}, []string{"view"})

// =============================================================================
// HTTP METRICS
// =============================================================================

// RequestsTotal tracks API requests by route and status class.
var RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "api",
	Name:      "requests_total",
	Help:      "API requests by route and status code",
}, []string{"route", "status"})
