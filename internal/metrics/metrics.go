// Package metrics registers the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculator runs, labelled by calculator (microgrid, compare, lcoh, bess)
	// and outcome (ok, invalid, cached).
	CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_sizing_calculations_total",
		Help: "Calculator runs by calculator and outcome",
	}, []string{"calculator", "outcome"})

	CalculationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "energy_sizing_calculation_duration_seconds",
		Help:    "Time spent computing a result (cache misses only)",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"calculator"})

	// Last simulated yearly figures per load archetype.
	UnservedKWhPerYear = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "energy_sizing_unserved_kwh_per_year",
		Help: "Unserved load of the last microgrid simulation",
	}, []string{"load_profile"})

	RenewableFractionPct = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "energy_sizing_renewable_fraction_pct",
		Help: "Renewable fraction of the last microgrid simulation",
	}, []string{"load_profile"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_sizing_http_requests_total",
		Help: "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "energy_sizing_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)
