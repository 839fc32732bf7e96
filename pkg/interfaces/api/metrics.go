package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReconcileRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stockrecon_reconcile_requests_total",
		Help: "Total number of reconcile requests by outcome",
	},
		[]string{"outcome"},
	)

	ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stockrecon_reconcile_duration_seconds",
		Help:    "Time spent loading and reconciling uploaded files",
		Buckets: prometheus.DefBuckets,
	})

	ReportSKUs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stockrecon_report_skus",
		Help: "Number of SKUs in the most recent successful report",
	})
)
