package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	OrderClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_claims_total",
			Help: "Total number of successful order claims",
		},
	)

	OrderClaimConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_claim_conflicts_total",
			Help: "Total number of claim attempts rejected due to a state conflict",
		},
	)

	ProfitDistributionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "profit_distributions_total",
			Help: "Total number of applied profit distributions",
		},
	)

	ClaimDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_claim_duration_seconds",
			Help:    "Duration of order claim operations",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Register() {
	prometheus.MustRegister(
		OrderClaimsTotal,
		OrderClaimConflictsTotal,
		ProfitDistributionsTotal,
		ClaimDuration,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
