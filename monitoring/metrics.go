package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ResponseTimeHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Histogram of response times",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransactionsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transactions_resolved_total",
			Help: "Deposits and withdrawals resolved by admins",
		},
		[]string{"kind", "status"},
	)

	SettlementCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "settlement_profiles_credited_total",
			Help: "Profiles credited by the weekly settlement job",
		},
	)

	MarketDataFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "market_data_fallbacks_total",
			Help: "Market data requests served from synthetic fallback",
		},
	)
)
