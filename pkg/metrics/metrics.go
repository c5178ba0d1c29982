package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "store_operations_total", Help: "Document store calls by collection, operation and outcome."},
		[]string{"collection", "op", "outcome"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "shop", Name: "store_operation_seconds", Help: "Document store call latency.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	RequestFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "request_failures_total", Help: "Failed API requests by failure kind and class."},
		[]string{"kind", "class"},
	)
	ListCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "shop", Name: "product_list_cache_lookups_total", Help: "Product list cache lookups by result (hit, miss, error)."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(StoreLatency)
	reg.MustRegister(RequestFailures)
	reg.MustRegister(ListCacheLookups)
}
