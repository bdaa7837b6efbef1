package businessflow

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pricingEstimatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_estimates_total",
			Help: "Number of computed price estimates",
		},
		[]string{"pace", "discount_percent"},
	)

	pricingEstimateAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pricing_estimate_total_amount",
			Help:    "Quoted final price in whole currency units",
			Buckets: prometheus.ExponentialBuckets(10000, 2, 12),
		},
	)

	projectRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_requests_total",
			Help: "Number of stored project requests",
		},
		[]string{"source"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_request_notifications_total",
			Help: "Telegram relay attempts by outcome",
		},
		[]string{"result"},
	)

	contentCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_total",
			Help: "Content cache lookups by store and outcome",
		},
		[]string{"store", "result"},
	)
)

func observeEstimate(pace string, discountPercent int, finalPrice int64) {
	pricingEstimatesTotal.WithLabelValues(pace, strconv.Itoa(discountPercent)).Inc()
	pricingEstimateAmount.Observe(float64(finalPrice))
}
