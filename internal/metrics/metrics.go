package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedemptionDuration tracks the latency of redemption operations
	// (lookup, credit, redeem) by operation and outcome.
	RedemptionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "redemption_operation_duration_seconds",
			Help: "Duration of coupon redemption operations in seconds",
			Buckets: []float64{
				0.001, // 1ms
				0.005, // 5ms
				0.01,  // 10ms
				0.025, // 25ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
				10.0,  // 10s
			},
		},
		[]string{"operation", "status"},
	)

	// PointsCredited counts loyalty points handed out across all customers.
	PointsCredited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_credited_total",
			Help: "Total loyalty points credited",
		},
	)

	// PointsRedeemed counts loyalty points spent across all customers.
	PointsRedeemed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "points_redeemed_total",
			Help: "Total loyalty points redeemed",
		},
	)
)

// RecordRedemptionDuration records the duration of a redemption operation
func RecordRedemptionDuration(operation, status string, duration float64) {
	RedemptionDuration.WithLabelValues(operation, status).Observe(duration)
}
