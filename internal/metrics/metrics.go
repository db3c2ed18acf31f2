package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackendCallDuration tracks the latency of calls to the card backend
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tapcard_backend_call_duration_seconds",
			Help: "Duration of card backend calls in seconds",
			Buckets: []float64{
				0.01,  // 10ms
				0.05,  // 50ms
				0.1,   // 100ms
				0.25,  // 250ms
				0.5,   // 500ms
				1.0,   // 1s
				2.5,   // 2.5s
				5.0,   // 5s
				10.0,  // 10s
				15.0,  // lookup cap
			},
		},
		[]string{"operation", "outcome"},
	)

	// ScanResolutions counts scan resolutions by resulting state
	ScanResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tapcard_scan_resolutions_total",
			Help: "Scan resolutions by resulting flow state",
		},
		[]string{"state"},
	)
)

// RecordBackendCall records the duration of one backend call
func RecordBackendCall(operation, outcome string, seconds float64) {
	BackendCallDuration.WithLabelValues(operation, outcome).Observe(seconds)
}

// RecordScan counts one resolved scan
func RecordScan(state string) {
	ScanResolutions.WithLabelValues(state).Inc()
}
