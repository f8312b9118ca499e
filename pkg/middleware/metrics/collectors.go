package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	responseTime = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "response_time",
			Help:    "http response time.",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60},
		},
	)

	totalHttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "total_http_requests", Help: "http requests by code and method"},
		[]string{"code", "method"},
	)

	totalDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "screen_dispatch_total", Help: "screen dispatches by screen, action, and outcome"},
		[]string{"screen", "action", "outcome"},
	)

	totalGateDenials = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "screen_gate_denials_total", Help: "access gate denials by screen"},
		[]string{"screen"},
	)

	totalPartialRenders = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "screen_partial_renders_total", Help: "partial renders by screen and slug"},
		[]string{"screen", "slug"},
	)
)

func init() {
	prometheus.MustRegister(
		responseTime,
		totalHttpRequests,
		totalDispatches,
		totalGateDenials,
		totalPartialRenders,
	)
}

// ObserveDispatch records one dispatch outcome; called from the route layer.
func ObserveDispatch(screen, action, outcome string) {
	totalDispatches.WithLabelValues(screen, action, outcome).Inc()
	if outcome == "denied" {
		totalGateDenials.WithLabelValues(screen).Inc()
	}
}

// ObservePartialRender records one async fragment render.
func ObservePartialRender(screen, slug string) {
	totalPartialRenders.WithLabelValues(screen, slug).Inc()
}
