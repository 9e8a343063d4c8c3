package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	MatchMutations     *prometheus.CounterVec
	Logins             *prometheus.CounterVec
	AuditFailures      prometheus.Counter
	NotifSent          prometheus.Counter
	NotifFailed        prometheus.Counter
	EventsPublished    prometheus.Counter
	EventsFailed       prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
	StartupTimeSeconds prometheus.Gauge
}
