package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ladder_match_mutations_total",
			Help: "The total number of committed match creates, updates and deletes.",
		}, []string{"op"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ladder_admin_logins_total",
			Help: "The total number of admin login attempts by outcome.",
		}, []string{"result"}),
		AuditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_audit_log_failures_total",
			Help: "The total number of audit entries that could not be written.",
		}),
		NotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		NotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_events_published_total",
			Help: "The total number of match events published to Pub/Sub.",
		}),
		EventsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_events_failed_total",
			Help: "The total number of match events that failed to publish.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ladder_http_request_duration_seconds",
			Help:    "The duration of HTTP requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method", "status"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchMutations,
		s.Logins,
		s.AuditFailures,
		s.NotifSent,
		s.NotifFailed,
		s.EventsPublished,
		s.EventsFailed,
		s.RequestDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchMutations(op string) {
	s.MatchMutations.WithLabelValues(op).Inc()
}

func (s *Service) IncLogins(result string) {
	s.Logins.WithLabelValues(result).Inc()
}

func (s *Service) IncAuditFailures() {
	s.AuditFailures.Inc()
}

func (s *Service) IncNotifSent() {
	s.NotifSent.Inc()
}

func (s *Service) IncNotifFailed() {
	s.NotifFailed.Inc()
}

func (s *Service) IncEventsPublished() {
	s.EventsPublished.Inc()
}

func (s *Service) IncEventsFailed() {
	s.EventsFailed.Inc()
}

func (s *Service) ObserveRequestDuration(method string, status int, duration float64) {
	s.RequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
