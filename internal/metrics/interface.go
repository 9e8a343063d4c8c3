package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchMutations(op string)
	IncLogins(result string)
	IncAuditFailures()
	IncNotifSent()
	IncNotifFailed()
	IncEventsPublished()
	IncEventsFailed()
	ObserveRequestDuration(method string, status int, duration float64)
	SetStartupTime(duration float64)
}

// Label values used with the counters above.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"

	LoginSuccess   = "success"
	LoginFailure   = "failure"
	LoginThrottled = "throttled"
)
