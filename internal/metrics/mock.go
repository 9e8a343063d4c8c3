package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	matchMutations   map[string]int
	logins           map[string]int
	auditFailures    int
	notifSent        int
	notifFailed      int
	eventsPublished  int
	eventsFailed     int
	requestDurations []float64
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchMutations:   make(map[string]int),
		logins:           make(map[string]int),
		requestDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchMutations(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchMutations[op]++
}

func (m *Mock) IncLogins(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins[result]++
}

func (m *Mock) IncAuditFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditFailures++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) IncEventsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFailed++
}

func (m *Mock) ObserveRequestDuration(method string, status int, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestDurations = append(m.requestDurations, duration)
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchMutations returns how often IncMatchMutations was called with op.
func (m *Mock) MatchMutations(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchMutations[op]
}

// Logins returns how often IncLogins was called with result.
func (m *Mock) Logins(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins[result]
}

// AuditFailures returns the number of times IncAuditFailures was called.
func (m *Mock) AuditFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.auditFailures
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}

// EventsFailed returns the number of times IncEventsFailed was called.
func (m *Mock) EventsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsFailed
}

// Requests returns the number of observed request durations.
func (m *Mock) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requestDurations)
}
