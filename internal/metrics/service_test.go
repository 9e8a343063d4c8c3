package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncMatchMutations(OpCreate)
	s.IncMatchMutations(OpCreate)
	s.IncMatchMutations(OpDelete)
	s.IncLogins(LoginFailure)
	s.IncAuditFailures()
	s.ObserveRequestDuration(http.MethodGet, http.StatusOK, 0.01)

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `ladder_match_mutations_total{op="create"} 2`)
	assert.Contains(t, body, `ladder_match_mutations_total{op="delete"} 1`)
	assert.Contains(t, body, `ladder_admin_logins_total{result="failure"} 1`)
	assert.Contains(t, body, "ladder_audit_log_failures_total 1")
	assert.Contains(t, body, `ladder_http_request_duration_seconds_count{method="GET",status="200"} 1`)
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncMatchMutations(OpUpdate)
	m.IncLogins(LoginThrottled)
	m.IncNotifFailed()

	assert.Equal(t, 1, m.MatchMutations(OpUpdate))
	assert.Equal(t, 0, m.MatchMutations(OpCreate))
	assert.Equal(t, 1, m.Logins(LoginThrottled))
	assert.Equal(t, 1, m.NotifFailed())
}
