package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveLogin("success")
	m.ObserveEnrollment()
	m.ObserveFileOp("delete", errors.New("boom"))
	m.RequestsTotal.WithLabelValues("GET", "/api/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		`registrar_login_attempts_total{outcome="success"} 1`,
		`registrar_enrollments_total 1`,
		`registrar_file_operations_total{op="delete",result="error"} 1`,
		`registrar_http_requests_total{method="GET",route="/api/health",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in exposition output", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLogin("failure")
	m.ObserveEnrollment()
	m.ObserveFileOp("upload", nil)
}
