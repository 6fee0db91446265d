package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			match := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					match = false
				}
			}
			if match {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func TestRecordTaskMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTaskMutation("created")
	c.RecordTaskMutation("created")
	c.RecordTaskMutation("deleted")

	if v := counterValue(t, reg, "studytracker_task_mutations_total", map[string]string{"kind": "created"}); v != 2 {
		t.Errorf("created = %v, want 2", v)
	}
	if v := counterValue(t, reg, "studytracker_task_mutations_total", map[string]string{"kind": "deleted"}); v != 1 {
		t.Errorf("deleted = %v, want 1", v)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPRequest("GET", "/api/tasks", 200, 12*time.Millisecond)

	labels := map[string]string{"method": "GET", "route": "/api/tasks", "status": "200"}
	if v := counterValue(t, reg, "studytracker_http_requests_total", labels); v != 1 {
		t.Errorf("requests = %v, want 1", v)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordPomodoroCompletion("work")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `studytracker_pomodoro_completions_total{mode="work"} 1`) {
		t.Errorf("scrape output missing pomodoro counter:\n%s", body)
	}
}
