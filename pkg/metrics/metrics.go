// Package metrics collects Prometheus metrics for the API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what handlers, middleware and services record into
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordTaskMutation(kind string)
	RecordPomodoroCompletion(mode string)
	RecordLoginRateLimited()
	SetActivePomodoroSessions(n int)
}

type Collector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	taskMutations    *prometheus.CounterVec
	pomodoroComplete *prometheus.CounterVec
	loginLimited     prometheus.Counter
	pomodoroSessions prometheus.Gauge
}

// NewCollector registers every metric on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studytracker_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "studytracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.3, 1, 3},
		}, []string{"method", "route"}),
		taskMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studytracker_task_mutations_total",
			Help: "Task creates, updates and deletes",
		}, []string{"kind"}),
		pomodoroComplete: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "studytracker_pomodoro_completions_total",
			Help: "Completed pomodoro countdowns by mode",
		}, []string{"mode"}),
		loginLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "studytracker_login_rate_limited_total",
			Help: "Login attempts rejected by the rate limiter",
		}),
		pomodoroSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "studytracker_pomodoro_sessions",
			Help: "Live pomodoro websocket sessions",
		}),
	}

	reg.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.taskMutations,
		c.pomodoroComplete,
		c.loginLimited,
		c.pomodoroSessions,
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordTaskMutation(kind string) {
	c.taskMutations.WithLabelValues(kind).Inc()
}

func (c *Collector) RecordPomodoroCompletion(mode string) {
	c.pomodoroComplete.WithLabelValues(mode).Inc()
}

func (c *Collector) RecordLoginRateLimited() {
	c.loginLimited.Inc()
}

func (c *Collector) SetActivePomodoroSessions(n int) {
	c.pomodoroSessions.Set(float64(n))
}

// Handler serves the scrape endpoint for gatherer
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Noop discards everything. Used in tests and when metrics are disabled.
type Noop struct{}

func (Noop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Noop) RecordTaskMutation(string)                            {}
func (Noop) RecordPomodoroCompletion(string)                      {}
func (Noop) RecordLoginRateLimited()                              {}
func (Noop) SetActivePomodoroSessions(int)                        {}
