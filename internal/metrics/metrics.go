// Package metrics exposes Prometheus metrics for the visitor service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Monitor owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Monitor struct {
	registry *prometheus.Registry
	log      *zap.Logger

	responseTime  *prometheus.HistogramVec
	dependency    *prometheus.GaugeVec
	checkIns      *prometheus.CounterVec
	checkOuts     *prometheus.CounterVec
	notifications *prometheus.CounterVec
	alarms        prometheus.Counter
	swept         prometheus.Counter
}

// NewMonitor labels every series with the service name.
func NewMonitor(service string, log *zap.Logger) *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		log:      log,
		responseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "HTTP response time by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
		dependency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "1 when a dependency answered its last health check.",
		}, []string{"component"}),
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_check_ins_total",
			Help: "Visitors checked in, by channel.",
		}, []string{"channel"}),
		checkOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "visitor_check_outs_total",
			Help: "Visitors checked out, by channel.",
		}, []string{"channel"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification attempts by kind and outcome.",
		}, []string{"kind", "outcome"}),
		alarms: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fire_alarms_total",
			Help: "Fire alarms triggered.",
		}),
		swept: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "visitors_swept_total",
			Help: "Expired visitor records deleted by the retention sweep.",
		}),
	}
	prometheus.WrapRegistererWith(prometheus.Labels{"service": service}, m.registry).MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.responseTime, m.dependency, m.checkIns, m.checkOuts, m.notifications, m.alarms, m.swept,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Monitor) ObserveResponse(route string, status int, d time.Duration) {
	m.responseTime.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Monitor) SetDependencyAvailability(component string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	m.dependency.WithLabelValues(component).Set(v)
}

func (m *Monitor) CheckIn(channel string)  { m.checkIns.WithLabelValues(channel).Inc() }
func (m *Monitor) CheckOut(channel string) { m.checkOuts.WithLabelValues(channel).Inc() }

// Notification records one send. Simulated sends count as their own outcome.
func (m *Monitor) Notification(kind string, success, simulation bool) {
	outcome := "failed"
	switch {
	case simulation:
		outcome = "simulated"
	case success:
		outcome = "sent"
	}
	m.notifications.WithLabelValues(kind, outcome).Inc()
}

func (m *Monitor) Alarm() { m.alarms.Inc() }

func (m *Monitor) Swept(n int64) {
	if n > 0 {
		m.swept.Add(float64(n))
	}
}
