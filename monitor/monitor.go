// monitor/monitor.go
package monitor

import (
	"expvar"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	ActiveRooms      prometheus.Gauge
	Subscribers      prometheus.Gauge
	DrawsTotal       prometheus.Counter
	ResetsTotal      prometheus.Counter
	MessagesReceived prometheus.Counter
	SnapshotFailures prometheus.Counter
	SnapshotDuration prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms known to the store",
		}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_subscribers",
			Help:      "Number of live websocket subscribers",
		}),
		DrawsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draws_total",
			Help:      "Total numbers drawn",
		}),
		ResetsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resets_total",
			Help:      "Total game resets",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total websocket events received",
		}),
		SnapshotFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Total failed snapshot writes",
		}),
		SnapshotDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Snapshot write latency",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
	}

	prometheus.MustRegister(
		m.ActiveRooms,
		m.Subscribers,
		m.DrawsTotal,
		m.ResetsTotal,
		m.MessagesReceived,
		m.SnapshotFailures,
		m.SnapshotDuration,
	)

	return m
}

type Monitor struct {
	metrics   *Metrics
	startTime time.Time
}

func NewMonitor(namespace string) *Monitor {
	return &Monitor{
		metrics:   NewMetrics(namespace),
		startTime: time.Now(),
	}
}

// StartServer serves /metrics (and expvar) on its own address so the
// game port stays clean.
func (m *Monitor) StartServer(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/vars", expvar.Handler())

	expvar.Publish("uptime", expvar.Func(func() interface{} {
		return time.Since(m.startTime).Seconds()
	}))

	go http.ListenAndServe(addr, mux)
}

func (m *Monitor) IncSubscribers() {
	m.metrics.Subscribers.Inc()
}

func (m *Monitor) DecSubscribers() {
	m.metrics.Subscribers.Dec()
}

func (m *Monitor) SetActiveRooms(count int) {
	m.metrics.ActiveRooms.Set(float64(count))
}

func (m *Monitor) IncDraws() {
	m.metrics.DrawsTotal.Inc()
}

func (m *Monitor) IncResets() {
	m.metrics.ResetsTotal.Inc()
}

func (m *Monitor) IncMessagesReceived() {
	m.metrics.MessagesReceived.Inc()
}

func (m *Monitor) ObserveSnapshot(duration time.Duration, err error) {
	m.metrics.SnapshotDuration.Observe(duration.Seconds())
	if err != nil {
		m.metrics.SnapshotFailures.Inc()
	}
}
