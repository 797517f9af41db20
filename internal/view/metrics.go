package view

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is optional everywhere, a nil *Metrics records nothing.
type Metrics struct {
	loads         *prometheus.CounterVec
	notifications *prometheus.CounterVec
	appends       prometheus.Counter
	mounted       prometheus.Gauge
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userview_loads_total",
				Help: "Finished user list loads by outcome",
			},
			[]string{"outcome"},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "userview_load_notifications_total",
				Help: "One-time load notifications emitted",
			},
			[]string{"message"},
		),
		appends: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "userview_appended_records_total",
				Help: "Records appended to a view after creation",
			},
		),
		mounted: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "userview_mounted_views",
				Help: "Views currently mounted",
			},
		),
	}
	registry.MustRegister(m.loads, m.notifications, m.appends, m.mounted)
	return m
}

func (m *Metrics) loadFinished(s Status) {
	if m == nil {
		return
	}
	m.loads.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) notified(msg string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(msg).Inc()
}

func (m *Metrics) appended() {
	if m == nil {
		return
	}
	m.appends.Inc()
}

func (m *Metrics) viewMounted() {
	if m == nil {
		return
	}
	m.mounted.Inc()
}

func (m *Metrics) viewUnmounted() {
	if m == nil {
		return
	}
	m.mounted.Dec()
}
