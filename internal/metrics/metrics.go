// Package metrics exposes poll and snapshot metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pfrederiksen/seattle-home-game/internal/event"
)

const namespace = "seattle_home_game"

// Poll outcomes used as the status label of polls_total.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds the collectors updated by the poll coordinator.
type Metrics struct {
	registry *prometheus.Registry

	pollsTotal    *prometheus.CounterVec
	pollDuration  prometheus.Summary
	eventsToday   prometheus.Gauge
	homeGameToday prometheus.Gauge
	lastSuccessTS prometheus.Gauge
	sinkErrors    *prometheus.CounterVec
}

// New creates the collectors and registers them on a dedicated registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.pollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "polls_total",
		Help:      "Number of feed polls by status",
	}, []string{"status"})
	m.pollDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: namespace,
		Name:      "poll_duration_seconds",
		Help:      "Time spent fetching and processing the feed",
	})
	m.eventsToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_today",
		Help:      "Number of events in the latest snapshot",
	})
	m.homeGameToday = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "home_game_today",
		Help:      "1 if the latest snapshot reports a home game today",
	})
	m.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful poll",
	})
	m.sinkErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_errors_total",
		Help:      "Number of failed snapshot deliveries by sink",
	}, []string{"sink"})

	m.registry.MustRegister(
		m.pollsTotal, m.pollDuration, m.eventsToday,
		m.homeGameToday, m.lastSuccessTS, m.sinkErrors,
	)
	return m
}

// ObservePoll records the outcome and duration of one poll cycle.
func (m *Metrics) ObservePoll(status string, d time.Duration) {
	m.pollsTotal.WithLabelValues(status).Inc()
	m.pollDuration.Observe(d.Seconds())
}

// SetSnapshot publishes the gauges derived from a successful snapshot.
func (m *Metrics) SetSnapshot(snap *event.Snapshot) {
	m.eventsToday.Set(float64(snap.EventCount))
	if snap.EventsFound {
		m.homeGameToday.Set(1)
	} else {
		m.homeGameToday.Set(0)
	}
	m.lastSuccessTS.Set(float64(snap.LastPoll.Unix()))
}

// SinkError counts a failed delivery to the named sink.
func (m *Metrics) SinkError(sink string) {
	m.sinkErrors.WithLabelValues(sink).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the dedicated registry, e.g. for testutil.GatherAndCompare.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
