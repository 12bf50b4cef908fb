package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	nuts "github.com/vaudience/go-nuts"
)

// Config holds monitoring configuration
type Config struct {
	Namespace string
}

// Service provides monitoring functionality
type Service struct {
	config   Config
	registry *prometheus.Registry

	events          *prometheus.CounterVec
	refreshes       prometheus.Counter
	anomalies       prometheus.Counter
	windowAnomalies prometheus.Gauge
	refreshDuration prometheus.Histogram
	sensors         prometheus.Gauge
	connected       prometheus.Gauge
}

// NewService creates a new monitoring service with its own registry
func NewService(config Config) *Service {
	if config.Namespace == "" {
		config.Namespace = "sensordash"
	}
	ns := config.Namespace
	s := &Service{
		config:   config,
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "events_total",
			Help:      "Monitored events by name.",
		}, []string{"event"}),
		refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "refresh_ticks_total",
			Help:      "Completed refresh ticks.",
		}),
		anomalies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "anomalous_readings_total",
			Help:      "Current readings flagged as anomalous, summed over ticks.",
		}),
		windowAnomalies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "window_anomalies",
			Help:      "Anomalous points across current readings and their history windows.",
		}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "refresh_duration_seconds",
			Help:      "Time spent generating and publishing one tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		sensors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "sensors",
			Help:      "Sensors in the latest snapshot.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "connected",
			Help:      "1 when the simulated feed reported healthy on the last tick.",
		}),
	}
	s.registry.MustRegister(
		s.events, s.refreshes, s.anomalies, s.windowAnomalies, s.refreshDuration, s.sensors, s.connected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return s
}

// RecordEvent records a monitored event with labels
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	s.events.WithLabelValues(eventName).Inc()
	nuts.L.Infof("[Monitoring] Event %s recorded with labels: %v", eventName, labels)
}

// RefreshStats is the outcome of one refresh tick.
type RefreshStats struct {
	Took    time.Duration
	Sensors int
	// Anomalous counts current readings only.
	Anomalous int
	// WindowAnomalies also counts flagged history points.
	WindowAnomalies int
	Connected       bool
}

// ObserveRefresh records the outcome of one refresh tick
func (s *Service) ObserveRefresh(stats RefreshStats) {
	s.refreshes.Inc()
	s.anomalies.Add(float64(stats.Anomalous))
	s.windowAnomalies.Set(float64(stats.WindowAnomalies))
	s.refreshDuration.Observe(stats.Took.Seconds())
	s.sensors.Set(float64(stats.Sensors))
	if stats.Connected {
		s.connected.Set(1)
	} else {
		s.connected.Set(0)
	}
}

// Handler serves the Prometheus exposition format
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}
