package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the wave
// observation engine.
type Metrics struct {
	TicksTotal      prometheus.Counter
	TickErrors      prometheus.Counter
	ObserverRunning prometheus.Gauge
	TickDuration    prometheus.Histogram

	// Observable update metrics.
	UpdatesPublished *prometheus.CounterVec // label: observable
	WaveProgression  prometheus.Gauge

	// Collaborator metrics.
	PositionUpdates    prometheus.Counter
	AreaReloads        prometheus.Counter
	SnapshotsPublished prometheus.Counter
	SnapshotErrors     prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "ticks_total",
			Help:      "Total observation loop evaluations.",
		}),
		TickErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "tick_errors_total",
			Help:      "Total evaluations that failed and were recovered.",
		}),
		ObserverRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wave_engine",
			Name:      "observer_running",
			Help:      "1 when the observation loop is active, 0 when stopped.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wave_engine",
			Name:      "tick_duration_seconds",
			Help:      "Duration of one observation evaluation.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		UpdatesPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "updates_published_total",
			Help:      "Observable updates that passed throttling, by observable.",
		}, []string{"observable"}),
		WaveProgression: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wave_engine",
			Name:      "wave_progression_percent",
			Help:      "Last computed wave progression, 0 to 100.",
		}),
		PositionUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "position_updates_total",
			Help:      "Observer position updates received.",
		}),
		AreaReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "area_reloads_total",
			Help:      "Times the area GeoJSON was reloaded.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "snapshots_published_total",
			Help:      "Observation snapshots written to the sink topic.",
		}),
		SnapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wave_engine",
			Name:      "snapshot_errors_total",
			Help:      "Snapshot publish failures.",
		}),
	}

	prometheus.MustRegister(
		m.TicksTotal,
		m.TickErrors,
		m.ObserverRunning,
		m.TickDuration,
		m.UpdatesPublished,
		m.WaveProgression,
		m.PositionUpdates,
		m.AreaReloads,
		m.SnapshotsPublished,
		m.SnapshotErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with no registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TicksTotal:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "ticks_total"}),
		TickErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "tick_errors_total"}),
		ObserverRunning:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wave_engine", Name: "observer_running"}),
		TickDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wave_engine", Name: "tick_duration_seconds"}),
		UpdatesPublished:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wave_engine", Name: "updates_published_total"}, []string{"observable"}),
		WaveProgression:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wave_engine", Name: "wave_progression_percent"}),
		PositionUpdates:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "position_updates_total"}),
		AreaReloads:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "area_reloads_total"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "snapshots_published_total"}),
		SnapshotErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wave_engine", Name: "snapshot_errors_total"}),
	}
}
