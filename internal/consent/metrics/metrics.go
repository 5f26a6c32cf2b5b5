package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for installs, activity and timeline growth.
type Metrics struct {
	AppsInstalled       *prometheus.CounterVec
	InstalledAppsTotal  prometheus.Gauge
	ActivitiesSimulated *prometheus.CounterVec
	TimelineEvents      *prometheus.CounterVec
	SimulationResets    prometheus.Counter
	RuntimeRiskScore    prometheus.Histogram

	// Lock contention for per-app transactions
	ShardLockWait         prometheus.Histogram
	ShardLockAcquisitions prometheus.Counter
}

// New registers consent metrics on reg; nil means the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		AppsInstalled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentintel_apps_installed_total",
			Help: "Install requests, labeled by whether a new record was created",
		}, []string{"result"}),
		InstalledAppsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "consentintel_installed_apps",
			Help: "Current number of installed apps",
		}),
		ActivitiesSimulated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentintel_activities_simulated_total",
			Help: "Simulated runtime activities, labeled by resulting severity",
		}, []string{"severity"}),
		TimelineEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentintel_timeline_events_total",
			Help: "Timeline events appended, labeled by event type",
		}, []string{"type"}),
		SimulationResets: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_simulation_resets_total",
			Help: "Number of times the simulation state was cleared",
		}),
		RuntimeRiskScore: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentintel_runtime_risk_score",
			Help:    "Distribution of risk scores after installs and activities",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		}),
		ShardLockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentintel_consent_shard_lock_wait_seconds",
			Help:    "Time spent waiting to acquire a per-app shard lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		ShardLockAcquisitions: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_consent_shard_lock_acquisitions_total",
			Help: "Total number of shard lock acquisitions",
		}),
	}
}

func (m *Metrics) IncrementInstalls(created bool) {
	result := "existing"
	if created {
		result = "created"
	}
	m.AppsInstalled.WithLabelValues(result).Inc()
}

func (m *Metrics) SetInstalledApps(count int) {
	m.InstalledAppsTotal.Set(float64(count))
}

func (m *Metrics) IncrementActivities(severity string) {
	m.ActivitiesSimulated.WithLabelValues(severity).Inc()
}

func (m *Metrics) IncrementTimelineEvents(eventType string) {
	m.TimelineEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) IncrementResets() {
	m.SimulationResets.Inc()
}

func (m *Metrics) ObserveRiskScore(score int) {
	m.RuntimeRiskScore.Observe(float64(score))
}

func (m *Metrics) ObserveShardLockWait(durationSeconds float64) {
	m.ShardLockWait.Observe(durationSeconds)
	m.ShardLockAcquisitions.Inc()
}
