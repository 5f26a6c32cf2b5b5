package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for catalog reads and risk previews.
type Metrics struct {
	RiskPreviews   *prometheus.CounterVec
	PreviewMisses  prometheus.Counter
	CatalogSize    prometheus.Gauge
	PreviewLatency prometheus.Histogram
}

// New registers catalog metrics on reg; nil means the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		RiskPreviews: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "consentintel_risk_previews_total",
			Help: "Risk previews served, labeled by resulting level",
		}, []string{"level"}),
		PreviewMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_risk_preview_misses_total",
			Help: "Risk previews requested for apps missing from the catalog",
		}),
		CatalogSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "consentintel_catalog_apps",
			Help: "Number of apps in the loaded catalog",
		}),
		PreviewLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "consentintel_risk_preview_latency_seconds",
			Help:    "Latency of risk preview computation in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
	}
}

func (m *Metrics) IncrementRiskPreview(level string) {
	m.RiskPreviews.WithLabelValues(level).Inc()
}

func (m *Metrics) IncrementPreviewMiss() {
	m.PreviewMisses.Inc()
}

func (m *Metrics) SetCatalogSize(n int) {
	m.CatalogSize.Set(float64(n))
}

func (m *Metrics) ObservePreviewLatency(durationSeconds float64) {
	m.PreviewLatency.Observe(durationSeconds)
}
