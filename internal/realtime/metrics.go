package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ConnectedClients   prometheus.Gauge
	EventsBroadcast    prometheus.Counter
	EventsDropped      prometheus.Counter
	SlowClientsDropped prometheus.Counter
}

// NewMetrics registers realtime metrics on reg; nil means the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "consentintel_realtime_clients",
			Help: "Connected live timeline websocket clients",
		}),
		EventsBroadcast: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_realtime_events_broadcast_total",
			Help: "Timeline events fanned out to live subscribers",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_realtime_events_dropped_total",
			Help: "Timeline events dropped because the broadcast queue was full",
		}),
		SlowClientsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "consentintel_realtime_slow_clients_dropped_total",
			Help: "Clients disconnected for not keeping up with the feed",
		}),
	}
}
