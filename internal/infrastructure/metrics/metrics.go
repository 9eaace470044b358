package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for the realtime gateway and the
// external data service client. Each instance owns its registry so tests can
// create them freely.
type Metrics struct {
	registry *prometheus.Registry

	ActiveConnections prometheus.Gauge
	BroadcastsTotal   *prometheus.CounterVec
	DroppedFrames     prometheus.Counter
	OrdsDuration      *prometheus.HistogramVec
	OrdsErrors        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bingo_ws_active_connections",
			Help: "Number of currently connected websocket clients",
		}),
		BroadcastsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bingo_ws_broadcasts_total",
			Help: "Events broadcast to room channels, by event name",
		}, []string{"event"}),
		DroppedFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bingo_ws_dropped_frames_total",
			Help: "Frames dropped because a client send buffer was full",
		}),
		OrdsDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bingo_ords_request_duration_seconds",
			Help:    "Duration of calls to the ORDS data service, by operation",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		OrdsErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bingo_ords_errors_total",
			Help: "Failed calls to the ORDS data service, by operation",
		}, []string{"operation"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		m.ActiveConnections,
		m.BroadcastsTotal,
		m.DroppedFrames,
		m.OrdsDuration,
		m.OrdsErrors,
	)

	return m
}

// ObserveOrdsCall records one external call outcome.
func (m *Metrics) ObserveOrdsCall(operation string, start time.Time, err error) {
	m.OrdsDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.OrdsErrors.WithLabelValues(operation).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
