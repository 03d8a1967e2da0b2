package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsActive is the gauge of open websocket sessions
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lawyer_services_websocket_sessions_active",
		Help: "Number of open websocket sessions",
	})

	// EventsTotal counts websocket events by direction and name
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lawyer_services_websocket_events_total",
		Help: "Total websocket events by direction and name",
	}, []string{"direction", "event"})

	// FramesDropped counts frames dropped because a session's send queue was full
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lawyer_services_websocket_frames_dropped_total",
		Help: "Total websocket frames dropped due to backpressure",
	})

	// HandshakeRejections counts upgrade attempts refused before the upgrade
	HandshakeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lawyer_services_websocket_handshake_rejections_total",
		Help: "Total websocket handshakes rejected by reason",
	}, []string{"reason"})
)
