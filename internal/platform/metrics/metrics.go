package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readrise_sessions_started_total",
		Help: "Reading sessions started",
	})

	SessionsClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readrise_sessions_closed_total",
		Help: "Reading sessions closed by the reader",
	})

	SessionsAutoClosed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readrise_sessions_auto_closed_total",
		Help: "Open sessions closed implicitly when a new session started for the same book",
	})

	SessionDurationAnomalies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readrise_session_duration_anomalies_total",
		Help: "Closed sessions whose computed duration was negative",
	})

	SessionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "readrise_session_duration_seconds",
		Help:    "Duration of closed reading sessions",
		Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400},
	})

	StatsAssembled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readrise_stats_assembled_total",
			Help: "Statistics snapshots assembled",
		},
		[]string{"kind"},
	)

	DigestNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readrise_digest_notifications_total",
			Help: "Weekly summary notifications by result",
		},
		[]string{"result"},
	)
)
