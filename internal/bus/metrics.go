package bus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	busPublishedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_relay",
			Subsystem: "bus",
			Name:      "events_published_total",
			Help:      "Total number of events published on the live update bus.",
		},
		[]string{"topic_kind"}, // message, share, validation
	)

	busHandlerFailedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sms_relay",
			Subsystem: "bus",
			Name:      "handler_failures_total",
			Help:      "Total number of bus handler invocations that returned an error or panicked.",
		},
		[]string{"topic_kind"},
	)
)
