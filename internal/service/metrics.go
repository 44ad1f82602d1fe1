package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	inboundCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sms_relay",
		Subsystem: "inbound",
		Name:      "messages_total",
		Help:      "Inbound SMS handled by the router, by outcome.",
	}, []string{"outcome"})

	relayFailedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sms_relay",
		Subsystem: "inbound",
		Name:      "relay_failures_total",
		Help:      "Inbound SMS that could not be relayed to a forwarding number.",
	})

	telephoneCacheCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sms_relay",
		Subsystem: "inbound",
		Name:      "telephone_cache_total",
		Help:      "Telephone-by-number cache lookups, by result.",
	}, []string{"result"})
)
