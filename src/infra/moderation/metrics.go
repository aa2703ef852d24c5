package moderation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qaboard",
		Subsystem: "moderation",
		Name:      "attempts_total",
		Help:      "Moderation API attempts by outcome (ok, transport, client, server, decode).",
	}, []string{"outcome"})

	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "qaboard",
		Subsystem: "moderation",
		Name:      "checks_total",
		Help:      "Completed moderation checks by result, after retries.",
	}, []string{"result"})

	checkDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "qaboard",
		Subsystem: "moderation",
		Name:      "check_duration_seconds",
		Help:      "Wall time of a moderation check including retries and backoff.",
		Buckets:   prometheus.DefBuckets,
	})
)
