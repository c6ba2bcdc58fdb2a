// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_resolutions_total",
			Help: "Total number of resolution requests by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "engine_resolution_duration_seconds",
			Help: "Duration of intent resolution in seconds",
		},
		[]string{"source"},
	)

	PublishesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_publishes_total",
			Help: "Total number of command publishes by delivery mode",
		},
		[]string{"mode"},
	)

	InboundMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_inbound_messages_total",
			Help: "Total number of inbound transport messages by class",
		},
		[]string{"class"},
	)

	InboundDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transport_inbound_dropped_total",
			Help: "Total number of malformed inbound payloads dropped",
		},
	)
)
