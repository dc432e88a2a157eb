// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_requests_total",
			Help: "Total number of fulfillment requests by intent and phase",
		},
		[]string{"intent", "phase"},
	)

	DialogResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_responses_total",
			Help: "Total number of dialog responses by action type",
		},
		[]string{"intent", "action"},
	)

	SlotRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_slot_rejections_total",
			Help: "Total number of slot values rejected by validators",
		},
		[]string{"slot"},
	)

	FulfillmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_fulfillments_total",
			Help: "Total number of booking fulfillments by outcome",
		},
		[]string{"outcome"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dialog_request_duration_seconds",
			Help: "Duration of fulfillment request processing in seconds",
		},
		[]string{"intent"},
	)
)
