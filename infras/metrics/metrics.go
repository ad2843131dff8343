// Package metrics exposes Prometheus collectors for the booking engine and the HTTP layer.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

const (
	TransitionCreate   = "create"
	TransitionUpdate   = "update"
	TransitionCheckIn  = "check_in"
	TransitionCheckOut = "check_out"
	TransitionCancel   = "cancel"
	TransitionDelete   = "delete"
)

const (
	RejectionInvalidAmount = "invalid_amount"
	RejectionOverpayment   = "overpayment"
	RejectionCancelled     = "cancelled"
)

// BookingTransitions counts successful lifecycle operations.
var BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "booking",
	Name:      "transitions_total",
	Help:      "Total booking lifecycle operations by transition.",
}, []string{"transition"})

// BookingConflicts counts create/update attempts rejected because the room was taken.
var BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "booking",
	Name:      "conflicts_total",
	Help:      "Total booking attempts rejected with a room conflict.",
})

// RoomStatusChanges counts room status moves made by the lifecycle.
var RoomStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "room",
	Name:      "status_changes_total",
	Help:      "Total room status changes by target status.",
}, []string{"status"})

var InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "invoices_created_total",
	Help:      "Total invoices created.",
})

var PaymentsApplied = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "payments_applied_total",
	Help:      "Total payments applied to invoices.",
})

// PaymentAmount accumulates applied payment amounts in currency units.
var PaymentAmount = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "payment_amount_total",
	Help:      "Sum of applied payment amounts.",
})

var PaymentRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "payment_rejections_total",
	Help:      "Total payments rejected by reason.",
}, []string{"reason"})

var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"method", "route", "status"})

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
