package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventInvoiceCreated    = "invoice_created"
	EventInvoiceUpdated    = "invoice_updated"
	EventInvoiceRecomputed = "invoice_recalculated"
	EventPaymentApplied    = "payment_applied"
)

// LedgerEvent is published on the ledger topic keyed by invoice id.
type LedgerEvent struct {
	Type        string          `json:"type"`
	InvoiceID   string          `json:"invoice_id"`
	BookingID   string          `json:"booking_id"`
	PaymentID   string          `json:"payment_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      string          `json:"invoice_status"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func NewLedgerEvent(eventType string, invoice Invoice, paymentID string, amount decimal.Decimal, at time.Time) LedgerEvent {
	return LedgerEvent{
		Type:        eventType,
		InvoiceID:   invoice.ID,
		BookingID:   invoice.BookingID,
		PaymentID:   paymentID,
		Amount:      amount,
		TotalAmount: invoice.TotalAmount,
		PaidAmount:  invoice.PaidAmount,
		Status:      invoice.Status,
		OccurredAt:  at,
	}
}
