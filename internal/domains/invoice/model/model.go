package model

import (
	"fmt"
	"time"

	"hotel/shared/constant"
	"hotel/shared/daterange"
	"hotel/shared/failure"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "invoices"
	EntityName = "invoice"

	FieldID          = "invoice_id"
	FieldBookingID   = "booking_id"
	FieldIssueDate   = "issue_date"
	FieldDueDate     = "due_date"
	FieldRoomCost    = "room_cost"
	FieldServiceCost = "service_cost"
	FieldTotalAmount = "total_amount"
	FieldPaidAmount  = "paid_amount"
	FieldStatus      = "invoice_status"
)

const (
	StatusPending       = "Pending"
	StatusPartiallyPaid = "Partially Paid"
	StatusPaid          = "Paid"
	StatusCancelled     = "Cancelled"

	// StatusOverdue is derived when reading and never stored.
	StatusOverdue = "Overdue"
)

const (
	CacheGet    = "invoice:get"
	CacheGetAll = "invoice:gets"
	CacheCount  = "invoice:count"
)

// OpenStatuses still expect money.
var OpenStatuses = []string{StatusPending, StatusPartiallyPaid}

type Invoice struct {
	ID          string          `db:"invoice_id"`
	BookingID   string          `db:"booking_id"`
	IssueDate   time.Time       `db:"issue_date"`
	DueDate     time.Time       `db:"due_date"`
	RoomCost    decimal.Decimal `db:"room_cost"`
	ServiceCost decimal.Decimal `db:"service_cost"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaidAmount  decimal.Decimal `db:"paid_amount"`
	Status      string          `db:"invoice_status"`
	model.Metadata
}

// RoomCost is the nightly price times the nights of the stay.
func RoomCost(price decimal.Decimal, stay daterange.Range) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(stay.Nights()))).Round(2)
}

// NewInvoice opens a Pending invoice with nothing paid.
func NewInvoice(id, bookingID string, roomCost, serviceCost decimal.Decimal, issue, due time.Time, meta model.Metadata) Invoice {
	return Invoice{
		ID:          id,
		BookingID:   bookingID,
		IssueDate:   daterange.Day(issue),
		DueDate:     daterange.Day(due),
		RoomCost:    roomCost.Round(2),
		ServiceCost: serviceCost.Round(2),
		TotalAmount: roomCost.Round(2).Add(serviceCost.Round(2)),
		PaidAmount:  decimal.Zero,
		Status:      StatusPending,
		Metadata:    meta,
	}
}

func (i Invoice) BalanceDue() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

func (i Invoice) IsOpen() bool {
	return i.Status == StatusPending || i.Status == StatusPartiallyPaid
}

// DisplayStatus is the stored status, or Overdue for an open invoice past its due date with money owed.
func (i Invoice) DisplayStatus(today time.Time) string {
	if i.IsOpen() && i.BalanceDue().IsPositive() && daterange.Day(i.DueDate).Before(daterange.Day(today)) {
		return StatusOverdue
	}

	return i.Status
}

// ApplyPayment returns the invoice with amount added to the paid total. The whole
// payment is refused when it is not positive, has sub-cent precision, exceeds the
// balance or targets a cancelled invoice.
func (i Invoice) ApplyPayment(amount decimal.Decimal, user string, at time.Time) (Invoice, error) {
	if !amount.IsPositive() {
		return i, failure.InvalidAmount("payment amount must be greater than 0") // nolint:wrapcheck
	}

	if !amount.Equal(amount.Round(2)) {
		return i, failure.InvalidAmount("payment amount cannot have more than 2 decimal places") // nolint:wrapcheck
	}

	if i.Status == StatusCancelled {
		return i, failure.InvalidTransition("payments cannot be applied to a cancelled invoice") // nolint:wrapcheck
	}

	if amount.GreaterThan(i.BalanceDue()) {
		return i, failure.Overpayment(fmt.Sprintf("payment %s exceeds balance due %s", amount.StringFixed(2), i.BalanceDue().StringFixed(2))) // nolint:wrapcheck
	}

	i.PaidAmount = i.PaidAmount.Add(amount)
	i.Status = settledStatus(i.BalanceDue())
	i.ModifiedBy = user
	i.ModifiedAt = at

	return i, nil
}

// WithCosts replaces the cost components and recomputes the total. Only unpaid invoices can be repriced.
func (i Invoice) WithCosts(roomCost, serviceCost decimal.Decimal, user string, at time.Time) (Invoice, error) {
	if i.PaidAmount.IsPositive() {
		return i, failure.InvalidTransition("invoice already has payments and cannot be repriced") // nolint:wrapcheck
	}

	if roomCost.IsNegative() || serviceCost.IsNegative() {
		return i, failure.InvalidAmount("costs cannot be negative") // nolint:wrapcheck
	}

	i.RoomCost = roomCost.Round(2)
	i.ServiceCost = serviceCost.Round(2)
	i.TotalAmount = i.RoomCost.Add(i.ServiceCost)
	i.ModifiedBy = user
	i.ModifiedAt = at

	return i, nil
}

// WithStatus sets a manual status. Staff may only cancel an unpaid invoice or reopen it as Pending.
func (i Invoice) WithStatus(status, user string, at time.Time) (Invoice, error) {
	if status != StatusPending && status != StatusCancelled {
		return i, failure.InvalidTransition(fmt.Sprintf("invoice status cannot be set to %s", status)) // nolint:wrapcheck
	}

	if i.PaidAmount.IsPositive() {
		return i, failure.InvalidTransition("invoice already has payments and its status follows them") // nolint:wrapcheck
	}

	i.Status = status
	i.ModifiedBy = user
	i.ModifiedAt = at

	return i, nil
}

// WithDueDate moves the due date. It may not fall before the issue date.
func (i Invoice) WithDueDate(due time.Time, user string, at time.Time) (Invoice, error) {
	due = daterange.Day(due)

	if due.Before(daterange.Day(i.IssueDate)) {
		return i, failure.BadRequestFromString("due date cannot be before the issue date") // nolint:wrapcheck
	}

	i.DueDate = due
	i.ModifiedBy = user
	i.ModifiedAt = at

	return i, nil
}

func settledStatus(balance decimal.Decimal) string {
	if balance.IsZero() {
		return StatusPaid
	}

	return StatusPartiallyPaid
}

// PaymentChange is the column set written when a payment lands.
func (i Invoice) PaymentChange() map[string]any {
	return map[string]any{
		FieldPaidAmount:          i.PaidAmount,
		FieldStatus:              i.Status,
		constant.FieldModifiedAt: i.ModifiedAt,
		constant.FieldModifiedBy: i.ModifiedBy,
	}
}

// Changes is the column set written by a manual edit or a recalculation.
func (i Invoice) Changes() map[string]any {
	return map[string]any{
		FieldDueDate:             i.DueDate,
		FieldRoomCost:            i.RoomCost,
		FieldServiceCost:         i.ServiceCost,
		FieldTotalAmount:         i.TotalAmount,
		FieldStatus:              i.Status,
		constant.FieldModifiedAt: i.ModifiedAt,
		constant.FieldModifiedBy: i.ModifiedBy,
	}
}
