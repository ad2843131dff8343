package dto

import (
	"time"

	"hotel/internal/domains/invoice/model"
	paymentModel "hotel/internal/domains/payment/model"
	paymentDto "hotel/internal/domains/payment/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateInvoiceRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	DueDate   string `json:"due_date"   validate:"omitempty,date"`
}

type UpdateInvoiceRequest struct {
	DueDate     string           `json:"due_date"       validate:"omitempty,date"`
	RoomCost    *decimal.Decimal `json:"room_cost"      validate:"omitempty,gte=0"`
	ServiceCost *decimal.Decimal `json:"service_cost"   validate:"omitempty,gte=0"`
	Status      string           `json:"invoice_status" validate:"omitempty,oneof=Pending Cancelled"`
}

// Apply runs each requested edit through the invoice rules in turn.
func (u *UpdateInvoiceRequest) Apply(current model.Invoice, user string, at time.Time) (model.Invoice, error) {
	next := current

	var err error

	if u.DueDate != constant.Empty {
		due, err := timezone.ParseDate(u.DueDate)
		if err != nil {
			return current, err //nolint:wrapcheck
		}

		if next, err = next.WithDueDate(due, user, at); err != nil {
			return current, err //nolint:wrapcheck
		}
	}

	if u.RoomCost != nil || u.ServiceCost != nil {
		roomCost, serviceCost := next.RoomCost, next.ServiceCost

		if u.RoomCost != nil {
			roomCost = *u.RoomCost
		}

		if u.ServiceCost != nil {
			serviceCost = *u.ServiceCost
		}

		if next, err = next.WithCosts(roomCost, serviceCost, user, at); err != nil {
			return current, err //nolint:wrapcheck
		}
	}

	if u.Status != constant.Empty && u.Status != next.Status {
		if next, err = next.WithStatus(u.Status, user, at); err != nil {
			return current, err //nolint:wrapcheck
		}
	}

	return next, nil
}

// ApplyPaymentRequest records money received. Amount rules are enforced by the ledger,
// not the validator, so a non-positive amount reports an invalid amount.
type ApplyPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method" validate:"required,oneof=Cash 'Credit Card' 'Debit Card' 'Bank Transfer' Online"`
	PaymentDate   string          `json:"payment_date"   validate:"omitempty,date"`
	TransactionID string          `json:"transaction_id" validate:"omitempty,max=100"`
	Notes         string          `json:"notes"          validate:"omitempty,max=500"`
}

// ToModel builds the payment row. An empty payment date means today.
func (a *ApplyPaymentRequest) ToModel(invoiceID, user string, now time.Time) (paymentModel.Payment, error) {
	day := daterange.Day(now)

	if a.PaymentDate != constant.Empty {
		parsed, err := timezone.ParseDate(a.PaymentDate)
		if err != nil {
			return paymentModel.Payment{}, err //nolint:wrapcheck
		}

		day = daterange.Day(parsed)
	}

	return paymentModel.Payment{
		ID:            uuid.NewString(),
		InvoiceID:     invoiceID,
		PaymentDate:   day,
		Amount:        a.Amount,
		Method:        a.Method,
		TransactionID: a.TransactionID,
		Notes:         a.Notes,
		Metadata:      gModel.NewMetadata(user, now),
	}, nil
}

type InvoiceResponse struct {
	ID          string          `json:"id"`
	BookingID   string          `json:"booking_id"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	RoomCost    decimal.Decimal `json:"room_cost"`
	ServiceCost decimal.Decimal `json:"service_cost"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	BalanceDue  decimal.Decimal `json:"balance_due"`
	Status      string          `json:"invoice_status"`
	gDto.Metadata
}

// FromModel fills the response with the status as seen on today.
func (r *InvoiceResponse) FromModel(model model.Invoice, today time.Time) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.IssueDate = daterange.Day(model.IssueDate).Format(constant.CalendarDate)
	r.DueDate = daterange.Day(model.DueDate).Format(constant.CalendarDate)
	r.RoomCost = model.RoomCost
	r.ServiceCost = model.ServiceCost
	r.TotalAmount = model.TotalAmount
	r.PaidAmount = model.PaidAmount
	r.BalanceDue = model.BalanceDue()
	r.Status = model.DisplayStatus(today)
	r.Metadata.FromModel(model.Metadata)
}

type GetInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInvoicesResponse) FromModels(models []model.Invoice, totalData, limit int, today time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Invoices = make([]InvoiceResponse, len(models))
	for i, mod := range models {
		r.Invoices[i].FromModel(mod, today)
	}
}

// PaymentReceipt reports an applied payment with the invoice it settled against.
type PaymentReceipt struct {
	Payment paymentDto.PaymentResponse `json:"payment"`
	Invoice InvoiceResponse            `json:"invoice"`
}

func (r *PaymentReceipt) FromModel(payment paymentModel.Payment, invoice model.Invoice, today time.Time) {
	r.Payment.FromModel(payment)
	r.Invoice.FromModel(invoice, today)
}
