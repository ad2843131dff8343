package dto

import (
	"hotel/internal/domains/payment/model"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoice_id"`
	PaymentDate   string          `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	Notes         string          `json:"notes"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.InvoiceID = model.InvoiceID
	r.PaymentDate = daterange.Day(model.PaymentDate).Format(constant.CalendarDate)
	r.Amount = model.Amount
	r.Method = model.Method
	r.TransactionID = model.TransactionID
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}
