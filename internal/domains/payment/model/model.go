// Package model describes payments. Payments are append-only: they are never edited or removed.
package model

import (
	"time"

	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID            = "payment_id"
	FieldInvoiceID     = "invoice_id"
	FieldPaymentDate   = "payment_date"
	FieldAmount        = "amount"
	FieldPaymentMethod = "payment_method"
	FieldTransactionID = "transaction_id"
	FieldNotes         = "notes"
)

const (
	MethodCash         = "Cash"
	MethodCreditCard   = "Credit Card"
	MethodDebitCard    = "Debit Card"
	MethodBankTransfer = "Bank Transfer"
	MethodOnline       = "Online"
)

const (
	CacheGet    = "payment:get"
	CacheGetAll = "payment:gets"
	CacheCount  = "payment:count"
)

type Payment struct {
	ID            string          `db:"payment_id"`
	InvoiceID     string          `db:"invoice_id"`
	PaymentDate   time.Time       `db:"payment_date"`
	Amount        decimal.Decimal `db:"amount"`
	Method        string          `db:"payment_method"`
	TransactionID string          `db:"transaction_id"`
	Notes         string          `db:"notes"`
	model.Metadata
}
