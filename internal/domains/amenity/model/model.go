// Package model holds the ancillary service catalog and the line items that
// charge those services to a booking.
package model

import (
	"time"

	"hotel/shared/daterange"
	"hotel/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "service_id"
	FieldName        = "service_name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldActive      = "active"
)

const (
	LineItemTableName  = "booking_services"
	LineItemEntityName = "booking_service"

	FieldLineItemID  = "booking_service_id"
	FieldBookingID   = "booking_id"
	FieldQuantity    = "quantity"
	FieldServiceDate = "service_date"
)

// LineTotalExpression sums quantity times the catalog price over joined line items.
const LineTotalExpression = LineItemTableName + "." + FieldQuantity + " * " + TableName + "." + FieldPrice

const (
	CacheGet    = "amenity:get"
	CacheGetAll = "amenity:gets"
	CacheCount  = "amenity:count"
)

type Service struct {
	ID          string          `db:"service_id"`
	Name        string          `db:"service_name"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Active      bool            `db:"active"`
	model.Metadata
}

// LineItem charges quantity units of a catalog service to a booking.
// Name and unit price are read through the join and never written.
type LineItem struct {
	ID          string          `db:"booking_service_id"`
	BookingID   string          `db:"booking_id"`
	ServiceID   string          `db:"service_id"`
	Quantity    int             `db:"quantity"`
	ServiceDate time.Time       `db:"service_date"`
	ServiceName string          `db:"service_name" table:"services"`
	UnitPrice   decimal.Decimal `db:"unit_price"   table:"services" column:"price"`
	model.Metadata
}

func (LineItem) GetJoinQuery() string {
	return "JOIN services ON services.service_id = booking_services.service_id"
}

func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ServiceCost totals the line items of one booking.
func ServiceCost(items []LineItem) decimal.Decimal {
	total := decimal.Zero

	for _, item := range items {
		total = total.Add(item.LineTotal())
	}

	return total
}

// WithinStay reports whether a service can be charged on day. The check-out day counts.
func WithinStay(stay daterange.Range, day time.Time) bool {
	return stay.Contains(day) || daterange.Day(day).Equal(stay.End)
}
