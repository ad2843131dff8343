package model

import (
	"time"

	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
)

const (
	argFrom = "paid_from"
	argTo   = "paid_to"
)

func ByInvoiceFilter(invoiceID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: FieldInvoiceID, Operator: gDto.FilterOperatorEq, Value: invoiceID, Table: TableName},
		},
	}
}

// DatedFilter selects payments dated from from to to, both days included.
func DatedFilter(from, to time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{ArgName: argFrom, Field: FieldPaymentDate, Operator: gDto.FilterOperatorGreaterEq, Value: daterange.Day(from), Table: TableName},
			gDto.Filter{ArgName: argTo, Field: FieldPaymentDate, Operator: gDto.FilterOperatorLessEq, Value: daterange.Day(to), Table: TableName},
		},
	}
}
