package model

import (
	"time"

	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
)

const argToday = "today"

func ByBookingFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: TableName},
		},
	}
}

// OpenFilter selects invoices still expecting money.
func OpenFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: FieldStatus, Operator: gDto.FilterOperatorIn, Value: OpenStatuses, Table: TableName},
		},
	}
}

// OverdueFilter selects open invoices due before today. Open invoices always owe
// a positive balance, so the balance needs no separate test.
func OverdueFilter(today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: FieldStatus, Operator: gDto.FilterOperatorIn, Value: OpenStatuses, Table: TableName},
			gDto.Filter{ArgName: argToday, Field: FieldDueDate, Operator: gDto.FilterOperatorLess, Value: daterange.Day(today), Table: TableName},
		},
	}
}
