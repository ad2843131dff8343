package model

import (
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
)

func RoomStatusFilter(status string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: roomModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status, Table: roomModel.TableName},
		},
	}
}

func CheckedInFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusCheckedIn, Table: bookingModel.TableName},
		},
	}
}

// ArrivalsFilter selects confirmed bookings whose stay starts today.
func ArrivalsFilter(today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldCheckInDate, Operator: gDto.FilterOperatorEq, Value: daterange.Day(today), Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusConfirmed, Table: bookingModel.TableName},
		},
	}
}

// DeparturesFilter selects checked-in bookings whose stay ends today.
func DeparturesFilter(today time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldCheckOutDate, Operator: gDto.FilterOperatorEq, Value: daterange.Day(today), Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: bookingModel.StatusCheckedIn, Table: bookingModel.TableName},
		},
	}
}

// CreatedSinceFilter selects bookings created at or after since.
func CreatedSinceFilter(since time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: constant.FieldCreatedAt, Operator: gDto.FilterOperatorGreaterEq, Value: since, Table: bookingModel.TableName},
		},
	}
}
