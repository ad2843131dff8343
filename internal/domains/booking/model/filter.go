package model

import (
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
)

const (
	argStayStart = "stay_start"
	argStayEnd   = "stay_end"
)

// ActiveOnRoomFilter selects the active bookings holding a room.
func ActiveOnRoomFilter(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: TableName},
			gDto.Filter{Field: FieldStatus, Operator: gDto.FilterOperatorIn, Value: ActiveStatuses, Table: TableName},
		},
	}
}

// ActiveOverlapFilter selects active bookings whose stay overlaps stay under the
// half-open rule: existing check-in before the requested check-out and existing
// check-out after the requested check-in. An empty roomID matches every room.
func ActiveOverlapFilter(stay daterange.Range, roomID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: FieldStatus, Operator: gDto.FilterOperatorIn, Value: ActiveStatuses, Table: TableName},
			gDto.Filter{ArgName: argStayEnd, Field: FieldCheckInDate, Operator: gDto.FilterOperatorLess, Value: stay.End, Table: TableName},
			gDto.Filter{ArgName: argStayStart, Field: FieldCheckOutDate, Operator: gDto.FilterOperatorGreater, Value: stay.Start, Table: TableName},
		},
	}

	if roomID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: FieldRoomID, Operator: gDto.FilterOperatorEq, Value: roomID, Table: TableName})
	}

	return filter
}

// StatusChange is the column set written when a booking's status moves.
func (b Booking) StatusChange() map[string]any {
	return map[string]any{
		FieldStatus:              b.Status,
		constant.FieldModifiedAt: b.ModifiedAt,
		constant.FieldModifiedBy: b.ModifiedBy,
	}
}

// Changes is the column set written by an edit of room, guest, dates or occupancy.
func (b Booking) Changes() map[string]any {
	return map[string]any{
		FieldRoomID:              b.RoomID,
		FieldCustomerID:          b.CustomerID,
		FieldCheckInDate:         b.CheckInDate,
		FieldCheckOutDate:        b.CheckOutDate,
		FieldAdults:              b.Adults,
		FieldKids:                b.Kids,
		constant.FieldModifiedAt: b.ModifiedAt,
		constant.FieldModifiedBy: b.ModifiedBy,
	}
}
