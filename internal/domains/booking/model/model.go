package model

import (
	"fmt"
	"slices"
	"time"

	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/daterange"
	"hotel/shared/failure"
	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "booking_id"
	FieldRoomID       = "room_id"
	FieldCustomerID   = "customer_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "booking_status"
	FieldAdults       = "number_of_adults"
	FieldKids         = "number_of_kids"
)

const (
	StatusConfirmed  = "Confirmed"
	StatusCheckedIn  = "Checked-in"
	StatusCheckedOut = "Checked-out"
	StatusCancelled  = "Cancelled"
)

const (
	CacheGet    = "booking:get"
	CacheGetAll = "booking:gets"
	CacheCount  = "booking:count"
)

// ActiveStatuses hold a room for their stay.
var ActiveStatuses = []string{StatusConfirmed, StatusCheckedIn}

var transitions = map[string][]string{
	StatusConfirmed: {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn: {StatusCheckedOut, StatusCancelled},
}

type Booking struct {
	ID           string    `db:"booking_id"`
	RoomID       string    `db:"room_id"`
	CustomerID   string    `db:"customer_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"booking_status"`
	Adults       int       `db:"number_of_adults"`
	Kids         int       `db:"number_of_kids"`
	model.Metadata
}

func (b Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn
}

// Stay is the occupied interval. Stored bookings always satisfy check-out after check-in.
func (b Booking) Stay() daterange.Range {
	return daterange.Range{Start: daterange.Day(b.CheckInDate), End: daterange.Day(b.CheckOutDate)}
}

func (b Booking) Nights() int {
	return b.Stay().Nights()
}

// CanMoveTo reports whether the lifecycle allows going from the current status to next.
func (b Booking) CanMoveTo(next string) bool {
	return slices.Contains(transitions[b.Status], next)
}

// WithStatus returns the booking moved to next, or InvalidTransition when the lifecycle forbids it.
func (b Booking) WithStatus(next, user string, at time.Time) (Booking, error) {
	if !b.CanMoveTo(next) {
		return b, failure.InvalidTransition(fmt.Sprintf("booking cannot move from %s to %s", b.Status, next)) // nolint:wrapcheck
	}

	b.Status = next
	b.ModifiedBy = user
	b.ModifiedAt = at

	return b, nil
}

// ValidateOccupancy requires at least one adult and no negative kids.
func ValidateOccupancy(adults, kids int) error {
	if adults < 1 {
		return failure.BadRequestFromString("number of adults must be at least 1") // nolint:wrapcheck
	}

	if kids < 0 {
		return failure.BadRequestFromString("number of kids cannot be negative") // nolint:wrapcheck
	}

	return nil
}

// FindConflict returns the first active booking whose stay overlaps stay.
// The booking with excludeID is ignored so an update does not collide with itself.
func FindConflict(bookings []Booking, stay daterange.Range, excludeID string) (Booking, bool) {
	for _, b := range bookings {
		if b.ID == excludeID || !b.IsActive() {
			continue
		}

		if b.Stay().Overlaps(stay) {
			return b, true
		}
	}

	return Booking{}, false
}

// Change is the outcome of a lifecycle operation: the booking as it now stands
// and every room whose status the operation moved.
type Change struct {
	Booking Booking
	Rooms   []roomModel.Room
}
