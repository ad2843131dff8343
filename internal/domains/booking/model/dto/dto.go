package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"          validate:"required,uuid"`
	CustomerID   string `json:"customer_id"      validate:"required,uuid"`
	CheckInDate  string `json:"check_in_date"    validate:"required,date"`
	CheckOutDate string `json:"check_out_date"   validate:"required,date"`
	Adults       int    `json:"number_of_adults" validate:"gte=1"`
	Kids         int    `json:"number_of_kids"   validate:"gte=0"`
}

// ToModel builds a Confirmed booking for stay.
func (c *CreateBookingRequest) ToModel(user string, stay daterange.Range) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		RoomID:       c.RoomID,
		CustomerID:   c.CustomerID,
		CheckInDate:  stay.Start,
		CheckOutDate: stay.End,
		Status:       model.StatusConfirmed,
		Adults:       c.Adults,
		Kids:         c.Kids,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdateBookingRequest carries the fields to change. Omitted fields keep their current value.
type UpdateBookingRequest struct {
	RoomID       string `json:"room_id"          validate:"omitempty,uuid"`
	CustomerID   string `json:"customer_id"      validate:"omitempty,uuid"`
	CheckInDate  string `json:"check_in_date"    validate:"omitempty,date"`
	CheckOutDate string `json:"check_out_date"   validate:"omitempty,date"`
	Adults       *int   `json:"number_of_adults" validate:"omitempty,gte=1"`
	Kids         *int   `json:"number_of_kids"   validate:"omitempty,gte=0"`
}

// Apply merges the request over current and returns the requested stay.
func (u *UpdateBookingRequest) Apply(current model.Booking) (model.Booking, daterange.Range, error) {
	next := current

	if u.RoomID != constant.Empty {
		next.RoomID = u.RoomID
	}

	if u.CustomerID != constant.Empty {
		next.CustomerID = u.CustomerID
	}

	if u.Adults != nil {
		next.Adults = *u.Adults
	}

	if u.Kids != nil {
		next.Kids = *u.Kids
	}

	checkIn := formatDate(current.CheckInDate)
	if u.CheckInDate != constant.Empty {
		checkIn = u.CheckInDate
	}

	checkOut := formatDate(current.CheckOutDate)
	if u.CheckOutDate != constant.Empty {
		checkOut = u.CheckOutDate
	}

	stay, err := daterange.Parse(checkIn, checkOut)
	if err != nil {
		return current, stay, err //nolint:wrapcheck
	}

	next.CheckInDate = stay.Start
	next.CheckOutDate = stay.End

	return next, stay, nil
}

type BookingResponse struct {
	ID           string `json:"id"`
	RoomID       string `json:"room_id"`
	CustomerID   string `json:"customer_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Nights       int    `json:"nights"`
	Status       string `json:"booking_status"`
	Adults       int    `json:"number_of_adults"`
	Kids         int    `json:"number_of_kids"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.CustomerID = model.CustomerID
	r.CheckInDate = formatDate(model.CheckInDate)
	r.CheckOutDate = formatDate(model.CheckOutDate)
	r.Nights = model.Nights()
	r.Status = model.Status
	r.Adults = model.Adults
	r.Kids = model.Kids
	r.Metadata.FromModel(model.Metadata)
}

// ChangeResponse reports a lifecycle operation: the booking and the rooms it moved.
type ChangeResponse struct {
	Booking BookingResponse        `json:"booking"`
	Rooms   []roomDto.RoomResponse `json:"rooms"`
}

func (r *ChangeResponse) FromModel(change model.Change) {
	r.Booking.FromModel(change.Booking)

	r.Rooms = make([]roomDto.RoomResponse, len(change.Rooms))
	for i, room := range change.Rooms {
		r.Rooms[i].FromModel(room)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

func formatDate(t time.Time) string {
	return daterange.Day(t).Format(constant.CalendarDate)
}
