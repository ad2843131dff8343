package model

import (
	"time"

	"hotel/shared/constant"
)

type RoomStatus struct {
	RoomID string `json:"room_id"`
	Status string `json:"status"`
}

// Event is published on the booking topic after every committed lifecycle operation.
type Event struct {
	Type       string       `json:"type"`
	BookingID  string       `json:"booking_id"`
	RoomID     string       `json:"room_id"`
	CustomerID string       `json:"customer_id"`
	Status     string       `json:"booking_status"`
	CheckIn    string       `json:"check_in_date"`
	CheckOut   string       `json:"check_out_date"`
	Rooms      []RoomStatus `json:"rooms,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

func NewEvent(eventType string, change Change, at time.Time) Event {
	b := change.Booking
	stay := b.Stay()

	event := Event{
		Type:       eventType,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		Status:     b.Status,
		CheckIn:    stay.Start.Format(constant.CalendarDate),
		CheckOut:   stay.End.Format(constant.CalendarDate),
		OccurredAt: at,
	}

	for _, room := range change.Rooms {
		event.Rooms = append(event.Rooms, RoomStatus{RoomID: room.ID, Status: room.Status})
	}

	return event
}
