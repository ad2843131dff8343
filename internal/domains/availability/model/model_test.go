package model_test

import (
	"testing"
	"time"

	"hotel/internal/domains/availability/model"
	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/daterange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(d int) time.Time {
	return time.Date(2030, 1, d, 0, 0, 0, 0, time.UTC)
}

func numbers(rooms []roomModel.Room) []string {
	out := make([]string, len(rooms))
	for i, r := range rooms {
		out[i] = r.RoomNumber
	}

	return out
}

func TestFreeRooms(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r3", RoomNumber: "103", Status: roomModel.StatusAvailable},
		{ID: "r1", RoomNumber: "101", Status: roomModel.StatusBooked},
		{ID: "r2", RoomNumber: "102", Status: roomModel.StatusCleaning},
		{ID: "r4", RoomNumber: "104", Status: roomModel.StatusMaintenance},
		{ID: "r5", RoomNumber: "105", Status: roomModel.StatusOutOfService},
	}

	bookings := []bookingModel.Booking{
		{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed, CheckInDate: date(10), CheckOutDate: date(15)},
		{ID: "b2", RoomID: "r2", Status: bookingModel.StatusCancelled, CheckInDate: date(10), CheckOutDate: date(15)},
		{ID: "b3", RoomID: "r3", Status: bookingModel.StatusCheckedIn, CheckInDate: date(1), CheckOutDate: date(12)},
	}

	tests := []struct {
		name string
		in   int
		out  int
		want []string
	}{
		{name: "overlapping stay", in: 11, out: 13, want: []string{"102"}},
		{name: "check-in on existing check-out", in: 15, out: 17, want: []string{"101", "102", "103"}},
		{name: "check-out on existing check-in", in: 8, out: 10, want: []string{"101", "102"}},
		{name: "after every stay", in: 20, out: 22, want: []string{"101", "102", "103"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := daterange.New(date(tt.in), date(tt.out))
			require.NoError(t, err)

			assert.Equal(t, tt.want, numbers(model.FreeRooms(rooms, bookings, stay)))
		})
	}
}

// Every returned room is free for the stay and every free bookable room is returned.
func TestFreeRooms_SoundAndComplete(t *testing.T) {
	rooms := []roomModel.Room{
		{ID: "r1", RoomNumber: "101", Status: roomModel.StatusAvailable},
		{ID: "r2", RoomNumber: "102", Status: roomModel.StatusAvailable},
	}

	for start := 1; start <= 20; start++ {
		for length := 1; length <= 5; length++ {
			stay, err := daterange.New(date(start), date(start+length))
			require.NoError(t, err)

			bookings := []bookingModel.Booking{
				{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed, CheckInDate: date(5), CheckOutDate: date(9)},
			}

			got := numbers(model.FreeRooms(rooms, bookings, stay))

			blocked := bookings[0].Stay().Overlaps(stay)
			assert.Equal(t, !blocked, assert.ObjectsAreEqual([]string{"101", "102"}, got), "stay %s", stay)
			assert.Contains(t, got, "102")
		}
	}
}
