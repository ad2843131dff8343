// Package model computes which rooms are free for a stay.
package model

import (
	"cmp"
	"slices"

	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/daterange"
)

// FreeRooms keeps the bookable candidates that no active booking overlapping stay holds,
// ordered by room number.
func FreeRooms(candidates []roomModel.Room, bookings []bookingModel.Booking, stay daterange.Range) []roomModel.Room {
	taken := make(map[string]struct{}, len(bookings))

	for _, b := range bookings {
		if b.IsActive() && b.Stay().Overlaps(stay) {
			taken[b.RoomID] = struct{}{}
		}
	}

	free := make([]roomModel.Room, 0, len(candidates))

	for _, room := range candidates {
		if !room.IsBookable() {
			continue
		}

		if _, ok := taken[room.ID]; ok {
			continue
		}

		free = append(free, room)
	}

	slices.SortFunc(free, func(a, b roomModel.Room) int {
		return cmp.Compare(a.RoomNumber, b.RoomNumber)
	})

	return free
}
