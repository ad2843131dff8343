package dto

import (
	roomModel "hotel/internal/domains/room/model"
	roomDto "hotel/internal/domains/room/model/dto"
	"hotel/shared/constant"
	"hotel/shared/daterange"
)

type AvailabilityRequest struct {
	CheckInDate  string `json:"check_in_date"  validate:"required,date"`
	CheckOutDate string `json:"check_out_date" validate:"required,date"`
	RoomType     string `json:"room_type"      validate:"omitempty,max=50"`
}

type AvailabilityResponse struct {
	CheckInDate  string                 `json:"check_in_date"`
	CheckOutDate string                 `json:"check_out_date"`
	Nights       int                    `json:"nights"`
	Rooms        []roomDto.RoomResponse `json:"rooms"`
}

func (r *AvailabilityResponse) FromModels(stay daterange.Range, rooms []roomModel.Room) {
	r.CheckInDate = stay.Start.Format(constant.CalendarDate)
	r.CheckOutDate = stay.End.Format(constant.CalendarDate)
	r.Nights = stay.Nights()

	r.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}
