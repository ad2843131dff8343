package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAvailabilityService_AvailableRooms(t *testing.T) {
	in := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	out := time.Date(2030, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking)
		want      []string
		wantKind  error
	}{
		{
			name: "excludes a room booked over the stay",
			req:  dto.AvailabilityRequest{CheckInDate: "2030-01-12", CheckOutDate: "2030-01-14", RoomType: "Deluxe"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]roomModel.Room, error) {
						where, args := filter.GetWhereClause()
						assert.Contains(t, where, "rooms.type = :type")
						assert.Equal(t, roomModel.StatusMaintenance, args["exclude_maintenance"])
						assert.Equal(t, roomModel.StatusOutOfService, args["exclude_out_of_service"])

						return []roomModel.Room{
							{ID: "r2", RoomNumber: "102", Status: roomModel.StatusAvailable},
							{ID: "r1", RoomNumber: "101", Status: roomModel.StatusBooked},
						}, nil
					})
				bookings.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]bookingModel.Booking{
					{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed, CheckInDate: in, CheckOutDate: out},
				}, nil)
			},
			want: []string{"102"},
		},
		{
			name: "back to back leaves the room free",
			req:  dto.AvailabilityRequest{CheckInDate: "2030-01-15", CheckOutDate: "2030-01-16"},
			setupMock: func(rooms *roomMocks.MockRoom, bookings *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{
					{ID: "r2", RoomNumber: "102", Status: roomModel.StatusAvailable},
					{ID: "r1", RoomNumber: "101", Status: roomModel.StatusBooked},
				}, nil)
				bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]bookingModel.Booking{
					{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed, CheckInDate: in, CheckOutDate: out},
				}, nil)
			},
			want: []string{"101", "102"},
		},
		{
			name:      "empty stay",
			req:       dto.AvailabilityRequest{CheckInDate: "2030-01-15", CheckOutDate: "2030-01-15"},
			setupMock: func(*roomMocks.MockRoom, *bookingMocks.MockBooking) {},
			wantKind:  failure.ErrInvalidRange,
		},
		{
			name: "storage failure",
			req:  dto.AvailabilityRequest{CheckInDate: "2030-01-15", CheckOutDate: "2030-01-16"},
			setupMock: func(rooms *roomMocks.MockRoom, _ *bookingMocks.MockBooking) {
				rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
			},
			wantKind: failure.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rooms := roomMocks.NewMockRoom(ctrl)
			bookings := bookingMocks.NewMockBooking(ctrl)
			tt.setupMock(rooms, bookings)

			svc := service.New(rooms, bookings, mocks.NewOtel())

			res, err := svc.AvailableRooms(context.Background(), tt.req)

			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)

				return
			}

			require.NoError(t, err)

			got := make([]string, len(res.Rooms))
			for i, r := range res.Rooms {
				got[i] = r.RoomNumber
			}

			assert.Equal(t, tt.want, got)
		})
	}
}
