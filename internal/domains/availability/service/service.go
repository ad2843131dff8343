package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	argExcludeMaintenance  = "exclude_maintenance"
	argExcludeOutOfService = "exclude_out_of_service"
)

// Availability answers which rooms can be booked for a stay. Results always
// reflect committed state and are never cached.
type Availability interface {
	AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	otel        otel.Otel
}

func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) AvailableRooms(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability.AvailableRooms")
	defer scope.End()
	defer scope.TraceIfError(&err)

	stay, err := daterange.Parse(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	rooms, err := s.roomRepo.GetAll(ctx, gDto.QueryParams{}, candidateFilter(req.RoomType))
	if err != nil {
		log.Error().Err(err).Msg("failed to get candidate rooms")

		return res, failure.Persistence(fmt.Errorf("failed to get rooms: %w", err)) // nolint:wrapcheck
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, bookingModel.ActiveOverlapFilter(stay, constant.Empty))
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, failure.Persistence(fmt.Errorf("failed to get bookings: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(stay, model.FreeRooms(rooms, bookings, stay))

	log.Debug().Str("stay", stay.String()).Int("available", len(res.Rooms)).Msg("computed room availability")

	return res, nil
}

// candidateFilter excludes rooms staff took out of order, optionally narrowed to one type.
func candidateFilter(roomType string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  argExcludeMaintenance,
				Field:    roomModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    roomModel.StatusMaintenance,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				ArgName:  argExcludeOutOfService,
				Field:    roomModel.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    roomModel.StatusOutOfService,
				Table:    roomModel.TableName,
			},
		},
	}

	if roomType != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    roomModel.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    roomType,
			Table:    roomModel.TableName,
		})
	}

	return filter
}
