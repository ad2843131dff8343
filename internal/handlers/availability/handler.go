package availability

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCheckIn  = "check_in"
	queryCheckOut = "check_out"
	queryRoomType = "room_type"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/availability", handler.GetAvailableRooms)
}

// GetAvailableRooms lists rooms free for a stay.
// @Summary Room availability
// @Description Rooms not out of order and without an active booking overlapping [check_in, check_out).
// @Tags Availability
// @Produce json
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param room_type query string false "Room type"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Available rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableRooms")
	defer scope.End()

	query := r.URL.Query()

	req := dto.AvailabilityRequest{
		CheckInDate:  query.Get(queryCheckIn),
		CheckOutDate: query.Get(queryCheckOut),
		RoomType:     query.Get(queryRoomType),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	rooms, err := handler.service.AvailableRooms(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}
