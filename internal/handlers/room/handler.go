package room

import (
	"mime/multipart"
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// listFilters are the query keys GET /rooms narrows by, in clause order.
var listFilters = []struct {
	field    string
	operator string
}{
	{model.FieldRoomNumber, gDto.FilterOperatorLike},
	{model.FieldType, gDto.FilterOperatorEq},
	{model.FieldStatus, gDto.FilterOperatorEq},
}

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(rooms chi.Router) {
		rooms.Post("/", handler.CreateRoom)
		rooms.Get("/", handler.GetRooms)

		rooms.Route("/{id}", func(room chi.Router) {
			room.Get("/", handler.GetRoomByID)
			room.Patch("/", handler.UpdateRoom)
			room.Delete("/", handler.DeleteRoom)
			room.Patch("/status", handler.UpdateRoomStatus)
		})
	})
}

// roomForm is the multipart body shared by create and update.
type roomForm struct {
	number      string
	roomType    string
	description string
	floor       *int
	price       *decimal.Decimal
	header      *multipart.FileHeader
	file        multipart.File
}

func (f roomForm) close() {
	if f.file != nil {
		f.file.Close()
	}
}

func parseRoomForm(r *http.Request) (roomForm, error) {
	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return roomForm{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	form := roomForm{
		number:      r.FormValue(model.FieldRoomNumber),
		roomType:    r.FormValue(model.FieldType),
		description: r.FormValue(model.FieldDescription),
	}

	if floor, err := shared.ConvertStringToInt(r.FormValue(model.FieldFloor)); err == nil {
		form.floor = &floor
	}

	if raw := r.FormValue(model.FieldPrice); raw != constant.Empty {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return roomForm{}, failure.BadRequestFromString("price must be a decimal number") //nolint:wrapcheck
		}

		form.price = &price
	}

	if file, header, err := r.FormFile(model.FieldImage); err == nil {
		form.file, form.header = file, header
	}

	return form, nil
}

func (handler *Handler) fail(w http.ResponseWriter, scope otel.Scope, msg string, err error) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(w, err)
}

// CreateRoom handles the creation of a new room.
// @Summary Create a new room
// @Description Create a new room. New rooms start Available.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param room_number formData string true "Room number"
// @Param type formData string true "Room type"
// @Param floor formData integer false "Floor"
// @Param price formData number true "Nightly price"
// @Param description formData string false "Description"
// @Param image formData file false "Room image"
// @Success 201 {object} response.Message "Room created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		handler.fail(w, scope, "failed to parse room form", err)

		return
	}
	defer form.close()

	req := dto.CreateRoomRequest{
		RoomNumber:  form.number,
		Type:        form.roomType,
		Description: form.description,
		Image:       form.header,
		ImageFile:   form.file,
	}

	if form.floor != nil {
		req.Floor = *form.floor
	}

	if form.price != nil {
		req.Price = *form.price
	}

	if err = validator.ValidateStruct(&req); err != nil {
		handler.fail(w, scope, "invalid room request", err)

		return
	}

	if err = handler.service.Create(ctx, req); err != nil {
		handler.fail(w, scope, "failed to create room", err)

		return
	}

	scope.AddEvent("room created")

	response.WithMessage(w, http.StatusCreated, "Room created successfully")
}

// GetRooms lists rooms.
// @Summary Get all rooms
// @Description Rooms with optional filtering and pagination. room_number matches partially.
// @Tags Room
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_number query string false "Filter by room number"
// @Param type query string false "Filter by type"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetRoomsResponse] "List of rooms"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	var params gDto.QueryParams
	params.FromRequest(r, true)

	filters := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, lf := range listFilters {
		value := r.URL.Query().Get(lf.field)
		if value == constant.Empty {
			continue
		}

		filters.Filters = append(filters.Filters, gDto.Filter{
			Field:    lf.field,
			Operator: lf.operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	rooms, err := handler.service.GetAll(ctx, params, filters)
	if err != nil {
		handler.fail(w, scope, "failed to list rooms", err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetRoomByID returns one room.
// @Summary Get a room by ID
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse] "Room details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRoomByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomByID")
	defer scope.End()

	room, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		handler.fail(w, scope, "failed to get room", err)

		return
	}

	response.WithJSON(w, http.StatusOK, room)
}

// UpdateRoom edits room details. Omitted form fields are left unchanged.
// @Summary Update a room by ID
// @Description Update room details. Status changes go through the status endpoint.
// @Tags Room
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Room ID"
// @Param room_number formData string false "Room number"
// @Param type formData string false "Room type"
// @Param floor formData integer false "Floor"
// @Param price formData number false "Nightly price"
// @Param description formData string false "Description"
// @Param image formData file false "Room image"
// @Success 200 {object} response.Message "Room updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	form, err := parseRoomForm(r)
	if err != nil {
		handler.fail(w, scope, "failed to parse room form", err)

		return
	}
	defer form.close()

	req := dto.UpdateRoomRequest{
		RoomNumber:  form.number,
		Type:        form.roomType,
		Floor:       form.floor,
		Price:       form.price,
		Description: form.description,
		Image:       form.header,
		ImageFile:   form.file,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		handler.fail(w, scope, "invalid room request", err)

		return
	}

	if err = handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, "failed to update room", err)

		return
	}

	scope.AddEvent("room updated")

	response.WithMessage(w, http.StatusOK, "Room updated successfully")
}

// UpdateRoomStatus sets a manual housekeeping status.
// @Summary Set room status
// @Description Staff statuses only: Available, Cleaning, Maintenance, Out-of-Service.
// @Tags Room
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param request body dto.UpdateRoomStatusRequest true "Status"
// @Success 200 {object} response.Message "Room status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/rooms/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRoomStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoomStatus")
	defer scope.End()

	var req dto.UpdateRoomStatusRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, scope, "invalid room status request", err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, "failed to update room status", err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Room status updated successfully")
}

// DeleteRoom removes a room.
// @Summary Delete a room by ID
// @Description Rooms with bookings cannot be deleted.
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Message "Room deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRoom")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, scope, "failed to delete room", err)

		return
	}

	scope.AddEvent("room deleted")

	response.WithMessage(w, http.StatusOK, "Room deleted successfully")
}
