package amenity

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/service"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Amenity
	otel    otel.Otel
}

func New(service service.Amenity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateService)
		routerGroup.Get("/", handler.GetServices)
		routerGroup.Get("/{id}", handler.GetServiceByID)
		routerGroup.Patch("/{id}", handler.UpdateService)
		routerGroup.Delete("/{id}", handler.DeleteService)
	})
}

// LineItemRouter registers the services charged to a booking. It is nested under /bookings.
func (handler *Handler) LineItemRouter(router chi.Router) {
	router.Route("/{id}/services", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AddLineItem)
		routerGroup.Get("/", handler.GetLineItems)
		routerGroup.Delete("/{"+constant.RequestParamLineID+"}", handler.DeleteLineItem)
	})
}

// CreateService adds a catalog entry.
// @Summary Create a service
// @Tags Service
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceRequest true "Service"
// @Success 201 {object} response.Data[string] "Service ID"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/services [post]
// @Security BearerAuth
func (handler *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateService")
	defer scope.End()

	req := dto.CreateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, id)
}

// GetServices lists the catalog.
// @Summary Get all services
// @Tags Service
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param service_name query string false "Filter by name"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetServicesResponse] "List of services"
// @Failure 500 {object} response.Error
// @Router /v1/services [get]
// @Security BearerAuth
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := r.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	services, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetServiceByID returns one catalog entry.
// @Summary Get a service by ID
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Data[dto.ServiceResponse] "Service"
// @Failure 404 {object} response.Error
// @Router /v1/services/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetServiceByID")
	defer scope.End()

	service, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get service by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, service)
}

// UpdateService edits a catalog entry.
// @Summary Update a service
// @Tags Service
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param request body dto.UpdateServiceRequest true "Service"
// @Success 200 {object} response.Message "Service updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/services/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateService")
	defer scope.End()

	req := dto.UpdateServiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service updated successfully")
}

// DeleteService removes a catalog entry.
// @Summary Delete a service
// @Description Services already charged to bookings cannot be deleted.
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message "Service deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteService")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Service deleted successfully")
}

// AddLineItem charges a service to a booking.
// @Summary Add a service to a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AddLineItemRequest true "Line item"
// @Success 201 {object} response.Data[dto.LineItemResponse] "Line item"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/services [post]
// @Security BearerAuth
func (handler *Handler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddLineItem")
	defer scope.End()

	req := dto.AddLineItemRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	item, err := handler.service.AddLineItem(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add service to booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, item)
}

// GetLineItems lists the services charged to a booking.
// @Summary List booking services
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.GetLineItemsResponse] "Line items and service cost"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/services [get]
// @Security BearerAuth
func (handler *Handler) GetLineItems(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLineItems")
	defer scope.End()

	items, err := handler.service.GetLineItems(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}

// DeleteLineItem removes a charged service from a booking.
// @Summary Remove a booking service
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Param lineID path string true "Line item ID"
// @Success 200 {object} response.Message "Booking service removed successfully"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/services/{lineID} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLineItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLineItem")
	defer scope.End()

	err := handler.service.DeleteLineItem(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamLineID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove booking service")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Booking service removed successfully")
}
