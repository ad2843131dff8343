package feedback

import (
	"net/http"
	"strconv"

	"hotel/infras/otel"
	"hotel/internal/domains/feedback/model"
	"hotel/internal/domains/feedback/model/dto"
	"hotel/internal/domains/feedback/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Feedback
	otel    otel.Otel
}

func New(service service.Feedback, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/feedback", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateFeedback)
		routerGroup.Get("/", handler.GetFeedback)
		routerGroup.Get("/summary", handler.GetRatingSummary)
		routerGroup.Get("/{id}", handler.GetFeedbackByID)
	})
}

// BookingRouter registers the feedback listing under /bookings/{id}.
func (handler *Handler) BookingRouter(router chi.Router) {
	router.Get("/{id}/feedback", handler.GetBookingFeedback)
}

// CustomerRouter registers the feedback listing under /customers/{id}.
func (handler *Handler) CustomerRouter(router chi.Router) {
	router.Get("/{id}/feedback", handler.GetCustomerFeedback)
}

// CreateFeedback records a guest rating.
// @Summary Add feedback
// @Description Rating runs from 1 to 5. A booking, when given, must belong to the customer.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body dto.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} response.Data[dto.FeedbackResponse] "Feedback recorded"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/feedback [post]
// @Security BearerAuth
func (handler *Handler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFeedback")
	defer scope.End()

	req := dto.CreateFeedbackRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	feedback, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, feedback)
}

// GetFeedback lists feedback, newest first by default.
// @Summary Get all feedback
// @Tags Feedback
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param customer_id query string false "Filter by customer"
// @Param booking_id query string false "Filter by booking"
// @Param rating query int false "Filter by rating"
// @Success 200 {object} response.Data[dto.GetFeedbackResponse] "List of feedback"
// @Failure 500 {object} response.Error
// @Router /v1/feedback [get]
// @Security BearerAuth
func (handler *Handler) GetFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedback")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	feedback, err := handler.service.GetAll(ctx, queryParams, listFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// GetRatingSummary averages ratings, narrowed by the same filters as the listing.
// @Summary Get the average rating
// @Tags Feedback
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Param booking_id query string false "Filter by booking"
// @Param rating query int false "Filter by rating"
// @Success 200 {object} response.Data[dto.RatingSummary] "Average rating"
// @Failure 500 {object} response.Error
// @Router /v1/feedback/summary [get]
// @Security BearerAuth
func (handler *Handler) GetRatingSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRatingSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx, listFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rating summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, summary)
}

// GetFeedbackByID
// @Summary Get feedback by ID
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Data[dto.FeedbackResponse] "Feedback"
// @Failure 404 {object} response.Error
// @Router /v1/feedback/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFeedbackByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFeedbackByID")
	defer scope.End()

	feedback, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// GetBookingFeedback lists the feedback left for one booking.
// @Summary Get a booking's feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Booking ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFeedbackResponse] "Feedback for the booking"
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id}/feedback [get]
// @Security BearerAuth
func (handler *Handler) GetBookingFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingFeedback")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	feedback, err := handler.service.GetByBooking(ctx, queryParams, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// GetCustomerFeedback lists the feedback a guest has left.
// @Summary Get a customer's feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Customer ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetFeedbackResponse] "Feedback by the customer"
// @Failure 404 {object} response.Error
// @Router /v1/customers/{id}/feedback [get]
// @Security BearerAuth
func (handler *Handler) GetCustomerFeedback(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCustomerFeedback")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	feedback, err := handler.service.GetByCustomer(ctx, queryParams, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get customer feedback")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, feedback)
}

// listFilter reads the listing filters from the query string. A non-numeric rating is ignored.
func listFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	query := r.URL.Query()

	for _, field := range []string{model.FieldCustomerID, model.FieldBookingID} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if rating, err := strconv.Atoi(query.Get(model.FieldRating)); err == nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRating,
			Operator: gDto.FilterOperatorEq,
			Value:    rating,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
