package invoice

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Invoice
	otel    otel.Otel
}

func New(service service.Invoice, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts /invoices. Extensions register routes nested under the same group.
func (handler *Handler) Router(router chi.Router, extensions ...func(chi.Router)) {
	router.Route("/invoices", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInvoice)
		routerGroup.Get("/", handler.GetInvoices)
		routerGroup.Get("/{id}", handler.GetInvoiceByID)
		routerGroup.Patch("/{id}", handler.UpdateInvoice)
		routerGroup.Post("/{id}/recalculate", handler.RecalculateInvoice)
		routerGroup.Post("/{id}/payments", handler.ApplyPayment)

		for _, extend := range extensions {
			extend(routerGroup)
		}
	})
}

// BookingRouter registers the invoice lookup under /bookings/{id}.
func (handler *Handler) BookingRouter(router chi.Router) {
	router.Get("/{id}/invoice", handler.GetBookingInvoice)
}

// CreateInvoice bills a booking.
// @Summary Create an invoice
// @Description Prices the booking from its room rate and charged services. One invoice per booking.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param request body dto.CreateInvoiceRequest true "Create Invoice Request"
// @Success 201 {object} response.Data[dto.InvoiceResponse] "Invoice created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices [post]
// @Security BearerAuth
func (handler *Handler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInvoice")
	defer scope.End()

	req := dto.CreateInvoiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create invoice")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Invoice created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, invoice)
}

// GetInvoices lists invoices.
// @Summary Get all invoices
// @Tags Invoice
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param booking_id query string false "Filter by booking"
// @Param invoice_status query string false "Filter by status, Overdue included"
// @Success 200 {object} response.Data[dto.GetInvoicesResponse] "List of invoices"
// @Failure 500 {object} response.Error
// @Router /v1/invoices [get]
// @Security BearerAuth
func (handler *Handler) GetInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoices")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if bookingID := r.URL.Query().Get(model.FieldBookingID); bookingID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, model.ByBookingFilter(bookingID))
	}

	switch status := r.URL.Query().Get(model.FieldStatus); status {
	case constant.Empty:
	case model.StatusOverdue:
		filterGroup.Filters = append(filterGroup.Filters, model.OverdueFilter(timezone.Now()))
	default:
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	invoices, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoices")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoices)
}

// GetInvoiceByID returns one invoice with its balance.
// @Summary Get an invoice by ID
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInvoiceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoiceByID")
	defer scope.End()

	invoice, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// GetBookingInvoice returns the invoice billed for a booking.
// @Summary Get the invoice of a booking
// @Tags Invoice
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/invoice [get]
// @Security BearerAuth
func (handler *Handler) GetBookingInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingInvoice")
	defer scope.End()

	invoice, err := handler.service.GetByBooking(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// UpdateInvoice edits the due date, the costs or the manual status.
// @Summary Update an invoice
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.UpdateInvoiceRequest true "Update Invoice Request"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice updated"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInvoice")
	defer scope.End()

	req := dto.UpdateInvoiceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	invoice, err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// RecalculateInvoice re-prices an unpaid invoice.
// @Summary Recalculate an invoice
// @Tags Invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.Data[dto.InvoiceResponse] "Invoice recalculated"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/recalculate [post]
// @Security BearerAuth
func (handler *Handler) RecalculateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RecalculateInvoice")
	defer scope.End()

	invoice, err := handler.service.Recalculate(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to recalculate invoice")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, invoice)
}

// ApplyPayment records a payment against the invoice.
// @Summary Apply a payment
// @Description Appends a payment and updates paid amount and status. Overpayment is rejected.
// @Tags Invoice
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body dto.ApplyPaymentRequest true "Apply Payment Request"
// @Success 201 {object} response.Data[dto.PaymentReceipt] "Payment applied"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/payments [post]
// @Security BearerAuth
func (handler *Handler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApplyPayment")
	defer scope.End()

	req := dto.ApplyPaymentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	receipt, err := handler.service.ApplyPayment(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment applied successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, receipt)
}
