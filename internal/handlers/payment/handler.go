package payment

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/payment/model"
	"hotel/internal/domains/payment/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayments)
		routerGroup.Get("/{id}", handler.GetPaymentByID)
	})
}

// InvoiceRouter registers the payment listing under /invoices/{id}.
func (handler *Handler) InvoiceRouter(router chi.Router) {
	router.Get("/{id}/payments", handler.GetInvoicePayments)
}

// GetPayments lists payments.
// @Summary Get all payments
// @Tags Payment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param invoice_id query string false "Filter by invoice"
// @Param payment_method query string false "Filter by method"
// @Param from query string false "Paid on or after (YYYY-MM-DD)"
// @Param to query string false "Paid on or before (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments [get]
// @Security BearerAuth
func (handler *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldInvoiceID, model.FieldPaymentMethod} {
		if value := r.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to"); from != constant.Empty && to != constant.Empty {
		fromDay, err := timezone.ParseDate(from)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("from must be in YYYY-MM-DD format"))

			return
		}

		toDay, err := timezone.ParseDate(to)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("to must be in YYYY-MM-DD format"))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, model.DatedFilter(fromDay, toDay))
	}

	payments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}

// GetPaymentByID returns one payment.
// @Summary Get a payment by ID
// @Tags Payment
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} response.Data[dto.PaymentResponse] "Payment"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/payments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPaymentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPaymentByID")
	defer scope.End()

	payment, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payment)
}

// GetInvoicePayments lists the payments of one invoice.
// @Summary Get invoice payments
// @Tags Payment
// @Produce json
// @Param id path string true "Invoice ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPaymentsResponse] "List of payments"
// @Failure 500 {object} response.Error
// @Router /v1/invoices/{id}/payments [get]
// @Security BearerAuth
func (handler *Handler) GetInvoicePayments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInvoicePayments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	payments, err := handler.service.GetAll(ctx, queryParams, model.ByInvoiceFilter(chi.URLParam(r, constant.RequestParamID)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get invoice payments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payments)
}
