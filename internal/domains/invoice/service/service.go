package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	amenityModel "hotel/internal/domains/amenity/model"
	amenityRepo "hotel/internal/domains/amenity/repository"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/repository"
	paymentModel "hotel/internal/domains/payment/model"
	paymentRepo "hotel/internal/domains/payment/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Invoice is the revenue ledger: one invoice per booking, settled by append-only payments.
type Invoice interface {
	Create(ctx context.Context, req dto.CreateInvoiceRequest) (dto.InvoiceResponse, error)
	ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, id string) (dto.PaymentReceipt, error)
	Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) (dto.InvoiceResponse, error)
	Recalculate(ctx context.Context, id string) (dto.InvoiceResponse, error)

	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInvoicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.InvoiceResponse, error)
	GetByBooking(ctx context.Context, bookingID string) (dto.InvoiceResponse, error)
}

type serviceImpl struct {
	repo        repository.Invoice
	paymentRepo paymentRepo.Payment
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	lineItems   amenityRepo.LineItem
	tx          postgres.Transactor
	kafka       kafka.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Invoice,
	paymentRepo paymentRepo.Payment,
	bookingRepo bookingRepo.Booking,
	roomRepo roomRepo.Room,
	lineItems amenityRepo.LineItem,
	tx postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Invoice {
	return &serviceImpl{
		repo:        repo,
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		lineItems:   lineItems,
		tx:          tx,
		kafka:       kafka,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Create bills a booking: room price times nights plus its charged services.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInvoiceRequest) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return res, err
	}

	if booking.Status == bookingModel.StatusCancelled {
		return res, failure.InvalidTransition("cancelled bookings cannot be invoiced") // nolint:wrapcheck
	}

	exist, err := s.repo.Exist(ctx, model.ByBookingFilter(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing invoice")

		return res, failure.Persistence(fmt.Errorf("failed to check existing invoice: %w", err)) // nolint:wrapcheck
	}

	if exist {
		return res, failure.Conflict("booking already has an invoice") // nolint:wrapcheck
	}

	roomCost, serviceCost, err := s.costs(ctx, booking)
	if err != nil {
		return res, err
	}

	due := now.AddDate(0, 0, s.cfg.Ledger.InvoiceDueDays)
	if req.DueDate != constant.Empty {
		if due, err = timezone.ParseDate(req.DueDate); err != nil {
			return res, failure.BadRequestFromString("due date must be in YYYY-MM-DD format") // nolint:wrapcheck
		}
	}

	if daterange.Day(due).Before(daterange.Day(now)) {
		return res, failure.BadRequestFromString("due date cannot be before the issue date") // nolint:wrapcheck
	}

	invoice := model.NewInvoice(uuid.NewString(), booking.ID, roomCost, serviceCost, now, due, gModel.NewMetadata(user, now))

	if err = s.repo.Insert(ctx, invoice); err != nil {
		log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to create invoice")

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict("booking already has an invoice") // nolint:wrapcheck
		}

		return res, failure.Persistence(fmt.Errorf("failed to create invoice: %w", err)) // nolint:wrapcheck
	}

	metrics.InvoicesCreated.Inc()
	s.publish(ctx, model.NewLedgerEvent(model.EventInvoiceCreated, invoice, constant.Empty, invoice.TotalAmount, now))
	s.invalidate(ctx, invoice.ID, false)

	res.FromModel(invoice, now)

	return res, nil
}

// ApplyPayment appends a payment and settles it against the invoice. The invoice row
// stays locked for the whole read-modify-write, so payments on one invoice apply serially.
func (s *serviceImpl) ApplyPayment(ctx context.Context, req dto.ApplyPaymentRequest, id string) (res dto.PaymentReceipt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.ApplyPayment")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	payment, err := req.ToModel(id, user, now)
	if err != nil {
		return res, failure.BadRequestFromString("payment date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	var settled model.Invoice

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockInvoice(ctx, tx, id)
		if err != nil {
			return err
		}

		settled, err = current.ApplyPayment(payment.Amount, user, now)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.paymentRepo.InsertTx(ctx, tx, payment); err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}

		if err = s.repo.UpdateTx(ctx, tx, settled.PaymentChange(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update invoice balance: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("amount", payment.Amount.String()).Msg("failed to apply payment")
		countRejection(err)

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	metrics.PaymentsApplied.Inc()
	metrics.PaymentAmount.Add(payment.Amount.InexactFloat64())

	s.publish(ctx, model.NewLedgerEvent(model.EventPaymentApplied, settled, payment.ID, payment.Amount, now))
	s.invalidate(ctx, id, true)

	res.FromModel(payment, settled, now)

	return res, nil
}

// Update applies manual edits. Costs and status are frozen once money was received; the due date is not.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateInvoiceRequest, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var next model.Invoice

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockInvoice(ctx, tx, id)
		if err != nil {
			return err
		}

		if next, err = req.Apply(current, user, now); err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.repo.UpdateTx(ctx, tx, next.Changes(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update invoice")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	s.publish(ctx, model.NewLedgerEvent(model.EventInvoiceUpdated, next, constant.Empty, decimal.Zero, now))
	s.invalidate(ctx, id, false)

	res.FromModel(next, now)

	return res, nil
}

// Recalculate re-derives both cost components from the booking, its room price and its services.
func (s *serviceImpl) Recalculate(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.Recalculate")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	var next model.Invoice

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockInvoice(ctx, tx, id)
		if err != nil {
			return err
		}

		if current.Status == model.StatusCancelled {
			return failure.InvalidTransition("cancelled invoices cannot be recalculated") // nolint:wrapcheck
		}

		booking, err := s.findBooking(ctx, current.BookingID)
		if err != nil {
			return err
		}

		roomCost, serviceCost, err := s.costs(ctx, booking)
		if err != nil {
			return err
		}

		if next, err = current.WithCosts(roomCost, serviceCost, user, now); err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.repo.UpdateTx(ctx, tx, next.Changes(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to recalculate invoice")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	s.publish(ctx, model.NewLedgerEvent(model.EventInvoiceRecomputed, next, constant.Empty, decimal.Zero, now))
	s.invalidate(ctx, id, false)

	res.FromModel(next, now)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInvoicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	today := timezone.Now()
	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter) + ":" + today.Format(constant.CalendarDate)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count invoices: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoices")

		return res, failure.Persistence(fmt.Errorf("failed to get invoices: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit, today)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoices to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count invoices")

		return res, failure.Persistence(fmt.Errorf("failed to count invoices: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save invoice count to cache")
		}
	}()

	return res, nil
}

// Get reads the invoice uncached: the Overdue status and the balance must match the moment of the request.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.getOne(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByBooking(ctx context.Context, bookingID string) (res dto.InvoiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Invoice.GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.getOne(ctx, model.ByBookingFilter(bookingID))
}

func (s *serviceImpl) getOne(ctx context.Context, filter gDto.FilterGroup) (res dto.InvoiceResponse, err error) {
	invoice, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get invoice")

		return res, failure.Persistence(fmt.Errorf("failed to get invoice: %w", err)) // nolint:wrapcheck
	}

	if invoice.ID == constant.Empty {
		return res, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	res.FromModel(invoice, timezone.Now())

	return res, nil
}

// costs prices a booking from its room's nightly rate and the services charged to it.
func (s *serviceImpl) costs(ctx context.Context, booking bookingModel.Booking) (roomCost, serviceCost decimal.Decimal, err error) {
	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return roomCost, serviceCost, failure.Persistence(fmt.Errorf("failed to get room: %w", err)) // nolint:wrapcheck
	}

	if room.ID == constant.Empty {
		return roomCost, serviceCost, failure.NotFound("room not found") // nolint:wrapcheck
	}

	serviceCost, err = s.lineItems.Sum(ctx, amenityModel.LineTotalExpression, amenityRepo.ByBookingFilter(booking.ID))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum booking services")

		return roomCost, serviceCost, failure.Persistence(fmt.Errorf("failed to sum booking services: %w", err)) // nolint:wrapcheck
	}

	return model.RoomCost(room.Price, booking.Stay()), serviceCost, nil
}

func (s *serviceImpl) findBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, failure.Persistence(fmt.Errorf("failed to get booking: %w", err)) // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockInvoice(ctx context.Context, tx *sqlx.Tx, id string) (model.Invoice, error) {
	invoice, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return invoice, fmt.Errorf("failed to lock invoice: %w", err)
	}

	if invoice.ID == constant.Empty {
		return invoice, failure.NotFound("invoice not found") // nolint:wrapcheck
	}

	return invoice, nil
}

func countRejection(err error) {
	switch {
	case errors.Is(err, failure.ErrInvalidAmount):
		metrics.PaymentRejections.WithLabelValues(metrics.RejectionInvalidAmount).Inc()
	case errors.Is(err, failure.ErrOverpayment):
		metrics.PaymentRejections.WithLabelValues(metrics.RejectionOverpayment).Inc()
	case errors.Is(err, failure.ErrInvalidTransition):
		metrics.PaymentRejections.WithLabelValues(metrics.RejectionCancelled).Inc()
	}
}

func (s *serviceImpl) publish(ctx context.Context, event model.LedgerEvent) {
	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.Ledger, event.InvoiceID, event)
}

func (s *serviceImpl) invalidate(ctx context.Context, id string, payments bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete invoice cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)

		if !payments {
			return
		}

		shared.InvalidateCaches(c, s.cache, paymentModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, paymentModel.CacheCount)
	}()
}
