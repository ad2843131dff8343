package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	customerModel "hotel/internal/domains/customer/model"
	customerRepo "hotel/internal/domains/customer/repository"
	"hotel/internal/domains/feedback/model"
	"hotel/internal/domains/feedback/model/dto"
	"hotel/internal/domains/feedback/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) (dto.FeedbackResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFeedbackResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.FeedbackResponse, error)
	GetByCustomer(ctx context.Context, req gDto.QueryParams, customerID string) (dto.GetFeedbackResponse, error)
	GetByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (dto.GetFeedbackResponse, error)
	Summary(ctx context.Context, filter gDto.FilterGroup) (dto.RatingSummary, error)
}

type serviceImpl struct {
	repo      repository.Feedback
	customers customerRepo.Customer
	bookings  bookingRepo.Booking
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Feedback, customers customerRepo.Customer, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Feedback {
	return &serviceImpl{
		repo:      repo,
		customers: customers,
		bookings:  bookings,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create records a rating. When a booking is named it must belong to the same customer.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return res, failure.BadRequestFromString("rating must be between 1 and 5") // nolint:wrapcheck
	}

	if err = s.checkCustomer(ctx, req.CustomerID); err != nil {
		return res, err
	}

	if err = s.checkBooking(ctx, req.BookingID, req.CustomerID); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	feedback := req.ToModel(user, timezone.Now())

	if err = s.repo.Insert(ctx, feedback); err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return res, failure.Persistence(fmt.Errorf("failed to create feedback: %w", err)) // nolint:wrapcheck
	}

	res.FromModel(feedback)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
		shared.InvalidateCaches(c, s.cache, model.CacheSummary)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count feedback: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, failure.Persistence(fmt.Errorf("failed to get feedback: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedback")

		return res, failure.Persistence(fmt.Errorf("failed to count feedback: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	feedback, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, failure.Persistence(fmt.Errorf("failed to get feedback: %w", err)) // nolint:wrapcheck
	}

	if feedback.ID == constant.Empty {
		return res, failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	res.FromModel(feedback)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save feedback to cache")
		}
	}()

	return res, nil
}

// GetByCustomer lists a guest's feedback. An unknown customer is reported rather than listed as empty.
func (s *serviceImpl) GetByCustomer(ctx context.Context, req gDto.QueryParams, customerID string) (res dto.GetFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.GetByCustomer")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = s.checkCustomer(ctx, customerID); err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(customerID, model.FieldCustomerID, model.TableName))
}

func (s *serviceImpl) GetByBooking(ctx context.Context, req gDto.QueryParams, bookingID string) (res dto.GetFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.GetByBooking")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.booking(ctx, bookingID); err != nil {
		return res, err
	}

	return s.GetAll(ctx, req, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
}

// Summary averages the ratings matching filter.
func (s *serviceImpl) Summary(ctx context.Context, filter gDto.FilterGroup) (res dto.RatingSummary, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Feedback.Summary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheSummary, gDto.QueryParams{}, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ratings")

		return res, failure.Persistence(fmt.Errorf("failed to count ratings: %w", err)) // nolint:wrapcheck
	}

	sum, err := s.repo.Sum(ctx, model.FieldRating, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to sum ratings")

		return res, failure.Persistence(fmt.Errorf("failed to sum ratings: %w", err)) // nolint:wrapcheck
	}

	res.FromTotals(sum, count)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rating summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) checkCustomer(ctx context.Context, customerID string) error {
	exist, err := s.customers.Exist(ctx, shared.FilterByID(customerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return failure.Persistence(fmt.Errorf("failed to check if customer exists: %w", err)) // nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) checkBooking(ctx context.Context, bookingID, customerID string) error {
	if bookingID == constant.Empty {
		return nil
	}

	booking, err := s.booking(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.CustomerID != customerID {
		return failure.BadRequestFromString("booking belongs to another customer") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) booking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, failure.Persistence(fmt.Errorf("failed to get booking: %w", err)) // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}
