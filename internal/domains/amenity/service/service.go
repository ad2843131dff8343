package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/repository"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

// Amenity manages the service catalog and the services charged to bookings.
type Amenity interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetServicesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Delete(ctx context.Context, id string) error

	AddLineItem(ctx context.Context, req dto.AddLineItemRequest, bookingID string) (dto.LineItemResponse, error)
	GetLineItems(ctx context.Context, bookingID string) (dto.GetLineItemsResponse, error)
	DeleteLineItem(ctx context.Context, bookingID, itemID string) error
}

type serviceImpl struct {
	repo        repository.Service
	lineItems   repository.LineItem
	bookingRepo bookingRepo.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Service,
	lineItems repository.LineItem,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Amenity {
	return &serviceImpl{
		repo:        repo,
		lineItems:   lineItems,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	service := req.ToModel(user)

	if err = s.repo.Insert(ctx, service); err != nil {
		log.Error().Err(err).Msg("failed to create service")

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return constant.Empty, failure.Conflict(fmt.Sprintf("service %q already exists", req.Name)) // nolint:wrapcheck
		}

		return constant.Empty, failure.Persistence(fmt.Errorf("failed to create service: %w", err)) // nolint:wrapcheck
	}

	s.invalidate(ctx, constant.Empty)

	return service.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count services: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, failure.Persistence(fmt.Errorf("failed to get services: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, failure.Persistence(fmt.Errorf("failed to count services: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	service, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

// Update edits the catalog entry. Price changes reach invoices only through a recalculation.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if req.Price != nil {
		rounded := req.Price.Round(2)
		req.Price = &rounded
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update service")

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(fmt.Sprintf("service %q already exists", req.Name)) // nolint:wrapcheck
		}

		return failure.Persistence(fmt.Errorf("failed to update service: %w", err)) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes a catalog entry that was never charged. Charged services should be deactivated instead.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.find(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete service")

		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("service is charged to bookings, deactivate it instead") // nolint:wrapcheck
		}

		return failure.Persistence(fmt.Errorf("failed to delete service: %w", err)) // nolint:wrapcheck
	}

	s.invalidate(ctx, id)

	return nil
}

// AddLineItem charges an active catalog service to an active booking on a day of its stay.
func (s *serviceImpl) AddLineItem(ctx context.Context, req dto.AddLineItemRequest, bookingID string) (res dto.LineItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.AddLineItem")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if !booking.IsActive() {
		return res, failure.InvalidTransition(fmt.Sprintf("services cannot be added to a %s booking", booking.Status)) // nolint:wrapcheck
	}

	service, err := s.find(ctx, req.ServiceID)
	if err != nil {
		return res, err
	}

	if !service.Active {
		return res, failure.InvalidTransition(fmt.Sprintf("service %q is inactive", service.Name)) // nolint:wrapcheck
	}

	day, err := req.Day()
	if err != nil {
		return res, failure.BadRequestFromString("service date must be in YYYY-MM-DD format") // nolint:wrapcheck
	}

	if !model.WithinStay(booking.Stay(), day) {
		return res, failure.BadRequestFromString(fmt.Sprintf("service date must fall within the stay %s", booking.Stay())) // nolint:wrapcheck
	}

	item := req.ToModel(user, bookingID, day)

	if err = s.lineItems.Insert(ctx, item); err != nil {
		log.Error().Err(err).Str("booking_id", bookingID).Msg("failed to add service to booking")

		return res, failure.Persistence(fmt.Errorf("failed to add service to booking: %w", err)) // nolint:wrapcheck
	}

	item.ServiceName = service.Name
	item.UnitPrice = service.Price

	res.FromModel(item)

	return res, nil
}

// GetLineItems reads straight from the database so invoice previews never see stale charges.
func (s *serviceImpl) GetLineItems(ctx context.Context, bookingID string) (res dto.GetLineItemsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.GetLineItems")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if _, err = s.findBooking(ctx, bookingID); err != nil {
		return res, err
	}

	items, err := s.lineItems.GetAll(ctx, gDto.QueryParams{}, repository.ByBookingFilter(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking services")

		return res, failure.Persistence(fmt.Errorf("failed to get booking services: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(items)

	return res, nil
}

func (s *serviceImpl) DeleteLineItem(ctx context.Context, bookingID, itemID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Amenity.DeleteLineItem")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldLineItemID, Operator: gDto.FilterOperatorEq, Value: itemID, Table: model.LineItemTableName},
			gDto.Filter{Field: model.FieldBookingID, Operator: gDto.FilterOperatorEq, Value: bookingID, Table: model.LineItemTableName},
		},
	}

	item, err := s.lineItems.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking service")

		return failure.Persistence(fmt.Errorf("failed to get booking service: %w", err)) // nolint:wrapcheck
	}

	if item.ID == constant.Empty {
		return failure.NotFound("booking service not found") // nolint:wrapcheck
	}

	if err = s.lineItems.Delete(ctx, shared.FilterByID(itemID, model.FieldLineItemID, model.LineItemTableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking service")

		return failure.Persistence(fmt.Errorf("failed to delete booking service: %w", err)) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Service, error) {
	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return service, failure.Persistence(fmt.Errorf("failed to get service: %w", err)) // nolint:wrapcheck
	}

	if service.ID == constant.Empty {
		return service, failure.NotFound("service not found") // nolint:wrapcheck
	}

	return service, nil
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

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete service cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()
}
