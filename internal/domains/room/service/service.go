package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"slices"

	"hotel/config"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/s3"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Room
	bookings bookingRepo.Booking
	tx       postgres.Transactor
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	s3       s3.S3
}

func New(
	repo repository.Room,
	bookings bookingRepo.Booking,
	tx postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Room {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		tx:       tx,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		s3:       s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		log.Error().Err(err).Msg("failed to create room")
		s.discardImage(ctx, objectName)

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(fmt.Sprintf("room number %s already exists", req.RoomNumber)) // nolint:wrapcheck
		}

		return failure.Persistence(fmt.Errorf("failed to create room: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, failure.Persistence(fmt.Errorf("failed to get rooms: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, failure.Persistence(fmt.Errorf("failed to count rooms: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	if req.Price != nil {
		rounded := req.Price.Round(constant.MoneyDecimals)
		req.Price = &rounded
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update room")
		s.discardImage(ctx, objectName)

		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(fmt.Sprintf("room number %s already exists", req.RoomNumber)) // nolint:wrapcheck
		}

		return failure.Persistence(fmt.Errorf("failed to update room: %w", err)) // nolint:wrapcheck
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		s.discardImage(ctx, s.s3.GetObjectNameFromURL(model.EntityName, current.Image))
	}

	s.invalidate(ctx, id)

	return nil
}

// UpdateStatus applies a staff-set status under the same room lock the booking
// lifecycle takes. Booked is owned by the lifecycle: a Booked room may only be
// taken out of order, and a room still held by an active booking goes back to
// Booked when staff return it to service.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !model.IsManualStatus(req.Status) {
		return failure.InvalidTransition(fmt.Sprintf("room status %s cannot be set manually", req.Status)) // nolint:wrapcheck
	}

	var applied string

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if current.Status == model.StatusBooked && !isOutOfOrder(req.Status) {
			return failure.InvalidTransition("booked room can only be moved to maintenance or out of service") // nolint:wrapcheck
		}

		target := req.Status

		if !isOutOfOrder(target) {
			held, err := s.heldByBooking(ctx, tx, id)
			if err != nil {
				return err
			}

			if held {
				target = model.StatusBooked
			}
		}

		if current.Status == target {
			return nil
		}

		updated := current.WithStatus(target, user, timezone.Now())

		if err = s.repo.UpdateTx(ctx, tx, updated.StatusChange(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update room status: %w", err)
		}

		applied = target

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", req.Status).Msg("failed to update room status")

		return failure.Persistence(err) // nolint:wrapcheck
	}

	if applied == constant.Empty {
		return nil
	}

	metrics.RoomStatusChanges.WithLabelValues(applied).Inc()
	scope.SetAttribute("room.status", applied)

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Room.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("room has bookings and cannot be deleted") // nolint:wrapcheck
		}

		return failure.Persistence(fmt.Errorf("failed to delete room: %w", err)) // nolint:wrapcheck
	}

	if current.Image != constant.Empty {
		s.discardImage(ctx, s.s3.GetObjectNameFromURL(model.EntityName, current.Image))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return room, failure.Persistence(fmt.Errorf("failed to get room: %w", err)) // nolint:wrapcheck
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) lock(ctx context.Context, tx *sqlx.Tx, id string) (model.Room, error) {
	room, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// heldByBooking reports whether an active booking still holds the room.
func (s *serviceImpl) heldByBooking(ctx context.Context, tx *sqlx.Tx, id string) (bool, error) {
	active, err := s.bookings.GetAllTx(ctx, tx, bookingModel.ActiveOnRoomFilter(id))
	if err != nil {
		return false, fmt.Errorf("failed to load bookings for room: %w", err)
	}

	return slices.ContainsFunc(active, bookingModel.Booking.IsActive), nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)
	}()
}

// uploadImage stores the image under a fresh name keeping its extension.
// Without an image it returns empty values.
func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + path.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, objectName)
	if errors.Is(err, s3.ErrUnsupportedContent) {
		return constant.Empty, constant.Empty, failure.BadRequestFromString("room image must be a JPEG, PNG or WebP file") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to upload room image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) discardImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete room image")
	}
}

func isOutOfOrder(status string) bool {
	return status == model.StatusMaintenance || status == model.StatusOutOfService
}
