package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	customerModel "hotel/internal/domains/customer/model"
	customerRepo "hotel/internal/domains/customer/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Booking owns the booking lifecycle and the room statuses it drives.
// Every mutation runs in one transaction that locks the affected rooms.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (model.Change, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (model.Change, error)
	CheckIn(ctx context.Context, id string) (model.Change, error)
	CheckOut(ctx context.Context, id string) (model.Change, error)
	Cancel(ctx context.Context, id string) (model.Change, error)
	Delete(ctx context.Context, id string) (model.Change, error)

	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	customerRepo customerRepo.Customer
	tx           postgres.Transactor
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	customerRepo customerRepo.Customer,
	tx postgres.Transactor,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		customerRepo: customerRepo,
		tx:           tx,
		kafka:        kafka,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := daterange.Parse(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return change, err //nolint:wrapcheck
	}

	if err = model.ValidateOccupancy(req.Adults, req.Kids); err != nil {
		return change, err //nolint:wrapcheck
	}

	if err = s.ensureCustomer(ctx, req.CustomerID); err != nil {
		return change, err
	}

	booking := req.ToModel(user, stay)

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		room, err := s.lockRoom(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		if !room.IsBookable() {
			return failure.RoomConflict(fmt.Sprintf("room %s is %s", room.RoomNumber, room.Status)) // nolint:wrapcheck
		}

		if err = s.checkConflict(ctx, tx, room.ID, stay, constant.Empty); err != nil {
			return err
		}

		if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		moved, err := s.occupyRoom(ctx, tx, room, user, booking.CreatedAt)
		if err != nil {
			return err
		}

		change = model.Change{Booking: booking, Rooms: moved}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to create booking")

		return model.Change{}, s.translate(err)
	}

	s.afterChange(ctx, metrics.TransitionCreate, change)

	return change, nil
}

// Update edits room, guest, dates or occupancy of an active booking. The overlap check is
// skipped when neither room nor dates change. Both rooms of a move are locked in id order.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	if req.CustomerID != constant.Empty {
		if err = s.ensureCustomer(ctx, req.CustomerID); err != nil {
			return change, err
		}
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if !current.IsActive() {
			return failure.InvalidTransition(fmt.Sprintf("%s booking cannot be updated", current.Status)) // nolint:wrapcheck
		}

		next, stay, err := req.Apply(current)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = model.ValidateOccupancy(next.Adults, next.Kids); err != nil {
			return err //nolint:wrapcheck
		}

		next.ModifiedBy = user
		next.ModifiedAt = now

		roomChanged := next.RoomID != current.RoomID

		rooms, err := s.lockRooms(ctx, tx, current.RoomID, next.RoomID)
		if err != nil {
			return err
		}

		target := rooms[next.RoomID]

		if roomChanged && !target.IsBookable() {
			return failure.RoomConflict(fmt.Sprintf("room %s is %s", target.RoomNumber, target.Status)) // nolint:wrapcheck
		}

		if roomChanged || !stay.Equal(current.Stay()) {
			if err = s.checkConflict(ctx, tx, next.RoomID, stay, current.ID); err != nil {
				return err
			}
		}

		if err = s.repo.UpdateTx(ctx, tx, next.Changes(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		change.Booking = next

		if !roomChanged {
			return nil
		}

		moved, err := s.occupyRoom(ctx, tx, target, user, now)
		if err != nil {
			return err
		}

		released, err := s.releaseRoom(ctx, tx, rooms[current.RoomID], current.ID, roomModel.StatusAvailable, user, now)
		if err != nil {
			return err
		}

		change.Rooms = append(moved, released...)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return model.Change{}, s.translate(err)
	}

	s.afterChange(ctx, metrics.TransitionUpdate, change)

	return change, nil
}

// CheckIn marks the guest as arrived. The room is held Booked unless staff took it out of order.
func (s *serviceImpl) CheckIn(ctx context.Context, id string) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.transition(ctx, id, model.StatusCheckedIn, metrics.TransitionCheckIn)
}

// CheckOut ends the stay. A room with no other active booking goes to Cleaning.
func (s *serviceImpl) CheckOut(ctx context.Context, id string) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.transition(ctx, id, model.StatusCheckedOut, metrics.TransitionCheckOut)
}

// Cancel voids the booking. A room with no other active booking becomes Available.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(&err)

	return s.transition(ctx, id, model.StatusCancelled, metrics.TransitionCancel)
}

// Delete removes the booking. Deleting an active booking releases its room like a cancel.
func (s *serviceImpl) Delete(ctx context.Context, id string) (change model.Change, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		if err = s.repo.DeleteTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			if shared.IsPqError(err, constant.PqErrorCodeFkViolation) {
				return failure.Conflict("booking has an invoice and cannot be deleted") // nolint:wrapcheck
			}

			return fmt.Errorf("failed to delete booking: %w", err)
		}

		change.Booking = current

		if !current.IsActive() {
			return nil
		}

		room, err := s.lockRoom(ctx, tx, current.RoomID)
		if err != nil {
			return err
		}

		change.Rooms, err = s.releaseRoom(ctx, tx, room, current.ID, roomModel.StatusAvailable, user, now)

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return model.Change{}, s.translate(err)
	}

	s.afterChange(ctx, metrics.TransitionDelete, change)

	return change, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Persistence(fmt.Errorf("failed to get bookings: %w", err)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.Persistence(fmt.Errorf("failed to count bookings: %w", err)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, failure.Persistence(fmt.Errorf("failed to get booking: %w", err)) // nolint:wrapcheck
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

// transition moves a booking to next and settles its room accordingly.
func (s *serviceImpl) transition(ctx context.Context, id, next, label string) (change model.Change, err error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.lockBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		updated, err := current.WithStatus(next, user, now)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err = s.repo.UpdateTx(ctx, tx, updated.StatusChange(), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}

		room, err := s.lockRoom(ctx, tx, current.RoomID)
		if err != nil {
			return err
		}

		change.Booking = updated

		switch next {
		case model.StatusCheckedIn:
			change.Rooms, err = s.occupyRoom(ctx, tx, room, user, now)
		case model.StatusCheckedOut:
			change.Rooms, err = s.releaseRoom(ctx, tx, room, id, roomModel.StatusCleaning, user, now)
		default:
			change.Rooms, err = s.releaseRoom(ctx, tx, room, id, roomModel.StatusAvailable, user, now)
		}

		return err
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Str("status", next).Msg("failed to move booking")

		return model.Change{}, s.translate(err)
	}

	s.afterChange(ctx, label, change)

	return change, nil
}

func (s *serviceImpl) ensureCustomer(ctx context.Context, id string) error {
	exist, err := s.customerRepo.Exist(ctx, shared.FilterByID(id, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return failure.Persistence(fmt.Errorf("failed to check if customer exists: %w", err)) // nolint:wrapcheck
	}

	if !exist {
		return failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) lockBooking(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	booking, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return booking, fmt.Errorf("failed to lock booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) lockRoom(ctx context.Context, tx *sqlx.Tx, id string) (roomModel.Room, error) {
	room, err := s.roomRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		return room, fmt.Errorf("failed to lock room: %w", err)
	}

	if room.ID == constant.Empty {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

// lockRooms locks each distinct room in ascending id order so two moves between
// the same pair of rooms cannot deadlock.
func (s *serviceImpl) lockRooms(ctx context.Context, tx *sqlx.Tx, ids ...string) (map[string]roomModel.Room, error) {
	ordered := slices.Clone(ids)
	slices.Sort(ordered)
	ordered = slices.Compact(ordered)

	rooms := make(map[string]roomModel.Room, len(ordered))

	for _, id := range ordered {
		room, err := s.lockRoom(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		rooms[id] = room
	}

	return rooms, nil
}

func (s *serviceImpl) checkConflict(ctx context.Context, tx *sqlx.Tx, roomID string, stay daterange.Range, excludeID string) error {
	active, err := s.repo.GetAllTx(ctx, tx, model.ActiveOverlapFilter(stay, roomID))
	if err != nil {
		return fmt.Errorf("failed to load bookings for room: %w", err)
	}

	if existing, found := model.FindConflict(active, stay, excludeID); found {
		return failure.RoomConflict(fmt.Sprintf("room is already booked for %s", existing.Stay())) // nolint:wrapcheck
	}

	return nil
}

// occupyRoom marks a room Booked. Rooms already Booked or taken out of order are left alone.
func (s *serviceImpl) occupyRoom(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, user string, at time.Time) ([]roomModel.Room, error) {
	if room.Status == roomModel.StatusBooked || !room.IsBookable() {
		return nil, nil
	}

	return s.setRoomStatus(ctx, tx, room, roomModel.StatusBooked, user, at)
}

// releaseRoom moves a Booked room to target once no other active booking holds it.
// Manual statuses such as Maintenance are never overridden.
func (s *serviceImpl) releaseRoom(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, bookingID, target, user string, at time.Time) ([]roomModel.Room, error) {
	if room.Status != roomModel.StatusBooked {
		return nil, nil
	}

	active, err := s.repo.GetAllTx(ctx, tx, model.ActiveOnRoomFilter(room.ID))
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for room: %w", err)
	}

	for _, other := range active {
		if other.ID != bookingID && other.IsActive() {
			return nil, nil
		}
	}

	return s.setRoomStatus(ctx, tx, room, target, user, at)
}

func (s *serviceImpl) setRoomStatus(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, status, user string, at time.Time) ([]roomModel.Room, error) {
	updated := room.WithStatus(status, user, at)

	if err := s.roomRepo.UpdateTx(ctx, tx, updated.StatusChange(), shared.FilterByID(room.ID, roomModel.FieldID, roomModel.TableName)); err != nil {
		return nil, fmt.Errorf("failed to update room status: %w", err)
	}

	return []roomModel.Room{updated}, nil
}

// translate maps a failed transaction to the caller-facing error kind.
func (s *serviceImpl) translate(err error) error {
	if shared.IsPqError(err, constant.PqErrorCodeExclusionViolation) {
		metrics.BookingConflicts.Inc()

		return failure.RoomConflict("room is already booked for the requested dates") // nolint:wrapcheck
	}

	if errors.Is(err, failure.ErrRoomConflict) {
		metrics.BookingConflicts.Inc()
	}

	return failure.Persistence(err) // nolint:wrapcheck
}

func (s *serviceImpl) afterChange(ctx context.Context, transition string, change model.Change) {
	metrics.BookingTransitions.WithLabelValues(transition).Inc()

	for _, room := range change.Rooms {
		metrics.RoomStatusChanges.WithLabelValues(room.Status).Inc()
	}

	kafka.PublishAsync(ctx, s.kafka, s.cfg.Kafka.Topics.Booking, change.Booking.ID, model.NewEvent(transition, change, timezone.Now()))

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, change.Booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, model.CacheCount)

		if len(change.Rooms) == 0 {
			return
		}

		for _, room := range change.Rooms {
			if err := s.cache.Delete(c, shared.BuildCacheKey(roomModel.CacheGet, room.ID)); err != nil {
				log.Error().Err(err).Msg("failed to delete room cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, roomModel.CacheGetAll)
		shared.InvalidateCaches(c, s.cache, roomModel.CacheCount)
	}()
}
