package service_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	pgMocks "hotel/infras/postgres/mocks"
	"hotel/infras/s3"
	s3Mocks "hotel/infras/s3/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *roomMocks.MockRoom
	bookings *bookingMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	svc      service.Room
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:     roomMocks.NewMockRoom(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	tx := pgMocks.NewMockTransactor(ctrl)
	tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
		return fn(ctx, nil)
	}).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, tx, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantKind  error
		wantErr   bool
	}{
		{
			name: "stores an available room",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
					assert.Equal(t, model.StatusAvailable, room.Status)
					assert.Equal(t, "101", room.RoomNumber)
					assert.True(t, decimal.RequireFromString("100.00").Equal(room.Price))
					assert.Equal(t, "staff-1", room.CreatedBy)

					return nil
				})
			},
		},
		{
			name: "duplicate room number",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					Return(fmt.Errorf("failed to insert data (room): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))
			},
			wantErr:  true,
			wantKind: failure.ErrConflict,
		},
		{
			name: "storage failure",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantErr:  true,
			wantKind: failure.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Create(userCtx(), dto.CreateRoomRequest{
				RoomNumber: "101",
				Type:       "Deluxe",
				Floor:      1,
				Price:      decimal.NewFromInt(100),
			})

			time.Sleep(10 * time.Millisecond)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestRoomService_CreateWithImage(t *testing.T) {
	header := &multipart.FileHeader{Filename: "suite.png", Size: 2048}

	t.Run("stores the uploaded url", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), model.EntityName, gomock.Any(), header, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ multipart.File, _ *multipart.FileHeader, name string) (string, error) {
				assert.True(t, strings.HasSuffix(name, ".png"))

				return "https://cdn.example.com/room/" + name, nil
			})
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, room model.Room) error {
			assert.True(t, strings.HasPrefix(room.Image, "https://cdn.example.com/room/"))

			return nil
		})

		err := f.svc.Create(userCtx(), dto.CreateRoomRequest{RoomNumber: "201", Type: "Suite", Floor: 2, Price: decimal.NewFromInt(250), Image: header})
		assert.NoError(t, err)
	})

	t.Run("content that is not an image", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), header, gomock.Any()).
			Return("", fmt.Errorf("%w: text/plain", s3.ErrUnsupportedContent))

		err := f.svc.Create(userCtx(), dto.CreateRoomRequest{RoomNumber: "201", Type: "Suite", Floor: 2, Price: decimal.NewFromInt(250), Image: header})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestRoomService_Get(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:r1", gomock.Any()).Return(nil)

		_, err := f.svc.Get(context.Background(), "r1")
		assert.NoError(t, err)
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		_, err := f.svc.Get(context.Background(), "r1")
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("found room", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", RoomNumber: "101", Status: model.StatusBooked}, nil)

		res, err := f.svc.Get(context.Background(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Equal(t, model.StatusBooked, res.Status)

		time.Sleep(10 * time.Millisecond)
	})
}

func TestRoomService_UpdateStatus(t *testing.T) {
	held := []bookingModel.Booking{{ID: "b1", RoomID: "r1", Status: bookingModel.StatusConfirmed}}

	tests := []struct {
		name     string
		current  string
		target   string
		locked   bool
		checked  bool
		active   []bookingModel.Booking
		written  string
		wantKind error
	}{
		{name: "booked cannot be set by hand", current: model.StatusAvailable, target: model.StatusBooked, wantKind: failure.ErrInvalidTransition},
		{name: "cleaning to available", current: model.StatusCleaning, target: model.StatusAvailable, locked: true, checked: true, written: model.StatusAvailable},
		{name: "available to maintenance", current: model.StatusAvailable, target: model.StatusMaintenance, locked: true, written: model.StatusMaintenance},
		{name: "booked to out of service", current: model.StatusBooked, target: model.StatusOutOfService, locked: true, written: model.StatusOutOfService},
		{name: "booked cannot be freed by hand", current: model.StatusBooked, target: model.StatusAvailable, locked: true, wantKind: failure.ErrInvalidTransition},
		{name: "same status is a no-op", current: model.StatusCleaning, target: model.StatusCleaning, locked: true, checked: true},
		{
			name:    "maintenance with a held booking returns to booked",
			current: model.StatusMaintenance,
			target:  model.StatusAvailable,
			locked:  true,
			checked: true,
			active:  held,
			written: model.StatusBooked,
		},
		{
			name:    "out of service with a held booking cannot go to cleaning",
			current: model.StatusOutOfService,
			target:  model.StatusCleaning,
			locked:  true,
			checked: true,
			active:  held,
			written: model.StatusBooked,
		},
		{
			name:    "cancelled bookings do not hold the room",
			current: model.StatusMaintenance,
			target:  model.StatusAvailable,
			locked:  true,
			checked: true,
			active:  []bookingModel.Booking{{ID: "b2", RoomID: "r1", Status: bookingModel.StatusCancelled}},
			written: model.StatusAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.locked {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Status: tt.current}, nil)
			}

			if tt.checked {
				f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), bookingModel.ActiveOnRoomFilter("r1")).Return(tt.active, nil)
			}

			if tt.written != "" {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, _ any, fields map[string]any, _ any) error {
						assert.Equal(t, tt.written, fields[model.FieldStatus])
						assert.Equal(t, "staff-1", fields[constant.FieldModifiedBy])

						return nil
					})
			}

			err := f.svc.UpdateStatus(userCtx(), dto.UpdateRoomStatusRequest{Status: tt.target}, "r1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestRoomService_UpdateStatus_Failures(t *testing.T) {
	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		err := f.svc.UpdateStatus(userCtx(), dto.UpdateRoomStatusRequest{Status: model.StatusCleaning}, "r1")
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("booking lookup fails", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Status: model.StatusMaintenance}, nil)
		f.bookings.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

		err := f.svc.UpdateStatus(userCtx(), dto.UpdateRoomStatusRequest{Status: model.StatusAvailable}, "r1")
		assert.ErrorIs(t, err, failure.ErrPersistence)
	})
}

func TestRoomService_Delete(t *testing.T) {
	t.Run("room with bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1"}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to delete data (room): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))

		err := f.svc.Delete(userCtx(), "r1")
		assert.ErrorIs(t, err, failure.ErrConflict)
	})

	t.Run("removes image with the room", func(t *testing.T) {
		f := newFixture(t)

		image := "https://cdn.example.com/room/abc.png"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{ID: "r1", Image: image}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().GetObjectNameFromURL(model.EntityName, image).Return("abc.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), gomock.Any(), model.EntityName, "abc.png").Return(nil)

		err := f.svc.Delete(userCtx(), "r1")
		assert.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
	})
}
