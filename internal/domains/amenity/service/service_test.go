package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	amenityMocks "hotel/internal/domains/amenity/mocks"
	"hotel/internal/domains/amenity/model"
	"hotel/internal/domains/amenity/model/dto"
	"hotel/internal/domains/amenity/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const serviceID = "44444444-4444-4444-4444-444444444444"

type fixture struct {
	repo      *amenityMocks.MockService
	lineItems *amenityMocks.MockLineItem
	bookings  *bookingMocks.MockBooking
	cache     *cacheMocks.MockRedisCache
	svc       service.Amenity
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:      amenityMocks.NewMockService(ctrl),
		lineItems: amenityMocks.NewMockLineItem(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.lineItems, f.bookings, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func activeBooking(status string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           "b1",
		Status:       status,
		CheckInDate:  time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func breakfast(active bool) model.Service {
	return model.Service{ID: serviceID, Name: "Breakfast", Price: decimal.RequireFromString("15.00"), Active: active}
}

func TestAmenityService_Create(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("failed to insert data (service): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation}))

		_, err := f.svc.Create(userCtx(), dto.CreateServiceRequest{Name: "Breakfast", Price: decimal.NewFromInt(15)})

		assert.ErrorIs(t, err, failure.ErrConflict)
	})

	t.Run("stores an active service", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, s model.Service) error {
			assert.True(t, s.Active)
			assert.True(t, decimal.RequireFromString("15.13").Equal(s.Price))

			return nil
		})

		id, err := f.svc.Create(userCtx(), dto.CreateServiceRequest{Name: "Breakfast", Price: decimal.RequireFromString("15.125")})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})
}

func TestAmenityService_AddLineItem(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.AddLineItemRequest
		setupMock func(f fixture)
		wantKind  error
		wantErr   bool
	}{
		{
			name: "charges two breakfasts",
			req:  dto.AddLineItemRequest{ServiceID: serviceID, Quantity: 2, ServiceDate: "2030-01-02"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(bookingModel.StatusCheckedIn), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(breakfast(true), nil)
				f.lineItems.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, item model.LineItem) error {
					assert.Equal(t, "b1", item.BookingID)
					assert.Equal(t, 2, item.Quantity)

					return nil
				})
			},
		},
		{
			name: "cancelled booking",
			req:  dto.AddLineItemRequest{ServiceID: serviceID, Quantity: 1, ServiceDate: "2030-01-02"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(bookingModel.StatusCancelled), nil)
			},
			wantErr:  true,
			wantKind: failure.ErrInvalidTransition,
		},
		{
			name: "inactive service",
			req:  dto.AddLineItemRequest{ServiceID: serviceID, Quantity: 1, ServiceDate: "2030-01-02"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(breakfast(false), nil)
			},
			wantErr:  true,
			wantKind: failure.ErrInvalidTransition,
		},
		{
			name: "date outside the stay",
			req:  dto.AddLineItemRequest{ServiceID: serviceID, Quantity: 1, ServiceDate: "2030-01-05"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(breakfast(true), nil)
			},
			wantErr: true,
		},
		{
			name: "unknown booking",
			req:  dto.AddLineItemRequest{ServiceID: serviceID, Quantity: 1},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantErr:  true,
			wantKind: failure.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.AddLineItem(userCtx(), tt.req, "b1")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Breakfast", res.ServiceName)
				assert.True(t, decimal.RequireFromString("30").Equal(res.LineTotal))

				return
			}

			require.Error(t, err)

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
			}
		})
	}
}

func TestAmenityService_GetLineItems(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeBooking(bookingModel.StatusConfirmed), nil)
	f.lineItems.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.LineItem{
		{ID: "l1", Quantity: 2, UnitPrice: decimal.RequireFromString("15.00")},
		{ID: "l2", Quantity: 1, UnitPrice: decimal.RequireFromString("9.99")},
	}, nil)

	res, err := f.svc.GetLineItems(context.Background(), "b1")

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.True(t, decimal.RequireFromString("39.99").Equal(res.ServiceCost))
}

func TestAmenityService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(breakfast(true), nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("failed to delete data (service): %w", &pq.Error{Code: constant.PqErrorCodeFkViolation}))

	err := f.svc.Delete(userCtx(), serviceID)

	assert.ErrorIs(t, err, failure.ErrConflict)
}

func TestAmenityService_DeleteLineItem(t *testing.T) {
	t.Run("item of another booking", func(t *testing.T) {
		f := newFixture(t)

		f.lineItems.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.LineItem{}, nil)

		err := f.svc.DeleteLineItem(userCtx(), "b1", "l9")

		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.lineItems.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.LineItem{ID: "l1"}, nil)
		f.lineItems.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		err := f.svc.DeleteLineItem(userCtx(), "b1", "l1")

		assert.ErrorIs(t, err, failure.ErrPersistence)
	})
}
