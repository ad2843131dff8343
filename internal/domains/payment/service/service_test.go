package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	paymentMocks "hotel/internal/domains/payment/mocks"
	"hotel/internal/domains/payment/model"
	"hotel/internal/domains/payment/service"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newService(t *testing.T) (*paymentMocks.MockPayment, *cacheMocks.MockRedisCache, service.Payment) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	repo := paymentMocks.NewMockPayment(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return repo, cache, service.New(repo, cfg, cache, mocks.NewOtel())
}

func TestPaymentService_GetAll(t *testing.T) {
	repo, cache, svc := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Payment{
		{ID: "p1", InvoiceID: "inv-1", Amount: decimal.RequireFromString("100"), PaymentDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "p2", InvoiceID: "inv-1", Amount: decimal.RequireFromString("130"), PaymentDate: time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC)},
	}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, model.ByInvoiceFilter("inv-1"))

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, 1, res.TotalPage)
	assert.Equal(t, "2030-01-02", res.Payments[0].PaymentDate)
}

func TestPaymentService_Get(t *testing.T) {
	t.Run("missing payment", func(t *testing.T) {
		repo, cache, svc := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, nil)

		_, err := svc.Get(context.Background(), "p1")

		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, cache, svc := newService(t)

		cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Payment{}, errors.New("timeout"))

		_, err := svc.Get(context.Background(), "p1")

		assert.ErrorIs(t, err, failure.ErrPersistence)
	})
}
