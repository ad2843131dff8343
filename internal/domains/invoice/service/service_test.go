package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	pgMocks "hotel/infras/postgres/mocks"
	amenityMocks "hotel/internal/domains/amenity/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	invoiceMocks "hotel/internal/domains/invoice/mocks"
	"hotel/internal/domains/invoice/model"
	"hotel/internal/domains/invoice/model/dto"
	"hotel/internal/domains/invoice/service"
	paymentMocks "hotel/internal/domains/payment/mocks"
	paymentModel "hotel/internal/domains/payment/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	invoiceID = "44444444-4444-4444-4444-444444444444"
	bookingID = "55555555-5555-5555-5555-555555555555"
	roomID    = "66666666-6666-6666-6666-666666666666"
)

type fixture struct {
	repo     *invoiceMocks.MockInvoice
	payments *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	rooms    *roomMocks.MockRoom
	items    *amenityMocks.MockLineItem
	tx       *pgMocks.MockTransactor
	cache    *cacheMocks.MockRedisCache
	svc      service.Invoice
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.Ledger = "hotel.ledger"
	cfg.Ledger.InvoiceDueDays = 7

	f := fixture{
		repo:     invoiceMocks.NewMockInvoice(ctrl),
		payments: paymentMocks.NewMockPayment(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
		rooms:    roomMocks.NewMockRoom(ctrl),
		items:    amenityMocks.NewMockLineItem(ctrl),
		tx:       pgMocks.NewMockTransactor(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	kafka := kafkaMocks.NewMockClient(ctrl)
	kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.payments, f.bookings, f.rooms, f.items, f.tx, kafka, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

// passthroughTx runs every transaction body directly.
func (f fixture) passthroughTx() {
	f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
		return fn(ctx, nil)
	}).AnyTimes()
}

func userCtx() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1")
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func booking(status string) bookingModel.Booking {
	return bookingModel.Booking{
		ID:           bookingID,
		RoomID:       roomID,
		CheckInDate:  time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

// pending is the reference ledger: two nights at 100 plus 30 of services.
func pending() model.Invoice {
	now := timezone.Now()

	return model.NewInvoice(invoiceID, bookingID, dec("200"), dec("30"), now, now.AddDate(0, 0, 7), gModel.NewMetadata("staff-1", now))
}

func TestInvoiceService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateInvoiceRequest
		setupMock func(f fixture)
		wantKind  error
		wantCode  int
		wantTotal string
	}{
		{
			name: "bills room nights and services",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
				f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(dec("30"), nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, inv model.Invoice) error {
					assert.True(t, dec("200").Equal(inv.RoomCost))
					assert.True(t, dec("30").Equal(inv.ServiceCost))
					assert.True(t, inv.PaidAmount.IsZero())
					assert.Equal(t, model.StatusPending, inv.Status)
					assert.Equal(t, 7, int(inv.DueDate.Sub(inv.IssueDate).Hours()/24))

					return nil
				})
			},
			wantTotal: "230",
		},
		{
			name: "booking not found",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)
			},
			wantKind: failure.ErrNotFound,
		},
		{
			name: "cancelled booking",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusCancelled), nil)
			},
			wantKind: failure.ErrInvalidTransition,
		},
		{
			name: "booking already invoiced",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantKind: failure.ErrConflict,
		},
		{
			name: "due date before issue",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID, DueDate: "2000-01-01"},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
				f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "concurrent insert loses on unique index",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusCheckedIn), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
				f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantKind: failure.ErrConflict,
		},
		{
			name: "sum fails",
			req:  dto.CreateInvoiceRequest{BookingID: bookingID},
			setupMock: func(f fixture) {
				f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusConfirmed), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
				f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, errors.New("db down"))
			},
			wantKind: failure.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(userCtx(), tt.req)
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)

				return
			}

			require.NoError(t, err)
			assert.True(t, dec(tt.wantTotal).Equal(res.TotalAmount))
			assert.True(t, dec(tt.wantTotal).Equal(res.BalanceDue))
			assert.Equal(t, model.StatusPending, res.Status)
		})
	}
}

func TestInvoiceService_ApplyPayment(t *testing.T) {
	partial := pending()
	partial, _ = partial.ApplyPayment(dec("100"), "staff-1", timezone.Now())

	cancelled := pending()
	cancelled.Status = model.StatusCancelled

	tests := []struct {
		name       string
		current    model.Invoice
		amount     string
		wantKind   error
		wantStatus string
		wantPaid   string
	}{
		{name: "settles in full", current: pending(), amount: "230", wantStatus: model.StatusPaid, wantPaid: "230"},
		{name: "partial payment", current: pending(), amount: "100", wantStatus: model.StatusPartiallyPaid, wantPaid: "100"},
		{name: "second payment settles the rest", current: partial, amount: "130", wantStatus: model.StatusPaid, wantPaid: "230"},
		{name: "overpayment rejected", current: pending(), amount: "231", wantKind: failure.ErrOverpayment},
		{name: "overpayment after partial", current: partial, amount: "130.01", wantKind: failure.ErrOverpayment},
		{name: "zero amount", current: pending(), amount: "0", wantKind: failure.ErrInvalidAmount},
		{name: "negative amount", current: pending(), amount: "-5", wantKind: failure.ErrInvalidAmount},
		{name: "cancelled invoice", current: cancelled, amount: "10", wantKind: failure.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.passthroughTx()

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantKind == nil {
				f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, p paymentModel.Payment) error {
					assert.Equal(t, invoiceID, p.InvoiceID)
					assert.True(t, dec(tt.amount).Equal(p.Amount))

					return nil
				})
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) error {
					assert.Equal(t, tt.wantStatus, req[model.FieldStatus])

					return nil
				})
			}

			req := dto.ApplyPaymentRequest{Amount: dec(tt.amount), Method: paymentModel.MethodCash}

			res, err := f.svc.ApplyPayment(userCtx(), req, invoiceID)
			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantKind)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Invoice.Status)
			assert.True(t, dec(tt.wantPaid).Equal(res.Invoice.PaidAmount))
			assert.True(t, res.Invoice.TotalAmount.Sub(res.Invoice.PaidAmount).Equal(res.Invoice.BalanceDue))
		})
	}

	t.Run("invoice not found", func(t *testing.T) {
		f := newFixture(t)
		f.passthroughTx()
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		_, err := f.svc.ApplyPayment(userCtx(), dto.ApplyPaymentRequest{Amount: dec("10"), Method: paymentModel.MethodCash}, invoiceID)
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("bad payment date", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ApplyPayment(userCtx(), dto.ApplyPaymentRequest{Amount: dec("10"), Method: paymentModel.MethodCash, PaymentDate: "10/01/2030"}, invoiceID)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("payment insert fails", func(t *testing.T) {
		f := newFixture(t)
		f.passthroughTx()
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending(), nil)
		f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.ApplyPayment(userCtx(), dto.ApplyPaymentRequest{Amount: dec("10"), Method: paymentModel.MethodCash}, invoiceID)
		assert.ErrorIs(t, err, failure.ErrPersistence)
	})
}

// Two payments of 150 race against a 230 invoice. The row lock serializes them,
// so exactly one lands and the other sees the updated balance.
func TestInvoiceService_ApplyPayment_Serialized(t *testing.T) {
	f := newFixture(t)

	var (
		lock   sync.Mutex
		stored = pending()
	)

	f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
		lock.Lock()
		defer lock.Unlock()

		return fn(ctx, nil)
	}).Times(2)

	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *sqlx.Tx, gDto.FilterGroup) (model.Invoice, error) {
		return stored, nil
	}).Times(2)
	f.payments.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req map[string]any, _ gDto.FilterGroup) error {
		stored.PaidAmount, _ = req[model.FieldPaidAmount].(decimal.Decimal)
		stored.Status, _ = req[model.FieldStatus].(string)

		return nil
	}).Times(1)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)

	for i := range errs {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			_, errs[i] = f.svc.ApplyPayment(userCtx(), dto.ApplyPaymentRequest{Amount: dec("150"), Method: paymentModel.MethodCash}, invoiceID)
		}(i)
	}

	wg.Wait()
	time.Sleep(10 * time.Millisecond)

	var overpaid int

	for _, err := range errs {
		if errors.Is(err, failure.ErrOverpayment) {
			overpaid++
		}
	}

	assert.Equal(t, 1, overpaid)
	assert.True(t, dec("150").Equal(stored.PaidAmount))
	assert.Equal(t, model.StatusPartiallyPaid, stored.Status)
}

func TestInvoiceService_Update(t *testing.T) {
	paid := pending()
	paid, _ = paid.ApplyPayment(dec("50"), "staff-1", timezone.Now())

	roomCost := dec("300")

	tests := []struct {
		name     string
		current  model.Invoice
		req      dto.UpdateInvoiceRequest
		wantKind error
		check    func(t *testing.T, res dto.InvoiceResponse)
	}{
		{
			name:    "edits room cost and recomputes total",
			current: pending(),
			req:     dto.UpdateInvoiceRequest{RoomCost: &roomCost},
			check: func(t *testing.T, res dto.InvoiceResponse) {
				t.Helper()
				assert.True(t, dec("330").Equal(res.TotalAmount))
			},
		},
		{
			name:    "cancels an unpaid invoice",
			current: pending(),
			req:     dto.UpdateInvoiceRequest{Status: model.StatusCancelled},
			check: func(t *testing.T, res dto.InvoiceResponse) {
				t.Helper()
				assert.Equal(t, model.StatusCancelled, res.Status)
			},
		},
		{name: "costs frozen after payment", current: paid, req: dto.UpdateInvoiceRequest{RoomCost: &roomCost}, wantKind: failure.ErrInvalidTransition},
		{name: "cannot cancel after payment", current: paid, req: dto.UpdateInvoiceRequest{Status: model.StatusCancelled}, wantKind: failure.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.passthroughTx()
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.current, nil)

			if tt.wantKind == nil {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			}

			res, err := f.svc.Update(userCtx(), tt.req, invoiceID)
			time.Sleep(10 * time.Millisecond)

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestInvoiceService_Recalculate(t *testing.T) {
	t.Run("picks up new services", func(t *testing.T) {
		f := newFixture(t)
		f.passthroughTx()
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(pending(), nil)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusCheckedIn), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
		f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(dec("75.50"), nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Recalculate(userCtx(), invoiceID)
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.True(t, dec("275.50").Equal(res.TotalAmount))
	})

	t.Run("cancelled invoice", func(t *testing.T) {
		f := newFixture(t)
		f.passthroughTx()

		cancelled := pending()
		cancelled.Status = model.StatusCancelled
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)

		_, err := f.svc.Recalculate(userCtx(), invoiceID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)
	})

	t.Run("paid invoice", func(t *testing.T) {
		f := newFixture(t)
		f.passthroughTx()

		paid, _ := pending().ApplyPayment(dec("230"), "staff-1", timezone.Now())
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(paid, nil)
		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusCheckedOut), nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: roomID, Price: dec("100")}, nil)
		f.items.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(dec("30"), nil)

		_, err := f.svc.Recalculate(userCtx(), invoiceID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)
	})
}

func TestInvoiceService_Get(t *testing.T) {
	t.Run("reports overdue past the due date", func(t *testing.T) {
		f := newFixture(t)

		late := pending()
		late.DueDate = timezone.Now().AddDate(0, 0, -3)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(late, nil)

		res, err := f.svc.Get(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.Equal(t, model.StatusOverdue, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Invoice{}, nil)

		_, err := f.svc.GetByBooking(context.Background(), bookingID)
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})

	t.Run("list from storage", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Invoice{pending()}, nil)

		res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Invoices, 1)
	})
}
