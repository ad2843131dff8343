package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model"
	"hotel/internal/domains/dashboard/model/dto"
	invoiceModel "hotel/internal/domains/invoice/model"
	invoiceRepo "hotel/internal/domains/invoice/repository"
	paymentModel "hotel/internal/domains/payment/model"
	paymentRepo "hotel/internal/domains/payment/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/daterange"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type Dashboard interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	invoiceRepo invoiceRepo.Invoice
	paymentRepo paymentRepo.Payment
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	invoiceRepo invoiceRepo.Invoice,
	paymentRepo paymentRepo.Payment,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Dashboard {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Summary aggregates counts and sums over rooms, bookings and the ledger. The result
// is cached for a short TTL and is never invalidated by writes.
func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Summary")
	defer scope.End()
	defer scope.TraceIfError(&err)

	now := timezone.Now()
	today := daterange.Day(now)
	cacheKey := model.CacheSummary + ":" + today.Format(constant.CalendarDate)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	summary := model.Summary{RoomsByStatus: make(map[string]int, len(roomModel.Statuses))}

	var mu sync.Mutex

	group, gctx := errgroup.WithContext(ctx)

	for _, status := range roomModel.Statuses {
		group.Go(func() error {
			count, err := s.roomRepo.Count(gctx, model.RoomStatusFilter(status))
			if err != nil {
				return fmt.Errorf("failed to count %s rooms: %w", status, err)
			}

			mu.Lock()
			summary.RoomsByStatus[status] = count
			mu.Unlock()

			return nil
		})
	}

	s.count(gctx, group, s.bookingRepo.Count, model.CheckedInFilter(), &summary.CheckedInGuests)
	s.count(gctx, group, s.bookingRepo.Count, model.ArrivalsFilter(today), &summary.CheckInsToday)
	s.count(gctx, group, s.bookingRepo.Count, model.DeparturesFilter(today), &summary.CheckOutsToday)
	s.count(gctx, group, s.bookingRepo.Count, model.CreatedSinceFilter(startOfDay(now)), &summary.NewBookingsToday)
	s.count(gctx, group, s.invoiceRepo.Count, invoiceModel.OpenFilter(), &summary.OpenInvoices)
	s.count(gctx, group, s.invoiceRepo.Count, invoiceModel.OverdueFilter(today), &summary.OverdueInvoices)

	s.revenue(gctx, group, paymentModel.DatedFilter(today, today), &summary.RevenueToday)
	s.revenue(gctx, group, paymentModel.DatedFilter(today.AddDate(0, 0, 1-model.RevenueWindowDays), today), &summary.RevenueLast30Days)

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build dashboard summary")

		return res, failure.Persistence(err) // nolint:wrapcheck
	}

	for _, count := range summary.RoomsByStatus {
		summary.TotalRooms += count
	}

	res.FromModel(summary)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Ledger.DashboardCacheTTL); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(
	ctx context.Context,
	group *errgroup.Group,
	count func(ctx context.Context, filter gDto.FilterGroup) (int, error),
	filter gDto.FilterGroup,
	dest *int,
) {
	group.Go(func() error {
		total, err := count(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to count dashboard figure: %w", err)
		}

		*dest = total

		return nil
	})
}

func (s *serviceImpl) revenue(ctx context.Context, group *errgroup.Group, filter gDto.FilterGroup, dest *decimal.Decimal) {
	group.Go(func() error {
		total, err := s.paymentRepo.Sum(ctx, paymentModel.TableName+"."+paymentModel.FieldAmount, filter)
		if err != nil {
			return fmt.Errorf("failed to sum revenue: %w", err)
		}

		*dest = total

		return nil
	})
}

// startOfDay is local midnight in the application timezone.
func startOfDay(now time.Time) time.Time {
	year, month, day := now.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}
