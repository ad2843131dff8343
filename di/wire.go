//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	amenityRepository "hotel/internal/domains/amenity/repository"
	amenityService "hotel/internal/domains/amenity/service"
	availabilityService "hotel/internal/domains/availability/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	customerRepository "hotel/internal/domains/customer/repository"
	customerService "hotel/internal/domains/customer/service"
	dashboardService "hotel/internal/domains/dashboard/service"
	feedbackRepository "hotel/internal/domains/feedback/repository"
	feedbackService "hotel/internal/domains/feedback/service"
	invoiceRepository "hotel/internal/domains/invoice/repository"
	invoiceService "hotel/internal/domains/invoice/service"
	paymentRepository "hotel/internal/domains/payment/repository"
	paymentService "hotel/internal/domains/payment/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	staffRepository "hotel/internal/domains/staff/repository"
	staffService "hotel/internal/domains/staff/service"

	amenityHandler "hotel/internal/handlers/amenity"
	availabilityHandler "hotel/internal/handlers/availability"
	bookingHandler "hotel/internal/handlers/booking"
	customerHandler "hotel/internal/handlers/customer"
	dashboardHandler "hotel/internal/handlers/dashboard"
	feedbackHandler "hotel/internal/handlers/feedback"
	invoiceHandler "hotel/internal/handlers/invoice"
	paymentHandler "hotel/internal/handlers/payment"
	roomHandler "hotel/internal/handlers/room"
	staffHandler "hotel/internal/handlers/staff"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var amenityDomain = wire.NewSet(
	amenityRepository.NewService,
	amenityRepository.NewLineItem,
	amenityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
	availabilityService.New,
)

var ledgerDomain = wire.NewSet(
	invoiceRepository.New,
	invoiceService.New,
	paymentRepository.New,
	paymentService.New,
	dashboardService.New,
)

var staffDomain = wire.NewSet(
	staffRepository.New,
	staffService.New,
)

var feedbackDomain = wire.NewSet(
	feedbackRepository.New,
	feedbackService.New,
)

var domains = wire.NewSet(
	roomDomain,
	customerDomain,
	amenityDomain,
	bookingDomain,
	ledgerDomain,
	staffDomain,
	feedbackDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	customerHandler.New,
	amenityHandler.New,
	bookingHandler.New,
	availabilityHandler.New,
	invoiceHandler.New,
	paymentHandler.New,
	dashboardHandler.New,
	staffHandler.New,
	feedbackHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
