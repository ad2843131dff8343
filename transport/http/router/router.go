package router

import (
	_ "hotel/docs"
	"hotel/infras/metrics"
	"hotel/internal/handlers/amenity"
	"hotel/internal/handlers/availability"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/customer"
	"hotel/internal/handlers/dashboard"
	"hotel/internal/handlers/feedback"
	"hotel/internal/handlers/invoice"
	"hotel/internal/handlers/payment"
	"hotel/internal/handlers/room"
	"hotel/internal/handlers/staff"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Room         room.Handler
	Customer     customer.Handler
	Amenity      amenity.Handler
	Booking      booking.Handler
	Availability availability.Handler
	Invoice      invoice.Handler
	Payment      payment.Handler
	Dashboard    dashboard.Handler
	Staff        staff.Handler
	Feedback     feedback.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.CORS())
	router.Use(r.App.Tracing)
	router.Use(r.App.Metrics)

	router.Handle("/metrics", metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.Auth.APIKey)
		routerGroup.Use(r.Auth.Auth)
		routerGroup.Use(r.Auth.RBAC)

		handlers := r.DomainHandlers

		handlers.Room.Router(routerGroup)
		handlers.Customer.Router(routerGroup, handlers.Feedback.CustomerRouter)
		handlers.Amenity.Router(routerGroup)
		handlers.Booking.Router(routerGroup, handlers.Amenity.LineItemRouter, handlers.Invoice.BookingRouter, handlers.Feedback.BookingRouter)
		handlers.Availability.Router(routerGroup)
		handlers.Invoice.Router(routerGroup, handlers.Payment.InvoiceRouter)
		handlers.Payment.Router(routerGroup)
		handlers.Dashboard.Router(routerGroup)
		handlers.Staff.Router(routerGroup)
		handlers.Feedback.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
