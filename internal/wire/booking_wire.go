package wire

import (
	"shareit/internal/adaptor"
	"shareit/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(middleware.SharerUser(log))

		r.Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.ListBookerBookings)
		r.Get("/owner", bookingHandler.ListOwnerBookings)
		r.Get("/{bookingId}", bookingHandler.GetBooking)
		r.Patch("/{bookingId}", bookingHandler.DecideBooking)
	})
}
