package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/handler"
	"github.com/cinebook/movie-booking/internal/middleware"
)

// RegisterBookings registers booking and payment endpoints under /v1.  All
// routes require a valid JWT; ownership of a booking is validated inside the
// handlers.  Extra middleware (the rate limiter) runs after JWTAuth so it
// can key buckets by the authenticated user.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mws := append([]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret)}, extra...)
	g := e.Group("/v1", mws...)

	g.POST("/bookings", b.CreateBooking)
	g.GET("/bookings", b.ListBookings)
	g.DELETE("/bookings/:id", b.CancelBooking)

	// Payment runs the mock gateway charge and flips the booking from
	// pending to paid or failed.
	g.POST("/payments/process", p.ProcessPayment)
}
