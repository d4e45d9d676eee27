package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/model"
	"github.com/cinebook/movie-booking/internal/payment"
	"github.com/cinebook/movie-booking/internal/queue"
	"github.com/cinebook/movie-booking/internal/repository"
	queue_publisher "github.com/cinebook/movie-booking/internal/service"
)

// bookingStore is the slice of the booking repository the payment flow
// needs.  Satisfied by *repository.BookingRepo; tests substitute a stub.
type bookingStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, from, to string) (*model.Booking, error)
}

// movieGetter resolves the movie title for the booking.paid event.
type movieGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Movie, error)
}

// PaymentHandler settles pending bookings through the (simulated)
// payment gateway.  The transition contract is strict: only a pending
// booking owned by the caller can be charged, and it moves to exactly
// one of paid or failed.  There is no idempotency key — re-invoking on a
// pending booking re-rolls the charge — and no automatic retry.
type PaymentHandler struct {
	Movies   movieGetter
	Bookings bookingStore
	Gateway  payment.Gateway

	// PublishPaid is called after a successful charge; overridable in
	// tests.  Event delivery is best effort and never fails the payment.
	PublishPaid func(ctx context.Context, ev queue.BookingPaidEvent) error
}

// NewPaymentHandler constructs a PaymentHandler wired to the RabbitMQ
// publisher.
func NewPaymentHandler(movies *repository.MovieRepo, bookings *repository.BookingRepo, gw payment.Gateway) *PaymentHandler {
	if movies == nil || bookings == nil || gw == nil {
		panic("nil dependency passed to NewPaymentHandler")
	}
	return &PaymentHandler{
		Movies:      movies,
		Bookings:    bookings,
		Gateway:     gw,
		PublishPaid: queue_publisher.PublishBookingPaid,
	}
}

type processPaymentReq struct {
	BookingID interface{} `json:"bookingId"`
}

// ProcessPayment handles POST /v1/payments/process.
//
// Ordered checks, matching the transition contract:
//  1. 401 when the bearer token is missing or invalid (middleware).
//  2. 404 when the booking does not exist.
//  3. 403 when the booking belongs to another user.
//  4. 400 when the booking is already paid, or otherwise not pending.
//  5. 402 when the simulated gateway declines; the failed status is
//     persisted first.
//  6. 200 with the updated booking when the charge succeeds.
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req processPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	bookingID, ok := coerceID(req.BookingID)
	if !ok || bookingID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking ID"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load booking"})
	}
	if booking.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if booking.PaymentStatus == model.PaymentPaid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking already paid"})
	}
	if booking.PaymentStatus != model.PaymentPending {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking cannot be paid in current status"})
	}

	if err := h.Gateway.Charge(ctx, booking.TotalAmountCents, booking.BookingCode); err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			if _, uerr := h.Bookings.UpdateStatus(ctx, booking.ID, model.PaymentPending, model.PaymentFailed); uerr != nil {
				log.Printf("payment: persist failed status for booking %d: %v", booking.ID, uerr)
			}
			return c.JSON(http.StatusPaymentRequired, echo.Map{"error": "payment failed, please try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment processing error"})
	}

	updated, err := h.Bookings.UpdateStatus(ctx, booking.ID, model.PaymentPending, model.PaymentPaid)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidStatus) {
			// A concurrent request settled the booking between our check
			// and the update; the charge outcome is discarded.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "booking cannot be paid in current status"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}
	log.Printf("payment: booking %d (%s) paid by user %d", updated.ID, updated.BookingCode, userID)

	h.publishPaid(updated)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "booking": updated})
}

// publishPaid emits the booking.paid event on a detached context so a
// slow or absent broker cannot stall the HTTP response.
func (h *PaymentHandler) publishPaid(b *model.Booking) {
	if h.PublishPaid == nil {
		return
	}
	ev := queue.BookingPaidEvent{
		BookingID:        b.ID,
		BookingCode:      b.BookingCode,
		UserID:           b.UserID,
		MovieID:          b.MovieID,
		Theater:          b.Theater,
		Showtime:         b.Showtime.UTC().Format(time.RFC3339),
		Seats:            b.Seats,
		TotalAmountCents: b.TotalAmountCents,
		PaidAt:           time.Now().UTC().Format(time.RFC3339),
	}
	if movie, err := h.Movies.GetByID(context.Background(), b.MovieID); err == nil {
		ev.MovieTitle = movie.Title
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.PublishPaid(ctx, ev); err != nil {
			log.Printf("payment: publish booking.paid for %d failed: %v", b.ID, err)
		}
	}()
}
