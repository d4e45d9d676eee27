package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/model"
	"github.com/cinebook/movie-booking/internal/repository"
	"github.com/cinebook/movie-booking/internal/utils"
)

// BookingHandler implements the booking accessor: atomic seat
// reservation, the user's booking list and cancellation.  All methods
// assume the JWT middleware has run.  The create path performs the one
// real correctness contract in the system — at most one owner per
// (movie, showtime, seat) — inside a database transaction.
type BookingHandler struct {
	Movies         *repository.MovieRepo
	Bookings       *repository.BookingRepo
	SeatPriceCents uint32
}

// NewBookingHandler constructs a BookingHandler.  Repositories must be
// non-nil; seatPriceCents is the flat per-seat ticket price.
func NewBookingHandler(movies *repository.MovieRepo, bookings *repository.BookingRepo, seatPriceCents uint32) *BookingHandler {
	if movies == nil || bookings == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Movies: movies, Bookings: bookings, SeatPriceCents: seatPriceCents}
}

type createBookingReq struct {
	MovieID          interface{} `json:"movie_id"`
	Seats            []string    `json:"seats"`
	Time             string      `json:"time"`    // slot display time, e.g. "10:00 AM"
	Theater          string      `json:"theater"` // theater name from the slot
	TotalAmountCents uint32      `json:"total_amount_cents"` // optional; validated when non-zero
}

// showtimeDate resolves a slot display time like "10:00 AM" onto the
// given day in UTC.  The date half of a booking's showtime is always the
// day the booking is made.  Hours may be one or two digits so an
// admin-published "9:30 PM" slot books the same as "09:30 PM".
func showtimeDate(slot string, day time.Time) (time.Time, error) {
	t, err := time.Parse("3:04 PM", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid showtime %q: %w", slot, err)
	}
	y, m, d := day.UTC().Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// CreateBooking handles POST /v1/bookings.  It validates the movie and
// slot, recomputes the total server-side, and books the seats inside a
// transaction.  When any requested seat is already held for the movie
// and showtime it responds 409 with the "seats_already_booked" code; the
// conflicting labels are named in the error message.  On success the new
// pending booking is returned with its booking code populated.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	movieID, ok := coerceID(req.MovieID)
	if !ok || movieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	seats := repository.NormalizeSeats(req.Seats)
	if len(seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "select a showtime and at least one seat"})
	}

	ctx := c.Request().Context()
	movie, err := h.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	if !movie.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"error": "movie is not open for booking"})
	}
	if !movie.Showtimes.Contains(req.Time, req.Theater) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown showtime for this movie"})
	}
	showtime, err := showtimeDate(req.Time, time.Now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime"})
	}

	// The total is computed here, never trusted from the client.  A
	// client-sent total is only checked for agreement.
	total := uint32(len(seats)) * h.SeatPriceCents
	if req.TotalAmountCents != 0 && req.TotalAmountCents != total {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total amount mismatch"})
	}

	code, err := utils.NewBookingCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate booking code"})
	}
	booking := &model.Booking{
		UserID:           userID,
		MovieID:          movieID,
		Seats:            seats,
		Showtime:         showtime,
		Theater:          req.Theater,
		TotalAmountCents: total,
		BookingCode:      code,
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Bookings.CreateTx(ctx, tx, booking); err != nil {
		if errors.Is(err, repository.ErrSeatsAlreadyBooked) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": err.Error(),
				"code":  "seats_already_booked",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// ListBookings handles GET /v1/bookings.  It returns the caller's
// bookings newest first, each joined with the movie fields the list
// renders.  An empty array is returned when the user has none.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// CancelBooking handles DELETE /v1/bookings/:id.  It removes a booking
// belonging to the caller.  Deletion is permitted regardless of payment
// status — the UI only exposes it for pending bookings — and frees the
// seats for that showtime.  Returns 204 on success, 404 for an unknown
// id and 403 when the booking belongs to another user.
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	if err := h.Bookings.Delete(c.Request().Context(), id, userID); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		if errors.Is(err, repository.ErrForbidden) {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel booking"})
	}
	return c.NoContent(http.StatusNoContent)
}
