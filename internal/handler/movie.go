package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/repository"
)

// MovieHandler serves the public, read-only movie catalog.  All endpoints
// are unauthenticated and sit behind the Redis response cache; the
// ordering of each listing matches what the home feed renders (newest
// first, top-rated available, soonest upcoming).
type MovieHandler struct {
	Movies   *repository.MovieRepo
	Bookings *repository.BookingRepo
}

// NewMovieHandler constructs a MovieHandler.  Both repositories must be
// non-nil; Bookings backs the taken-seats endpoint.
func NewMovieHandler(movies *repository.MovieRepo, bookings *repository.BookingRepo) *MovieHandler {
	if movies == nil || bookings == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Bookings: bookings}
}

// ListMovies handles GET /v1/movies.  Returns every movie newest first.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// ListAvailable handles GET /v1/movies/available.  Returns bookable
// movies ordered by rating descending.
func (h *MovieHandler) ListAvailable(c echo.Context) error {
	movies, err := h.Movies.ListAvailable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// ListUpcoming handles GET /v1/movies/upcoming.  Returns not-yet-released
// movies ordered by release date ascending.
func (h *MovieHandler) ListUpcoming(c echo.Context) error {
	movies, err := h.Movies.ListUpcoming(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movies"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": movies})
}

// GetMovie handles GET /v1/movies/:id.  Returns one movie or 404.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	movie, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": movie})
}

// GetTakenSeats handles GET /v1/movies/:id/seats?showtime=RFC3339.  It
// returns the seat labels already held by pending or paid bookings for
// the given showtime so a client can render the seat grid from real
// occupancy rather than a placeholder.  The list is advisory — the
// booking-creation transaction remains the authority on conflicts.
func (h *MovieHandler) GetTakenSeats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	showtime, err := time.Parse(time.RFC3339, c.QueryParam("showtime"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime, expected RFC3339"})
	}
	if _, err := h.Movies.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load movie"})
	}

	ctx := c.Request().Context()
	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	defer func() { _ = tx.Rollback() }()
	taken, err := h.Bookings.TakenSeatsTx(ctx, tx, id, showtime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	if taken == nil {
		taken = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": taken})
}
