package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/model"
	"github.com/cinebook/movie-booking/internal/repository"
)

// AdminMovieHandler covers direct catalog edits: inserting new movies and
// updating existing rows.  Routes are admin-only; the availability
// updater remains the usual way movies become bookable.
type AdminMovieHandler struct {
	Movies *repository.MovieRepo
}

func NewAdminMovieHandler(movies *repository.MovieRepo) *AdminMovieHandler {
	if movies == nil {
		panic("nil repository passed to NewAdminMovieHandler")
	}
	return &AdminMovieHandler{Movies: movies}
}

type movieReq struct {
	Title           string           `json:"title"`
	Description     *string          `json:"description"`
	PosterURL       *string          `json:"poster_url"`
	BackdropURL     *string          `json:"backdrop_url"`
	Genre           []string         `json:"genre"`
	Language        string           `json:"language"`
	Rating          float64          `json:"rating"`
	DurationMinutes uint32           `json:"duration_minutes"`
	ReleaseDate     *string          `json:"release_date"` // YYYY-MM-DD
	IsAvailable     bool             `json:"is_available"`
	Showtimes       []model.Showtime `json:"showtimes"`
}

// toModel validates the request and converts it into a model.Movie.
// Returns a user-facing message when validation fails.
func (r *movieReq) toModel() (*model.Movie, string) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, "title is required"
	}
	if strings.TrimSpace(r.Language) == "" {
		return nil, "language is required"
	}
	if r.Rating < 0 || r.Rating > 10 {
		return nil, "rating must be between 0 and 10"
	}
	if r.DurationMinutes == 0 {
		return nil, "duration_minutes must be positive"
	}
	m := &model.Movie{
		Title:           title,
		Description:     r.Description,
		PosterURL:       r.PosterURL,
		BackdropURL:     r.BackdropURL,
		Genre:           model.Genres(r.Genre),
		Language:        strings.TrimSpace(r.Language),
		Rating:          r.Rating,
		DurationMinutes: r.DurationMinutes,
		IsAvailable:     r.IsAvailable,
		Showtimes:       model.Showtimes(r.Showtimes),
	}
	if r.ReleaseDate != nil && strings.TrimSpace(*r.ReleaseDate) != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(*r.ReleaseDate))
		if err != nil {
			return nil, "release_date must be YYYY-MM-DD"
		}
		t = t.UTC()
		m.ReleaseDate = &t
	}
	return m, ""
}

// CreateMovie handles POST /v1/admin/movies.  Inserts a catalog row and
// returns it with generated id and timestamps.
func (h *AdminMovieHandler) CreateMovie(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Movies.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create movie"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": m})
}

// UpdateMovie handles PUT /v1/admin/movies/:id.  Overwrites the mutable
// fields of an existing movie.
func (h *AdminMovieHandler) UpdateMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	m, msg := req.toModel()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	m.ID = id
	if err := h.Movies.Update(c.Request().Context(), m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update movie"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": m})
}
