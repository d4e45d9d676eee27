package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/scheduler"
)

// AvailabilityHandler lets admins trigger the movie availability sweep on
// demand, outside the background schedule.  The route is guarded by the
// admin role middleware; the handler itself only runs the job and shapes
// the response.
type AvailabilityHandler struct {
	Updater *scheduler.AvailabilityUpdater
}

func NewAvailabilityHandler(u *scheduler.AvailabilityUpdater) *AvailabilityHandler {
	if u == nil {
		panic("nil updater passed to NewAvailabilityHandler")
	}
	return &AvailabilityHandler{Updater: u}
}

// UpdateAvailability handles POST /v1/admin/movies/availability.  It runs
// one sweep as of today and reports which movies were promoted.  The job
// is best effort per row, so a partial failure still yields a 200 with
// the movies that did update.
func (h *AvailabilityHandler) UpdateAvailability(c echo.Context) error {
	updated, err := h.Updater.Run(c.Request().Context(), time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "availability update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("updated %d movies", len(updated)),
		"movies":  updated,
	})
}
