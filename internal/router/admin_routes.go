package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/handler"
	"github.com/cinebook/movie-booking/internal/middleware"
	"github.com/cinebook/movie-booking/internal/model"
)

// RegisterAdmin registers admin-scoped endpoints under /v1/admin.  All routes
// require a valid JWT and the admin role, which is checked against the
// user_roles table on every request.
func RegisterAdmin(e *echo.Echo, m *handler.AdminMovieHandler, av *handler.AvailabilityHandler, roles middleware.RoleChecker, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mws := append(
		[]echo.MiddlewareFunc{middleware.JWTAuth(jwtSecret), middleware.RequireRole(roles, model.RoleAdmin)},
		extra...,
	)
	g := e.Group("/v1/admin", mws...)

	// ---- Movies ----
	g.POST("/movies", m.CreateMovie)
	g.PUT("/movies/:id", m.UpdateMovie)

	// ---- Availability ----
	// Manual trigger for the release sweep; the same sweep also runs on a
	// timer in the background.
	g.POST("/movies/availability", av.UpdateAvailability)
}
