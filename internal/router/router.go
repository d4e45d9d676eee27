package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/handler"
	"github.com/cinebook/movie-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.  Unauthenticated
// operations live under /v1/auth, while protected endpoints live under /v1.
// Extra middleware (the rate limiter) applies to the unauthenticated group,
// where buckets key on IP.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", extra...)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the old one is revoked and a new
	// pair is returned.
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication; the handler accepts a JSON
	// body containing a `refresh_token` and invalidates that session, so a
	// client with an expired access token can still log out.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	// Revokes every refresh token the caller holds, unlike /v1/auth/logout
	// which ends a single session.
	auth.POST("/auth/logout-all", a.LogoutAll)
}

// RegisterMovies registers the public browse endpoints.  These routes apply
// no JWT middleware so guests can browse the catalog and check seat
// availability before signing up.  Each extra middleware (response cache,
// rate limiter) is optional and applied only when non-nil, so the API keeps
// working when Redis is unavailable.
func RegisterMovies(e *echo.Echo, m *handler.MovieHandler, extra ...echo.MiddlewareFunc) {
	mws := make([]echo.MiddlewareFunc, 0, len(extra))
	for _, mw := range extra {
		if mw != nil {
			mws = append(mws, mw)
		}
	}
	g := e.Group("/v1", mws...)

	g.GET("/movies", m.ListMovies)
	g.GET("/movies/available", m.ListAvailable)
	g.GET("/movies/upcoming", m.ListUpcoming)
	g.GET("/movies/:id", m.GetMovie)
	// Seat availability for one showtime, derived from pending and paid
	// bookings.  Guests can preview which seats are taken before logging in.
	g.GET("/movies/:id/seats", m.GetTakenSeats)
}
