package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinebook/movie-booking/internal/config"
	"github.com/cinebook/movie-booking/internal/database"
	"github.com/cinebook/movie-booking/internal/handler"
	"github.com/cinebook/movie-booking/internal/middleware"
	"github.com/cinebook/movie-booking/internal/payment"
	"github.com/cinebook/movie-booking/internal/queue"
	"github.com/cinebook/movie-booking/internal/repository"
	"github.com/cinebook/movie-booking/internal/router"
	"github.com/cinebook/movie-booking/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  Both degrade to
	// pass-through middleware when the client is nil, so a missing Redis
	// never takes the API down.
	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	movieRepo := repository.NewMovieRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	gateway := payment.NewMockGateway(cfg.PaymentDelay, cfg.PaymentSuccessRate)

	authH := handler.NewAuthHandler(cfg, userRepo, roleRepo, tokenRepo)
	movieH := handler.NewMovieHandler(movieRepo, bookingRepo)
	bookingH := handler.NewBookingHandler(movieRepo, bookingRepo, cfg.SeatPriceCents)
	paymentH := handler.NewPaymentHandler(movieRepo, bookingRepo, gateway)

	updater := scheduler.NewAvailabilityUpdater(movieRepo)
	availH := handler.NewAvailabilityHandler(updater)
	adminH := handler.NewAdminMovieHandler(movieRepo)

	e := echo.New()
	e.HideBanner = true

	// The limiter runs after JWTAuth on authenticated groups so its
	// user-keyed strategies see the real user id; anonymous catalog
	// traffic shares per-IP buckets.
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterMovies(e, movieH, limiter, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterBookings(e, bookingH, paymentH, cfg.JWTSecret, limiter)
	router.RegisterAdmin(e, adminH, availH, roleRepo, cfg.JWTSecret, limiter)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background release sweep; disabled when the interval is zero.
	go updater.Start(ctx, cfg.AvailabilityInterval)

	// Consumer writes confirmation lines for paid bookings.  It reconnects
	// on its own, so a missing broker only costs the confirmation log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("queue consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
