// Package scheduler runs the movie availability sweep: movies whose
// release date has passed are flipped to available and seeded with the
// default showtime schedule.  The sweep runs from a ticker in the
// background and can also be triggered by admins over HTTP.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/cinebook/movie-booking/internal/model"
	"github.com/cinebook/movie-booking/internal/repository"
)

// DefaultShowtimes is the fixed 4-slot schedule across 3 theaters that
// every newly released movie starts with.  Admins can adjust it per movie
// afterwards.
func DefaultShowtimes() model.Showtimes {
	return model.Showtimes{
		{Time: "10:00 AM", Theater: "PVR Cinemas"},
		{Time: "02:00 PM", Theater: "INOX"},
		{Time: "06:00 PM", Theater: "Cinepolis"},
		{Time: "09:30 PM", Theater: "PVR Cinemas"},
	}
}

// AvailabilityUpdater promotes released movies to available.
type AvailabilityUpdater struct {
	Movies *repository.MovieRepo
}

func NewAvailabilityUpdater(movies *repository.MovieRepo) *AvailabilityUpdater {
	return &AvailabilityUpdater{Movies: movies}
}

// Run performs one sweep as of the given day.  It selects movies with
// is_available=false and release_date <= today, then updates each row
// individually: a failure on one movie is logged and the rest continue.
// It returns the titles of the movies that were actually promoted.
func (u *AvailabilityUpdater) Run(ctx context.Context, today time.Time) ([]string, error) {
	pending, err := u.Movies.ListPendingRelease(ctx, today)
	if err != nil {
		return nil, err
	}
	log.Printf("availability: %d movies pending release", len(pending))

	updated := make([]string, 0, len(pending))
	for _, m := range pending {
		if err := u.Movies.MarkAvailable(ctx, m.ID, DefaultShowtimes()); err != nil {
			log.Printf("availability: update movie %d (%s) failed: %v", m.ID, m.Title, err)
			continue
		}
		log.Printf("availability: movie %q is now available", m.Title)
		updated = append(updated, m.Title)
	}
	return updated, nil
}

// Start runs the sweep immediately and then on every tick until ctx is
// cancelled.  Intended to run in its own goroutine from main.
func (u *AvailabilityUpdater) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		log.Printf("availability: scheduler disabled")
		return
	}
	if _, err := u.Run(ctx, time.Now().UTC()); err != nil {
		log.Printf("availability: sweep failed: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := u.Run(ctx, time.Now().UTC()); err != nil {
				log.Printf("availability: sweep failed: %v", err)
			}
		}
	}
}
