package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cinebook/movie-booking/internal/model"
)

// MovieRepo provides read access to the movie catalog plus the mutations
// used by admins and the availability updater.  All timestamp fields are
// stored in UTC.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

const movieColumns = `id, title, description, poster_url, backdrop_url, genre, language,
       rating, duration_minutes, release_date, is_available, showtimes, created_at, updated_at`

// scanMovie reads one movie row from a *sql.Row or *sql.Rows via the
// common Scan signature.
func scanMovie(scan func(dest ...interface{}) error) (*model.Movie, error) {
	var m model.Movie
	var desc, poster, backdrop sql.NullString
	var release sql.NullTime
	if err := scan(
		&m.ID, &m.Title, &desc, &poster, &backdrop, &m.Genre, &m.Language,
		&m.Rating, &m.DurationMinutes, &release, &m.IsAvailable, &m.Showtimes,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		m.Description = &v
	}
	if poster.Valid {
		v := poster.String
		m.PosterURL = &v
	}
	if backdrop.Valid {
		v := backdrop.String
		m.BackdropURL = &v
	}
	if release.Valid {
		t := release.Time.UTC()
		m.ReleaseDate = &t
	}
	return &m, nil
}

func (r *MovieRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows.Scan)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// ListAll returns every movie in the catalog, newest first.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	return r.list(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at DESC`)
}

// ListAvailable returns bookable movies ordered by rating descending, so
// the home feed leads with the best-reviewed titles.
func (r *MovieRepo) ListAvailable(ctx context.Context) ([]model.Movie, error) {
	return r.list(ctx, `SELECT `+movieColumns+` FROM movies WHERE is_available = TRUE ORDER BY rating DESC`)
}

// ListUpcoming returns not-yet-available movies ordered by release date
// ascending (soonest first).
func (r *MovieRepo) ListUpcoming(ctx context.Context) ([]model.Movie, error) {
	return r.list(ctx, `SELECT `+movieColumns+` FROM movies WHERE is_available = FALSE ORDER BY release_date ASC`)
}

// GetByID returns a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListPendingRelease returns movies that are still flagged unavailable
// although their release date is on or before the given day.  These are
// the rows the availability updater promotes.
func (r *MovieRepo) ListPendingRelease(ctx context.Context, today time.Time) ([]model.Movie, error) {
	day := today.UTC().Format("2006-01-02")
	return r.list(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE is_available = FALSE AND release_date IS NOT NULL AND release_date <= ?`,
		day)
}

// MarkAvailable flips a movie to available and overwrites its showtimes
// with the provided schedule.  Used row by row from the availability job
// so one bad row does not abort the sweep.
func (r *MovieRepo) MarkAvailable(ctx context.Context, id uint64, showtimes model.Showtimes) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movies SET is_available = TRUE, showtimes = ?, updated_at = NOW() WHERE id = ?`,
		showtimes, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Create inserts a new catalog row and populates the generated ID and
// timestamps on the passed movie.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	var release interface{}
	if m.ReleaseDate != nil {
		release = m.ReleaseDate.UTC().Format("2006-01-02")
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (title, description, poster_url, backdrop_url, genre, language,
		        rating, duration_minutes, release_date, is_available, showtimes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.Description, m.PosterURL, m.BackdropURL, m.Genre, m.Language,
		m.Rating, m.DurationMinutes, release, m.IsAvailable, m.Showtimes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	// Query back the row so defaults and timestamps are populated.
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// Update overwrites the mutable fields of an existing movie.  Returns
// ErrMovieNotFound when the id matches no row.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	var release interface{}
	if m.ReleaseDate != nil {
		release = m.ReleaseDate.UTC().Format("2006-01-02")
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE movies SET title = ?, description = ?, poster_url = ?, backdrop_url = ?, genre = ?,
		        language = ?, rating = ?, duration_minutes = ?, release_date = ?, is_available = ?,
		        showtimes = ?, updated_at = NOW()
		 WHERE id = ?`,
		m.Title, m.Description, m.PosterURL, m.BackdropURL, m.Genre,
		m.Language, m.Rating, m.DurationMinutes, release, m.IsAvailable,
		m.Showtimes, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish "no such row" from "update was a no-op".
		var exists bool
		if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = ?)`, m.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrMovieNotFound
		}
	}
	got, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*m = *got
	return nil
}
