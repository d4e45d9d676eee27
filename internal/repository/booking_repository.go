package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cinebook/movie-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  Seat uniqueness per
// (movie, showtime) is the one hard correctness contract in the system
// and is enforced here, inside the booking-creation transaction, never in
// the client.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for transaction management.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, user_id, movie_id, seats, showtime, theater,
       total_amount_cents, payment_status, booking_code, created_at, updated_at`

func scanBooking(scan func(dest ...interface{}) error) (*model.Booking, error) {
	var b model.Booking
	if err := scan(
		&b.ID, &b.UserID, &b.MovieID, &b.Seats, &b.Showtime, &b.Theater,
		&b.TotalAmountCents, &b.PaymentStatus, &b.BookingCode,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Showtime = b.Showtime.UTC()
	return &b, nil
}

// TakenSeatsTx collects every seat label already claimed by a pending or
// paid booking for the given movie and showtime.  FOR UPDATE locks the
// matching rows so a concurrent create for the same showtime serializes
// behind this transaction.
func (r *BookingRepo) TakenSeatsTx(ctx context.Context, tx *sql.Tx, movieID uint64, showtime time.Time) ([]string, error) {
	const q = `SELECT seats FROM bookings
	           WHERE movie_id = ? AND showtime = ? AND payment_status IN ('pending','paid')
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, movieID, showtime.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var taken []string
	for rows.Next() {
		var seats model.Seats
		if err := rows.Scan(&seats); err != nil {
			return nil, err
		}
		taken = append(taken, seats...)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return taken, nil
}

// CreateTx inserts a pending booking within an existing transaction after
// verifying that none of the requested seats are held for the same movie
// and showtime.  On conflict it returns an error wrapping
// ErrSeatsAlreadyBooked that names the contested seats.  The generated ID
// and DB-side timestamps are populated on the passed record.  The caller
// must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	taken, err := r.TakenSeatsTx(ctx, tx, b.MovieID, b.Showtime)
	if err != nil {
		return err
	}
	if conflicts := ConflictingSeats(b.Seats, taken); len(conflicts) > 0 {
		return fmt.Errorf("%w: %v", ErrSeatsAlreadyBooked, conflicts)
	}
	const ins = `INSERT INTO bookings (user_id, movie_id, seats, showtime, theater,
	                 total_amount_cents, payment_status, booking_code)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		b.UserID, b.MovieID, b.Seats, b.Showtime.UTC(), b.Theater,
		b.TotalAmountCents, model.PaymentPending, b.BookingCode)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, b.ID).Scan)
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetByID returns a booking regardless of owner, or ErrBookingNotFound.
// Ownership checks belong to the caller so 404 and 403 stay distinct.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// BookingDetail is a booking joined with the minimal movie fields the
// bookings list renders.
type BookingDetail struct {
	model.Booking
	Movie struct {
		Title     string  `json:"title"`
		PosterURL *string `json:"poster_url"`
		Language  string  `json:"language"`
	} `json:"movie"`
}

// ListByUser returns the user's bookings newest first, each joined with
// its movie's title, poster and language.  An empty slice is returned
// when the user has no bookings.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.movie_id, b.seats, b.showtime, b.theater,
	                  b.total_amount_cents, b.payment_status, b.booking_code,
	                  b.created_at, b.updated_at,
	                  m.title, m.poster_url, m.language
	           FROM bookings b
	           JOIN movies m ON m.id = b.movie_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		var poster sql.NullString
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.MovieID, &d.Seats, &d.Showtime, &d.Theater,
			&d.TotalAmountCents, &d.PaymentStatus, &d.BookingCode,
			&d.CreatedAt, &d.UpdatedAt,
			&d.Movie.Title, &poster, &d.Movie.Language,
		); err != nil {
			return nil, err
		}
		d.Showtime = d.Showtime.UTC()
		if poster.Valid {
			v := poster.String
			d.Movie.PosterURL = &v
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// UpdateStatus moves a booking's payment status.  The WHERE clause pins
// the current status so a concurrent transition loses cleanly: zero rows
// affected means the booking was not in fromStatus anymore and
// ErrInvalidStatus is returned.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, fromStatus, toStatus string) (*model.Booking, error) {
	if !model.CanTransitionPayment(fromStatus, toStatus) {
		return nil, ErrInvalidStatus
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET payment_status = ?, updated_at = NOW() WHERE id = ? AND payment_status = ?`,
		toStatus, id, fromStatus)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Either the booking vanished or its status moved under us.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidStatus
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking owned by the given user.  It returns
// ErrBookingNotFound when no booking has the id and ErrForbidden when the
// booking belongs to someone else.  Deletion is allowed in any payment
// status; the UI only offers it for pending bookings.
func (r *BookingRepo) Delete(ctx context.Context, id, userID uint64) error {
	var ownerID uint64
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM bookings WHERE id = ?`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrForbidden
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	return err
}
