package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Payment status values for a booking.  A booking is created as pending
// and only the payment processor moves it to paid or failed.  The
// refunded value is reserved in the enum; no code path currently sets it.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Seats is stored in the bookings.seats JSON column as an array of seat
// labels such as "A3".
type Seats []string

func (s *Seats) Scan(src interface{}) error {
	if src == nil {
		*s = Seats{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("seats: unsupported scan type %T", src)
	}
	if len(raw) == 0 {
		*s = Seats{}
		return nil
	}
	return json.Unmarshal(raw, s)
}

func (s Seats) Value() (driver.Value, error) {
	if s == nil {
		s = Seats{}
	}
	return json.Marshal(s)
}

// Booking mirrors the `bookings` table.  Each row reserves a set of seats
// for one movie showtime on behalf of one user.  Seats must be unique per
// (movie, showtime) across pending and paid bookings; the repository
// enforces this inside the booking-creation transaction.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – owning user.
//  MovieID          – booked movie.
//  Seats            – seat labels (JSON column).
//  Showtime         – concrete screening timestamp.
//  Theater          – theater name from the movie's showtime slot.
//  TotalAmountCents – total price in cents for all seats.
//  PaymentStatus    – pending, paid, failed or refunded.
//  BookingCode      – short human-facing confirmation code.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Booking struct {
	ID               uint64    `json:"id"`
	UserID           uint64    `json:"user_id"`
	MovieID          uint64    `json:"movie_id"`
	Seats            Seats     `json:"seats"`
	Showtime         time.Time `json:"showtime"`
	Theater          string    `json:"theater"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	PaymentStatus    string    `json:"payment_status"`
	BookingCode      string    `json:"booking_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ValidPaymentStatus reports whether s is one of the known enum values.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransitionPayment reports whether a booking may move from one payment
// status to another.  The only legal moves are pending→paid and
// pending→failed; everything else (including re-paying a paid booking)
// is rejected so terminal states stay terminal.
func CanTransitionPayment(from, to string) bool {
	if from != PaymentPending {
		return false
	}
	return to == PaymentPaid || to == PaymentFailed
}
