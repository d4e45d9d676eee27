// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingPaidEvent is published when a booking's payment succeeds.  It
// carries enough information for downstream consumers to log, send the
// confirmation email, or feed analytics without querying the primary
// database.
type BookingPaidEvent struct {
	BookingID        uint64   `json:"booking_id"`
	BookingCode      string   `json:"booking_code"`
	UserID           uint64   `json:"user_id"`
	MovieID          uint64   `json:"movie_id"`
	MovieTitle       string   `json:"movie_title"`
	Theater          string   `json:"theater"`
	Showtime         string   `json:"showtime"`
	Seats            []string `json:"seats"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	PaidAt           string   `json:"paid_at"`
}
