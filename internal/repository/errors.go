// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors or message strings.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatsAlreadyBooked is returned by the booking-creation transaction
// when any requested seat is already held by a pending or paid booking
// for the same movie and showtime. Handlers translate this into an
// HTTP 409 response carrying the "seats_already_booked" code so clients
// can react without matching on the message text.
var ErrSeatsAlreadyBooked = errors.New("seats already booked")

// ErrInvalidStatus is returned when a payment status update would break
// the pending→paid / pending→failed transition contract.
var ErrInvalidStatus = errors.New("invalid payment status transition")
