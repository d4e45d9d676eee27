package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/cinebook/movie-booking/internal/model"
	"github.com/cinebook/movie-booking/internal/payment"
	"github.com/cinebook/movie-booking/internal/queue"
	"github.com/cinebook/movie-booking/internal/repository"
)

func paymentRequest(t *testing.T, body string, userID interface{}) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/payments/process", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return rec, c
}

// stubBookings serves one booking and records status updates.
type stubBookings struct {
	booking   *model.Booking
	updateErr error

	updateCalls []string // "from->to"
}

func (s *stubBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	if s.booking == nil || s.booking.ID != id {
		return nil, repository.ErrBookingNotFound
	}
	cp := *s.booking
	return &cp, nil
}

func (s *stubBookings) UpdateStatus(_ context.Context, id uint64, from, to string) (*model.Booking, error) {
	s.updateCalls = append(s.updateCalls, from+"->"+to)
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if !model.CanTransitionPayment(from, to) || s.booking.PaymentStatus != from {
		return nil, repository.ErrInvalidStatus
	}
	s.booking.PaymentStatus = to
	cp := *s.booking
	return &cp, nil
}

type stubMovies struct{ title string }

func (s *stubMovies) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	return &model.Movie{ID: id, Title: s.title}, nil
}

type stubGateway struct{ err error }

func (g *stubGateway) Charge(_ context.Context, _ uint32, _ string) error { return g.err }

func pendingBooking() *model.Booking {
	return &model.Booking{
		ID:               12,
		UserID:           3,
		MovieID:          1,
		Seats:            model.Seats{"A1", "A2"},
		Showtime:         time.Date(2026, 7, 4, 10, 0, 0, 0, time.UTC),
		Theater:          "PVR Cinemas",
		TotalAmountCents: 50000,
		PaymentStatus:    model.PaymentPending,
		BookingCode:      "BKX7Q2M9PT",
	}
}

func TestProcessPaymentContract(t *testing.T) {
	cases := []struct {
		name        string
		userID      uint64
		status      string // booking's current payment status
		chargeErr   error
		wantCode    int
		wantStatus  string   // booking status after the request
		wantUpdates []string // recorded UpdateStatus transitions
	}{
		{
			name:       "charge succeeds",
			userID:     3,
			status:     model.PaymentPending,
			wantCode:   http.StatusOK,
			wantStatus: model.PaymentPaid,
			wantUpdates: []string{
				model.PaymentPending + "->" + model.PaymentPaid,
			},
		},
		{
			name:       "gateway declines persists failed",
			userID:     3,
			status:     model.PaymentPending,
			chargeErr:  payment.ErrDeclined,
			wantCode:   http.StatusPaymentRequired,
			wantStatus: model.PaymentFailed,
			wantUpdates: []string{
				model.PaymentPending + "->" + model.PaymentFailed,
			},
		},
		{
			name:       "another user's booking",
			userID:     99,
			status:     model.PaymentPending,
			wantCode:   http.StatusForbidden,
			wantStatus: model.PaymentPending,
		},
		{
			name:       "already paid stays paid",
			userID:     3,
			status:     model.PaymentPaid,
			wantCode:   http.StatusBadRequest,
			wantStatus: model.PaymentPaid,
		},
		{
			name:       "failed booking cannot be recharged",
			userID:     3,
			status:     model.PaymentFailed,
			wantCode:   http.StatusBadRequest,
			wantStatus: model.PaymentFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := pendingBooking()
			b.PaymentStatus = tc.status
			store := &stubBookings{booking: b}

			published := make(chan queue.BookingPaidEvent, 1)
			h := &PaymentHandler{
				Movies:   &stubMovies{title: "Arrival"},
				Bookings: store,
				Gateway:  &stubGateway{err: tc.chargeErr},
				PublishPaid: func(_ context.Context, ev queue.BookingPaidEvent) error {
					published <- ev
					return nil
				},
			}

			rec, c := paymentRequest(t, `{"bookingId":12}`, tc.userID)
			assert.NoError(t, h.ProcessPayment(c))
			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantStatus, store.booking.PaymentStatus)
			assert.Equal(t, tc.wantUpdates, store.updateCalls)

			if tc.wantCode == http.StatusOK {
				select {
				case ev := <-published:
					assert.Equal(t, uint64(12), ev.BookingID)
					assert.Equal(t, "BKX7Q2M9PT", ev.BookingCode)
					assert.Equal(t, "Arrival", ev.MovieTitle)
				case <-time.After(2 * time.Second):
					t.Fatal("booking.paid event was not published")
				}
			} else {
				select {
				case <-published:
					t.Fatal("event published for a non-successful payment")
				default:
				}
			}
		})
	}
}

func TestProcessPaymentNotFound(t *testing.T) {
	h := &PaymentHandler{
		Movies:   &stubMovies{},
		Bookings: &stubBookings{},
		Gateway:  &stubGateway{},
	}
	rec, c := paymentRequest(t, `{"bookingId":404}`, uint64(3))
	assert.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessPaymentConcurrentSettle(t *testing.T) {
	// The status flipped between the pending check and the update; the
	// handler reports the conflict instead of overwriting.
	b := pendingBooking()
	store := &stubBookings{booking: b, updateErr: repository.ErrInvalidStatus}
	h := &PaymentHandler{
		Movies:   &stubMovies{},
		Bookings: store,
		Gateway:  &stubGateway{},
	}
	rec, c := paymentRequest(t, `{"bookingId":12}`, uint64(3))
	assert.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// These exercise the request validation that runs before any repository
// call, so a zero-value handler is enough.
func TestProcessPaymentUnauthorized(t *testing.T) {
	h := &PaymentHandler{}
	rec, c := paymentRequest(t, `{"bookingId":1}`, nil)
	assert.NoError(t, h.ProcessPayment(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProcessPaymentInvalidBookingID(t *testing.T) {
	h := &PaymentHandler{}
	for _, body := range []string{`{}`, `{"bookingId":0}`, `{"bookingId":"abc"}`, `{"bookingId":-4}`} {
		rec, c := paymentRequest(t, body, uint64(1))
		assert.NoError(t, h.ProcessPayment(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
