package queue

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	ev := BookingPaidEvent{
		BookingID:        12,
		BookingCode:      "BKX7Q2M9PT",
		UserID:           3,
		MovieID:          1,
		MovieTitle:       "Arrival",
		Theater:          "PVR Cinemas",
		Showtime:         "2026-07-04T10:00:00Z",
		Seats:            []string{"A1", "A2"},
		TotalAmountCents: 50000,
		PaidAt:           "2026-07-04T09:12:00Z",
	}

	line := formatLine(ev)
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Equal(t, 1, strings.Count(line, "\n"))
	assert.Contains(t, line, "[2026-07-04T09:12:00Z] Booking confirmed")
	assert.Contains(t, line, "code=BKX7Q2M9PT")
	assert.Contains(t, line, "booking_id=12")
	assert.Contains(t, line, `movie="Arrival"`)
	assert.Contains(t, line, "total=50000 cents")
	assert.Contains(t, line, "seats=[A1,A2]")
}

func TestFormatLineNoSeats(t *testing.T) {
	line := formatLine(BookingPaidEvent{BookingCode: "BKAAAAAAAA"})
	assert.Contains(t, line, "seats=[]")
}
