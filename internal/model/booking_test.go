package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("PAID"))
	assert.False(t, ValidPaymentStatus(""))
	assert.False(t, ValidPaymentStatus("cancelled"))
}

func TestCanTransitionPayment(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{PaymentPending, PaymentPaid, true},
		{PaymentPending, PaymentFailed, true},
		// paid, failed and refunded are terminal
		{PaymentPaid, PaymentPending, false},
		{PaymentPaid, PaymentRefunded, false},
		{PaymentFailed, PaymentPaid, false},
		{PaymentRefunded, PaymentPending, false},
		// pending cannot self-transition or jump to refunded
		{PaymentPending, PaymentPending, false},
		{PaymentPending, PaymentRefunded, false},
		{"bogus", PaymentPaid, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransitionPayment(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestSeatsScanValue(t *testing.T) {
	var s Seats
	assert.NoError(t, s.Scan([]byte(`["A1","A2"]`)))
	assert.Equal(t, Seats{"A1", "A2"}, s)

	v, err := Seats(nil).Value()
	assert.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v.([]byte)))
}
